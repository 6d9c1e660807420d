package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/testutil"
)

func TestLogin_Execute_Success(t *testing.T) {
	// Setup
	users := domain.NewStaticDirectory(domain.SeedUsers())
	sessions := &testutil.MockSessionStore{}
	logger := &testutil.MockLogger{}
	uc := NewLogin(users, sessions, domain.SharedPassword("password"), logger)

	// Execute
	out, err := uc.Execute(context.Background(), LoginInput{
		Email:    "Suraj@Company.com",
		Password: "password",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "2", out.User.ID)
	assert.Equal(t, domain.RoleManager, out.User.Role)
	require.NotNil(t, sessions.User)
	assert.Equal(t, "suraj@company.com", sessions.User.Email)
	assert.Equal(t, []string{"INFO"}, logger.Levels())
}

func TestLogin_Execute_InvalidCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "yuvi@company.com", "hunter2"},
		{"unknown email", "nobody@company.com", "password"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			sessions := &testutil.MockSessionStore{}
			logger := &testutil.MockLogger{}
			uc := NewLogin(domain.NewStaticDirectory(domain.SeedUsers()), sessions, domain.SharedPassword("password"), logger)

			// Execute
			_, err := uc.Execute(context.Background(), LoginInput{Email: tt.email, Password: tt.password})

			// Assert
			require.ErrorIs(t, err, domain.ErrInvalidCredentials)
			require.ErrorIs(t, err, domain.ErrUnauthorized)
			assert.Nil(t, sessions.User)
			assert.Equal(t, []string{"WARN"}, logger.Levels())
		})
	}
}

func TestLogin_Execute_ConfiguredPassword(t *testing.T) {
	sessions := &testutil.MockSessionStore{}
	uc := NewLogin(domain.NewStaticDirectory(domain.SeedUsers()), sessions, domain.SharedPassword("s3cret"), nil)

	_, err := uc.Execute(context.Background(), LoginInput{Email: "yuvi@company.com", Password: "password"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	out, err := uc.Execute(context.Background(), LoginInput{Email: "yuvi@company.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "1", out.User.ID)
}

func TestLogin_Execute_SaveError(t *testing.T) {
	sessions := &testutil.MockSessionStore{SetErr: assert.AnError}
	uc := NewLogin(domain.NewStaticDirectory(domain.SeedUsers()), sessions, domain.SharedPassword("password"), nil)

	_, err := uc.Execute(context.Background(), LoginInput{Email: "yuvi@company.com", Password: "password"})

	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "save session")
}

func TestHashPassword_Execute(t *testing.T) {
	hasher := &testutil.MockPasswordHasher{HashResult: "$2a$12$hash"}
	uc := NewHashPassword(hasher)

	out, err := uc.Execute(context.Background(), HashPasswordInput{Password: "s3cret"})

	require.NoError(t, err)
	assert.Equal(t, "$2a$12$hash", out.Hash)
	assert.Equal(t, []string{"s3cret"}, hasher.Passwords)
}

func TestHashPassword_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		password string
		hashErr  error
		wantErr  error
	}{
		{"empty", "", nil, domain.ErrEmptyPassword},
		{"whitespace only", "  ", nil, domain.ErrEmptyPassword},
		{"hasher fails", "s3cret", assert.AnError, assert.AnError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher := &testutil.MockPasswordHasher{HashErr: tt.hashErr}

			_, err := NewHashPassword(hasher).Execute(context.Background(), HashPasswordInput{Password: tt.password})

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLogout_Execute(t *testing.T) {
	// Setup
	sessions := sessionAs(developer)
	logger := &testutil.MockLogger{}
	uc := NewLogout(sessions, logger)

	// Execute
	out, err := uc.Execute(context.Background(), LogoutInput{})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, out.User)
	assert.Equal(t, developer.ID, out.User.ID)
	assert.Nil(t, sessions.User)
	assert.Len(t, logger.Entries, 1)

	// Logging out again is a no-op
	out, err = uc.Execute(context.Background(), LogoutInput{})
	require.NoError(t, err)
	assert.Nil(t, out.User)
	assert.Len(t, logger.Entries, 1)
}

func TestWhoAmI_Execute(t *testing.T) {
	out, err := NewWhoAmI(sessionAs(otherDev)).Execute(context.Background(), WhoAmIInput{})
	require.NoError(t, err)
	assert.Equal(t, otherDev, out.User)

	_, err = NewWhoAmI(&testutil.MockSessionStore{}).Execute(context.Background(), WhoAmIInput{})
	assert.ErrorIs(t, err, domain.ErrNotLoggedIn)
}
