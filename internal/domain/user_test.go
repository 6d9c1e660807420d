package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticDirectory(t *testing.T) {
	dir := NewStaticDirectory(SeedUsers())

	u, ok := dir.FindByID("2")
	require.True(t, ok)
	assert.Equal(t, "Suraj Shikhar", u.Name)
	assert.True(t, u.IsManager())

	u, ok = dir.FindByEmail("AMAN@company.com")
	require.True(t, ok)
	assert.Equal(t, "3", u.ID)

	_, ok = dir.FindByID("99")
	assert.False(t, ok)

	users := dir.Users()
	users[0].Name = "changed"
	again, _ := dir.FindByID("1")
	assert.Equal(t, "Yuvraj Singh", again.Name)
}

func TestAuthenticate(t *testing.T) {
	dir := NewStaticDirectory(SeedUsers())

	u, err := Authenticate(dir, " yuvi@company.com ", "password", SharedPassword(DefaultSharedPassword))
	require.NoError(t, err)
	assert.Equal(t, "1", u.ID)

	_, err = Authenticate(dir, "yuvi@company.com", "wrong", SharedPassword(DefaultSharedPassword))
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = Authenticate(dir, "nobody@company.com", "password", SharedPassword(DefaultSharedPassword))
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSharedPassword_Verify(t *testing.T) {
	p := SharedPassword("s3cret")
	assert.True(t, p.Verify("s3cret"))
	assert.False(t, p.Verify("s3cre"))
	assert.False(t, p.Verify(""))
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleDeveloper.IsValid())
	assert.True(t, RoleManager.IsValid())
	assert.False(t, Role("admin").IsValid())
}
