package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/bugtrack/internal/domain"
)

// LoginInput contains the credentials to log in with.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput contains the logged-in user.
type LoginOutput struct {
	User domain.User
}

// Login authenticates a seeded user and records them as the current user.
type Login struct {
	users     domain.UserDirectory
	sessions  domain.SessionStore
	passwords domain.PasswordVerifier
	logger    domain.Logger
}

// NewLogin creates a new Login use case.
func NewLogin(users domain.UserDirectory, sessions domain.SessionStore, passwords domain.PasswordVerifier, logger domain.Logger) *Login {
	return &Login{
		users:     users,
		sessions:  sessions,
		passwords: passwords,
		logger:    logger,
	}
}

// Execute checks the credentials and persists the session.
func (uc *Login) Execute(_ context.Context, in LoginInput) (*LoginOutput, error) {
	user, err := domain.Authenticate(uc.users, in.Email, in.Password, uc.passwords)
	if err != nil {
		if uc.logger != nil {
			uc.logger.Warn("", "auth", fmt.Sprintf("failed login for %q", in.Email))
		}
		return nil, err
	}

	if err := uc.sessions.SetCurrentUser(user); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info("", "auth", fmt.Sprintf("logged in: %s (%s)", user.Email, user.Role))
	}

	return &LoginOutput{User: user}, nil
}
