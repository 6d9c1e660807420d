package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/bugtrack/internal/domain"
)

// LogoutInput contains the parameters for logging out.
type LogoutInput struct{}

// LogoutOutput contains the result of logging out.
type LogoutOutput struct {
	User *domain.User // The user that was logged out (nil if nobody was)
}

// Logout clears the current user.
type Logout struct {
	sessions domain.SessionStore
	logger   domain.Logger
}

// NewLogout creates a new Logout use case.
func NewLogout(sessions domain.SessionStore, logger domain.Logger) *Logout {
	return &Logout{sessions: sessions, logger: logger}
}

// Execute clears the session. Logging out twice is not an error.
func (uc *Logout) Execute(_ context.Context, _ LogoutInput) (*LogoutOutput, error) {
	user, err := uc.sessions.CurrentUser()
	if err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	if err := uc.sessions.ClearCurrentUser(); err != nil {
		return nil, fmt.Errorf("clear session: %w", err)
	}
	if user != nil && uc.logger != nil {
		uc.logger.Info("", "auth", "logged out: "+user.Email)
	}
	return &LogoutOutput{User: user}, nil
}
