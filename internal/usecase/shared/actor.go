// Package shared provides shared utilities for use cases.
package shared

import (
	"fmt"

	"github.com/runoshun/bugtrack/internal/domain"
)

// CurrentActor returns the logged-in user or domain.ErrNotLoggedIn.
func CurrentActor(sessions domain.SessionStore) (*domain.User, error) {
	user, err := sessions.CurrentUser()
	if err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotLoggedIn
	}
	return user, nil
}

// RequireManager returns the logged-in user if they are a manager.
func RequireManager(sessions domain.SessionStore) (*domain.User, error) {
	user, err := CurrentActor(sessions)
	if err != nil {
		return nil, err
	}
	if !user.IsManager() {
		return nil, domain.ErrManagerOnly
	}
	return user, nil
}
