package usecase

import (
	"context"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase/shared"
)

// WhoAmIInput contains the parameters for WhoAmI.
type WhoAmIInput struct{}

// WhoAmIOutput contains the current user.
type WhoAmIOutput struct {
	User domain.User
}

// WhoAmI returns the logged-in user.
type WhoAmI struct {
	sessions domain.SessionStore
}

// NewWhoAmI creates a new WhoAmI use case.
func NewWhoAmI(sessions domain.SessionStore) *WhoAmI {
	return &WhoAmI{sessions: sessions}
}

// Execute returns the current user or domain.ErrNotLoggedIn.
func (uc *WhoAmI) Execute(_ context.Context, _ WhoAmIInput) (*WhoAmIOutput, error) {
	user, err := shared.CurrentActor(uc.sessions)
	if err != nil {
		return nil, err
	}
	return &WhoAmIOutput{User: *user}, nil
}
