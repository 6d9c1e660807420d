package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase/shared"
)

// ShowSettingsInput contains the parameters for showing settings.
type ShowSettingsInput struct{}

// ShowSettingsOutput contains the user's settings, and the system settings for managers.
type ShowSettingsOutput struct {
	System *domain.SystemSettings // nil unless the user is a manager
	User   domain.UserSettings
}

// ShowSettings is the use case for viewing settings.
type ShowSettings struct {
	sessions domain.SessionStore
	settings domain.SettingsStore
}

// NewShowSettings creates a new ShowSettings use case.
func NewShowSettings(sessions domain.SessionStore, settings domain.SettingsStore) *ShowSettings {
	return &ShowSettings{sessions: sessions, settings: settings}
}

// Execute loads the settings visible to the current user.
func (uc *ShowSettings) Execute(_ context.Context, _ ShowSettingsInput) (*ShowSettingsOutput, error) {
	actor, err := shared.CurrentActor(uc.sessions)
	if err != nil {
		return nil, err
	}

	prefs, err := uc.settings.LoadUserSettings()
	if err != nil {
		return nil, fmt.Errorf("load user settings: %w", err)
	}
	out := &ShowSettingsOutput{User: prefs}

	if actor.IsManager() {
		system, err := uc.settings.LoadSystemSettings()
		if err != nil {
			return nil, fmt.Errorf("load system settings: %w", err)
		}
		out.System = &system
	}
	return out, nil
}
