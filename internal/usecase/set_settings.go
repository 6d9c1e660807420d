package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase/shared"
)

// SetSettingsInput contains the parameters for changing one setting.
type SetSettingsInput struct {
	Key    string // JSON field name, e.g. defaultPriority
	Value  string
	System bool // Change a system setting (managers only)
}

// SetSettingsOutput contains the settings after the change.
type SetSettingsOutput struct {
	System *domain.SystemSettings
	User   *domain.UserSettings
}

// SetSettings is the use case for changing a user or system setting.
type SetSettings struct {
	sessions domain.SessionStore
	settings domain.SettingsStore
	logger   domain.Logger
}

// NewSetSettings creates a new SetSettings use case.
func NewSetSettings(sessions domain.SessionStore, settings domain.SettingsStore, logger domain.Logger) *SetSettings {
	return &SetSettings{sessions: sessions, settings: settings, logger: logger}
}

// Execute updates a single field and saves the record.
func (uc *SetSettings) Execute(_ context.Context, in SetSettingsInput) (*SetSettingsOutput, error) {
	if in.System {
		return uc.setSystem(in)
	}

	actor, err := shared.CurrentActor(uc.sessions)
	if err != nil {
		return nil, err
	}

	prefs, err := uc.settings.LoadUserSettings()
	if err != nil {
		return nil, fmt.Errorf("load user settings: %w", err)
	}
	if err := domain.SetSettingField(&prefs, in.Key, in.Value); err != nil {
		return nil, err
	}
	if !prefs.DefaultPriority.IsValid() {
		return nil, domain.ErrInvalidPriority
	}
	if err := uc.settings.SaveUserSettings(prefs); err != nil {
		return nil, fmt.Errorf("save user settings: %w", err)
	}

	uc.logChange(actor, "user", in)
	return &SetSettingsOutput{User: &prefs}, nil
}

func (uc *SetSettings) setSystem(in SetSettingsInput) (*SetSettingsOutput, error) {
	actor, err := shared.RequireManager(uc.sessions)
	if err != nil {
		return nil, err
	}

	system, err := uc.settings.LoadSystemSettings()
	if err != nil {
		return nil, fmt.Errorf("load system settings: %w", err)
	}
	if err := domain.SetSettingField(&system, in.Key, in.Value); err != nil {
		return nil, err
	}
	if system.InactiveDays < 1 {
		return nil, fmt.Errorf("inactiveDays must be at least 1: %w", domain.ErrValidationFailed)
	}
	if err := uc.settings.SaveSystemSettings(system); err != nil {
		return nil, fmt.Errorf("save system settings: %w", err)
	}

	uc.logChange(actor, "system", in)
	return &SetSettingsOutput{System: &system}, nil
}

func (uc *SetSettings) logChange(actor *domain.User, scope string, in SetSettingsInput) {
	if uc.logger != nil {
		uc.logger.Info("", "settings", fmt.Sprintf("%s set %s %s = %s", actor.Name, scope, in.Key, in.Value))
	}
}
