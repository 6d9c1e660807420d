package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase/shared"
)

// ExportDataInput contains the parameters for a full data export.
type ExportDataInput struct{}

// ExportDataOutput contains the JSON dump and its suggested file name.
type ExportDataOutput struct {
	FileName string
	Content  string
	Data     domain.DataExport
}

// ExportData dumps the user's visible tasks and preferences as JSON.
type ExportData struct {
	tasks    domain.TaskRepository
	sessions domain.SessionStore
	settings domain.SettingsStore
	clock    domain.Clock
}

// NewExportData creates a new ExportData use case.
func NewExportData(tasks domain.TaskRepository, sessions domain.SessionStore, settings domain.SettingsStore, clock domain.Clock) *ExportData {
	return &ExportData{tasks: tasks, sessions: sessions, settings: settings, clock: clock}
}

// Execute builds the export.
func (uc *ExportData) Execute(_ context.Context, _ ExportDataInput) (*ExportDataOutput, error) {
	actor, err := shared.CurrentActor(uc.sessions)
	if err != nil {
		return nil, err
	}

	all, err := uc.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	prefs, err := uc.settings.LoadUserSettings()
	if err != nil {
		return nil, fmt.Errorf("load user settings: %w", err)
	}

	now := uc.clock.Now()
	tasks := domain.ScopeForUser(all, actor.Role, actor.ID)
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	data := domain.DataExport{
		ExportDate:   now.UTC(),
		Tasks:        tasks,
		UserSettings: prefs,
	}
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	return &ExportDataOutput{
		FileName: domain.ExportFileName("taskflow-export", domain.ExportJSON, now),
		Content:  string(content),
		Data:     data,
	}, nil
}
