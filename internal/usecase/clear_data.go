package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase/shared"
)

// ClearDataInput contains the parameters for clearing stored data.
type ClearDataInput struct{}

// ClearDataOutput is returned after the data has been cleared.
type ClearDataOutput struct{}

// ClearData removes stored tasks and settings. The session is kept, and the
// next read serves the seed dataset again.
type ClearData struct {
	tasks    domain.TaskRepository
	sessions domain.SessionStore
	store    domain.DataClearer
	logger   domain.Logger
}

// NewClearData creates a new ClearData use case.
func NewClearData(tasks domain.TaskRepository, sessions domain.SessionStore, store domain.DataClearer, logger domain.Logger) *ClearData {
	return &ClearData{tasks: tasks, sessions: sessions, store: store, logger: logger}
}

// Execute clears the store and drops the in-memory collection.
func (uc *ClearData) Execute(_ context.Context, _ ClearDataInput) (*ClearDataOutput, error) {
	actor, err := shared.CurrentActor(uc.sessions)
	if err != nil {
		return nil, err
	}

	if err := uc.store.Clear(); err != nil {
		return nil, fmt.Errorf("clear data: %w", err)
	}
	uc.tasks.Reload()

	if uc.logger != nil {
		uc.logger.Warn("", "data", fmt.Sprintf("all data cleared by %s", actor.Name))
	}
	return &ClearDataOutput{}, nil
}
