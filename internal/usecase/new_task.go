// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase/shared"
)

// NewTaskInput contains the parameters for creating a new task.
// Fields are ordered to minimize memory padding.
type NewTaskInput struct {
	DueDate        *time.Time      // Due date (optional)
	EstimatedHours *float64        // Estimate in hours (optional)
	Title          string          // Task title (required)
	Description    string          // Task description (required)
	Priority       domain.Priority // Priority (optional, empty = user's default priority)
	AssigneeID     string          // Assignee user ID (optional, empty = current user)
	Tags           []string        // Tags (optional)
}

// NewTaskOutput contains the result of creating a new task.
type NewTaskOutput struct {
	Task *domain.Task
}

// NewTask is the use case for creating a new task.
// The current user is recorded as the reporter.
type NewTask struct {
	tasks    domain.TaskRepository
	sessions domain.SessionStore
	settings domain.SettingsStore
	logger   domain.Logger
}

// NewNewTask creates a new NewTask use case.
func NewNewTask(tasks domain.TaskRepository, sessions domain.SessionStore, settings domain.SettingsStore, logger domain.Logger) *NewTask {
	return &NewTask{
		tasks:    tasks,
		sessions: sessions,
		settings: settings,
		logger:   logger,
	}
}

// Execute creates a new task with the given input.
func (uc *NewTask) Execute(_ context.Context, in NewTaskInput) (*NewTaskOutput, error) {
	actor, err := shared.CurrentActor(uc.sessions)
	if err != nil {
		return nil, err
	}

	priority := in.Priority
	if priority == "" {
		prefs, err := uc.settings.LoadUserSettings()
		if err != nil {
			return nil, fmt.Errorf("load user settings: %w", err)
		}
		priority = prefs.DefaultPriority
	}

	assigneeID := in.AssigneeID
	if assigneeID == "" {
		assigneeID = actor.ID
	}

	task, err := uc.tasks.Create(domain.TaskDraft{
		Title:          in.Title,
		Description:    in.Description,
		Priority:       priority,
		AssigneeID:     assigneeID,
		ReporterID:     actor.ID,
		DueDate:        in.DueDate,
		EstimatedHours: in.EstimatedHours,
		Tags:           in.Tags,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(task.ID, "task", fmt.Sprintf("created by %s: %q", actor.Name, task.Title))
	}

	return &NewTaskOutput{Task: task}, nil
}
