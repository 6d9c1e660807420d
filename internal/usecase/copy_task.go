package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase/shared"
)

// CopyTaskInput contains the parameters for copying a task.
// Fields are ordered to minimize memory padding.
type CopyTaskInput struct {
	Title    *string // New title (optional, defaults to "<original> (copy)")
	SourceID string  // Source task ID to copy
}

// CopyTaskOutput contains the result of copying a task.
type CopyTaskOutput struct {
	Task *domain.Task
}

// CopyTask is the use case for copying a task.
type CopyTask struct {
	tasks    domain.TaskRepository
	sessions domain.SessionStore
	logger   domain.Logger
}

// NewCopyTask creates a new CopyTask use case.
func NewCopyTask(tasks domain.TaskRepository, sessions domain.SessionStore, logger domain.Logger) *CopyTask {
	return &CopyTask{tasks: tasks, sessions: sessions, logger: logger}
}

// Execute copies a task.
// The copy keeps description, priority, assignee, due date, estimate and tags.
// It starts open with no time entries, and the current user becomes the reporter.
func (uc *CopyTask) Execute(_ context.Context, in CopyTaskInput) (*CopyTaskOutput, error) {
	actor, err := shared.CurrentActor(uc.sessions)
	if err != nil {
		return nil, err
	}

	source, err := shared.GetVisibleTask(uc.tasks, actor, in.SourceID)
	if err != nil {
		return nil, fmt.Errorf("copy task: %w", err)
	}

	title := source.Title + " (copy)"
	if in.Title != nil {
		title = *in.Title
	}

	var due *time.Time
	if source.DueDate != nil {
		d := *source.DueDate
		due = &d
	}
	var estimate *float64
	if source.EstimatedHours != nil {
		e := *source.EstimatedHours
		estimate = &e
	}

	task, err := uc.tasks.Create(domain.TaskDraft{
		Title:          title,
		Description:    source.Description,
		Priority:       source.Priority,
		AssigneeID:     source.AssigneeID,
		ReporterID:     actor.ID,
		DueDate:        due,
		EstimatedHours: estimate,
		Tags:           slices.Clone(source.Tags),
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(task.ID, "task", fmt.Sprintf("copied from %s by %s", source.ID, actor.Name))
	}
	return &CopyTaskOutput{Task: task}, nil
}
