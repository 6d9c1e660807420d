package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase/shared"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	TaskID string
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct {
	Deleted bool // False if the task did not exist
}

// DeleteTask is the use case for deleting a task and its time entries.
type DeleteTask struct {
	tasks    domain.TaskRepository
	sessions domain.SessionStore
	logger   domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(tasks domain.TaskRepository, sessions domain.SessionStore, logger domain.Logger) *DeleteTask {
	return &DeleteTask{tasks: tasks, sessions: sessions, logger: logger}
}

// Execute deletes the task. Deleting a missing or out-of-scope task is a no-op.
func (uc *DeleteTask) Execute(_ context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	actor, err := shared.CurrentActor(uc.sessions)
	if err != nil {
		return nil, err
	}

	task, err := shared.GetVisibleTask(uc.tasks, actor, in.TaskID)
	if errors.Is(err, domain.ErrNotFound) {
		return &DeleteTaskOutput{Deleted: false}, nil
	}
	if err != nil {
		return nil, err
	}

	if !domain.CanEdit(task, actor.Role, actor.ID) {
		return nil, fmt.Errorf("delete task %s: %w", task.ID, domain.ErrUnauthorized)
	}

	if err := uc.tasks.Delete(task.ID); err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(task.ID, "task", fmt.Sprintf("deleted by %s: %q", actor.Name, task.Title))
	}

	return &DeleteTaskOutput{Deleted: true}, nil
}
