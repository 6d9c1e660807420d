package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase/shared"
)

// MoveTaskInput contains the parameters for moving a task between board columns.
type MoveTaskInput struct {
	TaskID string
	Status domain.Status // Target column
}

// MoveTaskOutput contains the task after the move.
type MoveTaskOutput struct {
	Task  *domain.Task
	Moved bool // False when the task was already in the target column
}

// MoveTask is a kanban drop: a generic status edit under the same rules as EditTask.
type MoveTask struct {
	tasks    domain.TaskRepository
	sessions domain.SessionStore
	logger   domain.Logger
	strict   bool
}

// NewMoveTask creates a new MoveTask use case.
func NewMoveTask(tasks domain.TaskRepository, sessions domain.SessionStore, strictStatusEdit bool, logger domain.Logger) *MoveTask {
	return &MoveTask{tasks: tasks, sessions: sessions, strict: strictStatusEdit, logger: logger}
}

// Execute moves the task to the target status.
func (uc *MoveTask) Execute(_ context.Context, in MoveTaskInput) (*MoveTaskOutput, error) {
	if !in.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	actor, err := shared.CurrentActor(uc.sessions)
	if err != nil {
		return nil, err
	}

	task, err := shared.GetTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}
	if task.Status == in.Status {
		return &MoveTaskOutput{Task: task, Moved: false}, nil
	}

	if err := shared.AuthorizeStatusEdit(task, actor, in.Status, uc.strict, uc.logger); err != nil {
		return nil, err
	}

	status := in.Status
	updated, err := uc.tasks.Update(task.ID, domain.TaskPatch{Status: &status})
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(task.ID, "board", fmt.Sprintf("moved by %s: %s -> %s", actor.Name, task.Status, updated.Status))
	}

	return &MoveTaskOutput{Task: updated, Moved: true}, nil
}
