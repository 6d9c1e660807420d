package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase/shared"
)

// TransitionTaskInput contains the parameters for a workflow action.
type TransitionTaskInput struct {
	TaskID string
	Action string // submit, approve, reopen or start
}

// TransitionTaskOutput contains the task after the transition.
type TransitionTaskOutput struct {
	Task *domain.Task
	From domain.Status
}

// TransitionTask runs a workflow action through the lifecycle rules.
// A refused action leaves the task unchanged.
type TransitionTask struct {
	tasks    domain.TaskRepository
	sessions domain.SessionStore
	clock    domain.Clock
	logger   domain.Logger
}

// NewTransitionTask creates a new TransitionTask use case.
func NewTransitionTask(tasks domain.TaskRepository, sessions domain.SessionStore, clock domain.Clock, logger domain.Logger) *TransitionTask {
	return &TransitionTask{tasks: tasks, sessions: sessions, clock: clock, logger: logger}
}

// Execute validates and applies the action.
func (uc *TransitionTask) Execute(_ context.Context, in TransitionTaskInput) (*TransitionTaskOutput, error) {
	action, err := domain.ParseAction(in.Action)
	if err != nil {
		return nil, err
	}

	actor, err := shared.CurrentActor(uc.sessions)
	if err != nil {
		return nil, err
	}

	task, err := shared.GetTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}

	if err := domain.CheckAction(task, actor.Role, actor.ID, action); err != nil {
		if uc.logger != nil {
			uc.logger.Debug(task.ID, "workflow", fmt.Sprintf("%s refused for %s: %v", action, actor.Name, err))
		}
		return nil, err
	}

	next := domain.ApplyTransition(task, action.Target(), uc.clock.Now())
	saved, err := uc.tasks.Replace(next)
	if err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(task.ID, "workflow", fmt.Sprintf("%s by %s: %s -> %s", action, actor.Name, task.Status, saved.Status))
	}

	return &TransitionTaskOutput{Task: saved, From: task.Status}, nil
}
