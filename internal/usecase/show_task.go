package usecase

import (
	"context"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase/shared"
)

// ShowTaskInput contains the parameters for showing a task.
type ShowTaskInput struct {
	TaskID string
}

// ShowTaskOutput contains a task and what the current user may do with it.
type ShowTaskOutput struct {
	Task       *domain.Task
	Actions    []domain.Action // Guarded workflow actions offered to the user
	TotalHours float64
	CanEdit    bool
	Overdue    bool
}

// ShowTask is the use case for displaying task details.
type ShowTask struct {
	tasks    domain.TaskRepository
	sessions domain.SessionStore
	clock    domain.Clock
}

// NewShowTask creates a new ShowTask use case.
func NewShowTask(tasks domain.TaskRepository, sessions domain.SessionStore, clock domain.Clock) *ShowTask {
	return &ShowTask{tasks: tasks, sessions: sessions, clock: clock}
}

// Execute returns the task with derived fields for the current user.
func (uc *ShowTask) Execute(_ context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	actor, err := shared.CurrentActor(uc.sessions)
	if err != nil {
		return nil, err
	}

	task, err := shared.GetVisibleTask(uc.tasks, actor, in.TaskID)
	if err != nil {
		return nil, err
	}

	return &ShowTaskOutput{
		Task:       task,
		Actions:    domain.AvailableActions(task, actor.Role, actor.ID),
		CanEdit:    domain.CanEdit(task, actor.Role, actor.ID),
		TotalHours: domain.TotalHours(task),
		Overdue:    domain.IsOverdue(task, uc.clock.Now()),
	}, nil
}
