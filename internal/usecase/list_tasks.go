package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase/shared"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Filter domain.TaskFilter
	SortBy string // updated (default), created, priority, dueDate
}

// ListTasksOutput contains the visible tasks.
type ListTasksOutput struct {
	Tasks []*domain.Task
	Total int // Number of tasks in the user's scope before filtering
}

// ListTasks is the use case for listing the current user's tasks.
type ListTasks struct {
	tasks    domain.TaskRepository
	sessions domain.SessionStore
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks domain.TaskRepository, sessions domain.SessionStore) *ListTasks {
	return &ListTasks{tasks: tasks, sessions: sessions}
}

// Execute scopes, filters and sorts the task collection.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	actor, err := shared.CurrentActor(uc.sessions)
	if err != nil {
		return nil, err
	}

	key, err := domain.ParseSortKey(in.SortBy)
	if err != nil {
		return nil, err
	}

	all, err := uc.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	scoped := domain.ScopeForUser(all, actor.Role, actor.ID)
	visible := domain.SortTasks(domain.FilterTasks(scoped, in.Filter), key)

	return &ListTasksOutput{Tasks: visible, Total: len(scoped)}, nil
}
