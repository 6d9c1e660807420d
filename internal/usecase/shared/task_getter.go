package shared

import (
	"fmt"

	"github.com/runoshun/bugtrack/internal/domain"
)

// GetTask retrieves a task by ID, wrapping repository errors.
// Missing tasks yield an error matching domain.ErrTaskNotFound.
func GetTask(repo domain.TaskRepository, taskID string) (*domain.Task, error) {
	task, err := repo.Get(taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

// GetVisibleTask retrieves a task the actor may see. Tasks outside the actor's
// scope are reported as domain.ErrTaskNotFound, the same as missing ones.
func GetVisibleTask(repo domain.TaskRepository, actor *domain.User, taskID string) (*domain.Task, error) {
	task, err := GetTask(repo, taskID)
	if err != nil {
		return nil, err
	}
	if !domain.CanView(task, actor.Role, actor.ID) {
		return nil, fmt.Errorf("get task: %w", domain.ErrTaskNotFound)
	}
	return task, nil
}
