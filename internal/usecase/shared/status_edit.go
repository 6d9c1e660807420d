package shared

import (
	"fmt"

	"github.com/runoshun/bugtrack/internal/domain"
)

// AuthorizeStatusEdit checks a generic status edit (edit form, board move) and
// logs a warning when the edit skips the guarded workflow.
func AuthorizeStatusEdit(task *domain.Task, actor *domain.User, target domain.Status, strict bool, logger domain.Logger) error {
	if err := domain.CheckStatusEdit(task, actor.Role, actor.ID, target, strict); err != nil {
		return err
	}
	if logger != nil && domain.IsWorkflowBypass(task, actor.Role, actor.ID, target) {
		logger.Warn(task.ID, "workflow", fmt.Sprintf("%s set status %s -> %s outside the approval workflow",
			actor.Name, task.Status, target))
	}
	return nil
}
