package domain

import (
	"fmt"
	"time"
)

// Action is a guarded workflow step offered to a user.
type Action string

const (
	ActionSubmit  Action = "submit"  // developer: in-progress -> pending-approval
	ActionApprove Action = "approve" // manager: pending-approval -> closed
	ActionReopen  Action = "reopen"  // manager: pending-approval -> reopened

	// ActionStart is not guarded by CanTransition; see CanStart.
	ActionStart Action = "start" // assignee or manager: open/reopened -> in-progress
)

// AllActions returns every guarded action.
func AllActions() []Action {
	return []Action{ActionSubmit, ActionApprove, ActionReopen}
}

// Target returns the status the action moves a task to.
func (a Action) Target() Status {
	switch a {
	case ActionSubmit:
		return StatusPendingApproval
	case ActionApprove:
		return StatusClosed
	case ActionReopen:
		return StatusReopened
	case ActionStart:
		return StatusInProgress
	default:
		return ""
	}
}

// ParseAction converts user input into an Action.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if a.Target() == "" {
		return "", ErrInvalidAction
	}
	return a, nil
}

// CanTransition reports whether an actor may move the task to target through
// a guarded action. Rules are evaluated in order; the first match wins:
//
//  1. a developer who is the assignee may move in-progress -> pending-approval;
//  2. a manager may move pending-approval -> closed or pending-approval -> reopened;
//  3. anything else is refused.
func CanTransition(task *Task, role Role, actorID string, target Status) bool {
	if task == nil {
		return false
	}
	switch role {
	case RoleDeveloper:
		return task.IsAssignedTo(actorID) &&
			task.Status == StatusInProgress &&
			target == StatusPendingApproval
	case RoleManager:
		return task.Status == StatusPendingApproval &&
			(target == StatusClosed || target == StatusReopened)
	default:
		return false
	}
}

// CheckTransition is CanTransition returning an ErrUnauthorized-wrapped error on refusal.
func CheckTransition(task *Task, role Role, actorID string, target Status) error {
	if CanTransition(task, role, actorID, target) {
		return nil
	}
	from := Status("")
	if task != nil {
		from = task.Status
	}
	return fmt.Errorf("%s cannot move task from %s to %s: %w", role, from, target, ErrUnauthorized)
}

// ApplyTransition returns a copy of task with the new status and UpdatedAt set to now.
// It does not check authorization; callers run CheckTransition first.
func ApplyTransition(task *Task, target Status, now time.Time) *Task {
	next := task.Clone()
	next.Status = target
	next.UpdatedAt = now
	return next
}

// AvailableActions returns the guarded actions the actor is offered for the task.
func AvailableActions(task *Task, role Role, actorID string) []Action {
	var actions []Action
	for _, a := range AllActions() {
		if CanTransition(task, role, actorID, a.Target()) {
			actions = append(actions, a)
		}
	}
	return actions
}

// CanEdit reports whether the actor may edit, delete or log time on the task:
// managers and the task's assignee.
func CanEdit(task *Task, role Role, actorID string) bool {
	if task == nil {
		return false
	}
	return role == RoleManager || task.IsAssignedTo(actorID)
}

// CheckStatusEdit decides whether a generic edit (edit form, board move) may set
// the task's status to target.
//
// Generic edits are not mediated by the workflow: in permissive mode any manager or
// the assignee may set any status. In strict mode the edit must also be a guarded
// transition, or a start (open/reopened -> in-progress) by the assignee or a manager.
func CheckStatusEdit(task *Task, role Role, actorID string, target Status, strict bool) error {
	if !CanEdit(task, role, actorID) {
		return fmt.Errorf("cannot edit task: %w", ErrUnauthorized)
	}
	if task.Status == target || !strict {
		return nil
	}
	if IsStart(task.Status, target) {
		return nil
	}
	return CheckTransition(task, role, actorID, target)
}

// CanStart reports whether the actor may start work on the task.
func CanStart(task *Task, role Role, actorID string) bool {
	return CanEdit(task, role, actorID) && IsStart(task.Status, StatusInProgress)
}

// CheckAction authorizes a workflow action: start through CanStart, the rest
// through CheckTransition.
func CheckAction(task *Task, role Role, actorID string, action Action) error {
	if action == ActionStart {
		if CanStart(task, role, actorID) {
			return nil
		}
		from := Status("")
		if task != nil {
			from = task.Status
		}
		return fmt.Errorf("%s cannot start task in status %s: %w", role, from, ErrUnauthorized)
	}
	return CheckTransition(task, role, actorID, action.Target())
}

// IsStart reports whether from -> target is the unguarded start of work.
func IsStart(from, target Status) bool {
	return target == StatusInProgress && (from == StatusOpen || from == StatusReopened)
}

// IsWorkflowBypass reports whether a generic status edit skips the guarded workflow.
func IsWorkflowBypass(task *Task, role Role, actorID string, target Status) bool {
	if task.Status == target || IsStart(task.Status, target) {
		return false
	}
	return !CanTransition(task, role, actorID, target)
}
