package tui

import "github.com/runoshun/bugtrack/internal/domain"

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgTasksLoaded is sent when the board's tasks are loaded.
type MsgTasksLoaded struct {
	User  domain.User
	Tasks []*domain.Task
}

func (MsgTasksLoaded) sealed() {}

// MsgTaskMoved is sent after a card is moved to another column.
type MsgTaskMoved struct {
	TaskID string
	Status domain.Status
	Moved  bool
}

func (MsgTaskMoved) sealed() {}

// MsgTaskTransitioned is sent after a workflow action succeeds.
type MsgTaskTransitioned struct {
	TaskID string
	Action domain.Action
	Status domain.Status
}

func (MsgTaskTransitioned) sealed() {}

// MsgTaskCreated is sent after the new task form is saved.
type MsgTaskCreated struct {
	Task *domain.Task
}

func (MsgTaskCreated) sealed() {}

// MsgTimeLogged is sent after a time entry is recorded.
type MsgTimeLogged struct {
	TaskID string
	Hours  float64
	Total  float64
}

func (MsgTimeLogged) sealed() {}

// MsgTaskDeleted is sent when a task is deleted.
type MsgTaskDeleted struct {
	TaskID string
}

func (MsgTaskDeleted) sealed() {}

// MsgError is sent when an operation fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}
