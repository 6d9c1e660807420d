package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase/shared"
)

// LogTimeInput contains the parameters for logging time against a task.
type LogTimeInput struct {
	TaskID      string
	Description string
	Date        string // yyyy-mm-dd (empty = today)
	Hours       float64
}

// LogTimeOutput contains the updated task.
type LogTimeOutput struct {
	Task       *domain.Task
	Entry      domain.TimeEntry
	TotalHours float64
}

// LogTime is the use case for recording hours worked on a task.
type LogTime struct {
	tasks    domain.TaskRepository
	sessions domain.SessionStore
	clock    domain.Clock
	logger   domain.Logger
}

// NewLogTime creates a new LogTime use case.
func NewLogTime(tasks domain.TaskRepository, sessions domain.SessionStore, clock domain.Clock, logger domain.Logger) *LogTime {
	return &LogTime{tasks: tasks, sessions: sessions, clock: clock, logger: logger}
}

// Execute appends a time entry by the current user.
func (uc *LogTime) Execute(_ context.Context, in LogTimeInput) (*LogTimeOutput, error) {
	actor, err := shared.CurrentActor(uc.sessions)
	if err != nil {
		return nil, err
	}

	date := in.Date
	if date == "" {
		date = uc.clock.Now().Format(domain.DateLayout)
	}
	draft := domain.TimeEntryDraft{
		UserID:      actor.ID,
		UserName:    actor.Name,
		Description: in.Description,
		Date:        date,
		Hours:       in.Hours,
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	task, err := shared.GetVisibleTask(uc.tasks, actor, in.TaskID)
	if err != nil {
		return nil, err
	}
	if !domain.CanEdit(task, actor.Role, actor.ID) {
		return nil, fmt.Errorf("log time on task %s: %w", task.ID, domain.ErrUnauthorized)
	}

	updated, err := uc.tasks.AddTimeEntry(task.ID, draft)
	if err != nil {
		return nil, fmt.Errorf("add time entry: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(task.ID, "time", fmt.Sprintf("%s logged %sh on %s", actor.Name, domain.FormatHours(in.Hours), date))
	}

	return &LogTimeOutput{
		Task:       updated,
		Entry:      updated.TimeEntries[len(updated.TimeEntries)-1],
		TotalHours: domain.TotalHours(updated),
	}, nil
}
