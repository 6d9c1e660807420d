package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/bugtrack/internal/domain"
)

// ExportTasksInput contains the parameters for exporting the task list.
type ExportTasksInput struct {
	Filter domain.TaskFilter
	Format string // csv or json
	SortBy string
}

// ExportTasksOutput contains the rendered export.
type ExportTasksOutput struct {
	FileName string
	Content  string
	Count    int
}

// ExportTasks renders the current user's filtered view as CSV or JSON.
type ExportTasks struct {
	tasks    domain.TaskRepository
	sessions domain.SessionStore
	clock    domain.Clock
}

// NewExportTasks creates a new ExportTasks use case.
func NewExportTasks(tasks domain.TaskRepository, sessions domain.SessionStore, clock domain.Clock) *ExportTasks {
	return &ExportTasks{tasks: tasks, sessions: sessions, clock: clock}
}

// Execute exports exactly the tasks the list view would show.
func (uc *ExportTasks) Execute(ctx context.Context, in ExportTasksInput) (*ExportTasksOutput, error) {
	format, err := domain.ParseExportFormat(in.Format)
	if err != nil {
		return nil, err
	}

	list, err := NewListTasks(uc.tasks, uc.sessions).Execute(ctx, ListTasksInput{
		Filter: in.Filter,
		SortBy: in.SortBy,
	})
	if err != nil {
		return nil, err
	}

	var content string
	switch format {
	case domain.ExportCSV:
		content = domain.FormatCSV(list.Tasks)
	case domain.ExportJSON:
		content, err = domain.FormatJSON(list.Tasks)
		if err != nil {
			return nil, fmt.Errorf("encode tasks: %w", err)
		}
	}

	return &ExportTasksOutput{
		FileName: domain.ExportFileName("tasks-export", format, uc.clock.Now()),
		Content:  content,
		Count:    len(list.Tasks),
	}, nil
}
