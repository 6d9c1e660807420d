package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase/shared"
)

// ImportTasksInput contains the parameters for importing tasks from a YAML file.
type ImportTasksInput struct {
	Content []byte // YAML file content
	DryRun  bool   // If true, parse and validate without creating tasks
}

// ImportTasksOutput contains the created (or validated) tasks.
type ImportTasksOutput struct {
	Tasks  []*domain.Task // Created tasks; nil in dry-run mode
	Drafts []domain.TaskDraft
}

// ImportTasks creates tasks in bulk. The current user is the reporter of each.
type ImportTasks struct {
	tasks    domain.TaskRepository
	users    domain.UserDirectory
	sessions domain.SessionStore
	settings domain.SettingsStore
	logger   domain.Logger
}

// NewImportTasks creates a new ImportTasks use case.
func NewImportTasks(
	tasks domain.TaskRepository,
	users domain.UserDirectory,
	sessions domain.SessionStore,
	settings domain.SettingsStore,
	logger domain.Logger,
) *ImportTasks {
	return &ImportTasks{
		tasks:    tasks,
		users:    users,
		sessions: sessions,
		settings: settings,
		logger:   logger,
	}
}

// Execute validates every task before creating any of them.
func (uc *ImportTasks) Execute(_ context.Context, in ImportTasksInput) (*ImportTasksOutput, error) {
	actor, err := shared.CurrentActor(uc.sessions)
	if err != nil {
		return nil, err
	}

	imported, err := domain.ParseImportFile(in.Content)
	if err != nil {
		return nil, err
	}

	prefs, err := uc.settings.LoadUserSettings()
	if err != nil {
		return nil, fmt.Errorf("load user settings: %w", err)
	}

	drafts := make([]domain.TaskDraft, 0, len(imported))
	for i, it := range imported {
		draft, err := it.ToDraft(uc.users, actor.ID, prefs.DefaultPriority)
		if err == nil {
			err = draft.Validate()
		}
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		drafts = append(drafts, draft)
	}

	out := &ImportTasksOutput{Drafts: drafts}
	if in.DryRun {
		return out, nil
	}

	for _, draft := range drafts {
		task, err := uc.tasks.Create(draft)
		if err != nil {
			return out, fmt.Errorf("create task %q: %w", draft.Title, err)
		}
		out.Tasks = append(out.Tasks, task)
	}

	if uc.logger != nil {
		uc.logger.Info("", "task", fmt.Sprintf("%s imported %d tasks", actor.Name, len(out.Tasks)))
	}
	return out, nil
}
