package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/testutil"
)

func TestNewTask_Execute_Success(t *testing.T) {
	// Setup
	repo := newTestRepo()
	sessions := sessionAs(manager)
	logger := &testutil.MockLogger{}
	uc := NewNewTask(repo, sessions, sessions, logger)
	due := time.Date(2025, 7, 1, 23, 59, 59, 0, time.UTC)
	estimate := 4.0

	// Execute
	out, err := uc.Execute(context.Background(), NewTaskInput{
		Title:          "Fix login redirect",
		Description:    "Users land on a blank page after login.",
		Priority:       domain.PriorityHigh,
		AssigneeID:     developer.ID,
		DueDate:        &due,
		EstimatedHours: &estimate,
		Tags:           []string{"auth"},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "1", out.Task.ID)
	assert.Equal(t, domain.StatusOpen, out.Task.Status)
	assert.Equal(t, domain.PriorityHigh, out.Task.Priority)
	assert.Equal(t, developer.ID, out.Task.AssigneeID)
	assert.Equal(t, manager.ID, out.Task.ReporterID)
	assert.Equal(t, testNow, out.Task.CreatedAt)
	assert.Empty(t, out.Task.TimeEntries)
	require.Len(t, repo.Tasks, 1)
	require.Len(t, logger.Entries, 1)
	assert.Equal(t, "1", logger.Entries[0].TaskID)
}

func TestNewTask_Execute_Defaults(t *testing.T) {
	// Setup
	repo := newTestRepo()
	sessions := sessionAs(developer)
	prefs := domain.DefaultUserSettings()
	prefs.DefaultPriority = domain.PriorityLow
	sessions.UserSettings = &prefs
	uc := NewNewTask(repo, sessions, sessions, nil)

	// Execute
	out, err := uc.Execute(context.Background(), NewTaskInput{
		Title:       "Write docs",
		Description: "Document the import format.",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityLow, out.Task.Priority)
	assert.Equal(t, developer.ID, out.Task.AssigneeID, "assignee defaults to the current user")
	assert.Equal(t, developer.ID, out.Task.ReporterID)
}

func TestNewTask_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      NewTaskInput
		wantErr error
	}{
		{"empty title", NewTaskInput{Title: "  ", Description: "d"}, domain.ErrEmptyTitle},
		{"empty description", NewTaskInput{Title: "t"}, domain.ErrEmptyDescription},
		{"invalid priority", NewTaskInput{Title: "t", Description: "d", Priority: "urgent"}, domain.ErrInvalidPriority},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepo()
			sessions := sessionAs(developer)
			uc := NewNewTask(repo, sessions, sessions, nil)

			_, err := uc.Execute(context.Background(), tt.in)

			require.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidationFailed)
			assert.Empty(t, repo.Tasks)
		})
	}
}

func TestNewTask_Execute_NotLoggedIn(t *testing.T) {
	repo := newTestRepo()
	sessions := &testutil.MockSessionStore{}
	uc := NewNewTask(repo, sessions, sessions, nil)

	_, err := uc.Execute(context.Background(), NewTaskInput{Title: "t", Description: "d"})

	assert.ErrorIs(t, err, domain.ErrNotLoggedIn)
	assert.Empty(t, repo.Tasks)
}

func TestNewTask_Execute_SaveError(t *testing.T) {
	repo := newTestRepo()
	repo.SaveErr = assert.AnError
	sessions := sessionAs(developer)
	uc := NewNewTask(repo, sessions, sessions, nil)

	_, err := uc.Execute(context.Background(), NewTaskInput{Title: "t", Description: "d"})

	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "create task")
}
