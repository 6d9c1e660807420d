package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/testutil"
)

func TestLogTime_Execute_Success(t *testing.T) {
	// Setup
	task := fixtureTask("1", developer, domain.StatusInProgress)
	task.TimeEntries = []domain.TimeEntry{{ID: "e1", TaskID: "1", Hours: 2}}
	repo := newTestRepo(task)
	logger := &testutil.MockLogger{}
	uc := NewLogTime(repo, sessionAs(developer), &testutil.MockClock{NowTime: testNow}, logger)

	// Execute
	out, err := uc.Execute(context.Background(), LogTimeInput{
		TaskID:      "1",
		Hours:       1.5,
		Description: "Reproduced the crash",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", out.Entry.Date, "date defaults to today")
	assert.Equal(t, developer.ID, out.Entry.UserID)
	assert.Equal(t, developer.Name, out.Entry.UserName)
	assert.InDelta(t, 3.5, out.TotalHours, 1e-9)
	assert.Len(t, out.Task.TimeEntries, 2)
	require.Len(t, logger.Entries, 1)
	assert.Equal(t, "Yuvraj Singh logged 1.5h on 2025-06-10", logger.Entries[0].Msg)
}

func TestLogTime_Execute_ManagerOnAnyTask(t *testing.T) {
	repo := newTestRepo(fixtureTask("1", otherDev, domain.StatusOpen))
	uc := NewLogTime(repo, sessionAs(manager), &testutil.MockClock{NowTime: testNow}, nil)

	out, err := uc.Execute(context.Background(), LogTimeInput{TaskID: "1", Hours: 1, Date: "2025-06-01"})

	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", out.Entry.Date)
	assert.Equal(t, manager.ID, out.Entry.UserID)
}

func TestLogTime_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		actor   domain.User
		in      LogTimeInput
		wantErr error
	}{
		{"zero hours", developer, LogTimeInput{TaskID: "1", Hours: 0}, domain.ErrInvalidHours},
		{"negative hours", developer, LogTimeInput{TaskID: "1", Hours: -1}, domain.ErrInvalidHours},
		{"bad date", developer, LogTimeInput{TaskID: "1", Hours: 1, Date: "06/01/2025"}, domain.ErrInvalidDate},
		{"other developer's task", otherDev, LogTimeInput{TaskID: "1", Hours: 1}, domain.ErrTaskNotFound},
		{"not found", manager, LogTimeInput{TaskID: "2", Hours: 1}, domain.ErrTaskNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepo(fixtureTask("1", developer, domain.StatusOpen))
			uc := NewLogTime(repo, sessionAs(tt.actor), &testutil.MockClock{NowTime: testNow}, nil)

			_, err := uc.Execute(context.Background(), tt.in)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.Tasks[0].TimeEntries)
		})
	}
}
