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

func listFixture() []*domain.Task {
	a := fixtureTask("1", developer, domain.StatusOpen)
	a.Title = "Login page crash"
	a.Priority = domain.PriorityCritical
	a.UpdatedAt = testNow.Add(-3 * time.Hour)

	b := fixtureTask("2", otherDev, domain.StatusInProgress)
	b.Title = "Slow dashboard"
	b.Tags = []string{"performance"}
	b.UpdatedAt = testNow.Add(-1 * time.Hour)

	c := fixtureTask("3", developer, domain.StatusPendingApproval)
	c.Title = "Export to CSV"
	c.Priority = domain.PriorityLow
	c.UpdatedAt = testNow.Add(-2 * time.Hour)
	return []*domain.Task{a, b, c}
}

func ids(tasks []*domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestListTasks_Execute(t *testing.T) {
	tests := []struct {
		name      string
		actor     domain.User
		in        ListTasksInput
		wantIDs   []string
		wantTotal int
	}{
		{"manager sees all by update", manager, ListTasksInput{}, []string{"2", "3", "1"}, 3},
		{"developer sees own", developer, ListTasksInput{}, []string{"3", "1"}, 2},
		{"other developer", otherDev, ListTasksInput{}, []string{"2"}, 1},
		{"status filter", manager, ListTasksInput{Filter: domain.TaskFilter{Status: "open"}}, []string{"1"}, 3},
		{"status all", manager, ListTasksInput{Filter: domain.TaskFilter{Status: "all"}}, []string{"2", "3", "1"}, 3},
		{"search tag", manager, ListTasksInput{Filter: domain.TaskFilter{Search: "PERF"}}, []string{"2"}, 3},
		{"assignee filter", manager, ListTasksInput{Filter: domain.TaskFilter{AssigneeID: "1"}}, []string{"3", "1"}, 3},
		{"developer cannot widen scope", developer, ListTasksInput{Filter: domain.TaskFilter{AssigneeID: "3"}}, []string{}, 2},
		{"priority sort", manager, ListTasksInput{SortBy: "priority"}, []string{"1", "2", "3"}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			uc := NewListTasks(newTestRepo(listFixture()...), sessionAs(tt.actor))

			// Execute
			out, err := uc.Execute(context.Background(), tt.in)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, ids(out.Tasks))
			assert.Equal(t, tt.wantTotal, out.Total)
		})
	}
}

func TestListTasks_Execute_InvalidSort(t *testing.T) {
	uc := NewListTasks(newTestRepo(), sessionAs(manager))

	_, err := uc.Execute(context.Background(), ListTasksInput{SortBy: "title"})

	assert.ErrorIs(t, err, domain.ErrInvalidSortKey)
}

func TestListTasks_Execute_Errors(t *testing.T) {
	repo := newTestRepo()
	repo.ListErr = assert.AnError

	_, err := NewListTasks(repo, sessionAs(manager)).Execute(context.Background(), ListTasksInput{})
	assert.ErrorIs(t, err, assert.AnError)

	_, err = NewListTasks(newTestRepo(), &testutil.MockSessionStore{}).Execute(context.Background(), ListTasksInput{})
	assert.ErrorIs(t, err, domain.ErrNotLoggedIn)
}
