package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalHours(t *testing.T) {
	task := &Task{}
	assert.Equal(t, 0.0, TotalHours(task))

	prev := 0.0
	for _, h := range []float64{2.5, 0.25, 1, 0.1} {
		task.TimeEntries = append(task.TimeEntries, TimeEntry{Hours: h})
		got := TotalHours(task)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}

	var want float64
	for _, e := range task.TimeEntries {
		want += e.Hours
	}
	assert.Equal(t, want, TotalHours(task))
}

func TestComputeStats(t *testing.T) {
	tasks := []*Task{
		{ID: "1", Status: StatusOpen, TimeEntries: []TimeEntry{{Hours: 2}, {Hours: 0.5}}},
		{ID: "2", Status: StatusClosed},
	}

	got := ComputeStats(tasks)

	assert.Equal(t, DashboardStats{
		TotalTasks:           2,
		OpenTasks:            1,
		ClosedTasks:          1,
		InProgressTasks:      0,
		PendingApprovalTasks: 0,
		TotalTimeLogged:      2.5,
	}, got)
}

func TestComputeStats_RecomputesEachCall(t *testing.T) {
	tasks := []*Task{{ID: "1", Status: StatusInProgress}}
	assert.Equal(t, 1, ComputeStats(tasks).InProgressTasks)

	tasks[0].Status = StatusPendingApproval
	tasks = append(tasks, &Task{ID: "2", Status: StatusReopened})
	stats := ComputeStats(tasks)
	assert.Equal(t, 0, stats.InProgressTasks)
	assert.Equal(t, 1, stats.PendingApprovalTasks)
	assert.Equal(t, 2, stats.TotalTasks)
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.False(t, IsOverdue(&Task{Status: StatusClosed, DueDate: &past}, now))
	assert.True(t, IsOverdue(&Task{Status: StatusOpen, DueDate: &past}, now))
	assert.False(t, IsOverdue(&Task{Status: StatusOpen, DueDate: &future}, now))
	assert.False(t, IsOverdue(&Task{Status: StatusOpen}, now))
	assert.False(t, IsOverdue(&Task{Status: StatusOpen, DueDate: &now}, now))
}

func TestTrendSeries(t *testing.T) {
	now := time.Date(2025, 6, 7, 15, 0, 0, 0, time.UTC)
	tasks := []*Task{
		{ID: "1", UpdatedAt: now, TimeEntries: []TimeEntry{{Date: "2025-06-07", Hours: 1.5}, {Date: "2025-06-01", Hours: 2}}},
		{ID: "2", UpdatedAt: now.AddDate(0, 0, -2), TimeEntries: []TimeEntry{{Date: "2025-05-31", Hours: 4}}},
		{ID: "3", UpdatedAt: now.AddDate(0, 0, -30)},
	}

	points := TrendSeries(tasks, now, 7)

	require.Len(t, points, 7)
	assert.Equal(t, "2025-06-01", points[0].Date)
	assert.Equal(t, "2025-06-07", points[6].Date)
	assert.Equal(t, 2.0, points[0].TimeLogged)
	assert.Equal(t, 1, points[4].Tasks)
	assert.Equal(t, 1, points[6].Tasks)
	assert.Equal(t, 1.5, points[6].TimeLogged)

	var total int
	for _, p := range points {
		total += p.Tasks
	}
	assert.Equal(t, 2, total)
	assert.Nil(t, TrendSeries(tasks, now, 0))
}
