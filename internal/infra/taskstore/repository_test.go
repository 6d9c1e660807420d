package taskstore

import (
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/infra/gateway"
	"github.com/runoshun/bugtrack/internal/infra/memstore"
	"github.com/runoshun/bugtrack/internal/testutil"
)

var baseTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T, tasks ...*domain.Task) (*Repository, *testutil.MockTaskGateway, *testutil.MockClock) {
	t.Helper()
	gw := &testutil.MockTaskGateway{Tasks: tasks}
	if tasks == nil {
		gw.Tasks = []*domain.Task{}
	}
	clock := &testutil.MockClock{NowTime: baseTime}
	repo := New(gw, domain.NewStaticDirectory(domain.SeedUsers()), &testutil.MockIDGenerator{Prefix: "t"}, clock)
	return repo, gw, clock
}

func validDraft() domain.TaskDraft {
	return domain.TaskDraft{
		Title:       "Broken link",
		Description: "Footer link 404s",
		AssigneeID:  "3",
		ReporterID:  "2",
	}
}

func TestRepository_LoadsSeedFromGateway(t *testing.T) {
	repo := New(gateway.New(memstore.New()), domain.NewStaticDirectory(domain.SeedUsers()),
		&testutil.MockIDGenerator{}, &testutil.MockClock{NowTime: baseTime})

	tasks, err := repo.List()
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Fix login authentication bug", tasks[0].Title)
}

func TestRepository_Create(t *testing.T) {
	repo, gw, _ := newTestRepo(t)

	task, err := repo.Create(validDraft())
	require.NoError(t, err)

	assert.Equal(t, "t1", task.ID)
	assert.Equal(t, domain.StatusOpen, task.Status)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Equal(t, "Aman Kumar", task.AssigneeName)
	assert.Equal(t, "Suraj Shikhar", task.ReporterName)
	assert.Equal(t, baseTime, task.CreatedAt)
	assert.Equal(t, baseTime, task.UpdatedAt)
	assert.NotNil(t, task.TimeEntries)
	assert.Empty(t, task.TimeEntries)

	require.Len(t, gw.Tasks, 1, "create persists before returning")
	assert.Equal(t, "t1", gw.Tasks[0].ID)
}

func TestRepository_Create_Validation(t *testing.T) {
	repo, gw, _ := newTestRepo(t)

	tests := []struct {
		name   string
		mutate func(*domain.TaskDraft)
		want   error
	}{
		{"empty title", func(d *domain.TaskDraft) { d.Title = "" }, domain.ErrEmptyTitle},
		{"unknown assignee", func(d *domain.TaskDraft) { d.AssigneeID = "99" }, domain.ErrUnknownAssignee},
		{"unknown reporter", func(d *domain.TaskDraft) { d.ReporterID = "99" }, domain.ErrUnknownReporter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			_, err := repo.Create(d)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrValidationFailed)
		})
	}
	assert.Zero(t, gw.SaveCalls)
}

func TestRepository_Create_RetriesCollidingID(t *testing.T) {
	repo, _, _ := newTestRepo(t, &domain.Task{ID: "dup"})
	repo.ids = &testutil.MockIDGenerator{Next: []string{"dup", "fresh"}}

	task, err := repo.Create(validDraft())
	require.NoError(t, err)
	assert.Equal(t, "fresh", task.ID)
}

func TestRepository_Get_ReturnsCopy(t *testing.T) {
	repo, _, _ := newTestRepo(t, &domain.Task{ID: "1", Title: "orig", Tags: []string{"a"}})

	got, err := repo.Get("1")
	require.NoError(t, err)
	got.Title = "mutated"
	got.Tags[0] = "z"

	again, err := repo.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "orig", again.Title)
	assert.Equal(t, "a", again.Tags[0])

	_, err = repo.Get("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_Update(t *testing.T) {
	repo, gw, clock := newTestRepo(t, &domain.Task{ID: "1", Title: "old", AssigneeID: "1", UpdatedAt: baseTime})
	clock.Advance(time.Minute)

	title := "new"
	assignee := "3"
	task, err := repo.Update("1", domain.TaskPatch{Title: &title, AssigneeID: &assignee})
	require.NoError(t, err)

	assert.Equal(t, "new", task.Title)
	assert.Equal(t, "3", task.AssigneeID)
	assert.Equal(t, "Aman Kumar", task.AssigneeName)
	assert.Equal(t, baseTime.Add(time.Minute), task.UpdatedAt)
	assert.Equal(t, "new", gw.Tasks[0].Title)
}

func TestRepository_Update_UpdatedAtStrictlyIncreases(t *testing.T) {
	repo, _, _ := newTestRepo(t, &domain.Task{ID: "1", Title: "a", UpdatedAt: baseTime})

	prev := baseTime
	for _, title := range []string{"b", "c", "d"} {
		task, err := repo.Update("1", domain.TaskPatch{Title: &title})
		require.NoError(t, err)
		assert.True(t, task.UpdatedAt.After(prev), "updatedAt %v not after %v", task.UpdatedAt, prev)
		prev = task.UpdatedAt
	}
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, gw, _ := newTestRepo(t)

	title := "x"
	_, err := repo.Update("nope", domain.TaskPatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Zero(t, gw.SaveCalls)
}

func TestRepository_Update_UnknownAssignee(t *testing.T) {
	repo, _, _ := newTestRepo(t, &domain.Task{ID: "1", Title: "a"})

	ghost := "42"
	_, err := repo.Update("1", domain.TaskPatch{AssigneeID: &ghost})
	assert.ErrorIs(t, err, domain.ErrUnknownAssignee)
}

func TestRepository_Replace(t *testing.T) {
	repo, _, _ := newTestRepo(t, &domain.Task{ID: "1", Status: domain.StatusInProgress, UpdatedAt: baseTime})

	next := &domain.Task{ID: "1", Status: domain.StatusPendingApproval, UpdatedAt: baseTime.Add(-time.Hour)}
	task, err := repo.Replace(next)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingApproval, task.Status)
	assert.Equal(t, baseTime.Add(time.Nanosecond), task.UpdatedAt)

	_, err = repo.Replace(&domain.Task{ID: "ghost"})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, gw, _ := newTestRepo(t, &domain.Task{ID: "1"}, &domain.Task{ID: "2"})

	require.NoError(t, repo.Delete("1"))
	tasks, err := repo.List()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "2", tasks[0].ID)
	assert.Equal(t, 1, gw.SaveCalls)

	// Missing IDs are a no-op without a write
	require.NoError(t, repo.Delete("1"))
	assert.Equal(t, 1, gw.SaveCalls)

	require.NoError(t, repo.Delete("2"))
	assert.NotNil(t, gw.Tasks)
	assert.Empty(t, gw.Tasks)
}

func TestRepository_AddTimeEntry(t *testing.T) {
	repo, _, clock := newTestRepo(t, &domain.Task{ID: "1", UpdatedAt: baseTime, TimeEntries: []domain.TimeEntry{}})
	clock.Advance(time.Hour)

	task, err := repo.AddTimeEntry("1", domain.TimeEntryDraft{
		UserID: "1", UserName: "Yuvraj Singh", Hours: 1.5, Date: "2025-06-01", Description: "debugging",
	})
	require.NoError(t, err)

	require.Len(t, task.TimeEntries, 1)
	e := task.TimeEntries[0]
	assert.Equal(t, "t1", e.ID)
	assert.Equal(t, "1", e.TaskID)
	assert.Equal(t, 1.5, e.Hours)
	assert.Equal(t, clock.NowTime, e.CreatedAt)
	assert.Equal(t, clock.NowTime, task.UpdatedAt)
	assert.Equal(t, 1.5, domain.TotalHours(task))
}

func TestRepository_AddTimeEntry_Invalid(t *testing.T) {
	repo, gw, _ := newTestRepo(t, &domain.Task{ID: "1"})

	_, err := repo.AddTimeEntry("1", domain.TimeEntryDraft{Hours: 0, Date: "2025-06-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidHours)

	_, err = repo.AddTimeEntry("nope", domain.TimeEntryDraft{Hours: 1, Date: "2025-06-01"})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Zero(t, gw.SaveCalls)
}

func TestRepository_PersistFailureLeavesCollectionUnchanged(t *testing.T) {
	repo, gw, _ := newTestRepo(t, &domain.Task{ID: "1", Title: "keep"})
	gw.SaveErr = errors.New("disk full")

	title := "lost"
	_, err := repo.Update("1", domain.TaskPatch{Title: &title})
	require.Error(t, err)
	_, err = repo.Create(validDraft())
	require.Error(t, err)
	require.Error(t, repo.Delete("1"))

	tasks, err := repo.List()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "keep", tasks[0].Title)
}

func TestRepository_LoadError(t *testing.T) {
	gw := &testutil.MockTaskGateway{LoadErr: errors.New("corrupt")}
	repo := New(gw, domain.NewStaticDirectory(domain.SeedUsers()), &testutil.MockIDGenerator{}, &testutil.MockClock{})

	_, err := repo.List()
	assert.ErrorContains(t, err, "load tasks")
}

func TestRepository_Subscribe(t *testing.T) {
	repo, gw, _ := newTestRepo(t, &domain.Task{ID: "1"})

	calls := 0
	unsubscribe := repo.Subscribe(func() {
		// Subscribers may read the repository
		_, err := repo.List()
		assert.NoError(t, err)
		calls++
	})

	_, err := repo.Create(validDraft())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	gw.SaveErr = errors.New("fail")
	_, _ = repo.Create(validDraft())
	assert.Equal(t, 1, calls, "failed mutations do not notify")

	gw.SaveErr = nil
	unsubscribe()
	require.NoError(t, repo.Delete("1"))
	assert.Equal(t, 1, calls)
}

func TestRepository_Reload(t *testing.T) {
	repo, gw, _ := newTestRepo(t, &domain.Task{ID: "1"})

	_, err := repo.List()
	require.NoError(t, err)

	gw.Tasks = append(gw.Tasks, &domain.Task{ID: "2"})
	repo.Reload()

	tasks, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestRepository_ConcurrentMutations(t *testing.T) {
	kv := memstore.New()
	repo := New(gateway.New(kv), domain.NewStaticDirectory(domain.SeedUsers()),
		&syncIDs{}, domain.RealClock{})

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(validDraft())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	reloaded := New(gateway.New(kv), domain.NewStaticDirectory(domain.SeedUsers()), &syncIDs{}, domain.RealClock{})
	tasks, err := reloaded.List()
	require.NoError(t, err)
	assert.Len(t, tasks, 22)
}

// syncIDs is a goroutine-safe sequential generator.
type syncIDs struct {
	mu sync.Mutex
	n  int
}

func (g *syncIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return "c" + strconv.Itoa(g.n)
}
