package usecase

import (
	"time"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/testutil"
)

var (
	testNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	developer = domain.User{ID: "1", Email: "yuvi@company.com", Name: "Yuvraj Singh", Role: domain.RoleDeveloper}
	manager   = domain.User{ID: "2", Email: "suraj@company.com", Name: "Suraj Shikhar", Role: domain.RoleManager}
	otherDev  = domain.User{ID: "3", Email: "aman@company.com", Name: "Aman Kumar", Role: domain.RoleDeveloper}
)

// sessionAs returns a session store with user logged in.
func sessionAs(user domain.User) *testutil.MockSessionStore {
	return &testutil.MockSessionStore{User: &user}
}

// fixtureTask returns a task assigned to assignee with the given status.
func fixtureTask(id string, assignee domain.User, status domain.Status) *domain.Task {
	created := testNow.Add(-48 * time.Hour)
	return &domain.Task{
		ID:           id,
		Title:        "Task " + id,
		Description:  "Description " + id,
		Priority:     domain.PriorityMedium,
		Status:       status,
		AssigneeID:   assignee.ID,
		AssigneeName: assignee.Name,
		ReporterID:   manager.ID,
		ReporterName: manager.Name,
		CreatedAt:    created,
		UpdatedAt:    created,
		Tags:         []string{},
		TimeEntries:  []domain.TimeEntry{},
	}
}

func newTestRepo(tasks ...*domain.Task) *testutil.MockTaskRepository {
	repo := testutil.NewMockTaskRepository(tasks...)
	repo.Clock = &testutil.MockClock{NowTime: testNow}
	return repo
}
