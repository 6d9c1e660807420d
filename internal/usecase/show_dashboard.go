package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase/shared"
)

// recentTaskCount is the number of tasks in the dashboard's recent list.
const recentTaskCount = 5

// ShowDashboardInput contains the parameters for the dashboard.
type ShowDashboardInput struct{}

// ShowDashboardOutput contains the dashboard figures for the current user's scope.
type ShowDashboardOutput struct {
	User     domain.User
	Recent   []*domain.Task
	Overdue  []*domain.Task
	Trend    []domain.TrendPoint
	Stats    domain.DashboardStats
	Approval int // Pending approvals across all tasks (managers only)
}

// ShowDashboard computes the dashboard counters, recent tasks and trend.
type ShowDashboard struct {
	tasks     domain.TaskRepository
	sessions  domain.SessionStore
	clock     domain.Clock
	trendDays int
}

// NewShowDashboard creates a new ShowDashboard use case.
func NewShowDashboard(tasks domain.TaskRepository, sessions domain.SessionStore, clock domain.Clock, trendDays int) *ShowDashboard {
	if trendDays <= 0 {
		trendDays = domain.DefaultTrendDays
	}
	return &ShowDashboard{tasks: tasks, sessions: sessions, clock: clock, trendDays: trendDays}
}

// Execute recomputes every figure from the current collection.
func (uc *ShowDashboard) Execute(_ context.Context, _ ShowDashboardInput) (*ShowDashboardOutput, error) {
	actor, err := shared.CurrentActor(uc.sessions)
	if err != nil {
		return nil, err
	}

	all, err := uc.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	scoped := domain.ScopeForUser(all, actor.Role, actor.ID)
	now := uc.clock.Now()

	var overdue []*domain.Task
	for _, t := range scoped {
		if domain.IsOverdue(t, now) {
			overdue = append(overdue, t)
		}
	}

	out := &ShowDashboardOutput{
		User:    *actor,
		Stats:   domain.ComputeStats(scoped),
		Recent:  domain.RecentTasks(scoped, recentTaskCount),
		Overdue: domain.SortTasks(overdue, domain.SortDueDate),
		Trend:   domain.TrendSeries(scoped, now, uc.trendDays),
	}
	if actor.IsManager() {
		out.Approval = len(domain.PendingApprovalTasks(all))
	}
	return out, nil
}
