package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase/shared"
)

// ListApprovalsInput contains the parameters for listing pending approvals.
type ListApprovalsInput struct{}

// ListApprovalsOutput contains the tasks awaiting approval.
type ListApprovalsOutput struct {
	Tasks []*domain.Task
}

// ListApprovals is the manager's approval queue.
type ListApprovals struct {
	tasks    domain.TaskRepository
	sessions domain.SessionStore
}

// NewListApprovals creates a new ListApprovals use case.
func NewListApprovals(tasks domain.TaskRepository, sessions domain.SessionStore) *ListApprovals {
	return &ListApprovals{tasks: tasks, sessions: sessions}
}

// Execute returns pending-approval tasks, most recently updated first.
// Only managers may call it.
func (uc *ListApprovals) Execute(_ context.Context, _ ListApprovalsInput) (*ListApprovalsOutput, error) {
	if _, err := shared.RequireManager(uc.sessions); err != nil {
		return nil, err
	}

	all, err := uc.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	pending := domain.SortTasks(domain.PendingApprovalTasks(all), domain.SortUpdated)
	return &ListApprovalsOutput{Tasks: pending}, nil
}
