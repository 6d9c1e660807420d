package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/bugtrack/internal/domain"
)

func TestListApprovals_Execute(t *testing.T) {
	// Setup
	older := fixtureTask("1", developer, domain.StatusPendingApproval)
	newer := fixtureTask("2", otherDev, domain.StatusPendingApproval)
	newer.UpdatedAt = older.UpdatedAt.Add(time.Hour)
	open := fixtureTask("3", developer, domain.StatusOpen)
	uc := NewListApprovals(newTestRepo(older, newer, open), sessionAs(manager))

	// Execute
	out, err := uc.Execute(context.Background(), ListApprovalsInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1"}, ids(out.Tasks))
}

func TestListApprovals_Execute_DeveloperRefused(t *testing.T) {
	uc := NewListApprovals(newTestRepo(fixtureTask("1", developer, domain.StatusPendingApproval)), sessionAs(developer))

	_, err := uc.Execute(context.Background(), ListApprovalsInput{})

	require.ErrorIs(t, err, domain.ErrManagerOnly)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
