package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/bugtrack/internal/app"
	"github.com/runoshun/bugtrack/internal/domain"
)

// loginAs switches the session of c to the given seed user.
func loginAs(t *testing.T, c *app.Container, userID string) {
	t.Helper()
	user, ok := c.Users.FindByID(userID)
	require.True(t, ok)
	require.NoError(t, c.Sessions.SetCurrentUser(user))
}

func TestTransitionCommands_ApprovalFlow(t *testing.T) {
	// Setup
	c := newTestContainer(t, yuvi)

	// Execute: developer submits
	out, err := runCommand(newTransitionCommand(c, "submit", "Submit"), "1")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Task 1: in-progress -> pending-approval")

	// Execute: developer cannot approve
	_, err = runCommand(newTransitionCommand(c, "approve", "Approve"), "1")

	// Assert
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Execute: manager reopens, developer restarts
	loginAs(t, c, suraj)
	out, err = runCommand(newTransitionCommand(c, "reopen", "Reopen"), "1")
	require.NoError(t, err)
	assert.Contains(t, out, "pending-approval -> reopened")

	loginAs(t, c, yuvi)
	out, err = runCommand(newTransitionCommand(c, "start", "Start"), "1")
	require.NoError(t, err)
	assert.Contains(t, out, "reopened -> in-progress")
}

func TestTransitionCommand_Refused(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		action string
		taskID string
	}{
		{name: "submit open task", userID: aman, action: "submit", taskID: "2"},
		{name: "submit someone else's task", userID: aman, action: "submit", taskID: "1"},
		{name: "manager approves in-progress task", userID: suraj, action: "approve", taskID: "1"},
		{name: "start in-progress task", userID: yuvi, action: "start", taskID: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			c := newTestContainer(t, tt.userID)
			before, err := c.Tasks.Get(tt.taskID)
			require.NoError(t, err)

			// Execute
			_, err = runCommand(newTransitionCommand(c, tt.action, tt.action), tt.taskID)

			// Assert
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
			after, err := c.Tasks.Get(tt.taskID)
			require.NoError(t, err)
			assert.Equal(t, before.Status, after.Status)
			assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
		})
	}
}

func TestNewMoveCommand(t *testing.T) {
	// Setup
	c := newTestContainer(t, aman)

	// Execute
	out, err := runCommand(newMoveCommand(c), "2", "pending-approval")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Moved task 2 to pending-approval")

	// Execute: same column
	out, err = runCommand(newMoveCommand(c), "2", "pending-approval")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "already pending-approval")
}

func TestNewMoveCommand_Invalid(t *testing.T) {
	// Setup
	c := newTestContainer(t, aman)

	// Execute: bad status
	_, err := runCommand(newMoveCommand(c), "2", "done")

	// Assert
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	// Execute: not the assignee
	_, err = runCommand(newMoveCommand(c), "1", "closed")

	// Assert
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestNewApprovalsCommand(t *testing.T) {
	// Setup
	c := newTestContainer(t, yuvi)
	_, err := runCommand(newTransitionCommand(c, "submit", "Submit"), "1")
	require.NoError(t, err)

	// Execute: developer is refused
	_, err = runCommand(newApprovalsCommand(c))

	// Assert
	assert.ErrorIs(t, err, domain.ErrManagerOnly)

	// Execute: manager
	loginAs(t, c, suraj)
	out, err := runCommand(newApprovalsCommand(c))

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Fix login authentication bug")
	assert.NotContains(t, out, "Implement dark mode toggle")
}

func TestNewApprovalsCommand_Empty(t *testing.T) {
	// Setup
	c := newTestContainer(t, suraj)

	// Execute
	out, err := runCommand(newApprovalsCommand(c))

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks waiting for approval")
}
