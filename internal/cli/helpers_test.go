package cli

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/bugtrack/internal/app"
	"github.com/runoshun/bugtrack/internal/infra/memstore"
	"github.com/runoshun/bugtrack/internal/testutil"
)

// testNow is the fixed clock time for command tests.
var testNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

// Seed user IDs.
const (
	yuvi  = "1" // developer, owns seed task 1 (in-progress)
	suraj = "2" // manager
	aman  = "3" // developer, owns seed task 2 (open)
)

// newTestContainer creates a container over an in-memory store holding the seed
// dataset. userID is logged in unless empty.
func newTestContainer(t *testing.T, userID string) *app.Container {
	t.Helper()

	kv := memstore.New()
	dataDir := filepath.Join(t.TempDir(), ".bugtrack")
	c := app.NewWithDeps(
		app.Config{DataDir: dataDir},
		kv,
		kv,
		&testutil.MockClock{NowTime: testNow},
		&testutil.MockLogger{},
	)
	if userID != "" {
		user, ok := c.Users.FindByID(userID)
		require.True(t, ok)
		require.NoError(t, c.Sessions.SetCurrentUser(user))
	}
	return c
}

// runCommand executes cmd with args and returns its stdout.
func runCommand(cmd *cobra.Command, args ...string) (string, error) {
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
