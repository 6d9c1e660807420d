package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/infra/jsonstore"
)

func TestNewMigrateCommand_ToJSON(t *testing.T) {
	// Setup
	c := newTestContainer(t, suraj)
	_, err := runCommand(newSettingsCommand(c), "set", "defaultPriority", "high")
	require.NoError(t, err)
	_, err = runCommand(newRmCommand(c), "2")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "migrated.json")

	// Execute
	out, err := runCommand(newMigrateCommand(c), "--to", "json", "--path", path)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Migrated 2 key(s) to json store")

	dest := jsonstore.New(path)
	keys, err := dest.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{domain.KeyTasks, domain.KeyUserSettings}, keys)
}

func TestNewMigrateCommand_Rerun(t *testing.T) {
	// Setup
	c := newTestContainer(t, suraj)
	_, err := runCommand(newRmCommand(c), "2")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "migrated.json")
	_, err = runCommand(newMigrateCommand(c), "--to", "json", "--path", path)
	require.NoError(t, err)

	// Execute
	out, err := runCommand(newMigrateCommand(c), "--to", "json", "--path", path)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Migrated 0 key(s) to json store (skipped 1 identical)")
}

func TestNewMigrateCommand_Conflict(t *testing.T) {
	// Setup
	c := newTestContainer(t, suraj)
	_, err := runCommand(newRmCommand(c), "2")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "migrated.json")
	_, err = runCommand(newMigrateCommand(c), "--to", "json", "--path", path)
	require.NoError(t, err)
	_, err = runCommand(newRmCommand(c), "1")
	require.NoError(t, err)

	// Execute
	_, err = runCommand(newMigrateCommand(c), "--to", "json", "--path", path)
	require.ErrorIs(t, err, domain.ErrMigrationConflict)

	out, err := runCommand(newMigrateCommand(c), "--to", "json", "--path", path, "--overwrite")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Migrated 1 key(s)")
}

func TestNewMigrateCommand_Empty(t *testing.T) {
	// Setup
	c := newTestContainer(t, suraj)

	// Execute
	out, err := runCommand(newMigrateCommand(c), "--to", "json", "--path", filepath.Join(t.TempDir(), "store.json"))

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to migrate")
}

func TestNewMigrateCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		args    []string
		wantErr error
	}{
		{name: "unknown backend", userID: suraj, args: []string{"--to", "redis"}, wantErr: domain.ErrValidationFailed},
		{name: "memory backend", userID: suraj, args: []string{"--to", "memory"}, wantErr: domain.ErrValidationFailed},
		{name: "current store", userID: suraj, args: []string{"--to", "json"}, wantErr: domain.ErrSameStore},
		{name: "developer", userID: yuvi, args: []string{"--to", "sqlite"}, wantErr: domain.ErrManagerOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			c := newTestContainer(t, tt.userID)
			c.Config.DataDir = t.TempDir()

			// Execute
			_, err := runCommand(newMigrateCommand(c), tt.args...)

			// Assert
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
