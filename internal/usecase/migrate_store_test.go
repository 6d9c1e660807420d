package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/testutil"
)

func newMigrationSource() *testutil.MockKVStore {
	source := testutil.NewMockKVStore()
	source.Values[domain.KeyTasks] = []byte(`[{"id":"1"}]`)
	source.Values[domain.KeyUserSettings] = []byte(`{"theme":"dark"}`)
	source.Values[domain.KeyCurrentUser] = []byte(`{"id":"2"}`)
	return source
}

func TestMigrateStore_Execute_CopiesDataKeys(t *testing.T) {
	// Setup
	source := newMigrationSource()
	dest := testutil.NewMockKVStore()
	destInit := &testutil.MockStoreInitializer{}
	logger := &testutil.MockLogger{}
	uc := NewMigrateStore(source, dest, destInit, sessionAs(manager), logger)

	// Execute
	out, err := uc.Execute(context.Background(), MigrateStoreInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, 2, out.Migrated)
	assert.Equal(t, 0, out.Skipped)
	assert.Equal(t, 1, destInit.Calls)
	assert.Equal(t, `[{"id":"1"}]`, string(dest.Values[domain.KeyTasks]))
	assert.Equal(t, `{"theme":"dark"}`, string(dest.Values[domain.KeyUserSettings]))
	assert.NotContains(t, dest.Values, domain.KeyCurrentUser)
	assert.Equal(t, []string{"INFO"}, logger.Levels())
}

func TestMigrateStore_Execute_SkipsIdentical(t *testing.T) {
	// Setup
	source := newMigrationSource()
	dest := testutil.NewMockKVStore()
	dest.Values[domain.KeyTasks] = []byte(`[{"id":"1"}]`)
	uc := NewMigrateStore(source, dest, &testutil.MockStoreInitializer{}, sessionAs(manager), nil)

	// Execute
	out, err := uc.Execute(context.Background(), MigrateStoreInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, out.Migrated)
	assert.Equal(t, 1, out.Skipped)
	assert.Equal(t, 1, dest.SetCalls)
}

func TestMigrateStore_Execute_Conflict(t *testing.T) {
	// Setup
	source := newMigrationSource()
	dest := testutil.NewMockKVStore()
	dest.Values[domain.KeyTasks] = []byte(`[]`)
	uc := NewMigrateStore(source, dest, &testutil.MockStoreInitializer{}, sessionAs(manager), nil)

	// Execute
	_, err := uc.Execute(context.Background(), MigrateStoreInput{})

	// Assert
	require.ErrorIs(t, err, domain.ErrMigrationConflict)
	assert.Equal(t, 0, dest.SetCalls, "nothing is written when a conflict is found")
	assert.Equal(t, `[]`, string(dest.Values[domain.KeyTasks]))
}

func TestMigrateStore_Execute_Overwrite(t *testing.T) {
	// Setup
	source := newMigrationSource()
	dest := testutil.NewMockKVStore()
	dest.Values[domain.KeyTasks] = []byte(`[]`)
	uc := NewMigrateStore(source, dest, &testutil.MockStoreInitializer{}, sessionAs(manager), nil)

	// Execute
	out, err := uc.Execute(context.Background(), MigrateStoreInput{Overwrite: true})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, out.Migrated)
	assert.Equal(t, `[{"id":"1"}]`, string(dest.Values[domain.KeyTasks]))
}

func TestMigrateStore_Execute_Errors(t *testing.T) {
	initErr := errors.New("disk full")

	tests := []struct {
		name     string
		sessions *testutil.MockSessionStore
		destInit *testutil.MockStoreInitializer
		wantErr  error
	}{
		{name: "developer", sessions: sessionAs(developer), destInit: &testutil.MockStoreInitializer{}, wantErr: domain.ErrManagerOnly},
		{name: "not logged in", sessions: &testutil.MockSessionStore{}, destInit: &testutil.MockStoreInitializer{}, wantErr: domain.ErrNotLoggedIn},
		{name: "initialize fails", sessions: sessionAs(manager), destInit: &testutil.MockStoreInitializer{InitErr: initErr}, wantErr: initErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			dest := testutil.NewMockKVStore()
			uc := NewMigrateStore(newMigrationSource(), dest, tt.destInit, tt.sessions, nil)

			// Execute
			_, err := uc.Execute(context.Background(), MigrateStoreInput{})

			// Assert
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, dest.Values)
		})
	}
}
