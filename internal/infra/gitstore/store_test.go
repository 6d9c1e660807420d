package gitstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/bugtrack/internal/domain"
)

func setupTestRepo(t *testing.T) *git.Repository {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	// Create an initial commit so HEAD points somewhere
	wt, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Test"), 0o644))
	_, err = wt.Add("README.md")
	require.NoError(t, err)

	_, err = wt.Commit("Initial commit", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	return repo
}

func TestStore_Initialize(t *testing.T) {
	repo := setupTestRepo(t)
	store := NewWithRepo(repo, "bugtrack-test")

	assert.False(t, store.IsInitialized())
	require.NoError(t, store.Initialize())
	assert.True(t, store.IsInitialized())

	// Second call should be idempotent
	require.NoError(t, store.Initialize())
}

func TestStore_SetGet(t *testing.T) {
	store := NewWithRepo(setupTestRepo(t), "bugtrack-test")

	_, ok, err := store.Get(domain.KeyTasks)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(domain.KeyTasks, []byte(`[{"id":"1"}]`)))
	got, ok, err := store.Get(domain.KeyTasks)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, string(got))

	require.NoError(t, store.Set(domain.KeyTasks, []byte(`[]`)))
	got, _, err = store.Get(domain.KeyTasks)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestStore_LargeValue(t *testing.T) {
	store := NewWithRepo(setupTestRepo(t), "bugtrack-test")

	value := make([]byte, 256*1024)
	for i := range value {
		value[i] = byte('a' + i%26)
	}
	require.NoError(t, store.Set("big", value))

	got, ok, err := store.Get("big")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, value, got)
}

func TestStore_DeleteAndKeys(t *testing.T) {
	store := NewWithRepo(setupTestRepo(t), "bugtrack-test")

	require.NoError(t, store.Initialize())
	require.NoError(t, store.Set(domain.KeyUserSettings, []byte(`{}`)))
	require.NoError(t, store.Set(domain.KeyCurrentUser, []byte(`{}`)))
	require.NoError(t, store.Set(domain.KeyTasks, []byte(`[]`)))

	require.NoError(t, store.Delete(domain.KeyCurrentUser))
	require.NoError(t, store.Delete("absent"))

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{domain.KeyTasks, domain.KeyUserSettings}, keys)
}

func TestStore_NamespacesAreIsolated(t *testing.T) {
	repo := setupTestRepo(t)
	a := NewWithRepo(repo, "team-a")
	b := NewWithRepo(repo, "team-b")

	require.NoError(t, a.Set(domain.KeyTasks, []byte(`[1]`)))

	_, ok, err := b.Get(domain.KeyTasks)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_InvalidKey(t *testing.T) {
	store := NewWithRepo(setupTestRepo(t), "bugtrack-test")

	for _, key := range []string{"", "a b", "a..b", "x.lock", "/lead"} {
		err := store.Set(key, []byte(`1`))
		assert.ErrorIs(t, err, domain.ErrValidationFailed, key)
	}
}

func TestNew_CreatesBareRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.git")

	store, err := New(path, "bugtrack")
	require.NoError(t, err)
	require.NoError(t, store.Set(domain.KeyTasks, []byte(`[]`)))

	reopened, err := New(path, "bugtrack")
	require.NoError(t, err)
	got, ok, err := reopened.Get(domain.KeyTasks)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(got))
}
