package jsonstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := New(filepath.Join(t.TempDir(), "store.json"))
	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return store
}

func TestStore_Initialize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "store.json")

	store := New(path)
	if store.IsInitialized() {
		t.Fatal("IsInitialized() = true before Initialize")
	}

	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("store file not created: %v", err)
	}

	// Initialize again should be idempotent and keep data
	if err := store.Set("k", []byte(`1`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize() second call error = %v", err)
	}
	if _, ok, _ := store.Get("k"); !ok {
		t.Error("Initialize() wiped existing data")
	}
}

func TestStore_MissingFileReadsEmpty(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "absent.json"))

	got, ok, err := store.Get("tasks")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok || got != nil {
		t.Errorf("Get() = %q, %v; want absent", got, ok)
	}
}

func TestStore_SetAndGet(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set("tasks", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := store.Get("tasks")
	if err != nil || !ok {
		t.Fatalf("Get() = _, %v, %v", ok, err)
	}
	if string(got) != `[{"id":"1"}]` {
		t.Errorf("Get() = %s", got)
	}

	// Overwrite
	if err := store.Set("tasks", []byte(`[]`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, _, _ = store.Get("tasks")
	if string(got) != `[]` {
		t.Errorf("Get() after overwrite = %s", got)
	}
}

func TestStore_NonJSONValue(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set("note", []byte("plain text")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, _, _ := store.Get("note")
	if string(got) != "plain text" {
		t.Errorf("Get() = %q, want the bytes that were set", got)
	}

	// Binary values survive a reopen
	blob := []byte{0x00, 0xff, 0x10, '"'}
	if err := store.Set("blob", blob); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := New(store.path).Get("blob")
	if err != nil || !ok || string(got) != string(blob) {
		t.Errorf("Get() = %v, %v, %v; want %v", got, ok, err, blob)
	}

	keys, _ := store.Keys()
	if strings.Join(keys, ",") != "blob,note" {
		t.Errorf("Keys() = %v", keys)
	}

	// Switching a key back to JSON drops the binary copy
	if err := store.Set("blob", []byte(`{}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, _, _ = store.Get("blob")
	if string(got) != `{}` {
		t.Errorf("Get() = %s, want {}", got)
	}
}

func TestStore_NewerFileVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte(`{"version": 99, "values": {}}`), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := New(path).Keys(); err == nil || !strings.Contains(err.Error(), "newer") {
		t.Errorf("Keys() error = %v, want version error", err)
	}
}

func TestStore_DeleteAndKeys(t *testing.T) {
	store := newTestStore(t)

	for _, k := range []string{"userSettings", "currentUser", "tasks"} {
		if err := store.Set(k, []byte(`{}`)); err != nil {
			t.Fatalf("Set(%s) error = %v", k, err)
		}
	}
	if err := store.Delete("currentUser"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete("never-set"); err != nil {
		t.Fatalf("Delete() of absent key error = %v", err)
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if strings.Join(keys, ",") != "tasks,userSettings" {
		t.Errorf("Keys() = %v", keys)
	}
}

func TestStore_SharedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	a, b := New(path), New(path)

	if err := a.Set("tasks", []byte(`[1]`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := b.Get("tasks")
	if err != nil || !ok || string(got) != `[1]` {
		t.Errorf("second handle Get() = %s, %v, %v", got, ok, err)
	}
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, _, err := New(path).Get("tasks")
	if err == nil || !strings.Contains(err.Error(), "parse store file") {
		t.Errorf("Get() error = %v, want parse error", err)
	}
}
