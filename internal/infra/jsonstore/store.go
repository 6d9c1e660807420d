// Package jsonstore keeps the key-value store in one human-readable JSON file.
package jsonstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/runoshun/bugtrack/internal/domain"
)

var (
	_ domain.KVStore          = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)

// fileVersion is written to every store file.
const fileVersion = 1

// document is the on-disk layout. JSON values are embedded as-is so the file
// stays readable; anything else is kept base64 encoded under "binary".
type document struct {
	Values  map[string]json.RawMessage `json:"values"`
	Binary  map[string][]byte          `json:"binary,omitempty"`
	Version int                        `json:"version"`
}

func (d *document) keys() []string {
	keys := slices.Collect(maps.Keys(d.Values))
	keys = slices.AppendSeq(keys, maps.Keys(d.Binary))
	slices.Sort(keys)
	return keys
}

// Store implements domain.KVStore over a single JSON file.
// Every call holds a flock on path.lock, so several processes may share the file.
type Store struct {
	path string
}

// New returns a Store for path. The file is created on first write.
func New(path string) *Store {
	return &Store{path: path}
}

// Get returns the value stored under key.
func (s *Store) Get(key string) ([]byte, bool, error) {
	var (
		value []byte
		ok    bool
	)
	err := s.transact(false, func(doc *document) error {
		if raw, found := doc.Values[key]; found {
			// The file is indented; hand back the compact form.
			var buf bytes.Buffer
			if err := json.Compact(&buf, raw); err != nil {
				return fmt.Errorf("decode %s: %w", key, err)
			}
			value, ok = buf.Bytes(), true
			return nil
		}
		if blob, found := doc.Binary[key]; found {
			value, ok = slices.Clone(blob), true
		}
		return nil
	})
	return value, ok, err
}

// Set replaces the value stored under key.
func (s *Store) Set(key string, value []byte) error {
	return s.transact(true, func(doc *document) error {
		delete(doc.Values, key)
		delete(doc.Binary, key)
		if json.Valid(value) {
			doc.Values[key] = json.RawMessage(slices.Clone(value))
			return nil
		}
		if doc.Binary == nil {
			doc.Binary = make(map[string][]byte)
		}
		doc.Binary[key] = slices.Clone(value)
		return nil
	})
}

// Delete removes key.
func (s *Store) Delete(key string) error {
	return s.transact(true, func(doc *document) error {
		delete(doc.Values, key)
		delete(doc.Binary, key)
		return nil
	})
}

// Keys returns all stored keys in sorted order.
func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := s.transact(false, func(doc *document) error {
		keys = doc.keys()
		return nil
	})
	return keys, err
}

// IsInitialized reports whether the store file exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize creates an empty store file unless one exists.
func (s *Store) Initialize() error {
	return s.transact(true, func(*document) error { return nil })
}

// transact loads the document under a shared lock, or an exclusive one when
// write is set, runs fn and, for writes, saves the result.
func (s *Store) transact(write bool, fn func(*document) error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	lock, err := os.OpenFile(s.path+".lock", os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer func() { _ = lock.Close() }()

	how := syscall.LOCK_SH
	if write {
		how = syscall.LOCK_EX
	}
	if err := syscall.Flock(int(lock.Fd()), how); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer func() { _ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN) }()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	if !write {
		return nil
	}
	return s.save(doc)
}

// load reads the store file. A missing file is an empty store.
func (s *Store) load() (*document, error) {
	doc := &document{Values: make(map[string]json.RawMessage)}

	content, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if err := json.Unmarshal(content, doc); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	if doc.Version > fileVersion {
		return nil, fmt.Errorf("store file version %d is newer than this bugtrack supports", doc.Version)
	}
	if doc.Values == nil {
		doc.Values = make(map[string]json.RawMessage)
	}
	return doc, nil
}

// save replaces the store file through a temp file and rename, so readers
// never see a half-written collection.
func (s *Store) save(doc *document) error {
	doc.Version = fileVersion
	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(content, '\n'), 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
