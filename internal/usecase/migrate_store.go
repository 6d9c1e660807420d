package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase/shared"
)

// MigrateStoreInput contains parameters for MigrateStore.
type MigrateStoreInput struct {
	// Overwrite replaces destination values that differ from the source.
	// If false, a differing value fails the migration before anything is written.
	Overwrite bool
}

// MigrateStoreOutput contains migration results.
type MigrateStoreOutput struct {
	Total    int
	Migrated int
	Skipped  int // Keys whose destination value was already identical
}

// MigrateStore copies stored tasks and settings from the current backend to another one.
// The login session stays with the current backend.
type MigrateStore struct {
	source   domain.KVStore
	dest     domain.KVStore
	destInit domain.StoreInitializer
	sessions domain.SessionStore
	logger   domain.Logger
}

// NewMigrateStore creates a new MigrateStore use case.
func NewMigrateStore(source, dest domain.KVStore, destInit domain.StoreInitializer, sessions domain.SessionStore, logger domain.Logger) *MigrateStore {
	return &MigrateStore{source: source, dest: dest, destInit: destInit, sessions: sessions, logger: logger}
}

// Execute copies every data key. Only managers may migrate.
func (uc *MigrateStore) Execute(_ context.Context, in MigrateStoreInput) (*MigrateStoreOutput, error) {
	actor, err := shared.RequireManager(uc.sessions)
	if err != nil {
		return nil, err
	}
	if uc.source == nil || uc.dest == nil {
		return nil, errors.New("source or destination store is nil")
	}
	if uc.destInit == nil {
		return nil, errors.New("destination store initializer is nil")
	}

	if err := uc.destInit.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize destination store: %w", err)
	}

	keys, err := uc.source.Keys()
	if err != nil {
		return nil, fmt.Errorf("list source keys: %w", err)
	}

	type pending struct {
		key   string
		value []byte
	}
	var writes []pending
	out := &MigrateStoreOutput{}
	for _, key := range keys {
		if key == domain.KeyCurrentUser {
			continue
		}
		out.Total++

		value, ok, err := uc.source.Get(key)
		if err != nil {
			return nil, fmt.Errorf("read source %s: %w", key, err)
		}
		if !ok {
			continue
		}

		existing, found, err := uc.dest.Get(key)
		if err != nil {
			return nil, fmt.Errorf("check destination %s: %w", key, err)
		}
		if found {
			if bytes.Equal(existing, value) {
				out.Skipped++
				continue
			}
			if !in.Overwrite {
				return nil, fmt.Errorf("%w: %s", domain.ErrMigrationConflict, key)
			}
		}
		writes = append(writes, pending{key: key, value: value})
	}

	for _, w := range writes {
		if err := uc.dest.Set(w.key, w.value); err != nil {
			return nil, fmt.Errorf("write destination %s: %w", w.key, err)
		}
		out.Migrated++
	}

	if uc.logger != nil {
		uc.logger.Info("", "store", fmt.Sprintf("%s migrated %d key(s), skipped %d", actor.Name, out.Migrated, out.Skipped))
	}
	return out, nil
}
