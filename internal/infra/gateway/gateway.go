// Package gateway maps the application's records onto a domain.KVStore.
// It performs no validation; values are stored as JSON under fixed keys.
package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/runoshun/bugtrack/internal/domain"
)

// Gateway reads and writes tasks, settings and the current user.
type Gateway struct {
	kv   domain.KVStore
	seed func() []*domain.Task
}

// New creates a Gateway over kv that serves domain.SeedTasks when no tasks are stored.
func New(kv domain.KVStore) *Gateway {
	return NewWithSeed(kv, domain.SeedTasks)
}

// NewWithSeed creates a Gateway with a custom default dataset.
func NewWithSeed(kv domain.KVStore, seed func() []*domain.Task) *Gateway {
	return &Gateway{kv: kv, seed: seed}
}

// LoadTasks returns the stored task collection, or the seed dataset if none is stored.
func (g *Gateway) LoadTasks() ([]*domain.Task, error) {
	var tasks []*domain.Task
	found, err := g.load(domain.KeyTasks, &tasks)
	if err != nil {
		return nil, err
	}
	if !found {
		return g.seed(), nil
	}
	return tasks, nil
}

// SaveTasks overwrites the stored task collection.
func (g *Gateway) SaveTasks(tasks []*domain.Task) error {
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return g.save(domain.KeyTasks, tasks)
}

// LoadUserSettings returns the stored user settings merged over the defaults.
func (g *Gateway) LoadUserSettings() (domain.UserSettings, error) {
	settings := domain.DefaultUserSettings()
	if _, err := g.load(domain.KeyUserSettings, &settings); err != nil {
		return domain.UserSettings{}, err
	}
	return settings, nil
}

// SaveUserSettings overwrites the stored user settings.
func (g *Gateway) SaveUserSettings(settings domain.UserSettings) error {
	return g.save(domain.KeyUserSettings, settings)
}

// LoadSystemSettings returns the stored system settings merged over the defaults.
func (g *Gateway) LoadSystemSettings() (domain.SystemSettings, error) {
	settings := domain.DefaultSystemSettings()
	if _, err := g.load(domain.KeySystemSettings, &settings); err != nil {
		return domain.SystemSettings{}, err
	}
	return settings, nil
}

// SaveSystemSettings overwrites the stored system settings.
func (g *Gateway) SaveSystemSettings(settings domain.SystemSettings) error {
	return g.save(domain.KeySystemSettings, settings)
}

// CurrentUser returns the logged-in user, or nil if nobody is logged in.
func (g *Gateway) CurrentUser() (*domain.User, error) {
	var user domain.User
	found, err := g.load(domain.KeyCurrentUser, &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

// SetCurrentUser records user as logged in.
func (g *Gateway) SetCurrentUser(user domain.User) error {
	return g.save(domain.KeyCurrentUser, user)
}

// ClearCurrentUser logs the current user out.
func (g *Gateway) ClearCurrentUser() error {
	return g.kv.Delete(domain.KeyCurrentUser)
}

// Clear removes the stored tasks and both settings records.
// The next LoadTasks serves the seed dataset again.
func (g *Gateway) Clear() error {
	for _, key := range []string{domain.KeyTasks, domain.KeyUserSettings, domain.KeySystemSettings} {
		if err := g.kv.Delete(key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}

func (g *Gateway) load(key string, v any) (bool, error) {
	data, ok, err := g.kv.Get(key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (g *Gateway) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := g.kv.Set(key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

var _ domain.TaskGateway = (*Gateway)(nil)

var (
	_ domain.SessionStore  = (*Gateway)(nil)
	_ domain.SettingsStore = (*Gateway)(nil)
	_ domain.DataClearer   = (*Gateway)(nil)
)
