package domain

import "time"

// KVStore is the raw key-value store behind the Storage Gateway.
// Values are opaque bytes; writes overwrite the whole value.
type KVStore interface {
	// Get returns the value for key. ok is false if the key is absent.
	Get(key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Keys returns all stored keys in sorted order.
	Keys() ([]string, error)
}

// StoreInitializer prepares a backend for first use.
type StoreInitializer interface {
	// Initialize creates the store if it doesn't exist. It is idempotent.
	Initialize() error
}

// TaskGateway loads and saves the task collection as a whole.
type TaskGateway interface {
	// LoadTasks returns the stored collection, or the seed dataset if none is stored.
	LoadTasks() ([]*Task, error)

	// SaveTasks overwrites the stored collection.
	SaveTasks(tasks []*Task) error
}

// TaskRepository is the single in-memory task collection every view reads.
type TaskRepository interface {
	// Get returns a copy of the task. Returns ErrTaskNotFound if absent.
	Get(id string) (*Task, error)

	// List returns copies of all tasks in collection order.
	List() ([]*Task, error)

	// Create assigns an ID, timestamps and empty time entries, then persists.
	Create(draft TaskDraft) (*Task, error)

	// Update merges patch into the task, refreshes UpdatedAt and persists.
	Update(id string, patch TaskPatch) (*Task, error)

	// Replace stores next in place of the task with the same ID, refreshing UpdatedAt.
	Replace(next *Task) (*Task, error)

	// Delete removes the task and its time entries. Missing IDs are a no-op.
	Delete(id string) error

	// AddTimeEntry appends an entry and refreshes the task's UpdatedAt.
	AddTimeEntry(id string, draft TimeEntryDraft) (*Task, error)

	// Subscribe registers fn to run after every successful mutation.
	// The returned function removes the subscription.
	Subscribe(fn func()) (unsubscribe func())

	// Reload discards the in-memory collection so the next read goes to storage.
	Reload()
}

// SessionStore persists the logged-in user.
type SessionStore interface {
	// CurrentUser returns the logged-in user, or nil if nobody is logged in.
	CurrentUser() (*User, error)
	SetCurrentUser(user User) error
	ClearCurrentUser() error
}

// SettingsStore persists user and system settings. Loads return defaults when nothing is stored.
type SettingsStore interface {
	LoadUserSettings() (UserSettings, error)
	SaveUserSettings(settings UserSettings) error
	LoadSystemSettings() (SystemSettings, error)
	SaveSystemSettings(settings SystemSettings) error
}

// DataClearer removes all stored tasks and settings.
type DataClearer interface {
	Clear() error
}

// IDGenerator produces unique identifiers.
type IDGenerator interface {
	NewID() string
}

// Logger writes categorized log lines, optionally scoped to a task.
// An empty taskID logs to the global log only.
type Logger interface {
	Info(taskID, category, msg string)
	Debug(taskID, category, msg string)
	Warn(taskID, category, msg string)
	Error(taskID, category, msg string)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (default ← global ← project ← environment).
	Load() (*Config, error)

	// LoadWithOptions returns the merged configuration, skipping ignored sources.
	LoadWithOptions(opts LoadConfigOptions) (*Config, error)
}

// LoadConfigOptions selects which configuration sources are merged.
type LoadConfigOptions struct {
	IgnoreGlobal  bool
	IgnoreProject bool
	IgnoreEnv     bool
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// GetProjectConfigInfo returns information about the project config file.
	GetProjectConfigInfo() ConfigInfo

	// InitGlobalConfig writes the config template to the global path.
	InitGlobalConfig() error

	// InitProjectConfig writes the config template to the project path.
	InitProjectConfig() error
}

// ConfigInfo describes a configuration file.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// PasswordVerifier checks a login password.
type PasswordVerifier interface {
	// Verify reports whether password is accepted.
	Verify(password string) bool
}

// PasswordHasher produces the stored form of a password.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
