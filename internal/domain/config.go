package domain

import (
	_ "embed"
	"path/filepath"
)

// ConfigFileName is the configuration file name in both the global and project directories.
const ConfigFileName = "config.toml"

//go:embed config_template.toml
var configTemplateContent string

// ConfigTemplate returns the commented configuration template written by 'config init'.
func ConfigTemplate() string {
	return configTemplateContent
}

// Store backends.
const (
	BackendJSON     = "json"
	BackendGit      = "git"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string       `toml:"-"`
	Store    StoreConfig    `toml:"store"`
	Log      LogConfig      `toml:"log"`
	Auth     AuthConfig     `toml:"auth"`
	Workflow WorkflowConfig `toml:"workflow"`
	Board    BoardConfig    `toml:"board"`
}

// StoreConfig holds storage settings from [store] section.
type StoreConfig struct {
	Backend   string `toml:"backend,omitempty"`   // json (default), git, sqlite, postgres, memory
	Path      string `toml:"path,omitempty"`      // File or repository path (json, git, sqlite); default under the data dir
	Namespace string `toml:"namespace,omitempty"` // Ref namespace for the git backend
	DSN       string `toml:"dsn,omitempty"`       // Connection string for the postgres backend

	// EncryptionKey enables AES-256-GCM encryption of stored values (64 hex characters).
	EncryptionKey string `toml:"encryption_key,omitempty"`
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// AuthConfig holds the demo credential check settings from [auth] section.
type AuthConfig struct {
	Password     string `toml:"password,omitempty"`      // Shared password accepted for every seeded user
	PasswordHash string `toml:"password_hash,omitempty"` // bcrypt hash; takes precedence over Password
}

// WorkflowConfig holds status-edit policy from [workflow] section.
type WorkflowConfig struct {
	// StrictStatusEdit routes generic status edits (edit form, board moves)
	// through the guarded transition rules.
	StrictStatusEdit bool `toml:"strict_status_edit,omitempty"`
}

// BoardConfig holds kanban board settings from [board] section.
type BoardConfig struct {
	ShowReopened bool `toml:"show_reopened"` // Show a Reopened column
	TrendDays    int  `toml:"trend_days,omitempty"`
}

// NewDefaultConfig returns the configuration used when no files are present.
func NewDefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:   BackendJSON,
			Namespace: "bugtrack",
		},
		Log:   LogConfig{Level: "info"},
		Auth:  AuthConfig{Password: DefaultSharedPassword},
		Board: BoardConfig{ShowReopened: true, TrendDays: DefaultTrendDays},
	}
}

// StorePath returns the configured store path, or the backend's default under dataDir.
func (c *StoreConfig) StorePath(dataDir string) string {
	if c.Path != "" {
		return c.Path
	}
	switch c.Backend {
	case BackendGit:
		return filepath.Join(dataDir, "store.git")
	case BackendSQLite:
		return filepath.Join(dataDir, "bugtrack.db")
	default:
		return filepath.Join(dataDir, "store.json")
	}
}

// GlobalConfigDir returns the global config directory under configHome.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, "bugtrack")
}

// DefaultDataDirName is the project data directory created by 'init'.
const DefaultDataDirName = ".bugtrack"

// TaskLogPath returns the path to a task's log file.
func TaskLogPath(dataDir, taskID string) string {
	return filepath.Join(dataDir, "logs", "task-"+taskID+".log")
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "bugtrack.log")
}
