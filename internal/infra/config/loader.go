// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/bugtrack/internal/domain"
)

// Environment variables that override file configuration.
const (
	EnvDataDir  = "BUGTRACK_DATA_DIR"
	EnvStore    = "BUGTRACK_STORE"
	EnvDSN      = "BUGTRACK_DSN"
	EnvLogLevel = "BUGTRACK_LOG_LEVEL"
	EnvPassword = "BUGTRACK_PASSWORD"

	EnvEncryptionKey = "BUGTRACK_ENCRYPTION_KEY"
	EnvPasswordHash  = "BUGTRACK_PASSWORD_HASH"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files and the environment.
type Loader struct {
	getenv        func(string) string
	dataDir       string // Path to the .bugtrack directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/bugtrack)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
		getenv:        os.Getenv,
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory
// and environment lookup. This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string, getenv func(string) string) *Loader {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
		getenv:        getenv,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration.
// Later sources take precedence: default ← global ← project ← environment.
func (l *Loader) Load() (*domain.Config, error) {
	return l.LoadWithOptions(domain.LoadConfigOptions{})
}

// LoadGlobal returns the defaults with only the global file applied.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName), domain.NewDefaultConfig())
}

// LoadProject returns the defaults with only the project file applied.
func (l *Loader) LoadProject() (*domain.Config, error) {
	return l.loadFile(filepath.Join(l.dataDir, domain.ConfigFileName), domain.NewDefaultConfig())
}

// LoadWithOptions returns the merged configuration with options to ignore sources.
func (l *Loader) LoadWithOptions(opts domain.LoadConfigOptions) (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	if !opts.IgnoreGlobal && l.globalConfDir != "" {
		merged, err := l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName), cfg)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if merged != nil {
			cfg = merged
		}
	}

	if !opts.IgnoreProject {
		merged, err := l.loadFile(filepath.Join(l.dataDir, domain.ConfigFileName), cfg)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if merged != nil {
			cfg = merged
		}
	}

	if !opts.IgnoreEnv {
		l.applyEnv(cfg)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile reads path and applies it on top of a copy of base.
func (l *Loader) loadFile(path string, base *domain.Config) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	res := *base
	res.Warnings = append([]string{}, base.Warnings...)
	warnings := applyRaw(&res, raw)
	for _, w := range warnings {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %s", path, w))
	}
	return &res, nil
}

// applyRaw writes the known keys of raw onto cfg and returns warnings for the rest.
func applyRaw(cfg *domain.Config, raw map[string]any) []string {
	var warnings []string
	unknown := func(section, key string) {
		warnings = append(warnings, fmt.Sprintf("unknown key in [%s]: %s", section, key))
	}
	badType := func(section, key, want string) {
		warnings = append(warnings, fmt.Sprintf("[%s] %s must be a %s", section, key, want))
	}

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		switch section {
		case "store":
			for k, v := range m {
				switch k {
				case "backend":
					setString(&cfg.Store.Backend, v, func() { badType(section, k, "string") })
				case "path":
					setString(&cfg.Store.Path, v, func() { badType(section, k, "string") })
				case "namespace":
					setString(&cfg.Store.Namespace, v, func() { badType(section, k, "string") })
				case "dsn":
					setString(&cfg.Store.DSN, v, func() { badType(section, k, "string") })
				case "encryption_key":
					setString(&cfg.Store.EncryptionKey, v, func() { badType(section, k, "string") })
				default:
					unknown(section, k)
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					setString(&cfg.Log.Level, v, func() { badType(section, k, "string") })
				default:
					unknown(section, k)
				}
			}
		case "auth":
			for k, v := range m {
				switch k {
				case "password":
					setString(&cfg.Auth.Password, v, func() { badType(section, k, "string") })
				case "password_hash":
					setString(&cfg.Auth.PasswordHash, v, func() { badType(section, k, "string") })
				default:
					unknown(section, k)
				}
			}
		case "workflow":
			for k, v := range m {
				switch k {
				case "strict_status_edit":
					setBool(&cfg.Workflow.StrictStatusEdit, v, func() { badType(section, k, "boolean") })
				default:
					unknown(section, k)
				}
			}
		case "board":
			for k, v := range m {
				switch k {
				case "show_reopened":
					setBool(&cfg.Board.ShowReopened, v, func() { badType(section, k, "boolean") })
				case "trend_days":
					if n, ok := v.(int64); ok && n > 0 {
						cfg.Board.TrendDays = int(n)
					} else {
						badType(section, k, "positive integer")
					}
				default:
					unknown(section, k)
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	return warnings
}

func setString(dst *string, v any, onBadType func()) {
	s, ok := v.(string)
	if !ok {
		onBadType()
		return
	}
	if s != "" {
		*dst = s
	}
}

func setBool(dst *bool, v any, onBadType func()) {
	b, ok := v.(bool)
	if !ok {
		onBadType()
		return
	}
	*dst = b
}

// applyEnv applies BUGTRACK_* environment overrides.
func (l *Loader) applyEnv(cfg *domain.Config) {
	if v := l.getenv(EnvStore); v != "" {
		cfg.Store.Backend = v
	}
	if v := l.getenv(EnvDSN); v != "" {
		cfg.Store.DSN = v
	}
	if v := l.getenv(EnvEncryptionKey); v != "" {
		cfg.Store.EncryptionKey = v
	}
	if v := l.getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := l.getenv(EnvPassword); v != "" {
		cfg.Auth.Password = v
	}
	if v := l.getenv(EnvPasswordHash); v != "" {
		cfg.Auth.PasswordHash = v
	}
}

// validate rejects configurations the container cannot build.
func validate(cfg *domain.Config) error {
	switch cfg.Store.Backend {
	case domain.BackendJSON, domain.BackendGit, domain.BackendSQLite, domain.BackendMemory:
	case domain.BackendPostgres:
		if cfg.Store.DSN == "" {
			return fmt.Errorf("postgres backend requires [store] dsn or %s", EnvDSN)
		}
	default:
		return fmt.Errorf("%q: %w", cfg.Store.Backend, domain.ErrUnknownBackend)
	}
	return nil
}
