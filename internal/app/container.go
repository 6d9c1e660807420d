// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/infra/auth"
	"github.com/runoshun/bugtrack/internal/infra/config"
	"github.com/runoshun/bugtrack/internal/infra/crypto"
	"github.com/runoshun/bugtrack/internal/infra/gateway"
	"github.com/runoshun/bugtrack/internal/infra/gitstore"
	"github.com/runoshun/bugtrack/internal/infra/idgen"
	"github.com/runoshun/bugtrack/internal/infra/jsonstore"
	"github.com/runoshun/bugtrack/internal/infra/logging"
	"github.com/runoshun/bugtrack/internal/infra/memstore"
	"github.com/runoshun/bugtrack/internal/infra/sqlstore"
	"github.com/runoshun/bugtrack/internal/infra/taskstore"
	"github.com/runoshun/bugtrack/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	DataDir   string // Path to the .bugtrack directory
	StorePath string // Path to the store file or repository (empty for postgres and memory)
}

// Options customizes New. Zero values select the defaults.
type Options struct {
	Getenv          func(string) string // Environment lookup (default os.Getenv)
	GlobalConfigDir string              // Global config directory (default ~/.config/bugtrack)
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Store            domain.KVStore
	Tasks            domain.TaskRepository
	Sessions         domain.SessionStore
	Settings         domain.SettingsStore
	DataClearer      domain.DataClearer
	StoreInitializer domain.StoreInitializer
	Users            domain.UserDirectory
	Passwords        domain.PasswordVerifier
	Clock            domain.Clock
	ConfigLoader     domain.ConfigLoader
	ConfigManager    domain.ConfigManager
	Logger           domain.Logger

	// Loaded configuration
	AppConfig *domain.Config

	closers []io.Closer

	// Paths
	Config Config
}

// FindDataDir returns the data directory to use from dir: $BUGTRACK_DATA_DIR if
// set, otherwise the nearest .bugtrack directory in dir or its parents, otherwise
// dir/.bugtrack.
func FindDataDir(dir string, getenv func(string) string) (string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(config.EnvDataDir); v != "" {
		return filepath.Abs(v)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve directory: %w", err)
	}
	for cur := abs; ; {
		candidate := filepath.Join(cur, domain.DefaultDataDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	return filepath.Join(abs, domain.DefaultDataDirName), nil
}

// New creates a new Container for the data directory found from dir.
func New(dir string) (*Container, error) {
	return NewWithOptions(dir, Options{})
}

// NewWithOptions creates a new Container with custom environment and global config lookup.
func NewWithOptions(dir string, opts Options) (*Container, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	dataDir, err := FindDataDir(dir, getenv)
	if err != nil {
		return nil, err
	}

	var configLoader *config.Loader
	var configManager *config.Manager
	if opts.GlobalConfigDir != "" {
		configLoader = config.NewLoaderWithGlobalDir(dataDir, opts.GlobalConfigDir, getenv)
		configManager = config.NewManagerWithGlobalDir(dataDir, opts.GlobalConfigDir)
	} else {
		configLoader = config.NewLoader(dataDir)
		configManager = config.NewManager(dataDir)
	}

	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	passwords, err := auth.NewVerifier(appConfig.Auth)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	kv, storeInit, closer, err := openStore(appConfig.Store, dataDir)
	if err != nil {
		return nil, err
	}

	logger := logging.New(dataDir, logging.ParseLevel(appConfig.Log.Level))

	c := newContainer(kv, storeInit, domain.RealClock{}, logger)
	c.ConfigLoader = configLoader
	c.ConfigManager = configManager
	c.AppConfig = appConfig
	c.Passwords = passwords
	c.Config = Config{DataDir: dataDir}
	if appConfig.Store.Backend != domain.BackendPostgres && appConfig.Store.Backend != domain.BackendMemory {
		c.Config.StorePath = appConfig.Store.StorePath(dataDir)
	}
	if closer != nil {
		c.closers = append(c.closers, closer)
	}
	c.closers = append(c.closers, logger)
	return c, nil
}

// OpenStore opens the key-value backend described by cfg under the container's data directory.
// The returned closer is nil for backends without a connection.
func (c *Container) OpenStore(cfg domain.StoreConfig) (domain.KVStore, domain.StoreInitializer, io.Closer, error) {
	return openStore(cfg, c.Config.DataDir)
}

// openStore opens the configured key-value backend, encrypting values when a key is set.
func openStore(cfg domain.StoreConfig, dataDir string) (domain.KVStore, domain.StoreInitializer, io.Closer, error) {
	kv, storeInit, closer, err := openBackend(cfg, dataDir)
	if err != nil || cfg.EncryptionKey == "" {
		return kv, storeInit, closer, err
	}
	enc, err := crypto.NewEncryptor(cfg.EncryptionKey)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, nil, nil, err
	}
	return crypto.Wrap(kv, enc), storeInit, closer, nil
}

func openBackend(cfg domain.StoreConfig, dataDir string) (domain.KVStore, domain.StoreInitializer, io.Closer, error) {
	switch cfg.Backend {
	case domain.BackendJSON, "":
		s := jsonstore.New(cfg.StorePath(dataDir))
		return s, s, nil, nil
	case domain.BackendGit:
		s, err := gitstore.New(cfg.StorePath(dataDir), cfg.Namespace)
		if err != nil {
			return nil, nil, nil, err
		}
		return s, s, nil, nil
	case domain.BackendSQLite, domain.BackendPostgres:
		driver, dsn := sqlstore.DriverSQLite, cfg.StorePath(dataDir)
		if cfg.Backend == domain.BackendPostgres {
			driver, dsn = sqlstore.DriverPostgres, cfg.DSN
		}
		s, err := sqlstore.Open(driver, dsn)
		if err != nil {
			return nil, nil, nil, err
		}
		// The table is created on open so reads work before 'init'.
		if err := s.Initialize(); err != nil {
			_ = s.Close()
			return nil, nil, nil, err
		}
		return s, s, s, nil
	case domain.BackendMemory:
		s := memstore.New()
		return s, s, nil, nil
	default:
		return nil, nil, nil, fmt.Errorf("%q: %w", cfg.Backend, domain.ErrUnknownBackend)
	}
}

func newContainer(kv domain.KVStore, storeInit domain.StoreInitializer, clock domain.Clock, logger domain.Logger) *Container {
	users := domain.NewStaticDirectory(domain.SeedUsers())
	gw := gateway.New(kv)
	return &Container{
		Store:            kv,
		Tasks:            taskstore.New(gw, users, idgen.UUID{}, clock),
		Sessions:         gw,
		Settings:         gw,
		DataClearer:      gw,
		StoreInitializer: storeInit,
		Users:            users,
		Passwords:        domain.SharedPassword(domain.DefaultSharedPassword),
		Clock:            clock,
		Logger:           logger,
		AppConfig:        domain.NewDefaultConfig(),
	}
}

// NewWithDeps creates a new Container over kv with custom dependencies for testing.
func NewWithDeps(cfg Config, kv domain.KVStore, storeInit domain.StoreInitializer, clock domain.Clock, logger domain.Logger) *Container {
	c := newContainer(kv, storeInit, clock, logger)
	c.Config = cfg
	return c
}

// Close releases the store connection and log files.
func (c *Container) Close() error {
	var errs []error
	for _, cl := range c.closers {
		errs = append(errs, cl.Close())
	}
	c.closers = nil
	return errors.Join(errs...)
}

// UseCase factory methods

// InitRepoUseCase returns a new InitRepo use case.
func (c *Container) InitRepoUseCase() *usecase.InitRepo {
	return usecase.NewInitRepo(c.StoreInitializer)
}

// LoginUseCase returns a new Login use case.
func (c *Container) LoginUseCase() *usecase.Login {
	return usecase.NewLogin(c.Users, c.Sessions, c.Passwords, c.Logger)
}

// HashPasswordUseCase returns a new HashPassword use case.
// It needs no store, so it is safe to call on a nil container.
func (c *Container) HashPasswordUseCase() *usecase.HashPassword {
	return usecase.NewHashPassword(auth.Hasher{Cost: auth.DefaultCost})
}

// LogoutUseCase returns a new Logout use case.
func (c *Container) LogoutUseCase() *usecase.Logout {
	return usecase.NewLogout(c.Sessions, c.Logger)
}

// WhoAmIUseCase returns a new WhoAmI use case.
func (c *Container) WhoAmIUseCase() *usecase.WhoAmI {
	return usecase.NewWhoAmI(c.Sessions)
}

// CopyTaskUseCase returns a new CopyTask use case.
func (c *Container) CopyTaskUseCase() *usecase.CopyTask {
	return usecase.NewCopyTask(c.Tasks, c.Sessions, c.Logger)
}

// MigrateStoreUseCase returns a new MigrateStore use case copying into dest.
func (c *Container) MigrateStoreUseCase(dest domain.KVStore, destInit domain.StoreInitializer) *usecase.MigrateStore {
	return usecase.NewMigrateStore(c.Store, dest, destInit, c.Sessions, c.Logger)
}

// NewTaskUseCase returns a new NewTask use case.
func (c *Container) NewTaskUseCase() *usecase.NewTask {
	return usecase.NewNewTask(c.Tasks, c.Sessions, c.Settings, c.Logger)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks, c.Sessions)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.Tasks, c.Sessions, c.Clock)
}

// EditTaskUseCase returns a new EditTask use case.
func (c *Container) EditTaskUseCase() *usecase.EditTask {
	return usecase.NewEditTask(c.Tasks, c.Sessions, c.AppConfig.Workflow.StrictStatusEdit, c.Logger)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Tasks, c.Sessions, c.Logger)
}

// LogTimeUseCase returns a new LogTime use case.
func (c *Container) LogTimeUseCase() *usecase.LogTime {
	return usecase.NewLogTime(c.Tasks, c.Sessions, c.Clock, c.Logger)
}

// TransitionTaskUseCase returns a new TransitionTask use case.
func (c *Container) TransitionTaskUseCase() *usecase.TransitionTask {
	return usecase.NewTransitionTask(c.Tasks, c.Sessions, c.Clock, c.Logger)
}

// MoveTaskUseCase returns a new MoveTask use case.
func (c *Container) MoveTaskUseCase() *usecase.MoveTask {
	return usecase.NewMoveTask(c.Tasks, c.Sessions, c.AppConfig.Workflow.StrictStatusEdit, c.Logger)
}

// ListApprovalsUseCase returns a new ListApprovals use case.
func (c *Container) ListApprovalsUseCase() *usecase.ListApprovals {
	return usecase.NewListApprovals(c.Tasks, c.Sessions)
}

// ShowDashboardUseCase returns a new ShowDashboard use case.
func (c *Container) ShowDashboardUseCase() *usecase.ShowDashboard {
	return usecase.NewShowDashboard(c.Tasks, c.Sessions, c.Clock, c.AppConfig.Board.TrendDays)
}

// ExportTasksUseCase returns a new ExportTasks use case.
func (c *Container) ExportTasksUseCase() *usecase.ExportTasks {
	return usecase.NewExportTasks(c.Tasks, c.Sessions, c.Clock)
}

// ExportDataUseCase returns a new ExportData use case.
func (c *Container) ExportDataUseCase() *usecase.ExportData {
	return usecase.NewExportData(c.Tasks, c.Sessions, c.Settings, c.Clock)
}

// ClearDataUseCase returns a new ClearData use case.
func (c *Container) ClearDataUseCase() *usecase.ClearData {
	return usecase.NewClearData(c.Tasks, c.Sessions, c.DataClearer, c.Logger)
}

// ImportTasksUseCase returns a new ImportTasks use case.
func (c *Container) ImportTasksUseCase() *usecase.ImportTasks {
	return usecase.NewImportTasks(c.Tasks, c.Users, c.Sessions, c.Settings, c.Logger)
}

// ShowSettingsUseCase returns a new ShowSettings use case.
func (c *Container) ShowSettingsUseCase() *usecase.ShowSettings {
	return usecase.NewShowSettings(c.Sessions, c.Settings)
}

// SetSettingsUseCase returns a new SetSettings use case.
func (c *Container) SetSettingsUseCase() *usecase.SetSettings {
	return usecase.NewSetSettings(c.Sessions, c.Settings, c.Logger)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate()
}

// ShowLogsUseCase returns a new ShowLogs use case.
func (c *Container) ShowLogsUseCase() *usecase.ShowLogs {
	return usecase.NewShowLogs(c.Tasks, c.Sessions, c.Config.DataDir)
}
