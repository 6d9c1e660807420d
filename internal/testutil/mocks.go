// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/runoshun/bugtrack/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.NowTime = m.NowTime.Add(d)
}

// MockIDGenerator returns sequential IDs with an optional prefix.
// Queued IDs in Next are returned first.
type MockIDGenerator struct {
	Prefix string
	Next   []string
	n      int
}

// NewID returns the next ID.
func (m *MockIDGenerator) NewID() string {
	if len(m.Next) > 0 {
		id := m.Next[0]
		m.Next = m.Next[1:]
		return id
	}
	m.n++
	return fmt.Sprintf("%s%d", m.Prefix, m.n)
}

// MockKVStore is a test double for domain.KVStore with error injection.
type MockKVStore struct {
	Values    map[string][]byte
	GetErr    error
	SetErr    error
	DeleteErr error
	KeysErr   error
	SetCalls  int
}

// NewMockKVStore creates an empty MockKVStore.
func NewMockKVStore() *MockKVStore {
	return &MockKVStore{Values: make(map[string][]byte)}
}

// Get returns the stored value.
func (m *MockKVStore) Get(key string) ([]byte, bool, error) {
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	v, ok := m.Values[key]
	return v, ok, nil
}

// Set stores value.
func (m *MockKVStore) Set(key string, value []byte) error {
	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Values[key] = slices.Clone(value)
	return nil
}

// Delete removes key.
func (m *MockKVStore) Delete(key string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Values, key)
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *MockKVStore) Keys() ([]string, error) {
	if m.KeysErr != nil {
		return nil, m.KeysErr
	}
	return slices.Sorted(maps.Keys(m.Values)), nil
}

// MockTaskGateway is a test double for domain.TaskGateway.
type MockTaskGateway struct {
	Tasks     []*domain.Task
	LoadErr   error
	SaveErr   error
	SaveCalls int
}

// LoadTasks returns a copy of Tasks.
func (m *MockTaskGateway) LoadTasks() ([]*domain.Task, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return domain.CloneTasks(m.Tasks), nil
}

// SaveTasks records a copy of tasks.
func (m *MockTaskGateway) SaveTasks(tasks []*domain.Task) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Tasks = domain.CloneTasks(tasks)
	return nil
}

// MockTaskRepository is a test double for domain.TaskRepository.
// It keeps tasks in insertion order and returns copies.
// Fields are ordered to minimize memory padding.
type MockTaskRepository struct {
	Clock     domain.Clock
	GetErr    error
	ListErr   error
	SaveErr   error
	DeleteErr error
	Tasks     []*domain.Task
	NextIDN   int
	Notified  int
	Reloads   int
}

// NewMockTaskRepository creates a MockTaskRepository holding copies of tasks.
func NewMockTaskRepository(tasks ...*domain.Task) *MockTaskRepository {
	return &MockTaskRepository{
		Tasks:   domain.CloneTasks(tasks),
		NextIDN: 1,
		Clock:   domain.RealClock{},
	}
}

func (m *MockTaskRepository) index(id string) int {
	return slices.IndexFunc(m.Tasks, func(t *domain.Task) bool { return t.ID == id })
}

// Get retrieves a task by ID.
func (m *MockTaskRepository) Get(id string) (*domain.Task, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	i := m.index(id)
	if i < 0 {
		return nil, domain.ErrTaskNotFound
	}
	return m.Tasks[i].Clone(), nil
}

// List returns all tasks.
func (m *MockTaskRepository) List() ([]*domain.Task, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return domain.CloneTasks(m.Tasks), nil
}

// Create appends a task built from draft without resolving user names.
func (m *MockTaskRepository) Create(draft domain.TaskDraft) (*domain.Task, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if m.SaveErr != nil {
		return nil, m.SaveErr
	}
	now := m.Clock.Now()
	task := &domain.Task{
		ID:             fmt.Sprintf("%d", m.NextIDN),
		Title:          draft.Title,
		Description:    draft.Description,
		Priority:       draft.Priority,
		Status:         draft.Status,
		AssigneeID:     draft.AssigneeID,
		ReporterID:     draft.ReporterID,
		DueDate:        draft.DueDate,
		EstimatedHours: draft.EstimatedHours,
		Tags:           draft.Tags,
		CreatedAt:      now,
		UpdatedAt:      now,
		TimeEntries:    []domain.TimeEntry{},
	}
	if task.Status == "" {
		task.Status = domain.StatusOpen
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}
	m.NextIDN++
	m.Tasks = append(m.Tasks, task)
	m.Notified++
	return task.Clone(), nil
}

// Update merges patch into the task.
func (m *MockTaskRepository) Update(id string, patch domain.TaskPatch) (*domain.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	i := m.index(id)
	if i < 0 {
		return nil, domain.ErrTaskNotFound
	}
	if m.SaveErr != nil {
		return nil, m.SaveErr
	}
	patch.ApplyTo(m.Tasks[i])
	m.Tasks[i].UpdatedAt = m.Clock.Now()
	m.Notified++
	return m.Tasks[i].Clone(), nil
}

// Replace stores next in place of the task with the same ID.
func (m *MockTaskRepository) Replace(next *domain.Task) (*domain.Task, error) {
	i := m.index(next.ID)
	if i < 0 {
		return nil, domain.ErrTaskNotFound
	}
	if m.SaveErr != nil {
		return nil, m.SaveErr
	}
	m.Tasks[i] = next.Clone()
	m.Notified++
	return next.Clone(), nil
}

// Delete removes a task by ID.
func (m *MockTaskRepository) Delete(id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if i := m.index(id); i >= 0 {
		m.Tasks = slices.Delete(m.Tasks, i, i+1)
		m.Notified++
	}
	return nil
}

// AddTimeEntry appends a time entry.
func (m *MockTaskRepository) AddTimeEntry(id string, draft domain.TimeEntryDraft) (*domain.Task, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	i := m.index(id)
	if i < 0 {
		return nil, domain.ErrTaskNotFound
	}
	if m.SaveErr != nil {
		return nil, m.SaveErr
	}
	t := m.Tasks[i]
	t.TimeEntries = append(t.TimeEntries, domain.TimeEntry{
		ID:          fmt.Sprintf("e%d", len(t.TimeEntries)+1),
		TaskID:      id,
		UserID:      draft.UserID,
		UserName:    draft.UserName,
		Description: draft.Description,
		Date:        draft.Date,
		Hours:       draft.Hours,
		CreatedAt:   m.Clock.Now(),
	})
	t.UpdatedAt = m.Clock.Now()
	m.Notified++
	return t.Clone(), nil
}

// Subscribe is a no-op; Notified counts mutations instead.
func (m *MockTaskRepository) Subscribe(func()) func() {
	return func() {}
}

// Reload counts the call.
func (m *MockTaskRepository) Reload() {
	m.Reloads++
}

// MockSessionStore is a test double for the current-user and settings records.
type MockSessionStore struct {
	User           *domain.User
	UserSettings   *domain.UserSettings
	SystemSettings *domain.SystemSettings
	GetErr         error
	SetErr         error
	Cleared        bool
}

// CurrentUser returns the logged-in user.
func (m *MockSessionStore) CurrentUser() (*domain.User, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.User == nil {
		return nil, nil
	}
	u := *m.User
	return &u, nil
}

// SetCurrentUser records user as logged in.
func (m *MockSessionStore) SetCurrentUser(user domain.User) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.User = &user
	return nil
}

// ClearCurrentUser logs out.
func (m *MockSessionStore) ClearCurrentUser() error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.User = nil
	return nil
}

// LoadUserSettings returns the stored settings or the defaults.
func (m *MockSessionStore) LoadUserSettings() (domain.UserSettings, error) {
	if m.GetErr != nil {
		return domain.UserSettings{}, m.GetErr
	}
	if m.UserSettings == nil {
		return domain.DefaultUserSettings(), nil
	}
	return *m.UserSettings, nil
}

// SaveUserSettings stores settings.
func (m *MockSessionStore) SaveUserSettings(s domain.UserSettings) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.UserSettings = &s
	return nil
}

// LoadSystemSettings returns the stored settings or the defaults.
func (m *MockSessionStore) LoadSystemSettings() (domain.SystemSettings, error) {
	if m.GetErr != nil {
		return domain.SystemSettings{}, m.GetErr
	}
	if m.SystemSettings == nil {
		return domain.DefaultSystemSettings(), nil
	}
	return *m.SystemSettings, nil
}

// SaveSystemSettings stores settings.
func (m *MockSessionStore) SaveSystemSettings(s domain.SystemSettings) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.SystemSettings = &s
	return nil
}

// Clear removes settings. The logged-in user is kept.
func (m *MockSessionStore) Clear() error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.UserSettings = nil
	m.SystemSettings = nil
	m.Cleared = true
	return nil
}

// MockStoreInitializer is a test double for domain.StoreInitializer.
type MockStoreInitializer struct {
	InitErr error
	Calls   int
}

// Initialize records the call.
func (m *MockStoreInitializer) Initialize() error {
	m.Calls++
	return m.InitErr
}

// MockPasswordHasher is a test double for domain.PasswordHasher.
type MockPasswordHasher struct {
	HashResult string
	HashErr    error
	Passwords  []string
}

// Hash records password and returns the configured result.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	m.Passwords = append(m.Passwords, password)
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return m.HashResult, nil
}

// LogEntry is one line recorded by MockLogger.
type LogEntry struct {
	Level    string
	TaskID   string
	Category string
	Msg      string
}

// MockLogger records log calls.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) add(level, taskID, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, TaskID: taskID, Category: category, Msg: msg})
}

// Info records an info line.
func (m *MockLogger) Info(taskID, category, msg string) { m.add("INFO", taskID, category, msg) }

// Debug records a debug line.
func (m *MockLogger) Debug(taskID, category, msg string) { m.add("DEBUG", taskID, category, msg) }

// Warn records a warn line.
func (m *MockLogger) Warn(taskID, category, msg string) { m.add("WARN", taskID, category, msg) }

// Error records an error line.
func (m *MockLogger) Error(taskID, category, msg string) { m.add("ERROR", taskID, category, msg) }

// Levels returns the recorded levels in order.
func (m *MockLogger) Levels() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		out = append(out, e.Level)
	}
	return out
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// Load returns the configured config.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}

// LoadWithOptions returns the configured config.
func (m *MockConfigLoader) LoadWithOptions(domain.LoadConfigOptions) (*domain.Config, error) {
	return m.Load()
}

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	GlobalInfo     domain.ConfigInfo
	ProjectInfo    domain.ConfigInfo
	InitGlobalErr  error
	InitProjectErr error
	GlobalInits    int
	ProjectInits   int
}

// GetGlobalConfigInfo returns GlobalInfo.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo { return m.GlobalInfo }

// GetProjectConfigInfo returns ProjectInfo.
func (m *MockConfigManager) GetProjectConfigInfo() domain.ConfigInfo { return m.ProjectInfo }

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig() error {
	m.GlobalInits++
	return m.InitGlobalErr
}

// InitProjectConfig records the call.
func (m *MockConfigManager) InitProjectConfig() error {
	m.ProjectInits++
	return m.InitProjectErr
}

// Ensure mocks implement their ports.
var (
	_ domain.Clock            = (*MockClock)(nil)
	_ domain.IDGenerator      = (*MockIDGenerator)(nil)
	_ domain.KVStore          = (*MockKVStore)(nil)
	_ domain.TaskGateway      = (*MockTaskGateway)(nil)
	_ domain.TaskRepository   = (*MockTaskRepository)(nil)
	_ domain.StoreInitializer = (*MockStoreInitializer)(nil)
	_ domain.Logger           = (*MockLogger)(nil)
	_ domain.ConfigLoader     = (*MockConfigLoader)(nil)
	_ domain.ConfigManager    = (*MockConfigManager)(nil)
	_ domain.SessionStore     = (*MockSessionStore)(nil)
	_ domain.SettingsStore    = (*MockSessionStore)(nil)
	_ domain.DataClearer      = (*MockSessionStore)(nil)
)
