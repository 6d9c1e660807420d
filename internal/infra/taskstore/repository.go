// Package taskstore provides the in-memory task collection that every view reads.
// Every mutation persists the full collection through a domain.TaskGateway
// before it becomes visible.
package taskstore

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/runoshun/bugtrack/internal/domain"
)

// maxIDAttempts bounds the retries when the generator returns an ID already in use.
const maxIDAttempts = 8

// Repository implements domain.TaskRepository.
type Repository struct {
	gateway     domain.TaskGateway
	users       domain.UserDirectory
	ids         domain.IDGenerator
	clock       domain.Clock
	subscribers map[int]func()
	tasks       []*domain.Task
	nextSubID   int
	mu          sync.Mutex
	loaded      bool
}

// New creates a Repository. The collection is loaded lazily on first use.
func New(gateway domain.TaskGateway, users domain.UserDirectory, ids domain.IDGenerator, clock domain.Clock) *Repository {
	return &Repository{
		gateway:     gateway,
		users:       users,
		ids:         ids,
		clock:       clock,
		subscribers: make(map[int]func()),
	}
}

// Get returns a copy of the task with the given ID.
func (r *Repository) Get(id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(); err != nil {
		return nil, err
	}
	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%s: %w", id, domain.ErrTaskNotFound)
	}
	return r.tasks[i].Clone(), nil
}

// List returns copies of all tasks in collection order.
func (r *Repository) List() ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(); err != nil {
		return nil, err
	}
	return domain.CloneTasks(r.tasks), nil
}

// Create validates the draft, assigns an ID and timestamps, and appends the task.
func (r *Repository) Create(draft domain.TaskDraft) (*domain.Task, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	assignee, ok := r.users.FindByID(draft.AssigneeID)
	if !ok {
		return nil, fmt.Errorf("%q: %w", draft.AssigneeID, domain.ErrUnknownAssignee)
	}
	reporter, ok := r.users.FindByID(draft.ReporterID)
	if !ok {
		return nil, fmt.Errorf("%q: %w", draft.ReporterID, domain.ErrUnknownReporter)
	}

	var created *domain.Task
	err := r.mutate(func(tasks []*domain.Task) ([]*domain.Task, error) {
		id, err := r.newID(tasks)
		if err != nil {
			return nil, err
		}
		now := r.clock.Now()
		task := &domain.Task{
			ID:             id,
			Title:          draft.Title,
			Description:    draft.Description,
			Priority:       draft.Priority,
			Status:         draft.Status,
			AssigneeID:     assignee.ID,
			AssigneeName:   assignee.Name,
			ReporterID:     reporter.ID,
			ReporterName:   reporter.Name,
			CreatedAt:      now,
			UpdatedAt:      now,
			EstimatedHours: draft.EstimatedHours,
			Tags:           domain.NormalizeTags(draft.Tags),
			TimeEntries:    []domain.TimeEntry{},
		}
		if draft.DueDate != nil {
			d := *draft.DueDate
			task.DueDate = &d
		}
		if task.Status == "" {
			task.Status = domain.StatusOpen
		}
		if task.Priority == "" {
			task.Priority = domain.PriorityMedium
		}
		created = task
		return append(tasks, task), nil
	})
	if err != nil {
		return nil, err
	}
	return created.Clone(), nil
}

// Update merges patch into the task and refreshes UpdatedAt.
func (r *Repository) Update(id string, patch domain.TaskPatch) (*domain.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	var assignee domain.User
	if patch.AssigneeID != nil {
		u, ok := r.users.FindByID(*patch.AssigneeID)
		if !ok {
			return nil, fmt.Errorf("%q: %w", *patch.AssigneeID, domain.ErrUnknownAssignee)
		}
		assignee = u
	}

	var updated *domain.Task
	err := r.mutate(func(tasks []*domain.Task) ([]*domain.Task, error) {
		i := indexOf(tasks, id)
		if i < 0 {
			return nil, fmt.Errorf("%s: %w", id, domain.ErrTaskNotFound)
		}
		next := tasks[i].Clone()
		patch.ApplyTo(next)
		if patch.AssigneeID != nil {
			next.AssigneeName = assignee.Name
		}
		next.UpdatedAt = r.touch(tasks[i].UpdatedAt, r.clock.Now())
		tasks[i] = next
		updated = next
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return updated.Clone(), nil
}

// Replace stores next in place of the task with the same ID.
// UpdatedAt is next.UpdatedAt, raised if needed so it strictly increases.
func (r *Repository) Replace(next *domain.Task) (*domain.Task, error) {
	var replaced *domain.Task
	err := r.mutate(func(tasks []*domain.Task) ([]*domain.Task, error) {
		i := indexOf(tasks, next.ID)
		if i < 0 {
			return nil, fmt.Errorf("%s: %w", next.ID, domain.ErrTaskNotFound)
		}
		t := next.Clone()
		t.UpdatedAt = r.touch(tasks[i].UpdatedAt, next.UpdatedAt)
		tasks[i] = t
		replaced = t
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return replaced.Clone(), nil
}

// Delete removes the task and its time entries. Missing IDs are a no-op.
func (r *Repository) Delete(id string) error {
	return r.mutate(func(tasks []*domain.Task) ([]*domain.Task, error) {
		i := indexOf(tasks, id)
		if i < 0 {
			return nil, nil
		}
		return slices.Delete(tasks, i, i+1), nil
	})
}

// AddTimeEntry appends a time entry and refreshes the task's UpdatedAt.
func (r *Repository) AddTimeEntry(id string, draft domain.TimeEntryDraft) (*domain.Task, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Task
	err := r.mutate(func(tasks []*domain.Task) ([]*domain.Task, error) {
		i := indexOf(tasks, id)
		if i < 0 {
			return nil, fmt.Errorf("%s: %w", id, domain.ErrTaskNotFound)
		}
		now := r.clock.Now()
		next := tasks[i].Clone()
		next.TimeEntries = append(next.TimeEntries, domain.TimeEntry{
			ID:          r.ids.NewID(),
			TaskID:      id,
			UserID:      draft.UserID,
			UserName:    draft.UserName,
			Description: draft.Description,
			Date:        draft.Date,
			Hours:       draft.Hours,
			CreatedAt:   now,
		})
		next.UpdatedAt = r.touch(tasks[i].UpdatedAt, now)
		tasks[i] = next
		updated = next
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return updated.Clone(), nil
}

// Subscribe registers fn to run after every successful mutation.
func (r *Repository) Subscribe(fn func()) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextSubID
	r.nextSubID++
	r.subscribers[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subscribers, id)
	}
}

// Reload discards the in-memory collection so the next call reads from storage.
func (r *Repository) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = nil
	r.loaded = false
}

// mutate applies fn to a copy of the collection, persists the result and then
// swaps it in. fn returns a nil slice to signal that nothing changed.
// Subscribers run after the lock is released.
func (r *Repository) mutate(fn func([]*domain.Task) ([]*domain.Task, error)) error {
	r.mu.Lock()
	if err := r.ensureLoaded(); err != nil {
		r.mu.Unlock()
		return err
	}

	next, err := fn(slices.Clone(r.tasks))
	if err != nil || next == nil {
		r.mu.Unlock()
		return err
	}
	if err := r.gateway.SaveTasks(next); err != nil {
		r.mu.Unlock()
		return fmt.Errorf("persist tasks: %w", err)
	}
	r.tasks = next

	subs := make([]func(), 0, len(r.subscribers))
	for _, fn := range r.subscribers {
		subs = append(subs, fn)
	}
	r.mu.Unlock()

	for _, notify := range subs {
		notify()
	}
	return nil
}

// ensureLoaded loads the collection on first use. Caller must hold r.mu.
func (r *Repository) ensureLoaded() error {
	if r.loaded {
		return nil
	}
	tasks, err := r.gateway.LoadTasks()
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	r.tasks = tasks
	r.loaded = true
	return nil
}

// newID returns a generator ID not used by any task in tasks.
func (r *Repository) newID(tasks []*domain.Task) (string, error) {
	for range maxIDAttempts {
		id := r.ids.NewID()
		if id != "" && indexOf(tasks, id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("generate task id: %d attempts collided", maxIDAttempts)
}

// touch returns the new UpdatedAt: candidate, or prev+1ns if candidate is not after prev.
func (r *Repository) touch(prev, candidate time.Time) time.Time {
	if candidate.After(prev) {
		return candidate
	}
	return prev.Add(time.Nanosecond)
}

func (r *Repository) indexOf(id string) int {
	return indexOf(r.tasks, id)
}

func indexOf(tasks []*domain.Task, id string) int {
	return slices.IndexFunc(tasks, func(t *domain.Task) bool { return t.ID == id })
}

var _ domain.TaskRepository = (*Repository)(nil)
