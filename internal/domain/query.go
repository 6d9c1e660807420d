package domain

import (
	"slices"
	"strings"
)

// FilterAll is the sentinel meaning "no constraint" for status, priority and assignee filters.
const FilterAll = "all"

// ScopeForUser returns the tasks the user may see: managers see all tasks,
// developers only the tasks assigned to them. Any other role sees nothing.
// Every view must go through this before filtering.
func ScopeForUser(tasks []*Task, role Role, userID string) []*Task {
	if role == RoleManager {
		return slices.Clone(tasks)
	}
	var scoped []*Task
	for _, t := range tasks {
		if CanView(t, role, userID) {
			scoped = append(scoped, t)
		}
	}
	return scoped
}

// CanView reports whether the user may see task. It is the single-task form of
// ScopeForUser and guards every lookup by ID.
func CanView(task *Task, role Role, userID string) bool {
	switch role {
	case RoleManager:
		return true
	case RoleDeveloper:
		return task.IsAssignedTo(userID)
	default:
		return false
	}
}

// TaskFilter specifies criteria for narrowing a task list.
// Empty or "all" means no constraint for Status, Priority and AssigneeID.
type TaskFilter struct {
	Search     string // case-insensitive substring of title, description or any tag
	Status     string
	Priority   string
	AssigneeID string
}

// Matches returns true if the task satisfies every active criterion.
func (f TaskFilter) Matches(t *Task) bool {
	if !isUnconstrained(f.Status) && string(t.Status) != f.Status {
		return false
	}
	if !isUnconstrained(f.Priority) && string(t.Priority) != f.Priority {
		return false
	}
	if !isUnconstrained(f.AssigneeID) && t.AssigneeID != f.AssigneeID {
		return false
	}
	return matchesSearch(t, f.Search)
}

func isUnconstrained(v string) bool {
	return v == "" || v == FilterAll
}

func matchesSearch(t *Task, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// FilterTasks returns the tasks matching f, preserving order. The input is not modified.
func FilterTasks(tasks []*Task, f TaskFilter) []*Task {
	var out []*Task
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// SortKey selects the ordering applied by SortTasks.
type SortKey string

const (
	SortUpdated  SortKey = "updated"  // newest update first
	SortCreated  SortKey = "created"  // newest first
	SortPriority SortKey = "priority" // critical first
	SortDueDate  SortKey = "dueDate"  // earliest due first, undated last
)

// IsValid returns true if the key is a known sort key.
func (k SortKey) IsValid() bool {
	switch k {
	case SortUpdated, SortCreated, SortPriority, SortDueDate:
		return true
	default:
		return false
	}
}

// ParseSortKey converts user input into a SortKey. Empty input selects SortUpdated.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortUpdated, nil
	}
	k := SortKey(s)
	if !k.IsValid() {
		return "", ErrInvalidSortKey
	}
	return k, nil
}

// SortTasks returns a sorted copy of tasks. The sort is stable: ties keep their
// original relative order. An unknown key returns the tasks in original order.
func SortTasks(tasks []*Task, key SortKey) []*Task {
	out := slices.Clone(tasks)
	cmp := compareFunc(key)
	if cmp == nil {
		return out
	}
	slices.SortStableFunc(out, cmp)
	return out
}

func compareFunc(key SortKey) func(a, b *Task) int {
	switch key {
	case SortUpdated:
		return func(a, b *Task) int { return b.UpdatedAt.Compare(a.UpdatedAt) }
	case SortCreated:
		return func(a, b *Task) int { return b.CreatedAt.Compare(a.CreatedAt) }
	case SortPriority:
		return func(a, b *Task) int { return a.Priority.Rank() - b.Priority.Rank() }
	case SortDueDate:
		return compareDueDate
	default:
		return nil
	}
}

func compareDueDate(a, b *Task) int {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return 0
	case a.DueDate == nil:
		return 1
	case b.DueDate == nil:
		return -1
	default:
		return a.DueDate.Compare(*b.DueDate)
	}
}

// PendingApprovalTasks returns the tasks awaiting approval.
// It does not check roles; callers restrict it to manager scope.
func PendingApprovalTasks(tasks []*Task) []*Task {
	return FilterTasks(tasks, TaskFilter{Status: string(StatusPendingApproval)})
}

// TasksWithStatus returns the tasks in the given status, preserving order.
func TasksWithStatus(tasks []*Task, status Status) []*Task {
	return FilterTasks(tasks, TaskFilter{Status: string(status)})
}

// RecentTasks returns up to n tasks, most recently updated first.
func RecentTasks(tasks []*Task, n int) []*Task {
	sorted := SortTasks(tasks, SortUpdated)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// AssigneeOption is one entry of the assignee filter.
type AssigneeOption struct {
	ID   string
	Name string
}

// Assignees lists the distinct assignees of tasks in first-seen order.
func Assignees(tasks []*Task) []AssigneeOption {
	var out []AssigneeOption
	seen := make(map[string]bool)
	for _, t := range tasks {
		if seen[t.AssigneeID] {
			continue
		}
		seen[t.AssigneeID] = true
		out = append(out, AssigneeOption{ID: t.AssigneeID, Name: t.AssigneeName})
	}
	return out
}
