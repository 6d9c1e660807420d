// Package domain contains core business entities, the task lifecycle rules
// and the pure aggregation functions every view shares.
package domain

import (
	"slices"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for time entry dates and exports.
const DateLayout = "2006-01-02"

// Task is a trackable bug or unit of work.
// AssigneeName and ReporterName are snapshots of the user's name at last write.
type Task struct {
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	DueDate        *time.Time  `json:"dueDate,omitempty"`
	EstimatedHours *float64    `json:"estimatedHours,omitempty"`
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Priority       Priority    `json:"priority"`
	Status         Status      `json:"status"`
	AssigneeID     string      `json:"assigneeId"`
	AssigneeName   string      `json:"assigneeName"`
	ReporterID     string      `json:"reporterId"`
	ReporterName   string      `json:"reporterName"`
	Tags           []string    `json:"tags"`
	TimeEntries    []TimeEntry `json:"timeEntries"`
}

// TimeEntry records hours worked against a task. Entries are append-only.
type TimeEntry struct {
	CreatedAt   time.Time `json:"createdAt"`
	ID          string    `json:"id"`
	TaskID      string    `json:"taskId"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	Description string    `json:"description"`
	Date        string    `json:"date"` // yyyy-mm-dd
	Hours       float64   `json:"hours"`
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.EstimatedHours != nil {
		h := *t.EstimatedHours
		c.EstimatedHours = &h
	}
	c.Tags = slices.Clone(t.Tags)
	c.TimeEntries = slices.Clone(t.TimeEntries)
	return &c
}

// IsAssignedTo returns true if userID is the task's assignee.
func (t *Task) IsAssignedTo(userID string) bool {
	return userID != "" && t.AssigneeID == userID
}

// CloneTasks deep-copies a task slice.
func CloneTasks(tasks []*Task) []*Task {
	out := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Clone())
	}
	return out
}

// TaskDraft holds the caller-supplied fields of a new task.
// ID, timestamps, names and time entries are assigned by the repository.
type TaskDraft struct {
	DueDate        *time.Time
	EstimatedHours *float64
	Title          string
	Description    string
	Priority       Priority
	Status         Status // empty = open
	AssigneeID     string
	ReporterID     string
	Tags           []string
}

// Validate checks the draft's required fields.
// Assignee and reporter resolution is done by the repository.
func (d *TaskDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(d.Description) == "" {
		return ErrEmptyDescription
	}
	if d.Priority != "" && !d.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if d.Status != "" && !d.Status.IsValid() {
		return ErrInvalidStatus
	}
	if d.EstimatedHours != nil && *d.EstimatedHours < 0 {
		return ErrInvalidEstimate
	}
	if d.AssigneeID == "" {
		return ErrUnknownAssignee
	}
	return nil
}

// TaskPatch is a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title          *string
	Description    *string
	Priority       *Priority
	Status         *Status
	AssigneeID     *string
	DueDate        *time.Time
	EstimatedHours *float64
	Tags           *[]string
	ClearDueDate   bool
	ClearEstimate  bool
}

// IsEmpty returns true if the patch changes nothing.
func (p *TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil && p.Status == nil &&
		p.AssigneeID == nil && p.DueDate == nil && p.EstimatedHours == nil && p.Tags == nil &&
		!p.ClearDueDate && !p.ClearEstimate
}

// Validate checks the values the patch would write.
func (p *TaskPatch) Validate() error {
	if p.IsEmpty() {
		return ErrNoFieldsToUpdate
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrEmptyTitle
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return ErrEmptyDescription
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if p.Status != nil && !p.Status.IsValid() {
		return ErrInvalidStatus
	}
	if p.EstimatedHours != nil && *p.EstimatedHours < 0 {
		return ErrInvalidEstimate
	}
	return nil
}

// ApplyTo writes the patch onto t. Assignee name resolution is left to the caller.
func (p *TaskPatch) ApplyTo(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.AssigneeID != nil {
		t.AssigneeID = *p.AssigneeID
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.ClearEstimate {
		t.EstimatedHours = nil
	} else if p.EstimatedHours != nil {
		h := *p.EstimatedHours
		t.EstimatedHours = &h
	}
	if p.Tags != nil {
		t.Tags = NormalizeTags(*p.Tags)
	}
}

// TimeEntryDraft holds the caller-supplied fields of a new time entry.
type TimeEntryDraft struct {
	UserID      string
	UserName    string
	Description string
	Date        string // yyyy-mm-dd
	Hours       float64
}

// Validate checks hours and date.
func (d *TimeEntryDraft) Validate() error {
	if !(d.Hours > 0) {
		return ErrInvalidHours
	}
	if _, err := time.Parse(DateLayout, d.Date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// NormalizeTags trims tags and drops empties and duplicates, keeping first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// ParseDueDate parses a yyyy-mm-dd date as the end of that day in UTC.
func ParseDueDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d.Add(24*time.Hour - time.Second), nil
}
