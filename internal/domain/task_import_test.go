package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImportFile(t *testing.T) {
	mapping := []byte(`
tasks:
  - title: Fix crash on save
    description: Saving a draft crashes the editor.
    priority: high
    assignee: aman@company.com
    due: 2025-07-01
    estimate: 3
    tags: [editor, crash]
  - title: Write changelog
    description: Summarize the release.
    assignee: "1"
`)
	tasks, err := ParseImportFile(mapping)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Fix crash on save", tasks[0].Title)
	assert.Equal(t, 3.0, *tasks[0].Estimate)
	assert.Equal(t, []string{"editor", "crash"}, tasks[0].Tags)

	list := []byte(`
- title: Only one
  description: Bare list form.
  assignee: "3"
`)
	tasks, err = ParseImportFile(list)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "3", tasks[0].Assignee)
}

func TestParseImportFile_Errors(t *testing.T) {
	_, err := ParseImportFile([]byte("   "))
	assert.ErrorIs(t, err, ErrEmptyImport)

	_, err = ParseImportFile([]byte("tasks: []"))
	assert.ErrorIs(t, err, ErrEmptyImport)

	_, err = ParseImportFile([]byte("tasks: [unclosed"))
	assert.Error(t, err)
}

func TestImportedTask_ToDraft(t *testing.T) {
	dir := NewStaticDirectory(SeedUsers())

	draft, err := ImportedTask{
		Title:       "T",
		Description: "D",
		Assignee:    "aman@company.com",
		Due:         "2025-07-01",
		Tags:        []string{"x", "x", " y "},
	}.ToDraft(dir, "2", PriorityLow)
	require.NoError(t, err)

	assert.Equal(t, "3", draft.AssigneeID)
	assert.Equal(t, "2", draft.ReporterID)
	assert.Equal(t, PriorityLow, draft.Priority)
	assert.Equal(t, []string{"x", "y"}, draft.Tags)
	assert.Equal(t, time.Date(2025, 7, 1, 23, 59, 59, 0, time.UTC), *draft.DueDate)
	require.NoError(t, draft.Validate())

	draft, err = ImportedTask{Title: "T", Description: "D"}.ToDraft(dir, "2", PriorityLow)
	require.NoError(t, err)
	assert.Equal(t, "2", draft.AssigneeID)

	_, err = ImportedTask{Title: "T", Description: "D", Assignee: "ghost"}.ToDraft(dir, "2", PriorityLow)
	assert.ErrorIs(t, err, ErrUnknownAssignee)

	_, err = ImportedTask{Title: "T", Description: "D", Assignee: "1", Due: "07/01"}.ToDraft(dir, "2", PriorityLow)
	assert.ErrorIs(t, err, ErrInvalidDate)
}
