package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCSV(t *testing.T) {
	created := time.Date(2025, 5, 15, 10, 0, 0, 0, time.UTC)
	due := time.Date(2025, 5, 20, 23, 59, 59, 0, time.UTC)
	tasks := []*Task{
		{Title: "Fix login", Status: StatusInProgress, Priority: PriorityCritical, AssigneeName: "Yuvraj Singh",
			CreatedAt: created, DueDate: &due, TimeEntries: []TimeEntry{{Hours: 2}, {Hours: 0.5}}},
		{Title: `Say "hi", world`, Status: StatusOpen, Priority: PriorityLow, AssigneeName: "Aman Kumar", CreatedAt: created},
	}

	lines := strings.Split(FormatCSV(tasks), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "Title,Status,Priority,Assignee,Created,Due Date,Time Logged", lines[0])
	assert.Equal(t, `"Fix login",in-progress,critical,Yuvraj Singh,2025-05-15,2025-05-20,2.5`, lines[1])
	assert.Equal(t, `"Say ""hi"", world",open,low,Aman Kumar,2025-05-15,,0`, lines[2])
}

func TestFormatCSV_Empty(t *testing.T) {
	assert.Equal(t, "Title,Status,Priority,Assignee,Created,Due Date,Time Logged", FormatCSV(nil))
}

func TestFormatJSON(t *testing.T) {
	out, err := FormatJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)

	out, err = FormatJSON([]*Task{{ID: "1", Title: "A", Status: StatusOpen}})
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "open", decoded[0]["status"])
	assert.Equal(t, "A", decoded[0]["title"])
}

func TestParseExportFormat(t *testing.T) {
	f, err := ParseExportFormat("")
	require.NoError(t, err)
	assert.Equal(t, ExportCSV, f)

	f, err = ParseExportFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, ExportJSON, f)

	_, err = ParseExportFormat("xml")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestExportFileName(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, "tasks-2025-06-01.csv", ExportFileName("tasks", ExportCSV, now))
}
