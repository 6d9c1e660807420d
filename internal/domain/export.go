package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// ExportFormat selects the task export serialization.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)

// ParseExportFormat converts user input into an ExportFormat.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(s)) {
	case ExportCSV, "":
		return ExportCSV, nil
	case ExportJSON:
		return ExportJSON, nil
	default:
		return "", ErrInvalidExport
	}
}

// csvHeader is the fixed export column list.
var csvHeader = []string{"Title", "Status", "Priority", "Assignee", "Created", "Due Date", "Time Logged"}

// FormatCSV renders tasks with the fixed export columns, one row per task in the given order.
// The title is always quoted; other fields are quoted only when they contain a comma,
// quote or newline.
func FormatCSV(tasks []*Task) string {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.UTC().Format(DateLayout)
		}
		row := []string{
			quoteCSV(t.Title),
			csvField(string(t.Status)),
			csvField(string(t.Priority)),
			csvField(t.AssigneeName),
			t.CreatedAt.UTC().Format(DateLayout),
			due,
			FormatHours(TotalHours(t)),
		}
		b.WriteByte('\n')
		b.WriteString(strings.Join(row, ","))
	}
	return b.String()
}

func csvField(s string) string {
	if strings.ContainsAny(s, ",\"\n\r") {
		return quoteCSV(s)
	}
	return s
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// FormatHours renders hours in the shortest exact decimal form ("2.5", "0").
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// FormatJSON renders tasks as an indented JSON array.
func FormatJSON(tasks []*Task) (string, error) {
	if tasks == nil {
		tasks = []*Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DataExport is the full data dump offered from the settings page.
type DataExport struct {
	ExportDate   time.Time    `json:"exportDate"`
	Tasks        []*Task      `json:"tasks"`
	UserSettings UserSettings `json:"userSettings"`
}

// ExportFileName returns the suggested download name for an export made at now.
func ExportFileName(prefix string, format ExportFormat, now time.Time) string {
	return prefix + "-" + now.UTC().Format(DateLayout) + "." + string(format)
}
