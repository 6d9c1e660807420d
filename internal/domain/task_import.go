package domain

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ImportedTask is one task definition read from an import file.
// Assignee may be a user ID or email.
type ImportedTask struct {
	Estimate    *float64 `yaml:"estimate"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Priority    string   `yaml:"priority"`
	Status      string   `yaml:"status"`
	Assignee    string   `yaml:"assignee"`
	Due         string   `yaml:"due"` // yyyy-mm-dd
	Tags        []string `yaml:"tags"`
}

type importFile struct {
	Tasks []ImportedTask `yaml:"tasks"`
}

// ParseImportFile parses a YAML import file. The file is either a mapping with a
// "tasks" list or a bare list of tasks:
//
//	tasks:
//	  - title: Fix crash on save
//	    description: Saving a draft crashes the editor.
//	    priority: high
//	    assignee: aman@company.com
//	    due: 2025-07-01
//	    estimate: 3
//	    tags: [editor, crash]
func ParseImportFile(content []byte) ([]ImportedTask, error) {
	content = bytes.TrimSpace(content)
	if len(content) == 0 {
		return nil, ErrEmptyImport
	}

	var tasks []ImportedTask
	if content[0] == '-' {
		if err := yaml.Unmarshal(content, &tasks); err != nil {
			return nil, fmt.Errorf("parse import file: %w", err)
		}
	} else {
		var file importFile
		if err := yaml.Unmarshal(content, &file); err != nil {
			return nil, fmt.Errorf("parse import file: %w", err)
		}
		tasks = file.Tasks
	}

	if len(tasks) == 0 {
		return nil, ErrEmptyImport
	}
	return tasks, nil
}

// ToDraft converts the imported task into a TaskDraft, resolving the assignee
// through users and using reporterID as the reporter. An empty assignee
// means the reporter.
func (it ImportedTask) ToDraft(users UserDirectory, reporterID string, defaultPriority Priority) (TaskDraft, error) {
	draft := TaskDraft{
		Title:          it.Title,
		Description:    it.Description,
		Priority:       Priority(it.Priority),
		Status:         Status(it.Status),
		ReporterID:     reporterID,
		EstimatedHours: it.Estimate,
		Tags:           NormalizeTags(it.Tags),
	}
	if draft.Priority == "" {
		draft.Priority = defaultPriority
	}

	assignee := it.Assignee
	if assignee == "" {
		assignee = reporterID
	}
	if u, ok := users.FindByID(assignee); ok {
		draft.AssigneeID = u.ID
	} else if u, ok := users.FindByEmail(assignee); ok {
		draft.AssigneeID = u.ID
	} else {
		return TaskDraft{}, fmt.Errorf("%q: %w", it.Assignee, ErrUnknownAssignee)
	}

	if it.Due != "" {
		due, err := ParseDueDate(it.Due)
		if err != nil {
			return TaskDraft{}, err
		}
		draft.DueDate = &due
	}
	return draft, nil
}
