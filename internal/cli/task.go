package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/bugtrack/internal/app"
	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase"
)

// shortIDLen is the number of ID characters shown in lists.
const shortIDLen = 8

// newNewCommand creates the new command for creating tasks.
func newNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Priority    string
		Assignee    string
		Due         string
		From        string
		Tags        []string
		Estimate    float64
		DryRun      bool
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new task",
		Long: `Create a new task. You are recorded as the reporter.

The task is created with status 'open'. The assignee defaults to you and
the priority to your defaultPriority setting.

Examples:
  # Create a task for yourself
  bugtrack new --title "Fix login redirect" --body "Users land on a blank page."

  # Assign to a teammate with a due date and estimate
  bugtrack new --title "Slow dashboard" --body "Takes 8s to load." \
    --assignee aman@company.com --priority high --due 2025-07-01 --estimate 4 --tag perf

  # Create tasks from a YAML file
  bugtrack new --from tasks.yaml

  # Validate a file without creating tasks
  bugtrack new --from tasks.yaml --dry-run

File format for --from:
  tasks:
    - title: Fix crash on save
      description: Saving a draft crashes the editor.
      priority: high
      assignee: aman@company.com
      due: 2025-07-01
      estimate: 3
      tags: [editor, crash]`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.From != "" {
				return importTasksFromFile(cmd, c, opts.From, opts.DryRun)
			}

			// Require --title when not using --from
			if opts.Title == "" {
				return fmt.Errorf("required flag(s) \"title\" not set")
			}

			input := usecase.NewTaskInput{
				Title:       opts.Title,
				Description: opts.Description,
				Priority:    domain.Priority(opts.Priority),
				AssigneeID:  resolveUserID(c, opts.Assignee),
				Tags:        opts.Tags,
			}
			if opts.Due != "" {
				due, err := domain.ParseDueDate(opts.Due)
				if err != nil {
					return err
				}
				input.DueDate = &due
			}
			if cmd.Flags().Changed("estimate") {
				input.EstimatedHours = &opts.Estimate
			}

			out, err := c.NewTaskUseCase().Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", out.Task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Task title (required unless --from is used)")
	cmd.Flags().StringVar(&opts.Description, "body", "", "Task description")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "Priority: low, medium, high, critical")
	cmd.Flags().StringVar(&opts.Assignee, "assignee", "", "Assignee ID or email (default: you)")
	cmd.Flags().StringVar(&opts.Due, "due", "", "Due date (yyyy-mm-dd)")
	cmd.Flags().Float64Var(&opts.Estimate, "estimate", 0, "Estimated hours")
	cmd.Flags().StringArrayVar(&opts.Tags, "tag", nil, "Tags (can specify multiple)")
	cmd.Flags().StringVar(&opts.From, "from", "", "Create tasks from a YAML file")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Validate without creating (requires --from)")

	return cmd
}

// importTasksFromFile creates tasks from a YAML file.
func importTasksFromFile(cmd *cobra.Command, c *app.Container, filePath string, dryRun bool) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	out, err := c.ImportTasksUseCase().Execute(cmd.Context(), usecase.ImportTasksInput{
		Content: content,
		DryRun:  dryRun,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if dryRun {
		_, _ = fmt.Fprintf(w, "Would create %d task(s):\n", len(out.Drafts))
		for _, d := range out.Drafts {
			_, _ = fmt.Fprintf(w, "  [%s] %s (assignee %s)\n", d.Priority, d.Title, d.AssigneeID)
		}
		return nil
	}

	_, _ = fmt.Fprintf(w, "Created %d task(s):\n", len(out.Tasks))
	for _, t := range out.Tasks {
		_, _ = fmt.Fprintf(w, "  %s %s\n", shortID(t.ID), t.Title)
	}
	return nil
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Status   string
		Priority string
		Assignee string
		Search   string
		Sort     string
		JSON     bool
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `Display the tasks you can see.

Managers see every task; developers see the tasks assigned to them.

Output columns:
  ID, STATUS, PRIORITY, ASSIGNEE, DUE, HOURS, TITLE

Examples:
  # Tasks sorted by last update (default)
  bugtrack list

  # Open high-priority tasks
  bugtrack list --status open --priority high

  # Search title, description and tags
  bugtrack list -q login

  # Sort by due date, earliest first
  bugtrack list --sort dueDate`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{
				Filter: domain.TaskFilter{
					Search:     opts.Search,
					Status:     opts.Status,
					Priority:   opts.Priority,
					AssigneeID: resolveUserID(c, opts.Assignee),
				},
				SortBy: opts.Sort,
			})
			if err != nil {
				return err
			}

			if opts.JSON {
				return writeJSON(cmd.OutOrStdout(), out.Tasks)
			}
			printTaskList(cmd.OutOrStdout(), out.Tasks, c.Clock.Now())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d task(s)\n", len(out.Tasks), out.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "Filter by status (or 'all')")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "Filter by priority (or 'all')")
	cmd.Flags().StringVar(&opts.Assignee, "assignee", "", "Filter by assignee ID or email (or 'all')")
	cmd.Flags().StringVarP(&opts.Search, "search", "q", "", "Search title, description and tags")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "Sort by: updated, created, priority, dueDate")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")

	return cmd
}

// printTaskList prints tasks in a table.
func printTaskList(w io.Writer, tasks []*domain.Task, now time.Time) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tPRIORITY\tASSIGNEE\tDUE\tHOURS\tTITLE")

	for _, task := range tasks {
		due := "-"
		if task.DueDate != nil {
			due = task.DueDate.UTC().Format(domain.DateLayout)
			if domain.IsOverdue(task, now) {
				due += " !"
			}
		}

		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(task.ID),
			task.Status,
			task.Priority,
			task.AssigneeName,
			due,
			domain.FormatHours(domain.TotalHours(task)),
			task.Title,
		)
	}
}

// newShowCommand creates the show command.
func newShowCommand(c *app.Container) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Display task details",
		Long: `Display detailed information about a task: fields, time entries
and the workflow actions you can take.

The ID may be abbreviated to any unique prefix.

Examples:
  bugtrack show 3
  bugtrack show 3f2a --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := resolveTaskID(c, args[0])
			if err != nil {
				return err
			}

			out, err := c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{TaskID: taskID})
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), out.Task)
			}
			printTaskDetails(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output in JSON format")

	return cmd
}

// printTaskDetails prints a task with its time entries.
func printTaskDetails(w io.Writer, out *usecase.ShowTaskOutput) {
	task := out.Task

	_, _ = fmt.Fprintf(w, "# Task %s: %s\n\n", task.ID, task.Title)
	_, _ = fmt.Fprintf(w, "%s\n\n", task.Description)

	_, _ = fmt.Fprintf(w, "Status: %s\n", task.Status.Display())
	_, _ = fmt.Fprintf(w, "Priority: %s\n", task.Priority)
	_, _ = fmt.Fprintf(w, "Assignee: %s\n", task.AssigneeName)
	_, _ = fmt.Fprintf(w, "Reporter: %s\n", task.ReporterName)

	if task.DueDate != nil {
		overdue := ""
		if out.Overdue {
			overdue = " (overdue)"
		}
		_, _ = fmt.Fprintf(w, "Due: %s%s\n", task.DueDate.UTC().Format(domain.DateLayout), overdue)
	}

	logged := domain.FormatHours(out.TotalHours) + "h"
	if task.EstimatedHours != nil {
		logged += " of " + domain.FormatHours(*task.EstimatedHours) + "h estimated"
	}
	_, _ = fmt.Fprintf(w, "Time: %s\n", logged)

	if len(task.Tags) > 0 {
		_, _ = fmt.Fprintf(w, "Tags: [%s]\n", strings.Join(task.Tags, ", "))
	}

	_, _ = fmt.Fprintf(w, "Created: %s\n", task.CreatedAt.Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "Updated: %s\n", task.UpdatedAt.Format(time.RFC3339))

	if len(out.Actions) > 0 {
		names := make([]string, len(out.Actions))
		for i, a := range out.Actions {
			names[i] = string(a)
		}
		_, _ = fmt.Fprintf(w, "Actions: %s\n", strings.Join(names, ", "))
	}

	if len(task.TimeEntries) > 0 {
		_, _ = fmt.Fprintln(w, "\nTime entries:")
		for _, e := range task.TimeEntries {
			_, _ = fmt.Fprintf(w, "  %s  %5sh  %s", e.Date, domain.FormatHours(e.Hours), e.UserName)
			if e.Description != "" {
				_, _ = fmt.Fprintf(w, ": %s", e.Description)
			}
			_, _ = fmt.Fprintln(w)
		}
	}
}

// newEditCommand creates the edit command.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Priority    string
		Status      string
		Assignee    string
		Due         string
		Tags        []string
		Estimate    float64
		NoEstimate  bool
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit task information",
		Long: `Edit an existing task. Managers and the task's assignee may edit.

If no flags are provided, the description is opened in $EDITOR.

Setting --status here is a direct edit. Use start, submit, approve and
reopen for the approval workflow; with [workflow] strict_status_edit = true
direct edits must follow the same rules.

Examples:
  # Change title and priority
  bugtrack edit 3 --title "Fix login redirect" --priority critical

  # Replace tags
  bugtrack edit 3 --tag auth --tag regression

  # Clear the due date
  bugtrack edit 3 --due none

  # Edit the description in $EDITOR
  bugtrack edit 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := resolveTaskID(c, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			hasFlags := flags.Changed("title") || flags.Changed("body") ||
				flags.Changed("priority") || flags.Changed("status") ||
				flags.Changed("assignee") || flags.Changed("due") ||
				flags.Changed("tag") || flags.Changed("estimate") || flags.Changed("no-estimate")

			if !hasFlags {
				return editDescriptionWithEditor(cmd, c, taskID)
			}

			var patch domain.TaskPatch
			if flags.Changed("title") {
				patch.Title = &opts.Title
			}
			if flags.Changed("body") {
				patch.Description = &opts.Description
			}
			if flags.Changed("priority") {
				p := domain.Priority(opts.Priority)
				patch.Priority = &p
			}
			if flags.Changed("status") {
				s := domain.Status(opts.Status)
				patch.Status = &s
			}
			if flags.Changed("assignee") {
				id := resolveUserID(c, opts.Assignee)
				patch.AssigneeID = &id
			}
			if flags.Changed("due") {
				if opts.Due == "" || opts.Due == "none" {
					patch.ClearDueDate = true
				} else {
					due, err := domain.ParseDueDate(opts.Due)
					if err != nil {
						return err
					}
					patch.DueDate = &due
				}
			}
			if flags.Changed("tag") {
				patch.Tags = &opts.Tags
			}
			if flags.Changed("estimate") {
				patch.EstimatedHours = &opts.Estimate
			}
			patch.ClearEstimate = opts.NoEstimate

			out, err := c.EditTaskUseCase().Execute(cmd.Context(), usecase.EditTaskInput{
				TaskID: taskID,
				Patch:  patch,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", out.Task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "New title")
	cmd.Flags().StringVar(&opts.Description, "body", "", "New description")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "New priority")
	cmd.Flags().StringVar(&opts.Status, "status", "", "New status")
	cmd.Flags().StringVar(&opts.Assignee, "assignee", "", "New assignee ID or email")
	cmd.Flags().StringVar(&opts.Due, "due", "", "New due date (yyyy-mm-dd, or 'none' to clear)")
	cmd.Flags().StringArrayVar(&opts.Tags, "tag", nil, "Replace tags (can specify multiple)")
	cmd.Flags().Float64Var(&opts.Estimate, "estimate", 0, "New estimate in hours")
	cmd.Flags().BoolVar(&opts.NoEstimate, "no-estimate", false, "Clear the estimate")

	return cmd
}

// newRmCommand creates the rm command.
func newRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Long: `Delete a task and its time entries. Managers and the task's assignee may delete.

Examples:
  bugtrack rm 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := resolveTaskID(c, args[0])
			if err != nil {
				return err
			}

			out, err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{TaskID: taskID})
			if err != nil {
				return err
			}
			if out.Deleted {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", taskID)
			}
			return nil
		},
	}
}

// newCpCommand creates the cp command.
func newCpCommand(c *app.Container) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "cp <id>",
		Short: "Copy a task",
		Long: `Create a new open task from an existing one.

The copy keeps the description, priority, assignee, due date, estimate
and tags. Time entries are not copied and you become the reporter.

Examples:
  bugtrack cp 3
  bugtrack cp 3 --title "Port the fix to v2"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := resolveTaskID(c, args[0])
			if err != nil {
				return err
			}

			in := usecase.CopyTaskInput{SourceID: taskID}
			if cmd.Flags().Changed("title") {
				in.Title = &title
			}
			out, err := c.CopyTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Copied task %s to %s\n", taskID, out.Task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title of the copy (default: original title with \" (copy)\")")

	return cmd
}

// newLogTimeCommand creates the log-time command.
func newLogTimeCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Date        string
		Description string
		Hours       float64
	}

	cmd := &cobra.Command{
		Use:   "log-time <id>",
		Short: "Log hours worked on a task",
		Long: `Record hours you worked on a task.

Examples:
  bugtrack log-time 3 --hours 1.5 -m "Reproduced the crash"
  bugtrack log-time 3 --hours 2 --date 2025-06-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := resolveTaskID(c, args[0])
			if err != nil {
				return err
			}

			out, err := c.LogTimeUseCase().Execute(cmd.Context(), usecase.LogTimeInput{
				TaskID:      taskID,
				Hours:       opts.Hours,
				Date:        opts.Date,
				Description: opts.Description,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged %sh on %s (total %sh)\n",
				domain.FormatHours(out.Entry.Hours), out.Entry.Date, domain.FormatHours(out.TotalHours))
			return nil
		},
	}

	cmd.Flags().Float64Var(&opts.Hours, "hours", 0, "Hours worked (required)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "Date worked (yyyy-mm-dd, default today)")
	cmd.Flags().StringVarP(&opts.Description, "message", "m", "", "What you did")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}

// resolveTaskID returns the ID of the visible task matching s exactly or by
// unique prefix.
func resolveTaskID(c *app.Container, s string) (string, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return "", fmt.Errorf("task ID is required: %w", domain.ErrValidationFailed)
	}

	user, err := c.Sessions.CurrentUser()
	if err != nil {
		return "", fmt.Errorf("get current user: %w", err)
	}
	if user == nil {
		// Let the use case report not logged in
		return s, nil
	}
	all, err := c.Tasks.List()
	if err != nil {
		return "", fmt.Errorf("list tasks: %w", err)
	}
	// Only tasks the user may see take part in matching
	tasks := domain.ScopeForUser(all, user.Role, user.ID)

	var matches []string
	for _, t := range tasks {
		if t.ID == s {
			return s, nil
		}
		if strings.HasPrefix(t.ID, s) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		// Let the use case report not found
		return s, nil
	default:
		return "", fmt.Errorf("task ID %q is ambiguous (%d matches): %w", s, len(matches), domain.ErrValidationFailed)
	}
}

// resolveUserID maps an email to a user ID. Other values pass through unchanged.
func resolveUserID(c *app.Container, s string) string {
	if u, ok := c.Users.FindByEmail(s); ok {
		return u.ID
	}
	return s
}

// shortID abbreviates long IDs for tables.
func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
