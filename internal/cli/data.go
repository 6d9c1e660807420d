package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/bugtrack/internal/app"
	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase"
)

// trendBarWidth is the width of the longest bar in the dashboard trend chart.
const trendBarWidth = 30

// newDashboardCommand creates the dashboard command.
func newDashboardCommand(c *app.Container) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show task counters, overdue tasks and recent activity",
		Long: `Show the dashboard for the tasks you can see: status counters,
hours logged, overdue tasks, recently updated tasks and the daily trend.

Managers also see the number of tasks waiting for approval.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowDashboardUseCase().Execute(cmd.Context(), usecase.ShowDashboardInput{})
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			printDashboard(cmd.OutOrStdout(), out, c)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output in JSON format")

	return cmd
}

func printDashboard(w io.Writer, out *usecase.ShowDashboardOutput, c *app.Container) {
	s := out.Stats
	_, _ = fmt.Fprintf(w, "Welcome back, %s (%s)\n\n", out.User.Name, out.User.Role)
	_, _ = fmt.Fprintf(w, "Total: %d  Open: %d  In progress: %d  Pending approval: %d  Closed: %d\n",
		s.TotalTasks, s.OpenTasks, s.InProgressTasks, s.PendingApprovalTasks, s.ClosedTasks)
	_, _ = fmt.Fprintf(w, "Time logged: %sh\n", domain.FormatHours(s.TotalTimeLogged))
	if out.User.IsManager() {
		_, _ = fmt.Fprintf(w, "Waiting for your approval: %d\n", out.Approval)
	}

	if len(out.Overdue) > 0 {
		_, _ = fmt.Fprintf(w, "\nOverdue (%d):\n", len(out.Overdue))
		printTaskList(w, out.Overdue, c.Clock.Now())
	}

	if len(out.Recent) > 0 {
		_, _ = fmt.Fprintln(w, "\nRecently updated:")
		printTaskList(w, out.Recent, c.Clock.Now())
	}

	if len(out.Trend) > 0 {
		_, _ = fmt.Fprintln(w, "\nTrend (tasks updated, hours logged):")
		printTrend(w, out.Trend)
	}
}

// printTrend draws a horizontal bar per day scaled to the busiest day.
func printTrend(w io.Writer, trend []domain.TrendPoint) {
	peak := 0.0
	for _, p := range trend {
		peak = max(peak, p.TimeLogged)
	}
	for _, p := range trend {
		width := 0
		if peak > 0 {
			width = int(p.TimeLogged / peak * trendBarWidth)
		}
		_, _ = fmt.Fprintf(w, "  %s  %3d  %6sh  %s\n",
			p.Date, p.Tasks, domain.FormatHours(p.TimeLogged), strings.Repeat("█", width))
	}
}

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Format   string
		Output   string
		Status   string
		Priority string
		Assignee string
		Search   string
		Sort     string
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the task list as CSV or JSON",
		Long: `Export the tasks you can see, with the same filters as 'list'.

CSV columns: Title, Status, Priority, Assignee, Created, Due Date, Time Logged.

Without -o the export is written to ./tasks-export-<date>.<format>.
Use -o - to write to stdout.

Examples:
  bugtrack export
  bugtrack export --format json --status closed -o closed.json
  bugtrack export -o - | column -s, -t`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ExportTasksUseCase().Execute(cmd.Context(), usecase.ExportTasksInput{
				Filter: domain.TaskFilter{
					Search:     opts.Search,
					Status:     opts.Status,
					Priority:   opts.Priority,
					AssigneeID: resolveUserID(c, opts.Assignee),
				},
				Format: opts.Format,
				SortBy: opts.Sort,
			})
			if err != nil {
				return err
			}

			return writeExport(cmd, opts.Output, out.FileName, out.Content,
				fmt.Sprintf("Exported %d task(s)", out.Count))
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "csv", "Export format: csv or json")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file ('-' for stdout)")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "Filter by priority")
	cmd.Flags().StringVar(&opts.Assignee, "assignee", "", "Filter by assignee ID or email")
	cmd.Flags().StringVarP(&opts.Search, "search", "q", "", "Search title, description and tags")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "Sort by: updated, created, priority, dueDate")

	return cmd
}

// newExportDataCommand creates the export-data command.
func newExportDataCommand(c *app.Container) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export-data",
		Short: "Export your tasks and preferences as a JSON backup",
		Long: `Write a JSON document with the export date, the tasks you can see
and your user settings.

Without -o the file is written to ./taskflow-export-<date>.json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ExportDataUseCase().Execute(cmd.Context(), usecase.ExportDataInput{})
			if err != nil {
				return err
			}
			return writeExport(cmd, output, out.FileName, out.Content,
				fmt.Sprintf("Exported %d task(s) and settings", len(out.Data.Tasks)))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file ('-' for stdout)")

	return cmd
}

// writeExport writes content to stdout, the given path, or defaultName in the working directory.
func writeExport(cmd *cobra.Command, output, defaultName, content, summary string) error {
	if output == "-" {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}

	path := output
	if path == "" {
		path = defaultName
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s to %s\n", summary, path)
	return nil
}

// newClearCommand creates the clear command.
func newClearCommand(c *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored tasks and settings",
		Long: `Delete every stored task and all settings.

Afterwards every view shows the built-in sample dataset again.
You stay logged in. Prompts for confirmation unless --yes is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Delete all tasks and settings? [y/N] ")
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "y" && answer != "yes" {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
					return nil
				}
			}

			if _, err := c.ClearDataUseCase().Execute(cmd.Context(), usecase.ClearDataInput{}); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cleared all data")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
