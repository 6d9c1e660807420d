package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/bugtrack/internal/app"
	"github.com/runoshun/bugtrack/internal/usecase"
)

// newLogsCommand creates the logs command.
func newLogsCommand(c *app.Container) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs [id]",
		Short: "Show activity logs",
		Long: `Show the global activity log, or the log of a single task.

Every create, edit, transition, time entry and workflow bypass is logged.

Examples:
  bugtrack logs
  bugtrack logs 3 -n 20`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var taskID string
			if len(args) == 1 {
				id, err := resolveTaskID(c, args[0])
				if err != nil {
					return err
				}
				taskID = id
			}

			out, err := c.ShowLogsUseCase().Execute(cmd.Context(), usecase.ShowLogsInput{
				TaskID: taskID,
				Lines:  lines,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Content)
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "Show only the last N lines")

	return cmd
}
