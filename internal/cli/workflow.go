package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/bugtrack/internal/app"
	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase"
)

// newTransitionCommand creates a command that runs one workflow action.
func newTransitionCommand(c *app.Container, action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <id>",
		Short: short,
		Long: short + `.

Workflow:
  open ──start──> in-progress ──submit──> pending-approval ──approve──> closed
                                                │
  reopened <────────────reopen──────────────────┘
  reopened ──start──> in-progress

start and submit are for the task's assignee; approve and reopen are for managers.

Example:
  bugtrack ` + action + ` 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := resolveTaskID(c, args[0])
			if err != nil {
				return err
			}

			out, err := c.TransitionTaskUseCase().Execute(cmd.Context(), usecase.TransitionTaskInput{
				TaskID: taskID,
				Action: action,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %s: %s -> %s\n", out.Task.ID, out.From, out.Task.Status)
			return nil
		},
	}
}

// newMoveCommand creates the move command.
func newMoveCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <status>",
		Short: "Move a task to another board column",
		Long: `Set a task's status directly, as dragging a card on the board does.

Statuses: open, in-progress, pending-approval, closed, reopened

Unless [workflow] strict_status_edit is enabled, moves outside the approval
workflow are allowed for anyone who can edit the task and are logged as
workflow bypasses.

Example:
  bugtrack move 3 in-progress`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := resolveTaskID(c, args[0])
			if err != nil {
				return err
			}

			out, err := c.MoveTaskUseCase().Execute(cmd.Context(), usecase.MoveTaskInput{
				TaskID: taskID,
				Status: domain.Status(args[1]),
			})
			if err != nil {
				return err
			}

			if !out.Moved {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %s is already %s\n", out.Task.ID, out.Task.Status)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Moved task %s to %s\n", out.Task.ID, out.Task.Status)
			return nil
		},
	}
}

// newApprovalsCommand creates the approvals command.
func newApprovalsCommand(c *app.Container) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "approvals",
		Short: "List tasks waiting for approval (managers only)",
		Long: `List every task in pending-approval, most recently updated first.

Approve with 'bugtrack approve <id>' or send back with 'bugtrack reopen <id>'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListApprovalsUseCase().Execute(cmd.Context(), usecase.ListApprovalsInput{})
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), out.Tasks)
			}
			if len(out.Tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No tasks waiting for approval")
				return nil
			}
			printTaskList(cmd.OutOrStdout(), out.Tasks, c.Clock.Now())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output in JSON format")

	return cmd
}
