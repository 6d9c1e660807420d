// Package cli provides the command-line interface for bugtrack.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/bugtrack/internal/app"
)

// Command group IDs.
const (
	groupSetup    = "setup"
	groupAuth     = "auth"
	groupTask     = "task"
	groupWorkflow = "workflow"
	groupData     = "data"
)

// NewRootCommand creates the root command for bugtrack.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "bugtrack",
		Short: "Team task and bug tracker",
		Long: `bugtrack is a small task tracker for a team of developers and managers.

Developers work on the tasks assigned to them and submit them for approval.
Managers see every task, approve or reopen submitted work, and manage
system settings. Run 'bugtrack' with no arguments to open the board.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.AppConfig == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launchBoardFunc(c)
		},
	}

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupAuth, Title: "Session Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupWorkflow, Title: "Workflow:"},
		&cobra.Group{ID: groupData, Title: "Views and Data:"},
	)

	add := func(group string, cmds ...*cobra.Command) {
		for _, cmd := range cmds {
			cmd.GroupID = group
			root.AddCommand(cmd)
		}
	}

	add(groupSetup,
		newInitCommand(c),
		newConfigCommand(c),
		newSettingsCommand(c),
		newLogsCommand(c),
	)
	add(groupAuth,
		newLoginCommand(c),
		newLogoutCommand(c),
		newWhoAmICommand(c),
	)
	add(groupTask,
		newNewCommand(c),
		newListCommand(c),
		newShowCommand(c),
		newEditCommand(c),
		newCpCommand(c),
		newRmCommand(c),
		newLogTimeCommand(c),
	)
	add(groupWorkflow,
		newTransitionCommand(c, "start", "Start work on a task (open/reopened -> in-progress)"),
		newTransitionCommand(c, "submit", "Submit a task for approval (in-progress -> pending-approval)"),
		newTransitionCommand(c, "approve", "Approve a submitted task (pending-approval -> closed)"),
		newTransitionCommand(c, "reopen", "Reject a submitted task (pending-approval -> reopened)"),
		newMoveCommand(c),
		newApprovalsCommand(c),
	)
	add(groupData,
		newBoardCommand(c),
		newDashboardCommand(c),
		newExportCommand(c),
		newExportDataCommand(c),
		newMigrateCommand(c),
		newClearCommand(c),
	)

	return root
}
