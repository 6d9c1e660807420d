package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/bugtrack/internal/app"
	"github.com/runoshun/bugtrack/internal/tui"
)

// launchBoardFunc starts the interactive board. Tests replace it.
var launchBoardFunc = tui.Run

// newBoardCommand creates the board command.
func newBoardCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive kanban board",
		Long: `Open the kanban board for the tasks you can see.

Columns follow the task status. Move cards with H/L to set the status
directly, or use the workflow keys (s start, u submit, a approve, r reopen).
Press ? inside the board for all keys.

Running 'bugtrack' with no arguments also opens the board.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchBoardFunc(c)
		},
	}
}
