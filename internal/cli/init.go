package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/bugtrack/internal/app"
	"github.com/runoshun/bugtrack/internal/usecase"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the bugtrack data directory",
		Long: `Initialize the bugtrack data directory.

This command creates the .bugtrack/ directory with:
- logs/: directory for log files
- the configured store (store.json, store.git or bugtrack.db)

Running init again is safe. Until tasks are saved, every view
shows the built-in sample dataset.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.InitRepoUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitRepoInput{
				DataDir: c.Config.DataDir,
			})
			if err != nil {
				return err
			}

			if out.AlreadyInitialized {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reinitialized bugtrack in %s\n", out.DataDir)
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized bugtrack in %s\n", out.DataDir)
			}
			return nil
		},
	}
}
