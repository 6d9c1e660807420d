package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/bugtrack/internal/app"
	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase"
)

// newSettingsCommand creates the settings command.
func newSettingsCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		Long: `Show or change your preferences and, for managers, system settings.

Without a subcommand, prints the current settings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSettingsShow(cmd, c)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSettingsShow(cmd, c)
		},
	})
	cmd.AddCommand(newSettingsSetCommand(c))

	return cmd
}

func runSettingsShow(cmd *cobra.Command, c *app.Container) error {
	out, err := c.ShowSettingsUseCase().Execute(cmd.Context(), usecase.ShowSettingsInput{})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(w, "[User]")
	if err := printSettingFields(w, out.User); err != nil {
		return err
	}
	if out.System != nil {
		_, _ = fmt.Fprintln(w, "\n[System]")
		if err := printSettingFields(w, *out.System); err != nil {
			return err
		}
	}
	return nil
}

func printSettingFields(w io.Writer, settings any) error {
	fields, err := domain.SettingFields(settings)
	if err != nil {
		return fmt.Errorf("format settings: %w", err)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range fields {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", f[0], f[1])
	}
	return tw.Flush()
}

// newSettingsSetCommand creates the settings set subcommand.
func newSettingsSetCommand(c *app.Container) *cobra.Command {
	var system bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long: `Change one setting by its key as shown by 'bugtrack settings'.

Examples:
  bugtrack settings set defaultPriority high
  bugtrack settings set weeklyDigest false
  bugtrack settings set workingHours '{"start":"08:00","end":"16:00"}'

  # Managers only
  bugtrack settings set --system inactiveDays 14`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.SetSettingsUseCase().Execute(cmd.Context(), usecase.SetSettingsInput{
				Key:    args[0],
				Value:  args[1],
				System: system,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().BoolVar(&system, "system", false, "Change a system setting (managers only)")

	return cmd
}
