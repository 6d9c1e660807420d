package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/bugtrack/internal/app"
	"github.com/runoshun/bugtrack/internal/usecase"
)

// newLoginCommand creates the login command.
func newLoginCommand(c *app.Container) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in as a team member",
		Long: `Log in as one of the built-in team members.

If --password is not given, the password is read from stdin.

Examples:
  bugtrack login yuvi@company.com --password password
  echo password | bugtrack login suraj@company.com`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("password") {
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			out, err := c.LoginUseCase().Execute(cmd.Context(), usecase.LoginInput{
				Email:    args[0],
				Password: password,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", out.User.Name, out.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password")

	return cmd
}

// newLogoutCommand creates the logout command.
func newLogoutCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.LogoutUseCase().Execute(cmd.Context(), usecase.LogoutInput{})
			if err != nil {
				return err
			}
			if out.User == nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged out %s\n", out.User.Name)
			return nil
		},
	}
}

// newWhoAmICommand creates the whoami command.
func newWhoAmICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.WhoAmIUseCase().Execute(cmd.Context(), usecase.WhoAmIInput{})
			if err != nil {
				return err
			}
			u := out.User
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s, id %s)\n", u.Name, u.Email, u.Role, u.ID)
			return nil
		},
	}
}
