package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/bugtrack/internal/app"
	"github.com/runoshun/bugtrack/internal/domain"
	"github.com/runoshun/bugtrack/internal/usecase"
)

var migrateBackends = []string{domain.BackendJSON, domain.BackendGit, domain.BackendSQLite, domain.BackendPostgres}

// newMigrateCommand creates the migrate command.
func newMigrateCommand(c *app.Container) *cobra.Command {
	var opts struct {
		To        string
		Path      string
		Namespace string
		DSN       string
		Key       string
		Overwrite bool
	}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy stored data to another store backend",
		Long: `Copy all stored tasks and settings from the current store to another backend.

Values already present and identical in the destination are skipped.
A differing value stops the migration before anything is written,
unless --overwrite is given. The login session is not copied.
Values are decrypted on read, so --encryption-key decides whether
the destination is encrypted.
Only managers can migrate.

After migrating, point [store] in your config at the new backend.

Examples:
  # Move from the default JSON file to SQLite
  bugtrack migrate --to sqlite

  # Keep tasks in git refs of an existing repository
  bugtrack migrate --to git --path . --namespace bugtrack

  # Move to PostgreSQL
  bugtrack migrate --to postgres --dsn "postgres://localhost/bugtrack?sslmode=disable"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend := strings.ToLower(strings.TrimSpace(opts.To))
			if !slices.Contains(migrateBackends, backend) {
				return fmt.Errorf("invalid --to: %q (expected %s): %w", opts.To, strings.Join(migrateBackends, ", "), domain.ErrValidationFailed)
			}

			target := domain.StoreConfig{Backend: backend, Path: opts.Path, Namespace: opts.Namespace, DSN: opts.DSN, EncryptionKey: opts.Key}
			if target.Namespace == "" {
				target.Namespace = domain.NewDefaultConfig().Store.Namespace
			}
			if sameStore(c, target) {
				return domain.ErrSameStore
			}

			dest, destInit, closer, err := c.OpenStore(target)
			if err != nil {
				return err
			}
			if closer != nil {
				defer func() { _ = closer.Close() }()
			}

			out, err := c.MigrateStoreUseCase(dest, destInit).Execute(cmd.Context(), usecase.MigrateStoreInput{Overwrite: opts.Overwrite})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Total == 0 {
				_, _ = fmt.Fprintln(w, "Nothing to migrate: the current store is empty")
				return nil
			}
			summary := fmt.Sprintf("Migrated %d key(s) to %s store", out.Migrated, backend)
			if out.Skipped > 0 {
				summary += fmt.Sprintf(" (skipped %d identical)", out.Skipped)
			}
			_, _ = fmt.Fprintln(w, summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.To, "to", "", "Destination backend: json, git, sqlite, postgres")
	cmd.Flags().StringVar(&opts.Path, "path", "", "Destination file or repository (default under the data directory)")
	cmd.Flags().StringVar(&opts.Namespace, "namespace", "", "Ref namespace for the git backend")
	cmd.Flags().StringVar(&opts.DSN, "dsn", "", "Connection string for the postgres backend")
	cmd.Flags().StringVar(&opts.Key, "encryption-key", "", "Encrypt the destination with this key (64 hex characters)")
	cmd.Flags().BoolVar(&opts.Overwrite, "overwrite", false, "Replace differing values in the destination")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

// sameStore reports whether target is the store the container is using.
func sameStore(c *app.Container, target domain.StoreConfig) bool {
	if c.AppConfig == nil {
		return false
	}
	current := c.AppConfig.Store
	if current.Backend == "" {
		current.Backend = domain.BackendJSON
	}
	if current.Backend != target.Backend {
		return false
	}
	if target.Backend == domain.BackendPostgres {
		return current.DSN == target.DSN
	}
	if current.StorePath(c.Config.DataDir) != target.StorePath(c.Config.DataDir) {
		return false
	}
	return target.Backend != domain.BackendGit || current.Namespace == target.Namespace
}
