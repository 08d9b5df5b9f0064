package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bentancorlucia/admin-edificios/internal/store"
	"github.com/bentancorlucia/admin-edificios/migration/driver"
)

func UpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending change-sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			out := cmd.OutOrStdout()

			if dryRun {
				return withMigrator(cmd, func(ctx context.Context, _ *store.Store, m *driver.Migrator) error {
					pending, err := m.Pending(ctx)
					if err != nil {
						return err
					}
					if len(pending) == 0 {
						fmt.Fprintln(out, "No pending change-sets.")
						return nil
					}
					fmt.Fprintln(out, "Pending change-sets:")
					for _, cs := range pending {
						fmt.Fprintf(out, "- %s (%d)\n", cs.Description, cs.Version)
					}
					return nil
				})
			}

			return withStore(cmd, func(ctx context.Context, s *store.Store) error {
				version, err := s.Migrator().CurrentVersion(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Store %s is at version %d\n", s.Path(), version)
				return nil
			})
		},
	}

	cmd.Flags().Bool("dry-run", false, "List pending change-sets without applying them")
	return cmd
}
