package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bentancorlucia/admin-edificios/internal/catalog"
	"github.com/bentancorlucia/admin-edificios/internal/store"
	"github.com/bentancorlucia/admin-edificios/migration"
	"github.com/bentancorlucia/admin-edificios/migration/diff"
	"github.com/bentancorlucia/admin-edificios/migration/driver"
)

func ValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog, the models, the ledger and the store schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := migration.ValidateRegistry(); err != nil {
				return err
			}
			if err := catalog.Verify(migration.GlobalModelRegistry); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			return withMigrator(cmd, func(ctx context.Context, s *store.Store, m *driver.Migrator) error {
				if err := m.Verify(ctx); err != nil {
					return err
				}
				pending, err := m.Pending(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(pending) > 0 {
					fmt.Fprintf(out, "%d pending change-sets, run up to apply them\n", len(pending))
					return nil
				}

				sqlDB, err := s.DB().DB()
				if err != nil {
					return err
				}
				drift, err := diff.NewSchemaComparer(diff.NewSQLiteInspector(sqlDB)).Compare(ctx, s.Catalog())
				if err != nil {
					return err
				}
				for _, name := range drift.UnmanagedTables {
					fmt.Fprintf(out, "note: table %s is not managed by the catalog\n", name)
				}
				if !drift.IsEmpty() {
					var errs []error
					for _, p := range drift.Problems() {
						errs = append(errs, errors.New(p))
					}
					return fmt.Errorf("schema drift: %w", errors.Join(errs...))
				}

				fmt.Fprintln(out, "Catalog, ledger and store are consistent")
				return nil
			})
		},
	}
}
