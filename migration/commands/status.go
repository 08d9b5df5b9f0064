package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bentancorlucia/admin-edificios/internal/store"
	"github.com/bentancorlucia/admin-edificios/migration/driver"
)

func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the status of every change-set",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(ctx context.Context, _ *store.Store, m *driver.Migrator) error {
				statuses, err := m.Status(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%-16s  %-30s  %-8s\n", "Version", "Description", "Status")
				for _, st := range statuses {
					status := "Pending"
					if st.Applied {
						status = "Applied"
					}
					fmt.Fprintf(out, "%-16d  %-30s  %-8s\n", st.Version, st.Description, status)
				}
				return nil
			})
		},
	}
}

func HistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show applied change-sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(ctx context.Context, _ *store.Store, m *driver.Migrator) error {
				records, err := m.History(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(out, "No change-sets have been applied yet.")
					return nil
				}
				fmt.Fprintf(out, "%-16s  %-30s  %-24s\n", "Version", "Description", "Applied At")
				for _, r := range records {
					fmt.Fprintf(out, "%-16d  %-30s  %-24s\n", r.Version, r.Description, r.AppliedAt.UTC().Format("2006-01-02T15:04:05Z"))
				}
				return nil
			})
		},
	}
}
