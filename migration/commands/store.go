package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/bentancorlucia/admin-edificios/internal/catalog"
	"github.com/bentancorlucia/admin-edificios/internal/store"
)

func DDLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ddl",
		Short: "Print the schema the catalog describes",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), catalog.Schema().DDL())
			return nil
		},
	}
}

func BackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [dest]",
		Short: "Write a consistent copy of the store",
		Long:  "Writes a copy of the store into dest, by default the backups directory inside the data directory.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, s *store.Store) error {
				dest := filepath.Join(filepath.Dir(s.Path()), "backups")
				if len(args) > 0 {
					dest = args[0]
				}
				path, err := s.Backup(ctx, dest)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
				return nil
			})
		},
	}
}

func MonthlyChargesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monthly-charges",
		Short: "Bill every unit its common expenses and reserve fund for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			at := time.Now()
			if month, _ := cmd.Flags().GetString("month"); month != "" {
				parsed, err := time.ParseInLocation("2006-01", month, time.Local)
				if err != nil {
					return fmt.Errorf("invalid month %q, expected YYYY-MM", month)
				}
				at = parsed
			}

			return withStore(cmd, func(ctx context.Context, s *store.Store) error {
				res, err := s.GenerateMonthlyCharges(ctx, at)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Generated %d charges for %s\n", res.Created, res.Month)
				return nil
			})
		},
	}

	cmd.Flags().String("month", "", "Month to bill as YYYY-MM, defaults to the current month")
	return cmd
}

func BalancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show what each unit owes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, s *store.Store) error {
				apartments, err := s.ListApartments(ctx)
				if err != nil {
					return err
				}
				balances, err := s.Balances(ctx)
				if err != nil {
					return err
				}

				sort.SliceStable(apartments, func(i, j int) bool { return apartments[i].Number < apartments[j].Number })
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%-8s  %-12s  %12s\n", "Unit", "Occupancy", "Balance")
				for _, a := range apartments {
					fmt.Fprintf(out, "%-8s  %-12s  %12s\n", a.Number, a.Occupancy, balances[a.ID].StringFixed(2))
				}
				return nil
			})
		},
	}
}
