package commands

import "github.com/spf13/cobra"

// NewRootCmd builds the command tree of the store tool
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin-edificios",
		Short:         "Local store of the building administration application",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("data-dir", "", "Data directory holding the store (overrides CONDO_DATA_DIR)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(
		UpCmd(),
		StatusCmd(),
		HistoryCmd(),
		ValidateCmd(),
		DDLCmd(),
		BackupCmd(),
		MonthlyChargesCmd(),
		BalancesCmd(),
	)
	return root
}
