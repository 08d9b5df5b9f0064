package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bentancorlucia/admin-edificios/internal/config"
	"github.com/bentancorlucia/admin-edificios/internal/logger"
	"github.com/bentancorlucia/admin-edificios/internal/store"
	"github.com/bentancorlucia/admin-edificios/migration"
	"github.com/bentancorlucia/admin-edificios/migration/driver"
)

// getConfig loads the configuration and applies the persistent flags on top
func getConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.DataDir = dir
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	return cfg, nil
}

func getLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// withStore runs fn against a migrated store
func withStore(cmd *cobra.Command, fn func(ctx context.Context, s *store.Store) error) error {
	cfg, err := getConfig(cmd)
	if err != nil {
		return err
	}
	log, err := getLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := cmd.Context()
	s, err := store.EnsureReady(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(ctx, s)
}

// withMigrator runs fn against a store that is opened but not migrated
func withMigrator(cmd *cobra.Command, fn func(ctx context.Context, s *store.Store, m *driver.Migrator) error) error {
	cfg, err := getConfig(cmd)
	if err != nil {
		return err
	}
	log, err := getLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ledger, err := migration.RegisteredLedger()
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}

	ctx := cmd.Context()
	s, err := store.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(ctx, s, driver.NewMigrator(s.DB(), ledger, log))
}
