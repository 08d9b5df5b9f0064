// Package store is the local persistence layer of the building administration
// application: it prepares the SQLite file, brings its schema up to date and
// exposes typed repositories that enforce the financial invariants.
package store

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bentancorlucia/admin-edificios/internal/catalog"
	"github.com/bentancorlucia/admin-edificios/internal/config"
	"github.com/bentancorlucia/admin-edificios/internal/logger"
	"github.com/bentancorlucia/admin-edificios/internal/schema"
	"github.com/bentancorlucia/admin-edificios/internal/storeerr"
	"github.com/bentancorlucia/admin-edificios/migration"
	"github.com/bentancorlucia/admin-edificios/migration/driver"
)

// Store is an open, migrated store
type Store struct {
	db       *gorm.DB
	cat      *schema.Catalog
	migrator *driver.Migrator
	log      *zap.Logger
	path     string
}

// EnsureReady prepares the data directory, opens the store and applies every
// pending change-set. No query may be issued before it returns.
func EnsureReady(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Store, error) {
	s, err := Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	ledger, err := migration.RegisteredLedger()
	if err != nil {
		s.Close()
		return nil, storeerr.New(storeerr.MigrationFailed, "load ledger", err)
	}
	if err := s.migrate(ctx, ledger); err != nil {
		return nil, err
	}
	return s, nil
}

// Open prepares the data directory and opens the store without migrating it
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, storeerr.New(storeerr.StorageUnavailable, "create data directory", err)
	}

	path := cfg.DBPath()
	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=%d", path, cfg.BusyTimeout.Milliseconds())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.NewGormLogger(log, logger.GormLevel(cfg.GormLogLevel), cfg.SlowStatement),
	})
	if err != nil {
		return nil, storeerr.New(storeerr.StorageUnavailable, "open store", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, storeerr.New(storeerr.StorageUnavailable, "open store", err)
	}
	// single writer
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, storeerr.New(storeerr.StorageUnavailable, "open store", err)
	}

	var fk int
	if err := db.WithContext(ctx).Raw("PRAGMA foreign_keys").Scan(&fk).Error; err != nil || fk != 1 {
		_ = sqlDB.Close()
		return nil, storeerr.New(storeerr.StorageUnavailable, "open store", fmt.Errorf("foreign keys are not enforced (err=%v)", err))
	}

	log = logger.ForStore(log, path)
	log.Info("store opened")
	return &Store{db: db, cat: catalog.Schema(), log: log, path: path}, nil
}

func (s *Store) migrate(ctx context.Context, ledger *migration.Ledger) error {
	s.migrator = driver.NewMigrator(s.db, ledger, s.log)
	if err := s.migrator.Up(ctx); err != nil {
		s.Close()
		return err
	}
	return nil
}

// DB exposes the underlying connection for structured reads
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Catalog returns the schema the store was migrated to
func (s *Store) Catalog() *schema.Catalog {
	return s.cat
}

// Migrator returns the runner bound to this store
func (s *Store) Migrator() *driver.Migrator {
	return s.migrator
}

// Path is the store file
func (s *Store) Path() string {
	return s.path
}

// Close releases the store file
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
