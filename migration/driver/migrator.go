package driver

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bentancorlucia/admin-edificios/internal/logger"
	"github.com/bentancorlucia/admin-edificios/internal/storeerr"
	"github.com/bentancorlucia/admin-edificios/migration"
)

// Migrator applies the ledger to a store
type Migrator struct {
	db     *gorm.DB
	ledger *migration.Ledger
	log    *zap.Logger
}

// Status is the state of one ledger version in the store
type Status struct {
	Version     int64
	Description string
	Applied     bool
	AppliedAt   time.Time
}

// NewMigrator creates a new Migrator instance
func NewMigrator(db *gorm.DB, ledger *migration.Ledger, log *zap.Logger) *Migrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Migrator{
		db:     db,
		ledger: ledger,
		log:    log.Named("migrator"),
	}
}

// Ledger returns the change-sets this migrator applies
func (m *Migrator) Ledger() *migration.Ledger {
	return m.ledger
}

// ensureVersionTable creates the version tracking table if it doesn't exist
func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(&migration.MigrationRecord{}); err != nil {
		return storeerr.New(storeerr.MigrationFailed, "ensure version table", err)
	}
	return nil
}

// History returns the applied change-sets, oldest first
func (m *Migrator) History(ctx context.Context) ([]migration.MigrationRecord, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return nil, err
	}

	var records []migration.MigrationRecord
	if err := m.db.WithContext(ctx).Order("version").Find(&records).Error; err != nil {
		return nil, storeerr.New(storeerr.MigrationFailed, "read version table", err)
	}
	return records, nil
}

// CurrentVersion is the highest applied version, 0 for a fresh store
func (m *Migrator) CurrentVersion(ctx context.Context) (int64, error) {
	records, err := m.History(ctx)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	return records[len(records)-1].Version, nil
}

// Verify checks that every applied change-set is still part of the ledger, unchanged
func (m *Migrator) Verify(ctx context.Context) error {
	records, err := m.History(ctx)
	if err != nil {
		return err
	}
	return m.verify(records)
}

func (m *Migrator) verify(records []migration.MigrationRecord) error {
	for _, rec := range records {
		cs, ok := m.ledger.Get(rec.Version)
		if !ok {
			return storeerr.New(storeerr.MigrationFailed, "verify ledger",
				fmt.Errorf("store records version %d (%s) which this build does not know", rec.Version, rec.Description))
		}
		if cs.Checksum() != rec.Checksum {
			return storeerr.New(storeerr.MigrationFailed, "verify ledger",
				fmt.Errorf("ledger drift: change-set %d (%s) was modified after being applied", rec.Version, rec.Description))
		}
	}
	return nil
}

// Pending returns the change-sets not yet applied, ascending
func (m *Migrator) Pending(ctx context.Context) ([]*migration.ChangeSet, error) {
	records, err := m.History(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.verify(records); err != nil {
		return nil, err
	}
	var current int64
	if len(records) > 0 {
		current = records[len(records)-1].Version
	}
	return m.ledger.Pending(current), nil
}

// Status reports every ledger version together with its applied state
func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	records, err := m.History(ctx)
	if err != nil {
		return nil, err
	}

	applied := make(map[int64]migration.MigrationRecord, len(records))
	for _, rec := range records {
		applied[rec.Version] = rec
	}

	out := make([]Status, 0, len(m.ledger.ChangeSets()))
	for _, cs := range m.ledger.ChangeSets() {
		st := Status{Version: cs.Version, Description: cs.Description}
		if rec, ok := applied[cs.Version]; ok {
			st.Applied = true
			st.AppliedAt = rec.AppliedAt
		}
		out = append(out, st)
	}
	return out, nil
}

// Up applies all pending change-sets in ascending order, each in its own transaction
func (m *Migrator) Up(ctx context.Context) error {
	pending, err := m.Pending(ctx)
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		m.log.Info("no pending change-sets", zap.Int64("version", m.ledger.Latest()))
		return nil
	}

	for _, cs := range pending {
		if err := m.apply(ctx, cs); err != nil {
			return err
		}
	}
	return nil
}

func (m *Migrator) apply(ctx context.Context, cs *migration.ChangeSet) error {
	start := time.Now()
	log := logger.ForChangeSet(m.log, cs.Version, cs.Description)
	fail := func(err error) error {
		log.Error("change-set failed", zap.Error(err))
		return storeerr.New(storeerr.MigrationFailed, "apply change-set",
			fmt.Errorf("change-set %d (%s): %w", cs.Version, cs.Description, err))
	}

	tx := m.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fail(fmt.Errorf("failed to start transaction: %w", tx.Error))
	}

	for i, stmt := range cs.Statements {
		if err := tx.Exec(stmt).Error; err != nil {
			tx.Rollback()
			return fail(fmt.Errorf("statement %d: %w", i+1, err))
		}
	}

	record := migration.MigrationRecord{
		Version:     cs.Version,
		Description: cs.Description,
		Checksum:    cs.Checksum(),
		AppliedAt:   time.Now().UTC(),
	}
	if err := tx.Create(&record).Error; err != nil {
		tx.Rollback()
		return fail(fmt.Errorf("failed to record version: %w", err))
	}

	if err := tx.Commit().Error; err != nil {
		return fail(fmt.Errorf("failed to commit: %w", err))
	}

	log.Info("change-set applied", zap.Duration("elapsed", time.Since(start)))
	return nil
}
