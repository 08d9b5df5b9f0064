package driver

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bentancorlucia/admin-edificios/internal/catalog"
	"github.com/bentancorlucia/admin-edificios/internal/schema"
	"github.com/bentancorlucia/admin-edificios/internal/storeerr"
	"github.com/bentancorlucia/admin-edificios/migration"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newLedger(t *testing.T, sets ...*migration.ChangeSet) *migration.Ledger {
	t.Helper()
	ledger, err := migration.NewLedger(sets...)
	require.NoError(t, err)
	return ledger
}

func hasTable(t *testing.T, db *gorm.DB, name string) bool {
	t.Helper()
	var n int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&n).Error)
	return n == 1
}

func TestUp_FreshStoreReachesLatest(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	ledger := newLedger(t, catalog.ChangeSets()...)
	m := NewMigrator(db, ledger, zaptest.NewLogger(t))

	require.NoError(t, m.Up(ctx))

	version, err := m.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ledger.Latest(), version)

	for _, table := range catalog.Schema().TableNames() {
		assert.True(t, hasTable(t, db, table), table)
	}

	var seeded int64
	require.NoError(t, db.Table(catalog.ServiceTypes).Count(&seeded).Error)
	assert.Equal(t, int64(len(catalog.DefaultServiceTypes)), seeded)
}

func TestUp_SecondRunIsNoop(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	m := NewMigrator(db, newLedger(t, catalog.ChangeSets()...), zaptest.NewLogger(t))

	require.NoError(t, m.Up(ctx))
	before, err := m.History(ctx)
	require.NoError(t, err)

	require.NoError(t, m.Up(ctx))
	after, err := m.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	pending, err := m.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestUp_FailingChangeSetIsAtomic(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	ledger := newLedger(t,
		&migration.ChangeSet{Version: 1, Description: "base", Statements: []string{
			"CREATE TABLE base (id TEXT PRIMARY KEY)",
		}},
		&migration.ChangeSet{Version: 2, Description: "broken", Statements: []string{
			"CREATE TABLE half (id TEXT PRIMARY KEY)",
			"INSERT INTO missing_table (id) VALUES ('x')",
		}},
	)
	m := NewMigrator(db, ledger, zaptest.NewLogger(t))

	err := m.Up(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, storeerr.ErrMigrationFailed)
	assert.Contains(t, err.Error(), "change-set 2 (broken)")

	version, err := m.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	assert.True(t, hasTable(t, db, "base"))
	assert.False(t, hasTable(t, db, "half"))
}

func TestUp_LedgerDrift(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	original := &migration.ChangeSet{Version: 1, Description: "base", Statements: []string{
		"CREATE TABLE base (id TEXT PRIMARY KEY)",
	}}
	require.NoError(t, NewMigrator(db, newLedger(t, original), nil).Up(ctx))

	edited := &migration.ChangeSet{Version: 1, Description: "base", Statements: []string{
		"CREATE TABLE base (id TEXT PRIMARY KEY, name TEXT)",
	}}
	m := NewMigrator(db, newLedger(t, edited), nil)

	err := m.Up(ctx)
	assert.ErrorIs(t, err, storeerr.ErrMigrationFailed)
	assert.ErrorContains(t, err, "ledger drift")
	assert.ErrorIs(t, m.Verify(ctx), storeerr.ErrMigrationFailed)
}

func TestUp_CatalogGrowthOnExistingStore(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	published := catalog.ChangeSets()
	require.NoError(t, NewMigrator(db, newLedger(t, published...), zaptest.NewLogger(t)).Up(ctx))

	cat := catalog.Schema()
	apartments := cat.Table(catalog.Apartments)
	apartments.Columns = append(apartments.Columns, &schema.Column{Name: "superficie", Type: schema.Real, Since: 5})
	require.NoError(t, cat.Validate())
	require.Equal(t, published[0].Statements, cat.InitialStatements())

	grown := append(catalog.ChangeSets(), &migration.ChangeSet{
		Version:     5,
		Description: "apartment_area",
		Statements:  cat.ColumnStatements(5),
	})
	m := NewMigrator(db, newLedger(t, grown...), zaptest.NewLogger(t))
	require.NoError(t, m.Up(ctx))

	version, err := m.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), version)
	assert.True(t, db.Migrator().HasColumn(catalog.Apartments, "superficie"))
}

func TestUp_StoreNewerThanLedger(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	first := &migration.ChangeSet{Version: 1, Description: "a", Statements: []string{"CREATE TABLE a (id TEXT)"}}
	second := &migration.ChangeSet{Version: 2, Description: "b", Statements: []string{"CREATE TABLE b (id TEXT)"}}
	require.NoError(t, NewMigrator(db, newLedger(t, first, second), nil).Up(ctx))

	err := NewMigrator(db, newLedger(t, first), nil).Up(ctx)
	assert.ErrorIs(t, err, storeerr.ErrMigrationFailed)
	assert.ErrorContains(t, err, "does not know")
}

func TestStatus(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	first := &migration.ChangeSet{Version: 1, Description: "a", Statements: []string{"CREATE TABLE a (id TEXT)"}}
	second := &migration.ChangeSet{Version: 2, Description: "b", Statements: []string{"CREATE TABLE b (id TEXT)"}}
	require.NoError(t, NewMigrator(db, newLedger(t, first), nil).Up(ctx))

	m := NewMigrator(db, newLedger(t, first, second), nil)
	status, err := m.Status(ctx)
	require.NoError(t, err)
	require.Len(t, status, 2)
	assert.True(t, status[0].Applied)
	assert.False(t, status[0].AppliedAt.IsZero())
	assert.False(t, status[1].Applied)

	pending, err := m.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(2), pending[0].Version)

	history, err := m.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, first.Checksum(), history[0].Checksum)
}
