package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bentancorlucia/admin-edificios/internal/catalog"
	"github.com/bentancorlucia/admin-edificios/migration"
)

func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONDO_LOG_OUTPUT", filepath.Join(t.TempDir(), "cli.log"))
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--data-dir", dataDir}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestUp_DryRunThenApply(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "up", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Pending change-sets:")
	assert.Contains(t, out, "create_initial_tables (1)")

	out, err = run(t, dir, "up")
	require.NoError(t, err)
	assert.Contains(t, out, "is at version")

	out, err = run(t, dir, "up", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "No pending change-sets.")

	out, err = run(t, dir, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Applied")
	assert.NotContains(t, out, "Pending")

	out, err = run(t, dir, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "seed_service_types")
}

func TestHistory_Empty(t *testing.T) {
	out, err := run(t, t.TempDir(), "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No change-sets have been applied yet.")
}

func TestValidate(t *testing.T) {
	prev := migration.GlobalModelRegistry
	t.Cleanup(func() { migration.GlobalModelRegistry = prev })

	migration.GlobalModelRegistry = nil
	_, err := run(t, t.TempDir(), "validate")
	assert.Error(t, err)

	migration.GlobalModelRegistry = catalog.ModelRegistry{}
	dir := t.TempDir()
	out, err := run(t, dir, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "pending change-sets")

	_, err = run(t, dir, "up")
	require.NoError(t, err)
	out, err = run(t, dir, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "consistent")
}

func TestDDL(t *testing.T) {
	out, err := run(t, t.TempDir(), "ddl")
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE IF NOT EXISTS Apartamento")
	assert.Contains(t, out, "ux_cuenta_por_defecto")
}

func TestBackup(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(t.TempDir(), "copies")

	out, err := run(t, dir, "backup", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "Backup written to")

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMonthlyCharges(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "monthly-charges", "--month", "marzo")
	assert.ErrorContains(t, err, "expected YYYY-MM")

	_, err = run(t, dir, "monthly-charges", "--month", "2025-03")
	assert.ErrorContains(t, err, "no apartments registered")

	out, err := run(t, dir, "balances")
	require.NoError(t, err)
	assert.Contains(t, out, "Balance")
}
