package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONDO_DATA_DIR", dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, DefaultDBFile, cfg.DBFile)
	assert.Equal(t, filepath.Join(dir, DefaultDBFile), cfg.DBPath())
	assert.Equal(t, 5*time.Second, cfg.BusyTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "warn", cfg.GormLogLevel)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowStatement)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONDO_DATA_DIR", t.TempDir())
	t.Setenv("CONDO_DB_FILE", "edificio.db")
	t.Setenv("CONDO_BUSY_TIMEOUT_MS", "250")
	t.Setenv("CONDO_LOG_LEVEL", "debug")
	t.Setenv("CONDO_SLOW_STATEMENT_MS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "edificio.db", cfg.DBFile)
	assert.Equal(t, 250*time.Millisecond, cfg.BusyTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Zero(t, cfg.SlowStatement)
}

func TestLoad_ConfigFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	tmp := t.TempDir()
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	content := "data_dir: " + filepath.Join(tmp, "data") + "\nlog:\n  format: json\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmp, AppID+".yaml"), []byte(content), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "data"), cfg.DataDir)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestValidate(t *testing.T) {
	cfg := &Config{DataDir: t.TempDir(), DBFile: "../escape.db"}
	assert.Error(t, cfg.Validate())

	cfg.DBFile = ""
	assert.Error(t, cfg.Validate())

	cfg.DBFile = DefaultDBFile
	assert.NoError(t, cfg.Validate())

	cfg.SlowStatement = -time.Second
	assert.Error(t, cfg.Validate())
}
