package logger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
		{"fatal", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.log")
	log, err := New(&Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("change-set applied", zap.Int64("version", 1))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"change-set applied"`)
	assert.Contains(t, string(data), `"version":1`)
}

func TestNew_ConsoleDefaults(t *testing.T) {
	log, err := New(nil)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_BadOutput(t *testing.T) {
	_, err := New(&Config{Output: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	assert.ErrorContains(t, err, "open log output")
}

func TestForStoreAndChangeSet(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	root := zap.New(core)

	ForStore(root, "/data/database.db").Info("store opened")
	ForChangeSet(root, 3, "single_default_account_index").Info("change-set applied")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "store", entries[0].LoggerName)
	assert.Equal(t, "/data/database.db", entries[0].ContextMap()["db"])
	assert.Equal(t, int64(3), entries[1].ContextMap()["version"])
	assert.Equal(t, "single_default_account_index", entries[1].ContextMap()["change_set"])
}

func TestGormLogger_Trace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Info, time.Hour)

	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)
	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "INSERT INTO Apartamento", 0
	}, errors.New("UNIQUE constraint failed"))
	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM Apartamento", 0
	}, gormlogger.ErrRecordNotFound)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "statement", entries[0].Message)
	assert.Equal(t, "sql", entries[0].LoggerName)
	assert.Equal(t, "statement failed", entries[1].Message)
}

func TestGormLogger_Slow(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Warn, time.Millisecond)

	gl.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) {
		return "VACUUM INTO 'backup.db'", 0
	}, nil)
	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "slow statement", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestGormLogger_Silent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Info, 0).LogMode(gormlogger.Silent)

	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)
	gl.Info(context.Background(), "opened %s", "database.db")
	assert.Empty(t, logs.All())
}

func TestGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, GormLevel("silent"))
	assert.Equal(t, gormlogger.Error, GormLevel("error"))
	assert.Equal(t, gormlogger.Info, GormLevel("debug"))
	assert.Equal(t, gormlogger.Warn, GormLevel(""))
}
