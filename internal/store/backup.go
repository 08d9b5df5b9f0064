package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bentancorlucia/admin-edificios/internal/storeerr"
)

// BackupName is the file name of a backup taken at t
func BackupName(t time.Time) string {
	stamp := strings.NewReplacer(":", "-", ".", "-").Replace(t.UTC().Format("2006-01-02T15:04:05.000Z"))
	return "backup_" + stamp + ".db"
}

// Backup writes a consistent copy of the store into destDir and returns its path
func (s *Store) Backup(ctx context.Context, destDir string) (string, error) {
	const op = "backup"
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", storeerr.New(storeerr.StorageUnavailable, op, err)
	}

	dest := filepath.Join(destDir, BackupName(time.Now()))
	if _, err := os.Stat(dest); err == nil {
		return "", storeerr.New(storeerr.StorageUnavailable, op, fmt.Errorf("%s already exists", dest))
	}
	if err := s.db.WithContext(ctx).Exec("VACUUM INTO ?", dest).Error; err != nil {
		return "", s.translate(op, err)
	}

	s.log.Info("backup written", zap.String("path", dest))
	return dest, nil
}
