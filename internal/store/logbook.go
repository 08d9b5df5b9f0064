package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/bentancorlucia/admin-edificios/internal/invariant"
	"github.com/bentancorlucia/admin-edificios/internal/models"
)

func (s *Store) CreateLogEntry(ctx context.Context, e *models.LogEntry) (*models.LogEntry, error) {
	const op = "create log entry"
	if e.Status == "" {
		e.Status = models.LogPending
	}
	e.ID = newID()
	e.CreatedAt = models.Now()
	e.UpdatedAt = e.CreatedAt
	if e.Date.IsZero() {
		e.Date = e.CreatedAt
	}
	if err := invariant.Struct(e); err != nil {
		return nil, s.translate(op, err)
	}
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		return tx.Create(e).Error
	}); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Store) GetLogEntry(ctx context.Context, id string) (*models.LogEntry, error) {
	return get[models.LogEntry](ctx, s, "get log entry", id)
}

// ListLogEntries returns the log book, newest first
func (s *Store) ListLogEntries(ctx context.Context) ([]models.LogEntry, error) {
	return list[models.LogEntry](ctx, s, "list log entries", "fecha DESC", nil)
}

func (s *Store) UpdateLogEntry(ctx context.Context, e *models.LogEntry) (*models.LogEntry, error) {
	const op = "update log entry"
	if err := invariant.Struct(e); err != nil {
		return nil, s.translate(op, err)
	}
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		existing, err := find[models.LogEntry](tx, e.ID)
		if err != nil {
			return err
		}
		e.CreatedAt = existing.CreatedAt
		e.UpdatedAt = models.Now()
		return tx.Save(e).Error
	}); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Store) DeleteLogEntry(ctx context.Context, id string) error {
	return remove[models.LogEntry](ctx, s, "delete log entry", id)
}
