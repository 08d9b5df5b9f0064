package store

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/bentancorlucia/admin-edificios/internal/invariant"
	"github.com/bentancorlucia/admin-edificios/internal/models"
	"github.com/bentancorlucia/admin-edificios/internal/storeerr"
)

// NoticeOrder is the new position of a notice
type NoticeOrder struct {
	ID    string
	Order int
}

// CreateNotice appends an active notice to the report of a month
func (s *Store) CreateNotice(ctx context.Context, text string, month, year int) (*models.ReportNotice, error) {
	const op = "create report notice"
	n := &models.ReportNotice{
		ID:     newID(),
		Text:   text,
		Month:  month,
		Year:   year,
		Active: true,
	}
	n.CreatedAt = models.Now()
	n.UpdatedAt = n.CreatedAt
	if err := invariant.Struct(n); err != nil {
		return nil, s.translate(op, err)
	}
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		var last sql.NullInt64
		if err := tx.Model(&models.ReportNotice{}).
			Where("mes = ? AND anio = ?", month, year).
			Select("MAX(orden)").Scan(&last).Error; err != nil {
			return err
		}
		if last.Valid {
			n.Order = int(last.Int64) + 1
		}
		return tx.Create(n).Error
	}); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Store) GetNotice(ctx context.Context, id string) (*models.ReportNotice, error) {
	return get[models.ReportNotice](ctx, s, "get report notice", id)
}

// ListNotices returns the notices of a month in display order
func (s *Store) ListNotices(ctx context.Context, month, year int) ([]models.ReportNotice, error) {
	return list[models.ReportNotice](ctx, s, "list report notices", "orden", "mes = ? AND anio = ?", month, year)
}

func (s *Store) UpdateNotice(ctx context.Context, n *models.ReportNotice) (*models.ReportNotice, error) {
	const op = "update report notice"
	if err := invariant.Struct(n); err != nil {
		return nil, s.translate(op, err)
	}
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		existing, err := find[models.ReportNotice](tx, n.ID)
		if err != nil {
			return err
		}
		n.CreatedAt = existing.CreatedAt
		n.UpdatedAt = models.Now()
		return tx.Save(n).Error
	}); err != nil {
		return nil, err
	}
	return n, nil
}

// ReorderNotices moves every listed notice to its new position, all or nothing
func (s *Store) ReorderNotices(ctx context.Context, orders []NoticeOrder) error {
	const op = "reorder report notices"
	now := models.Now()
	return s.inTx(ctx, op, func(tx *gorm.DB) error {
		for _, o := range orders {
			res := tx.Model(&models.ReportNotice{}).Where("id = ?", o.ID).
				Updates(map[string]any{"orden": o.Order, "updatedAt": now})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return storeerr.New(storeerr.NotFound, "", gorm.ErrRecordNotFound)
			}
		}
		return nil
	})
}

func (s *Store) DeleteNotice(ctx context.Context, id string) error {
	return remove[models.ReportNotice](ctx, s, "delete report notice", id)
}
