package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bentancorlucia/admin-edificios/internal/storeerr"
)

func newID() string {
	return uuid.NewString()
}

// inTx runs fn in one transaction and translates its failure
func (s *Store) inTx(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	return s.translate(op, s.db.WithContext(ctx).Transaction(fn))
}

func find[T any](tx *gorm.DB, id string) (*T, error) {
	var out T
	if err := tx.Where("id = ?", id).Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func get[T any](ctx context.Context, s *Store, op, id string) (*T, error) {
	out, err := find[T](s.db.WithContext(ctx), id)
	if err != nil {
		return nil, s.translate(op, err)
	}
	return out, nil
}

func list[T any](ctx context.Context, s *Store, op, order string, query any, args ...any) ([]T, error) {
	var out []T
	db := s.db.WithContext(ctx).Order(order)
	if query != nil {
		db = db.Where(query, args...)
	}
	if err := db.Find(&out).Error; err != nil {
		return nil, s.translate(op, err)
	}
	return out, nil
}

func remove[T any](ctx context.Context, s *Store, op, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return s.translate(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return storeerr.New(storeerr.NotFound, op, gorm.ErrRecordNotFound)
	}
	return nil
}
