package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/bentancorlucia/admin-edificios/internal/invariant"
	"github.com/bentancorlucia/admin-edificios/internal/models"
)

// CreateTransaction records a ledger entry. Credit sales get their state
// derived from the paid amount.
func (s *Store) CreateTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	const op = "create transaction"
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		return insertTransaction(tx, t)
	}); err != nil {
		return nil, err
	}
	return t, nil
}

func insertTransaction(tx *gorm.DB, t *models.Transaction) error {
	t.ID = newID()
	t.CreatedAt = models.Now()
	t.UpdatedAt = t.CreatedAt
	if t.Date.IsZero() {
		t.Date = t.CreatedAt
	}
	if err := invariant.CheckTransaction(t); err != nil {
		return err
	}
	return tx.Create(t).Error
}

func (s *Store) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	return get[models.Transaction](ctx, s, "get transaction", id)
}

// ListTransactions returns the ledger, newest first
func (s *Store) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return list[models.Transaction](ctx, s, "list transactions", "fecha DESC", nil)
}

// RecentTransactions returns the newest limit entries
func (s *Store) RecentTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	var out []models.Transaction
	if err := s.db.WithContext(ctx).Order("fecha DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, s.translate("list transactions", err)
	}
	return out, nil
}

func (s *Store) TransactionsByApartment(ctx context.Context, apartmentID string) ([]models.Transaction, error) {
	return list[models.Transaction](ctx, s, "list transactions", "fecha DESC", "apartamentoId = ?", apartmentID)
}

// UpdateTransaction rewrites an entry, re-deriving the credit state
func (s *Store) UpdateTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	const op = "update transaction"
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		existing, err := find[models.Transaction](tx, t.ID)
		if err != nil {
			return err
		}
		invariant.RederiveState(existing, t)
		if err := invariant.CheckTransaction(t); err != nil {
			return err
		}
		t.CreatedAt = existing.CreatedAt
		t.UpdatedAt = models.Now()
		return tx.Save(t).Error
	}); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTransaction removes an entry; a linked deposit is detached
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	return remove[models.Transaction](ctx, s, "delete transaction", id)
}
