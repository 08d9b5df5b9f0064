package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/bentancorlucia/admin-edificios/internal/invariant"
	"github.com/bentancorlucia/admin-edificios/internal/models"
)

func (s *Store) CreateBankMovement(ctx context.Context, m *models.BankMovement) (*models.BankMovement, error) {
	const op = "create bank movement"
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		return insertMovement(tx, m)
	}); err != nil {
		return nil, err
	}
	return m, nil
}

func insertMovement(tx *gorm.DB, m *models.BankMovement) error {
	m.ID = newID()
	m.CreatedAt = models.Now()
	m.UpdatedAt = m.CreatedAt
	if m.Date.IsZero() {
		m.Date = m.CreatedAt
	}
	if err := invariant.Struct(m); err != nil {
		return err
	}
	return tx.Create(m).Error
}

func (s *Store) GetBankMovement(ctx context.Context, id string) (*models.BankMovement, error) {
	return get[models.BankMovement](ctx, s, "get bank movement", id)
}

// ListBankMovements returns movements newest first, optionally for one account
func (s *Store) ListBankMovements(ctx context.Context, accountID string) ([]models.BankMovement, error) {
	if accountID == "" {
		return list[models.BankMovement](ctx, s, "list bank movements", "fecha DESC", nil)
	}
	return list[models.BankMovement](ctx, s, "list bank movements", "fecha DESC", "cuentaBancariaId = ?", accountID)
}

// MovementByTransaction returns the deposit linked to a transaction
func (s *Store) MovementByTransaction(ctx context.Context, transactionID string) (*models.BankMovement, error) {
	var out models.BankMovement
	if err := s.db.WithContext(ctx).Where("transaccionId = ?", transactionID).Take(&out).Error; err != nil {
		return nil, s.translate("get bank movement", err)
	}
	return &out, nil
}

func (s *Store) UpdateBankMovement(ctx context.Context, m *models.BankMovement) (*models.BankMovement, error) {
	const op = "update bank movement"
	if err := invariant.Struct(m); err != nil {
		return nil, s.translate(op, err)
	}
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		existing, err := find[models.BankMovement](tx, m.ID)
		if err != nil {
			return err
		}
		m.CreatedAt = existing.CreatedAt
		m.UpdatedAt = models.Now()
		return tx.Save(m).Error
	}); err != nil {
		return nil, err
	}
	return m, nil
}

// ReconcileMovement marks a movement as matched, or not, against the bank statement
func (s *Store) ReconcileMovement(ctx context.Context, id string, reconciled bool) (*models.BankMovement, error) {
	const op = "reconcile bank movement"
	var out *models.BankMovement
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		m, err := find[models.BankMovement](tx, id)
		if err != nil {
			return err
		}
		m.Reconciled = reconciled
		m.UpdatedAt = models.Now()
		if err := tx.Model(m).Updates(map[string]any{"conciliado": reconciled, "updatedAt": m.UpdatedAt}).Error; err != nil {
			return err
		}
		out = m
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteBankMovement(ctx context.Context, id string) error {
	return remove[models.BankMovement](ctx, s, "delete bank movement", id)
}
