package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/bentancorlucia/admin-edificios/internal/invariant"
	"github.com/bentancorlucia/admin-edificios/internal/models"
	"github.com/bentancorlucia/admin-edificios/internal/storeerr"
)

// clearDefault unsets the default flag on every account but keep
func clearDefault(tx *gorm.DB, keep string) error {
	return tx.Model(&models.BankAccount{}).
		Where("porDefecto = ? AND id <> ?", true, keep).
		Updates(map[string]any{"porDefecto": false, "updatedAt": models.Now()}).Error
}

// CreateBankAccount opens an active account. Marking it as default clears the previous default.
func (s *Store) CreateBankAccount(ctx context.Context, a *models.BankAccount) (*models.BankAccount, error) {
	const op = "create bank account"
	a.ID = newID()
	a.Active = true
	a.CreatedAt = models.Now()
	a.UpdatedAt = a.CreatedAt
	if err := invariant.Struct(a); err != nil {
		return nil, s.translate(op, err)
	}
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		if a.Default {
			if err := clearDefault(tx, a.ID); err != nil {
				return err
			}
		}
		return tx.Create(a).Error
	}); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Store) GetBankAccount(ctx context.Context, id string) (*models.BankAccount, error) {
	return get[models.BankAccount](ctx, s, "get bank account", id)
}

// ListBankAccounts returns the default account first, then by bank
func (s *Store) ListBankAccounts(ctx context.Context) ([]models.BankAccount, error) {
	return list[models.BankAccount](ctx, s, "list bank accounts", "porDefecto DESC, banco", nil)
}

// DefaultAccount returns the default account
func (s *Store) DefaultAccount(ctx context.Context) (*models.BankAccount, error) {
	var out models.BankAccount
	if err := s.db.WithContext(ctx).Where("porDefecto = ?", true).Take(&out).Error; err != nil {
		return nil, s.translate("get default account", err)
	}
	return &out, nil
}

func (s *Store) UpdateBankAccount(ctx context.Context, a *models.BankAccount) (*models.BankAccount, error) {
	const op = "update bank account"
	if err := invariant.Struct(a); err != nil {
		return nil, s.translate(op, err)
	}
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		existing, err := find[models.BankAccount](tx, a.ID)
		if err != nil {
			return err
		}
		if a.Default {
			if err := clearDefault(tx, a.ID); err != nil {
				return err
			}
		}
		a.CreatedAt = existing.CreatedAt
		a.UpdatedAt = models.Now()
		return tx.Save(a).Error
	}); err != nil {
		return nil, err
	}
	return a, nil
}

// SetDefaultAccount makes id the only default account
func (s *Store) SetDefaultAccount(ctx context.Context, id string) error {
	const op = "set default account"
	return s.inTx(ctx, op, func(tx *gorm.DB) error {
		if _, err := find[models.BankAccount](tx, id); err != nil {
			return err
		}
		if err := clearDefault(tx, id); err != nil {
			return err
		}
		res := tx.Model(&models.BankAccount{}).Where("id = ?", id).
			Updates(map[string]any{"porDefecto": true, "updatedAt": models.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return storeerr.New(storeerr.NotFound, op, gorm.ErrRecordNotFound)
		}
		return nil
	})
}

// DeleteBankAccount removes an account together with its movements
func (s *Store) DeleteBankAccount(ctx context.Context, id string) error {
	return remove[models.BankAccount](ctx, s, "delete bank account", id)
}
