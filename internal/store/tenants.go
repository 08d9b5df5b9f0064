package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/bentancorlucia/admin-edificios/internal/invariant"
	"github.com/bentancorlucia/admin-edificios/internal/models"
)

func (s *Store) CreateTenant(ctx context.Context, t *models.Tenant) (*models.Tenant, error) {
	const op = "create tenant"
	if t.Kind == "" {
		t.Kind = models.OccupancyTenant
	}
	t.ID = newID()
	t.Active = true
	t.CreatedAt = models.Now()
	t.UpdatedAt = t.CreatedAt
	if t.MoveIn.IsZero() {
		t.MoveIn = t.CreatedAt
	}
	if err := invariant.Struct(t); err != nil {
		return nil, s.translate(op, err)
	}
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		return tx.Create(t).Error
	}); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Store) GetTenant(ctx context.Context, id string) (*models.Tenant, error) {
	return get[models.Tenant](ctx, s, "get tenant", id)
}

func (s *Store) ListTenants(ctx context.Context) ([]models.Tenant, error) {
	return list[models.Tenant](ctx, s, "list tenants", "nombre", nil)
}

// TenantsByApartment lists the people registered on a unit
func (s *Store) TenantsByApartment(ctx context.Context, apartmentID string) ([]models.Tenant, error) {
	return list[models.Tenant](ctx, s, "list tenants", "nombre", "apartamentoId = ?", apartmentID)
}

func (s *Store) UpdateTenant(ctx context.Context, t *models.Tenant) (*models.Tenant, error) {
	const op = "update tenant"
	if err := invariant.Struct(t); err != nil {
		return nil, s.translate(op, err)
	}
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		existing, err := find[models.Tenant](tx, t.ID)
		if err != nil {
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

func (s *Store) DeleteTenant(ctx context.Context, id string) error {
	return remove[models.Tenant](ctx, s, "delete tenant", id)
}
