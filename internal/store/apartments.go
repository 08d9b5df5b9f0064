package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/bentancorlucia/admin-edificios/internal/invariant"
	"github.com/bentancorlucia/admin-edificios/internal/models"
)

// CreateApartment inserts a unit; the occupancy defaults to the owner
func (s *Store) CreateApartment(ctx context.Context, a *models.Apartment) (*models.Apartment, error) {
	const op = "create apartment"
	if a.Occupancy == "" {
		a.Occupancy = models.OccupancyOwner
	}
	a.ID = newID()
	a.CreatedAt = models.Now()
	a.UpdatedAt = a.CreatedAt
	if err := invariant.Struct(a); err != nil {
		return nil, s.translate(op, err)
	}
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		return tx.Create(a).Error
	}); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Store) GetApartment(ctx context.Context, id string) (*models.Apartment, error) {
	return get[models.Apartment](ctx, s, "get apartment", id)
}

// ListApartments returns every unit ordered by number, owner before tenant
func (s *Store) ListApartments(ctx context.Context) ([]models.Apartment, error) {
	return list[models.Apartment](ctx, s, "list apartments", "numero, tipoOcupacion", nil)
}

func (s *Store) UpdateApartment(ctx context.Context, a *models.Apartment) (*models.Apartment, error) {
	const op = "update apartment"
	if err := invariant.Struct(a); err != nil {
		return nil, s.translate(op, err)
	}
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		existing, err := find[models.Apartment](tx, a.ID)
		if err != nil {
			return err
		}
		a.CreatedAt = existing.CreatedAt
		a.UpdatedAt = models.Now()
		return tx.Save(a).Error
	}); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteApartment removes a unit; its tenants and transactions are detached
func (s *Store) DeleteApartment(ctx context.Context, id string) error {
	return remove[models.Apartment](ctx, s, "delete apartment", id)
}
