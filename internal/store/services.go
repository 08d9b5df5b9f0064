package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/bentancorlucia/admin-edificios/internal/invariant"
	"github.com/bentancorlucia/admin-edificios/internal/models"
	"github.com/bentancorlucia/admin-edificios/internal/storeerr"
)

const ruleServiceTypeInUse = "service_type_in_use"

func (s *Store) CreateServiceType(ctx context.Context, st *models.ServiceType) (*models.ServiceType, error) {
	const op = "create service type"
	if st.Color == "" {
		st.Color = "default"
	}
	st.ID = newID()
	st.Active = true
	st.CreatedAt = models.Now()
	st.UpdatedAt = st.CreatedAt
	if err := invariant.Struct(st); err != nil {
		return nil, s.translate(op, err)
	}
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		return tx.Create(st).Error
	}); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Store) GetServiceType(ctx context.Context, id string) (*models.ServiceType, error) {
	return get[models.ServiceType](ctx, s, "get service type", id)
}

func (s *Store) ListServiceTypes(ctx context.Context) ([]models.ServiceType, error) {
	return list[models.ServiceType](ctx, s, "list service types", "orden, nombre", nil)
}

// UpdateServiceType edits a type; its code is fixed once services reference it
func (s *Store) UpdateServiceType(ctx context.Context, st *models.ServiceType) (*models.ServiceType, error) {
	const op = "update service type"
	if err := invariant.Struct(st); err != nil {
		return nil, s.translate(op, err)
	}
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		existing, err := find[models.ServiceType](tx, st.ID)
		if err != nil {
			return err
		}
		if existing.Code != st.Code {
			if err := ensureTypeUnused(tx, existing.Code); err != nil {
				return err
			}
		}
		st.CreatedAt = existing.CreatedAt
		st.UpdatedAt = models.Now()
		return tx.Save(st).Error
	}); err != nil {
		return nil, err
	}
	return st, nil
}

// DeleteServiceType removes a type no service refers to
func (s *Store) DeleteServiceType(ctx context.Context, id string) error {
	const op = "delete service type"
	return s.inTx(ctx, op, func(tx *gorm.DB) error {
		existing, err := find[models.ServiceType](tx, id)
		if err != nil {
			return err
		}
		if err := ensureTypeUnused(tx, existing.Code); err != nil {
			return err
		}
		return tx.Delete(existing).Error
	})
}

func ensureTypeUnused(tx *gorm.DB, code string) error {
	var n int64
	if err := tx.Model(&models.Service{}).Where("tipo = ?", code).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return storeerr.Violation("", ruleServiceTypeInUse, nil)
	}
	return nil
}

// ensureTypeKnown checks that a service names an existing type code
func ensureTypeKnown(tx *gorm.DB, code string) error {
	var n int64
	if err := tx.Model(&models.ServiceType{}).Where("codigo = ?", code).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return storeerr.Invalid(invariant.RuleServiceTypeKnown, "unknown service type %q", code)
	}
	return nil
}

func (s *Store) CreateService(ctx context.Context, svc *models.Service) (*models.Service, error) {
	const op = "create service"
	svc.ID = newID()
	svc.Active = true
	svc.CreatedAt = models.Now()
	svc.UpdatedAt = svc.CreatedAt
	if err := invariant.Struct(svc); err != nil {
		return nil, s.translate(op, err)
	}
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		if err := ensureTypeKnown(tx, svc.Type); err != nil {
			return err
		}
		return tx.Create(svc).Error
	}); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Store) GetService(ctx context.Context, id string) (*models.Service, error) {
	return get[models.Service](ctx, s, "get service", id)
}

func (s *Store) ListServices(ctx context.Context) ([]models.Service, error) {
	return list[models.Service](ctx, s, "list services", "nombre", nil)
}

func (s *Store) ActiveServices(ctx context.Context) ([]models.Service, error) {
	return list[models.Service](ctx, s, "list services", "nombre", "activo = ?", true)
}

func (s *Store) UpdateService(ctx context.Context, svc *models.Service) (*models.Service, error) {
	const op = "update service"
	if err := invariant.Struct(svc); err != nil {
		return nil, s.translate(op, err)
	}
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		existing, err := find[models.Service](tx, svc.ID)
		if err != nil {
			return err
		}
		if err := ensureTypeKnown(tx, svc.Type); err != nil {
			return err
		}
		svc.CreatedAt = existing.CreatedAt
		svc.UpdatedAt = models.Now()
		return tx.Save(svc).Error
	}); err != nil {
		return nil, err
	}
	return svc, nil
}

// DeleteService removes a provider; movements paid to it are detached
func (s *Store) DeleteService(ctx context.Context, id string) error {
	return remove[models.Service](ctx, s, "delete service", id)
}
