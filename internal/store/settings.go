package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bentancorlucia/admin-edificios/internal/invariant"
	"github.com/bentancorlucia/admin-edificios/internal/models"
)

const (
	ReportFooterKey     = "pie_pagina_informe"
	DefaultReportFooter = "Sistema de Administración de Edificios"
)

// Setting returns the value stored under key and whether it exists
func (s *Store) Setting(ctx context.Context, key string) (string, bool, error) {
	var out models.ReportSetting
	err := s.db.WithContext(ctx).Where("clave = ?", key).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, s.translate("get setting", err)
	}
	return out.Value, true, nil
}

// SetSetting creates or replaces the value stored under key
func (s *Store) SetSetting(ctx context.Context, key, value string) (*models.ReportSetting, error) {
	const op = "set setting"
	var out *models.ReportSetting
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		now := models.Now()
		var existing models.ReportSetting
		err := tx.Where("clave = ?", key).Take(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			out = &models.ReportSetting{ID: newID(), Key: key, Value: value, CreatedAt: now, UpdatedAt: now}
			if err := invariant.Struct(out); err != nil {
				return err
			}
			return tx.Create(out).Error
		case err != nil:
			return err
		}
		existing.Value = value
		existing.UpdatedAt = now
		out = &existing
		return tx.Model(&existing).Updates(map[string]any{"valor": value, "updatedAt": now}).Error
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// ReportFooter is the footer printed on reports
func (s *Store) ReportFooter(ctx context.Context) (string, error) {
	v, ok, err := s.Setting(ctx, ReportFooterKey)
	if err != nil || !ok {
		return DefaultReportFooter, err
	}
	return v, nil
}

func (s *Store) SetReportFooter(ctx context.Context, footer string) (string, error) {
	st, err := s.SetSetting(ctx, ReportFooterKey, footer)
	if err != nil {
		return "", err
	}
	return st.Value, nil
}
