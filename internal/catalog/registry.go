package catalog

import (
	"errors"
	"fmt"

	"github.com/bentancorlucia/admin-edificios/internal/models"
	"github.com/bentancorlucia/admin-edificios/migration"
)

// ModelRegistry exposes the store models to the migration tooling
type ModelRegistry struct{}

var _ migration.ModelRegistry = ModelRegistry{}

func (ModelRegistry) GetModels() map[string]interface{} {
	return models.ModelTypeRegistry
}

// Verify validates the catalog and checks every registered model against it
func Verify(registry migration.ModelRegistry) error {
	cat := Schema()
	if err := cat.Validate(); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}

	var errs []error
	mapped := map[string]bool{}
	for name, model := range registry.GetModels() {
		if err := cat.CheckModel(model); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		if tn, ok := model.(interface{ TableName() string }); ok {
			mapped[tn.TableName()] = true
		}
	}
	for _, table := range cat.TableNames() {
		if !mapped[table] {
			errs = append(errs, fmt.Errorf("table %s has no model", table))
		}
	}
	return errors.Join(errs...)
}
