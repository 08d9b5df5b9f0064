package store

import (
	"context"
	"fmt"

	"github.com/bentancorlucia/admin-edificios/internal/schema"
	"github.com/bentancorlucia/admin-edificios/internal/storeerr"
)

// Impact is what deleting a row does to one relationship pointing at it
type Impact struct {
	Table     string
	Column    string
	Ownership schema.Ownership
	Rows      int64
}

// DeleteImpact reports how many rows a delete would remove (owning
// relationships) or detach (weak relationships). Relationships with no
// affected rows are omitted.
func (s *Store) DeleteImpact(ctx context.Context, table, id string) ([]Impact, error) {
	const op = "delete impact"
	if s.cat.Table(table) == nil {
		return nil, storeerr.WithOp(op, storeerr.Invalid("known_table", "unknown table %q", table))
	}

	var exists int64
	if err := s.db.WithContext(ctx).Table(table).Where("id = ?", id).Count(&exists).Error; err != nil {
		return nil, s.translate(op, err)
	}
	if exists == 0 {
		return nil, storeerr.New(storeerr.NotFound, op, fmt.Errorf("%s %s", table, id))
	}

	var out []Impact
	for _, dep := range s.cat.Dependents(table) {
		var n int64
		if err := s.db.WithContext(ctx).Table(dep.Table).Where(dep.Column+" = ?", id).Count(&n).Error; err != nil {
			return nil, s.translate(op, err)
		}
		if n > 0 {
			out = append(out, Impact{Table: dep.Table, Column: dep.Column, Ownership: dep.Ownership, Rows: n})
		}
	}
	return out, nil
}
