package diff

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/bentancorlucia/admin-edificios/internal/schema"
	"github.com/bentancorlucia/admin-edificios/migration"
)

// ForeignKeyDiff is a relationship whose delete action differs from the catalog
type ForeignKeyDiff struct {
	Column   string
	Current  string
	Expected string
}

// FieldDiff is a column whose storage class differs from the catalog
type FieldDiff struct {
	Column   string
	Current  string
	Expected string
}

// TableDiff lists what a live table lacks compared to its catalog definition
type TableDiff struct {
	Table               string
	FieldsToAdd         []string
	FieldsToModify      []FieldDiff
	UniquesToAdd        []string
	IndexesToAdd        []string
	ForeignKeysToAdd    []string
	ForeignKeysToModify []ForeignKeyDiff
}

// IsEmpty reports whether the table matches the catalog
func (d *TableDiff) IsEmpty() bool {
	return len(d.FieldsToAdd) == 0 && len(d.FieldsToModify) == 0 &&
		len(d.UniquesToAdd) == 0 && len(d.IndexesToAdd) == 0 &&
		len(d.ForeignKeysToAdd) == 0 && len(d.ForeignKeysToModify) == 0
}

// SchemaDiff is the drift between a live store and the catalog. Unmanaged
// tables are reported but never count as drift.
type SchemaDiff struct {
	TablesToCreate  []string
	TablesToModify  []TableDiff
	UnmanagedTables []string
}

// IsEmpty reports whether the store matches the catalog
func (d *SchemaDiff) IsEmpty() bool {
	return len(d.TablesToCreate) == 0 && len(d.TablesToModify) == 0
}

// Problems renders the drift one finding per line
func (d *SchemaDiff) Problems() []string {
	var out []string
	for _, t := range d.TablesToCreate {
		out = append(out, fmt.Sprintf("table %s is missing", t))
	}
	for _, td := range d.TablesToModify {
		for _, c := range td.FieldsToAdd {
			out = append(out, fmt.Sprintf("column %s.%s is missing", td.Table, c))
		}
		for _, f := range td.FieldsToModify {
			out = append(out, fmt.Sprintf("column %s.%s is %s, expected %s", td.Table, f.Column, f.Current, f.Expected))
		}
		for _, u := range td.UniquesToAdd {
			out = append(out, fmt.Sprintf("unique rule %s on %s is not enforced", u, td.Table))
		}
		for _, i := range td.IndexesToAdd {
			out = append(out, fmt.Sprintf("index %s on %s is missing", i, td.Table))
		}
		for _, c := range td.ForeignKeysToAdd {
			out = append(out, fmt.Sprintf("foreign key %s.%s is missing", td.Table, c))
		}
		for _, fk := range td.ForeignKeysToModify {
			out = append(out, fmt.Sprintf("foreign key %s.%s deletes with %s, expected %s", td.Table, fk.Column, fk.Current, fk.Expected))
		}
	}
	return out
}

// SchemaComparer compares a live store against the catalog
type SchemaComparer struct {
	inspector Inspector
}

func NewSchemaComparer(inspector Inspector) *SchemaComparer {
	return &SchemaComparer{inspector: inspector}
}

// Compare reports everything the catalog declares that the store lacks
func (c *SchemaComparer) Compare(ctx context.Context, cat *schema.Catalog) (*SchemaDiff, error) {
	live, err := c.inspector.Tables(ctx)
	if err != nil {
		return nil, err
	}

	diff := &SchemaDiff{}
	for _, t := range cat.Tables {
		if !slices.ContainsFunc(live, func(name string) bool { return strings.EqualFold(name, t.Name) }) {
			diff.TablesToCreate = append(diff.TablesToCreate, t.Name)
			continue
		}
		td, err := c.CompareTable(ctx, t)
		if err != nil {
			return nil, err
		}
		if !td.IsEmpty() {
			diff.TablesToModify = append(diff.TablesToModify, *td)
		}
	}

	for _, name := range live {
		if name == migration.VersionTable {
			continue
		}
		if cat.Table(name) == nil {
			diff.UnmanagedTables = append(diff.UnmanagedTables, name)
		}
	}
	return diff, nil
}

// CompareTable compares one existing table with its definition
func (c *SchemaComparer) CompareTable(ctx context.Context, t *schema.Table) (*TableDiff, error) {
	td := &TableDiff{Table: t.Name}

	cols, err := c.inspector.Columns(ctx, t.Name)
	if err != nil {
		return nil, err
	}
	liveCols := make(map[string]ColumnInfo, len(cols))
	for _, col := range cols {
		liveCols[strings.ToLower(col.Name)] = col
	}
	for _, col := range t.Columns {
		live, ok := liveCols[strings.ToLower(col.Name)]
		if !ok {
			td.FieldsToAdd = append(td.FieldsToAdd, col.Name)
			continue
		}
		if !typesEqual(live.Type, col.Type) {
			td.FieldsToModify = append(td.FieldsToModify, FieldDiff{Column: col.Name, Current: live.Type, Expected: string(col.Type)})
		}
	}

	indexes, err := c.inspector.Indexes(ctx, t.Name)
	if err != nil {
		return nil, err
	}
	for _, u := range t.Uniques {
		if !hasUniqueIndex(indexes, u.Columns) {
			td.UniquesToAdd = append(td.UniquesToAdd, u.Name)
		}
	}
	for _, idx := range t.Indexes {
		if !slices.ContainsFunc(indexes, func(live IndexInfo) bool { return live.Name == idx.Name }) {
			td.IndexesToAdd = append(td.IndexesToAdd, idx.Name)
		}
	}

	fks, err := c.inspector.ForeignKeys(ctx, t.Name)
	if err != nil {
		return nil, err
	}
	for _, fk := range t.ForeignKeys {
		i := slices.IndexFunc(fks, func(live ForeignKeyInfo) bool {
			return strings.EqualFold(live.Column, fk.Column) && strings.EqualFold(live.RefTable, fk.RefTable)
		})
		if i < 0 {
			td.ForeignKeysToAdd = append(td.ForeignKeysToAdd, fk.Column)
			continue
		}
		if want := fk.Ownership.OnDelete(); !strings.EqualFold(fks[i].OnDelete, want) {
			td.ForeignKeysToModify = append(td.ForeignKeysToModify, ForeignKeyDiff{Column: fk.Column, Current: fks[i].OnDelete, Expected: want})
		}
	}
	return td, nil
}

// hasUniqueIndex looks for a full unique index over exactly columns
func hasUniqueIndex(indexes []IndexInfo, columns []string) bool {
	for _, idx := range indexes {
		if !idx.Unique || idx.Partial || len(idx.Columns) != len(columns) {
			continue
		}
		match := true
		for _, c := range columns {
			if !slices.ContainsFunc(idx.Columns, func(live string) bool { return strings.EqualFold(live, c) }) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// typesEqual compares declared types by SQLite affinity
func typesEqual(live string, want schema.ColumnType) bool {
	return affinity(live) == affinity(string(want))
}

func affinity(declared string) string {
	t := strings.ToUpper(declared)
	switch {
	case strings.Contains(t, "INT"):
		return "INTEGER"
	case strings.Contains(t, "CHAR"), strings.Contains(t, "CLOB"), strings.Contains(t, "TEXT"):
		return "TEXT"
	case strings.Contains(t, "REAL"), strings.Contains(t, "FLOA"), strings.Contains(t, "DOUB"):
		return "REAL"
	case t == "" || strings.Contains(t, "BLOB"):
		return "BLOB"
	}
	return "NUMERIC"
}
