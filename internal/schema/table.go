package schema

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Ownership tells what happens to a referencing row when its target is deleted
type Ownership int

const (
	// Owning relationships delete the referencing rows with their target
	Owning Ownership = iota
	// Weak relationships keep the referencing rows and clear the reference
	Weak
)

func (o Ownership) String() string {
	if o == Owning {
		return "owning"
	}
	return "weak"
}

// OnDelete is the SQL referential action of the relationship
func (o Ownership) OnDelete() string {
	if o == Owning {
		return "CASCADE"
	}
	return "SET NULL"
}

// ForeignKey is a reference from a column to the primary key of another table
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
	Ownership Ownership
}

// UniqueConstraint is a named uniqueness rule over one or more columns
type UniqueConstraint struct {
	Name    string
	Columns []string
}

// Index is a secondary index. Since is the ledger version that introduces it;
// indexes with Since <= 1 belong to the initial schema.
type Index struct {
	Name    string
	Table   string
	Columns []string
	Unique  bool
	Where   string
	// Rule names the invariant a unique index enforces, defaults to Name
	Rule  string
	Since int64
}

// RuleName is the invariant name reported when the index rejects a write
func (i *Index) RuleName() string {
	if i.Rule != "" {
		return i.Rule
	}
	return i.Name
}

// CreateSQL renders the CREATE INDEX statement
func (i *Index) CreateSQL() string {
	var b strings.Builder
	b.WriteString("CREATE ")
	if i.Unique {
		b.WriteString("UNIQUE ")
	}
	fmt.Fprintf(&b, "INDEX IF NOT EXISTS %s ON %s(%s)", i.Name, i.Table, strings.Join(i.Columns, ", "))
	if i.Where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(i.Where)
	}
	return b.String()
}

// Table is an entity definition of the catalog
type Table struct {
	Name        string
	Columns     []*Column
	Uniques     []UniqueConstraint
	ForeignKeys []ForeignKey
	Indexes     []*Index
}

// Column returns the named column or nil
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// PrimaryKey returns the primary identifier column
func (t *Table) PrimaryKey() *Column {
	for _, c := range t.Columns {
		if c.PrimaryKey {
			return c
		}
	}
	return nil
}

// ColumnNames lists the column names in declaration order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

func (t *Table) inlineUnique(column string) bool {
	for _, u := range t.Uniques {
		if len(u.Columns) == 1 && u.Columns[0] == column {
			return true
		}
	}
	return false
}

// CreateSQL renders the CREATE TABLE statement of the current shape
func (t *Table) CreateSQL() string {
	return t.createSQL(math.MaxInt64)
}

// createSQL renders the table with the columns introduced up to version
func (t *Table) createSQL(version int64) string {
	lines := make([]string, 0, len(t.Columns)+len(t.Uniques)+len(t.ForeignKeys))
	for _, c := range t.Columns {
		if c.Since > version {
			continue
		}
		lines = append(lines, c.definition(t.Name, t.inlineUnique(c.Name)))
	}
	for _, u := range t.Uniques {
		if len(u.Columns) > 1 {
			lines = append(lines, fmt.Sprintf("CONSTRAINT %s UNIQUE (%s)", u.Name, strings.Join(u.Columns, ", ")))
		}
	}
	for _, fk := range t.ForeignKeys {
		lines = append(lines, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(%s) ON DELETE %s",
			fk.Column, fk.RefTable, fk.RefColumn, fk.Ownership.OnDelete()))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n    %s\n)", t.Name, strings.Join(lines, ",\n    "))
}

// uniqueRule finds the rule enforced on exactly the given column set
func (t *Table) uniqueRule(columns []string) string {
	same := func(a []string) bool {
		if len(a) != len(columns) {
			return false
		}
		for _, c := range a {
			if !slices.Contains(columns, c) {
				return false
			}
		}
		return true
	}
	for _, u := range t.Uniques {
		if same(u.Columns) {
			return u.Name
		}
	}
	for _, idx := range t.Indexes {
		if idx.Unique && same(idx.Columns) {
			return idx.RuleName()
		}
	}
	return ""
}
