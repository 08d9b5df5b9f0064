package schema

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Catalog is the authoritative set of entity definitions
type Catalog struct {
	Tables []*Table
}

// Dependent is a relationship pointing at a table
type Dependent struct {
	Table     string
	Column    string
	Ownership Ownership
}

// Table returns the named table or nil
func (c *Catalog) Table(name string) *Table {
	for _, t := range c.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// TableNames lists the table names in declaration order
func (c *Catalog) TableNames() []string {
	names := make([]string, len(c.Tables))
	for i, t := range c.Tables {
		names[i] = t.Name
	}
	return names
}

// Indexes lists every index of the catalog
func (c *Catalog) Indexes() []*Index {
	var out []*Index
	for _, t := range c.Tables {
		out = append(out, t.Indexes...)
	}
	return out
}

// Index returns the named index or nil
func (c *Catalog) Index(name string) *Index {
	for _, idx := range c.Indexes() {
		if idx.Name == name {
			return idx
		}
	}
	return nil
}

// InitialStatements renders the tables and the indexes of the initial schema
func (c *Catalog) InitialStatements() []string {
	stmts := make([]string, 0, len(c.Tables))
	for _, t := range c.Tables {
		stmts = append(stmts, t.createSQL(1))
	}
	for _, idx := range c.Indexes() {
		if idx.Since <= 1 {
			stmts = append(stmts, idx.CreateSQL())
		}
	}
	return stmts
}

// IndexStatements renders the indexes introduced by the given ledger version
func (c *Catalog) IndexStatements(version int64) []string {
	var stmts []string
	for _, idx := range c.Indexes() {
		if idx.Since == version && version > 1 {
			stmts = append(stmts, idx.CreateSQL())
		}
	}
	return stmts
}

// ColumnStatements renders the columns added by the given ledger version
func (c *Catalog) ColumnStatements(version int64) []string {
	var stmts []string
	for _, t := range c.Tables {
		for _, col := range t.Columns {
			if col.Since == version && version > 1 {
				stmts = append(stmts, col.AddSQL(t.Name))
			}
		}
	}
	return stmts
}

// Latest is the highest ledger version any column or index of the catalog needs
func (c *Catalog) Latest() int64 {
	latest := int64(1)
	for _, t := range c.Tables {
		for _, col := range t.Columns {
			latest = max(latest, col.Since)
		}
		for _, idx := range t.Indexes {
			latest = max(latest, idx.Since)
		}
	}
	return latest
}

// DDL renders the full current schema as one script
func (c *Catalog) DDL() string {
	stmts := make([]string, 0, len(c.Tables))
	for _, t := range c.Tables {
		stmts = append(stmts, t.CreateSQL())
	}
	for _, idx := range c.Indexes() {
		stmts = append(stmts, idx.CreateSQL())
	}
	return strings.Join(stmts, ";\n\n") + ";\n"
}

// UniqueRule names the uniqueness rule declared on exactly these columns
func (c *Catalog) UniqueRule(table string, columns []string) string {
	t := c.Table(table)
	if t == nil {
		return ""
	}
	return t.uniqueRule(columns)
}

// CheckRule reports whether name is an enumerated-domain constraint of the catalog
func (c *Catalog) CheckRule(name string) bool {
	for _, t := range c.Tables {
		for _, col := range t.Columns {
			if len(col.Enum) > 0 && CheckName(t.Name, col.Name) == name {
				return true
			}
		}
	}
	return false
}

// Dependents lists the relationships that reference table
func (c *Catalog) Dependents(table string) []Dependent {
	var out []Dependent
	for _, t := range c.Tables {
		for _, fk := range t.ForeignKeys {
			if fk.RefTable == table {
				out = append(out, Dependent{Table: t.Name, Column: fk.Column, Ownership: fk.Ownership})
			}
		}
	}
	return out
}

// Validate checks the catalog for structural mistakes
func (c *Catalog) Validate() error {
	var errs []error
	seen := map[string]bool{}
	names := map[string]string{}
	claim := func(kind, name string) {
		if prev, ok := names[name]; ok {
			errs = append(errs, fmt.Errorf("%s %q already used by a %s", kind, name, prev))
			return
		}
		names[name] = kind
	}

	for _, t := range c.Tables {
		if seen[t.Name] {
			errs = append(errs, fmt.Errorf("table %q declared twice", t.Name))
			continue
		}
		seen[t.Name] = true
		errs = append(errs, c.validateTable(t)...)
		for _, u := range t.Uniques {
			claim("unique constraint", u.Name)
		}
		for _, idx := range t.Indexes {
			claim("index", idx.Name)
		}
	}
	return errors.Join(errs...)
}

func (c *Catalog) validateTable(t *Table) []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("table %s: "+format, append([]any{t.Name}, args...)...))
	}

	pks := 0
	cols := map[string]bool{}
	for _, col := range t.Columns {
		if cols[col.Name] {
			fail("column %q declared twice", col.Name)
		}
		cols[col.Name] = true
		if col.PrimaryKey {
			pks++
		}
		if len(col.Enum) > 0 && col.Default != "" && !slices.Contains(col.Enum, unquote(col.Default)) {
			fail("default %s of %q is outside its domain", col.Default, col.Name)
		}
		if col.Since > 1 {
			switch {
			case col.PrimaryKey:
				fail("primary key %q must belong to the initial schema", col.Name)
			case col.NotNull && col.Default == "":
				fail("added column %q needs a default to be NOT NULL", col.Name)
			case t.inlineUnique(col.Name):
				fail("added column %q cannot carry a unique constraint", col.Name)
			}
		}
	}
	if pks != 1 {
		fail("expected exactly one primary key, found %d", pks)
	}

	for _, u := range t.Uniques {
		for _, name := range u.Columns {
			if !cols[name] {
				fail("unique %s references unknown column %q", u.Name, name)
			}
		}
	}
	for _, fk := range t.ForeignKeys {
		col := t.Column(fk.Column)
		if col == nil {
			fail("foreign key on unknown column %q", fk.Column)
			continue
		}
		if fk.Ownership == Weak && col.NotNull {
			fail("weak reference %q cannot be NOT NULL", fk.Column)
		}
		if col.Since > 1 {
			fail("reference %q must belong to the initial schema", fk.Column)
		}
		ref := c.Table(fk.RefTable)
		if ref == nil {
			fail("foreign key %q references unknown table %q", fk.Column, fk.RefTable)
			continue
		}
		if pk := ref.PrimaryKey(); pk == nil || pk.Name != fk.RefColumn {
			fail("foreign key %q must reference the primary key of %s", fk.Column, fk.RefTable)
		}
	}
	for _, idx := range t.Indexes {
		if idx.Table != t.Name {
			fail("index %s declared on %s", idx.Name, idx.Table)
		}
		for _, name := range idx.Columns {
			if !cols[name] {
				fail("index %s references unknown column %q", idx.Name, name)
			}
		}
	}
	return errs
}

func unquote(v string) string {
	return strings.ReplaceAll(strings.TrimSuffix(strings.TrimPrefix(v, "'"), "'"), "''", "'")
}
