package schema

import (
	"fmt"
	"strings"
)

// ColumnType is a SQLite storage class
type ColumnType string

const (
	Text    ColumnType = "TEXT"
	Integer ColumnType = "INTEGER"
	Real    ColumnType = "REAL"
)

// Column is a column definition of the catalog
type Column struct {
	Name       string
	Type       ColumnType
	PrimaryKey bool
	NotNull    bool
	// Default is a raw SQL expression, e.g. "0", "'PENDIENTE'" or "(datetime('now'))"
	Default string
	// Enum restricts the column to a closed set of values, rendered as a named CHECK
	Enum []string
	// Since is the ledger version that adds the column; 0 and 1 mean the initial schema
	Since int64
}

// CheckName is the name of the enumerated-domain constraint of a column
func CheckName(table, column string) string {
	return fmt.Sprintf("ck_%s_%s", table, column)
}

func (c *Column) definition(table string, unique bool) string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte(' ')
	b.WriteString(string(c.Type))
	if c.PrimaryKey {
		b.WriteString(" PRIMARY KEY")
	}
	if unique {
		b.WriteString(" UNIQUE")
	}
	if c.NotNull {
		b.WriteString(" NOT NULL")
	}
	if c.Default != "" {
		b.WriteString(" DEFAULT ")
		b.WriteString(c.Default)
	}
	if len(c.Enum) > 0 {
		fmt.Fprintf(&b, " CONSTRAINT %s CHECK (%s IN (%s))", CheckName(table, c.Name), c.Name, quoteList(c.Enum))
	}
	return b.String()
}

// AddSQL renders the ALTER TABLE statement that adds the column
func (c *Column) AddSQL(table string) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", table, c.definition(table, false))
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}
	return strings.Join(quoted, ", ")
}

func quote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}
