package diff

import (
	"context"
	"database/sql"
	"fmt"
)

// ColumnInfo is a column as the store reports it
type ColumnInfo struct {
	Name       string
	Type       string
	NotNull    bool
	Default    sql.NullString
	PrimaryKey bool
}

// IndexInfo is an index as the store reports it. Origin is "c" for
// CREATE INDEX, "u" for UNIQUE constraints and "pk" for primary keys.
type IndexInfo struct {
	Name    string
	Unique  bool
	Origin  string
	Partial bool
	Columns []string
}

// ForeignKeyInfo is a foreign key as the store reports it
type ForeignKeyInfo struct {
	Column    string
	RefTable  string
	RefColumn string
	OnDelete  string
}

// Inspector reads the live schema of a store
type Inspector interface {
	Tables(ctx context.Context) ([]string, error)
	Columns(ctx context.Context, table string) ([]ColumnInfo, error)
	Indexes(ctx context.Context, table string) ([]IndexInfo, error)
	ForeignKeys(ctx context.Context, table string) ([]ForeignKeyInfo, error)
}

// SQLiteInspector queries sqlite_master and the table-valued pragmas
type SQLiteInspector struct {
	db *sql.DB
}

func NewSQLiteInspector(db *sql.DB) *SQLiteInspector {
	return &SQLiteInspector{db: db}
}

func (i *SQLiteInspector) Tables(ctx context.Context) ([]string, error) {
	rows, err := i.db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func (i *SQLiteInspector) Columns(ctx context.Context, table string) ([]ColumnInfo, error) {
	rows, err := i.db.QueryContext(ctx,
		`SELECT name, type, "notnull", dflt_value, pk FROM pragma_table_info(?) ORDER BY cid`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", table, err)
	}
	defer rows.Close()

	var cols []ColumnInfo
	for rows.Next() {
		var c ColumnInfo
		var pk int
		if err := rows.Scan(&c.Name, &c.Type, &c.NotNull, &c.Default, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column row: %w", err)
		}
		c.PrimaryKey = pk > 0
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

func (i *SQLiteInspector) Indexes(ctx context.Context, table string) ([]IndexInfo, error) {
	rows, err := i.db.QueryContext(ctx,
		`SELECT name, "unique", origin, partial FROM pragma_index_list(?) ORDER BY name`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to get indexes for table %s: %w", table, err)
	}

	var indexes []IndexInfo
	for rows.Next() {
		var idx IndexInfo
		if err := rows.Scan(&idx.Name, &idx.Unique, &idx.Origin, &idx.Partial); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan index row: %w", err)
		}
		indexes = append(indexes, idx)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// columns are read after the list is closed, the store may hold a single connection
	for n := range indexes {
		cols, err := i.indexColumns(ctx, indexes[n].Name)
		if err != nil {
			return nil, err
		}
		indexes[n].Columns = cols
	}
	return indexes, nil
}

func (i *SQLiteInspector) indexColumns(ctx context.Context, index string) ([]string, error) {
	rows, err := i.db.QueryContext(ctx, "SELECT name FROM pragma_index_info(?) ORDER BY seqno", index)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns of index %s: %w", index, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan index column: %w", err)
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

func (i *SQLiteInspector) ForeignKeys(ctx context.Context, table string) ([]ForeignKeyInfo, error) {
	rows, err := i.db.QueryContext(ctx,
		`SELECT "from", "table", "to", on_delete FROM pragma_foreign_key_list(?) ORDER BY id, seq`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to get foreign keys for table %s: %w", table, err)
	}
	defer rows.Close()

	var fks []ForeignKeyInfo
	for rows.Next() {
		var fk ForeignKeyInfo
		var to sql.NullString
		if err := rows.Scan(&fk.Column, &fk.RefTable, &to, &fk.OnDelete); err != nil {
			return nil, fmt.Errorf("failed to scan foreign key row: %w", err)
		}
		fk.RefColumn = to.String
		fks = append(fks, fk)
	}
	return fks, rows.Err()
}
