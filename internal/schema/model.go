package schema

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	GORMSchema "gorm.io/gorm/schema"
)

// ModelColumn represents a gorm field
type ModelColumn struct {
	*GORMSchema.Field
}

func (c *ModelColumn) ColumnName() string {
	return c.DBName
}

func (c *ModelColumn) ColumnTag() reflect.StructTag {
	return c.Tag
}

// ModelTable represents a parsed gorm model
type ModelTable struct {
	*GORMSchema.Schema
	Columns []*ModelColumn
}

func (t *ModelTable) TableName() string {
	return t.Table
}

func CreateTableFromModel(model interface{}) (*ModelTable, error) {
	modelSchema, err := GORMSchema.Parse(model, &sync.Map{}, GORMSchema.NamingStrategy{})
	if err != nil {
		return nil, err
	}

	columns := make([]*ModelColumn, 0)

	for _, field := range modelSchema.Fields {
		if field.DBName == "" {
			continue
		}
		columns = append(columns, &ModelColumn{Field: field})
	}

	return &ModelTable{Schema: modelSchema, Columns: columns}, nil
}

// CheckModel verifies that a gorm model maps exactly onto a catalog table
func (c *Catalog) CheckModel(model interface{}) error {
	mt, err := CreateTableFromModel(model)
	if err != nil {
		return fmt.Errorf("failed to parse model: %w", err)
	}
	t := c.Table(mt.TableName())
	if t == nil {
		return fmt.Errorf("model %s maps to unknown table %q", mt.Name, mt.TableName())
	}

	modelCols := make([]string, 0, len(mt.Columns))
	for _, col := range mt.Columns {
		modelCols = append(modelCols, col.ColumnName())
		if t.Column(col.ColumnName()) == nil {
			return fmt.Errorf("model %s: column %q not in table %s", mt.Name, col.ColumnName(), t.Name)
		}
		if col.PrimaryKey != t.Column(col.ColumnName()).PrimaryKey {
			return fmt.Errorf("model %s: primary key mismatch on %q", mt.Name, col.ColumnName())
		}
	}
	for _, name := range t.ColumnNames() {
		if !slices.Contains(modelCols, name) {
			return fmt.Errorf("model %s: table column %s.%s has no field", mt.Name, t.Name, name)
		}
	}
	return nil
}
