package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableModels(t *testing.T) {
	dir := t.TempDir()
	src := `package models

type Unit struct{ ID string }

func (Unit) TableName() string { return "Unidad" }

type Owner struct{ ID string }

func (*Owner) TableName() string { return "Dueno" }

type helper struct{}

type Kind string
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "models.go"), []byte(src), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, registryFile), []byte("package models\n\ntype Stale struct{}\n"), 0644))

	names, pkg, err := tableModels(dir)
	require.NoError(t, err)
	assert.Equal(t, "models", pkg)
	assert.Equal(t, []string{"Owner", "Unit"}, names)

	out, err := render(pkg, names)
	require.NoError(t, err)
	assert.Contains(t, string(out), "DO NOT EDIT")
	assert.Contains(t, string(out), `"Owner": Owner{},`)
}

func TestTableModels_RepositoryModels(t *testing.T) {
	names, _, err := tableModels(filepath.Join("..", "..", "internal", "models"))
	require.NoError(t, err)
	assert.Len(t, names, 10)
	assert.Contains(t, names, "Transaction")
}
