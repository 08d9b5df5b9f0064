package migration

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockModelRegistry struct{}

func (r *mockModelRegistry) GetModels() map[string]interface{} {
	return map[string]interface{}{"ChangeSet": ChangeSet{}}
}

func TestValidateRegistry(t *testing.T) {
	GlobalModelRegistry = nil
	assert.Error(t, ValidateRegistry())

	GlobalModelRegistry = &mockModelRegistry{}
	assert.NoError(t, ValidateRegistry())
	GlobalModelRegistry = nil
}

func TestNewLedger_Orders(t *testing.T) {
	ledger, err := NewLedger(
		&ChangeSet{Version: 3, Description: "c", Statements: []string{"SELECT 3"}},
		&ChangeSet{Version: 1, Description: "a", Statements: []string{"SELECT 1"}},
		&ChangeSet{Version: 2, Description: "b", Statements: []string{"SELECT 2"}},
	)
	require.NoError(t, err)

	var versions []int64
	for _, cs := range ledger.ChangeSets() {
		versions = append(versions, cs.Version)
	}
	assert.Equal(t, []int64{1, 2, 3}, versions)
	assert.Equal(t, int64(3), ledger.Latest())

	pending := ledger.Pending(1)
	require.Len(t, pending, 2)
	assert.Equal(t, int64(2), pending[0].Version)
	assert.Empty(t, ledger.Pending(3))

	cs, ok := ledger.Get(2)
	require.True(t, ok)
	assert.Equal(t, "b", cs.Description)
	_, ok = ledger.Get(9)
	assert.False(t, ok)
}

func TestNewLedger_Rejects(t *testing.T) {
	tests := []struct {
		name string
		sets []*ChangeSet
	}{
		{"duplicate", []*ChangeSet{
			{Version: 1, Description: "a", Statements: []string{"SELECT 1"}},
			{Version: 1, Description: "b", Statements: []string{"SELECT 1"}},
		}},
		{"zero version", []*ChangeSet{{Version: 0, Description: "a", Statements: []string{"SELECT 1"}}}},
		{"negative version", []*ChangeSet{{Version: -2, Description: "a", Statements: []string{"SELECT 1"}}}},
		{"no statements", []*ChangeSet{{Version: 1, Description: "a"}}},
		{"no description", []*ChangeSet{{Version: 1, Statements: []string{"SELECT 1"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLedger(tt.sets...)
			assert.Error(t, err)
		})
	}
}

func TestEmptyLedger(t *testing.T) {
	ledger, err := NewLedger()
	require.NoError(t, err)
	assert.Equal(t, int64(0), ledger.Latest())
	assert.Empty(t, ledger.Pending(0))
}

func TestChangeSet_Checksum(t *testing.T) {
	a := &ChangeSet{Version: 1, Statements: []string{"CREATE TABLE a (id TEXT)", "CREATE TABLE b (id TEXT)"}}
	b := &ChangeSet{Version: 1, Statements: []string{"  CREATE TABLE a (id TEXT)\n", "CREATE TABLE b (id TEXT)"}}
	c := &ChangeSet{Version: 1, Statements: []string{"CREATE TABLE a (id TEXT)", "CREATE TABLE b (id INTEGER)"}}

	assert.Len(t, a.Checksum(), 64)
	assert.Equal(t, a.Checksum(), b.Checksum())
	assert.NotEqual(t, a.Checksum(), c.Checksum())
}

func TestRegistry(t *testing.T) {
	ResetChangeSets()
	t.Cleanup(ResetChangeSets)

	RegisterChangeSet(&ChangeSet{Version: 2, Description: "second", Statements: []string{"SELECT 2"}})
	RegisterChangeSet(&ChangeSet{Version: 1, Description: "first", Statements: []string{"SELECT 1"}})
	assert.Len(t, GetRegisteredChangeSets(), 2)

	ledger, err := RegisteredLedger()
	require.NoError(t, err)
	assert.Equal(t, int64(2), ledger.Latest())
	assert.Equal(t, "first", ledger.ChangeSets()[0].Description)
}

func TestLoadChangeSets(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_add_rank.sql": {Data: []byte("ALTER TABLE Owner ADD COLUMN rank INTEGER;\n")},
		"0001_create_owner.sql": {Data: []byte("-- owners\nCREATE TABLE Owner (\n    id TEXT PRIMARY KEY\n);\n\n" +
			"CREATE INDEX idx_owner ON Owner(id);\n")},
		"README.md": {Data: []byte("ignored")},
	}

	sets, err := LoadChangeSets(fsys)
	require.NoError(t, err)
	require.Len(t, sets, 2)

	assert.Equal(t, int64(1), sets[0].Version)
	assert.Equal(t, "create_owner", sets[0].Description)
	assert.Equal(t, []string{
		"CREATE TABLE Owner (\n    id TEXT PRIMARY KEY\n)",
		"CREATE INDEX idx_owner ON Owner(id)",
	}, sets[0].Statements)
	assert.Equal(t, int64(2), sets[1].Version)
	assert.Equal(t, []string{"ALTER TABLE Owner ADD COLUMN rank INTEGER"}, sets[1].Statements)
}

func TestLoadChangeSets_BadName(t *testing.T) {
	_, err := LoadChangeSets(fstest.MapFS{"create.sql": {Data: []byte("SELECT 1;\n")}})
	assert.ErrorContains(t, err, "expected <version>_<description>.sql")
}

func TestSplitStatements_LastWithoutNewline(t *testing.T) {
	assert.Equal(t, []string{"SELECT 1", "SELECT 2"}, SplitStatements("SELECT 1;\nSELECT 2;"))
	assert.Empty(t, SplitStatements("-- nothing\n\n"))
}
