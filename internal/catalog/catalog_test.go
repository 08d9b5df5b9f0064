package catalog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bentancorlucia/admin-edificios/migration"
)

func TestSchema_Valid(t *testing.T) {
	require.NoError(t, Schema().Validate())
	assert.Len(t, Schema().Tables, 10)
}

func TestVerify_Models(t *testing.T) {
	assert.NoError(t, Verify(ModelRegistry{}))
}

func TestChangeSets_Ledger(t *testing.T) {
	ledger, err := migration.NewLedger(ChangeSets()...)
	require.NoError(t, err)
	assert.Equal(t, int64(4), ledger.Latest())

	names := make([]string, 0, 4)
	for _, cs := range ledger.ChangeSets() {
		names = append(names, cs.Description)
	}
	assert.Equal(t, []string{"create_initial_tables", "seed_service_types", "single_default_account_index", "date_indexes"}, names)
}

func TestChangeSets_Registered(t *testing.T) {
	ledger, err := migration.RegisteredLedger()
	require.NoError(t, err)
	assert.Equal(t, int64(4), ledger.Latest())
}

// publishedChecksums pins every change-set that has shipped. A mismatch means
// a published file was edited; add a new change-set instead.
var publishedChecksums = map[int64]string{
	1: "349684f560741afc9afc9ce8ed203304c5eb2384b8e1516d6ddc7af3b22f011e",
	2: "f4c80699442ffa5d42f1c77d1b3c1c9f82220f0cc061c93644857d938a1e74ae",
	3: "ca0e48fa0f4c71751a91e969ea26274a836e1f8920bfc00cf3f73821890c220c",
	4: "a7efc9dbce5c9b30ee31ff42f69ebe6b2c43afa304b0199006f800d0f4647486",
}

func TestChangeSets_Published(t *testing.T) {
	for _, cs := range ChangeSets() {
		want, ok := publishedChecksums[cs.Version]
		if !ok {
			continue
		}
		assert.Equal(t, want, cs.Checksum(), "change-set %d (%s) was modified", cs.Version, cs.Description)
	}
	for version := range publishedChecksums {
		_, ok := publishedLedger(t).Get(version)
		assert.True(t, ok, "published change-set %d is missing", version)
	}
}

func publishedLedger(t *testing.T) *migration.Ledger {
	t.Helper()
	l, err := migration.NewLedger(ChangeSets()...)
	require.NoError(t, err)
	return l
}

// The published SQL and the catalog describe the same schema
func TestChangeSets_MatchCatalog(t *testing.T) {
	cat := Schema()
	sets := publishedLedger(t).ChangeSets()

	assert.Equal(t, cat.InitialStatements(), sets[0].Statements)
	assert.Equal(t, seedServiceTypes(), sets[1].Statements)
	assert.Equal(t, cat.IndexStatements(3), sets[2].Statements[1:])
	assert.Equal(t, cat.IndexStatements(4), sets[3].Statements)
}

func TestChangeSets_CoverCatalogGrowth(t *testing.T) {
	cat := Schema()
	l := publishedLedger(t)
	require.LessOrEqual(t, cat.Latest(), l.Latest(), "catalog needs a change-set for version %d", cat.Latest())

	for v := int64(2); v <= cat.Latest(); v++ {
		cs, ok := l.Get(v)
		require.True(t, ok, "version %d", v)
		for _, stmt := range append(cat.ColumnStatements(v), cat.IndexStatements(v)...) {
			assert.Contains(t, cs.Statements, stmt, "version %d", v)
		}
	}
}

func TestInitialChangeSet(t *testing.T) {
	v1 := ChangeSets()[0]
	joined := strings.Join(v1.Statements, "\n")
	for _, table := range Schema().TableNames() {
		assert.Contains(t, joined, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	assert.Contains(t, joined, "FOREIGN KEY (cuentaBancariaId) REFERENCES CuentaBancaria(id) ON DELETE CASCADE")
	assert.Contains(t, joined, "FOREIGN KEY (transaccionId) REFERENCES Transaccion(id) ON DELETE SET NULL")
	assert.Contains(t, joined, "CREATE INDEX IF NOT EXISTS idx_aviso_mes_anio ON AvisoInforme(mes, anio)")
	assert.NotContains(t, joined, "ux_cuenta_por_defecto")
	assert.NotContains(t, joined, "idx_transaccion_fecha")
}

func TestSeedServiceTypes(t *testing.T) {
	stmts := ChangeSets()[1].Statements
	require.Len(t, stmts, len(DefaultServiceTypes))
	assert.Contains(t, stmts[0], "INSERT OR IGNORE INTO TipoServicio")
	assert.Contains(t, stmts[0], "'ELECTRICISTA'")
	assert.Contains(t, stmts[6], "'Albañil'")
	assert.Contains(t, stmts[0], "'"+seedID(ServiceTypes, "ELECTRICISTA")+"'")
	assert.Equal(t, seedID(ServiceTypes, "GAS"), seedID(ServiceTypes, "GAS"))
	assert.NotEqual(t, seedID(ServiceTypes, "GAS"), seedID(ServiceTypes, "OSE"))
}

func TestRuleLookups(t *testing.T) {
	cat := Schema()
	assert.Equal(t, RuleApartmentUnitOccupancy, cat.UniqueRule(Apartments, []string{"numero", "tipoOcupacion"}))
	assert.Equal(t, RuleTenantNationalID, cat.UniqueRule(Tenants, []string{"cedula"}))
	assert.Equal(t, RuleServiceTypeCode, cat.UniqueRule(ServiceTypes, []string{"codigo"}))
	assert.Equal(t, RuleReportSettingKey, cat.UniqueRule(ReportSettings, []string{"clave"}))
	assert.Equal(t, RuleBankMovementTransaction, cat.UniqueRule(BankMovements, []string{"transaccionId"}))
	assert.Equal(t, RuleSingleDefaultAccount, cat.UniqueRule(BankAccounts, []string{"porDefecto"}))
}

// seedID is stable across runs so the seed statements never change
func seedID(table, key string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(table+"/"+key)).String()
}

func sqlString(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// seedServiceTypes renders the statements published as change-set 2
func seedServiceTypes() []string {
	stmts := make([]string, 0, len(DefaultServiceTypes))
	for i, st := range DefaultServiceTypes {
		stmts = append(stmts, fmt.Sprintf(
			"INSERT OR IGNORE INTO %s (id, codigo, nombre, color, orden, activo) VALUES (%s, %s, %s, %s, %d, 1)",
			ServiceTypes, sqlString(seedID(ServiceTypes, st.Code)), sqlString(st.Code), sqlString(st.Name), sqlString(st.Color), i))
	}
	return stmts
}
