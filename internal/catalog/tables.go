// Package catalog holds the schema of the building administration store and
// the ledger of change-sets that produces it.
package catalog

import (
	"github.com/bentancorlucia/admin-edificios/internal/models"
	"github.com/bentancorlucia/admin-edificios/internal/schema"
)

// Table names
const (
	Apartments     = "Apartamento"
	Tenants        = "Inquilino"
	BankAccounts   = "CuentaBancaria"
	ServiceTypes   = "TipoServicio"
	Services       = "Servicio"
	Transactions   = "Transaccion"
	BankMovements  = "MovimientoBancario"
	LogEntries     = "Registro"
	ReportNotices  = "AvisoInforme"
	ReportSettings = "ConfiguracionInforme"
)

// Invariant rule names
const (
	RuleApartmentUnitOccupancy  = "apartment_unit_occupancy"
	RuleTenantNationalID        = "tenant_national_id"
	RuleServiceTypeCode         = "service_type_code"
	RuleReportSettingKey        = "report_setting_key"
	RuleBankMovementTransaction = "bank_movement_transaction"
	RuleSingleDefaultAccount    = "single_default_account"
)

const now = "(datetime('now'))"

func id() *schema.Column {
	return &schema.Column{Name: "id", Type: schema.Text, PrimaryKey: true}
}

func col(name string, typ schema.ColumnType) *schema.Column {
	return &schema.Column{Name: name, Type: typ}
}

func required(name string, typ schema.ColumnType) *schema.Column {
	return &schema.Column{Name: name, Type: typ, NotNull: true}
}

func withDefault(name string, typ schema.ColumnType, def string) *schema.Column {
	return &schema.Column{Name: name, Type: typ, Default: def}
}

func enum(name string, values []string, def string, notNull bool) *schema.Column {
	c := &schema.Column{Name: name, Type: schema.Text, NotNull: notNull, Enum: values}
	if def != "" {
		c.Default = "'" + def + "'"
	}
	return c
}

func timestamps() []*schema.Column {
	return []*schema.Column{
		withDefault("createdAt", schema.Text, now),
		withDefault("updatedAt", schema.Text, now),
	}
}

func columns(groups ...[]*schema.Column) []*schema.Column {
	var out []*schema.Column
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func index(name, table string, cols ...string) *schema.Index {
	return &schema.Index{Name: name, Table: table, Columns: cols, Since: 1}
}

// Schema builds the catalog. Every call returns a fresh value.
func Schema() *schema.Catalog {
	occupancy := models.Strings(models.OccupancyKinds)

	return &schema.Catalog{Tables: []*schema.Table{
		{
			Name: Apartments,
			Columns: columns([]*schema.Column{
				id(),
				required("numero", schema.Text),
				col("piso", schema.Integer),
				withDefault("alicuota", schema.Real, "0"),
				withDefault("gastosComunes", schema.Real, "0"),
				withDefault("fondoReserva", schema.Real, "0"),
				enum("tipoOcupacion", occupancy, string(models.OccupancyOwner), false),
				col("contactoNombre", schema.Text),
				col("contactoApellido", schema.Text),
				col("contactoCelular", schema.Text),
				col("contactoEmail", schema.Text),
				col("notas", schema.Text),
			}, timestamps()),
			Uniques: []schema.UniqueConstraint{
				{Name: RuleApartmentUnitOccupancy, Columns: []string{"numero", "tipoOcupacion"}},
			},
		},
		{
			Name: Tenants,
			Columns: columns([]*schema.Column{
				id(),
				required("nombre", schema.Text),
				required("apellido", schema.Text),
				col("cedula", schema.Text),
				col("email", schema.Text),
				col("telefono", schema.Text),
				enum("tipo", occupancy, string(models.OccupancyTenant), false),
				withDefault("activo", schema.Integer, "1"),
				withDefault("fechaIngreso", schema.Text, now),
				col("fechaSalida", schema.Text),
				col("notas", schema.Text),
			}, timestamps(), []*schema.Column{
				col("apartamentoId", schema.Text),
			}),
			Uniques: []schema.UniqueConstraint{
				{Name: RuleTenantNationalID, Columns: []string{"cedula"}},
			},
			ForeignKeys: []schema.ForeignKey{
				{Column: "apartamentoId", RefTable: Apartments, RefColumn: "id", Ownership: schema.Weak},
			},
			Indexes: []*schema.Index{index("idx_inquilino_apartamento", Tenants, "apartamentoId")},
		},
		{
			Name: BankAccounts,
			Columns: columns([]*schema.Column{
				id(),
				required("banco", schema.Text),
				required("tipoCuenta", schema.Text),
				required("numeroCuenta", schema.Text),
				col("titular", schema.Text),
				withDefault("saldoInicial", schema.Real, "0"),
				withDefault("activa", schema.Integer, "1"),
				withDefault("porDefecto", schema.Integer, "0"),
			}, timestamps()),
			Indexes: []*schema.Index{{
				Name:    "ux_cuenta_por_defecto",
				Table:   BankAccounts,
				Columns: []string{"porDefecto"},
				Unique:  true,
				Where:   "porDefecto = 1",
				Rule:    RuleSingleDefaultAccount,
				Since:   3,
			}},
		},
		{
			Name: ServiceTypes,
			Columns: columns([]*schema.Column{
				id(),
				required("codigo", schema.Text),
				required("nombre", schema.Text),
				withDefault("color", schema.Text, "'default'"),
				withDefault("orden", schema.Integer, "0"),
				withDefault("activo", schema.Integer, "1"),
			}, timestamps()),
			Uniques: []schema.UniqueConstraint{
				{Name: RuleServiceTypeCode, Columns: []string{"codigo"}},
			},
		},
		{
			Name: Services,
			Columns: columns([]*schema.Column{
				id(),
				required("tipo", schema.Text),
				required("nombre", schema.Text),
				col("celular", schema.Text),
				col("email", schema.Text),
				col("banco", schema.Text),
				col("numeroCuenta", schema.Text),
				col("observaciones", schema.Text),
				withDefault("activo", schema.Integer, "1"),
			}, timestamps()),
		},
		{
			Name: Transactions,
			Columns: columns([]*schema.Column{
				id(),
				enum("tipo", models.Strings(models.TransactionKinds), "", true),
				required("monto", schema.Real),
				withDefault("fecha", schema.Text, now),
				enum("categoria", models.Strings(models.Categories), "", false),
				col("descripcion", schema.Text),
				col("referencia", schema.Text),
				enum("metodoPago", models.Strings(models.PaymentMethods), string(models.PaymentCash), false),
				col("notas", schema.Text),
				enum("estadoCredito", models.Strings(models.CreditStates), "", false),
				withDefault("montoPagado", schema.Real, "0"),
				enum("clasificacionPago", models.Strings(models.PaymentClassifications), "", false),
				col("montoGastoComun", schema.Real),
				col("montoFondoReserva", schema.Real),
			}, timestamps(), []*schema.Column{
				col("apartamentoId", schema.Text),
			}),
			ForeignKeys: []schema.ForeignKey{
				{Column: "apartamentoId", RefTable: Apartments, RefColumn: "id", Ownership: schema.Weak},
			},
			Indexes: []*schema.Index{
				index("idx_transaccion_apartamento", Transactions, "apartamentoId"),
				{Name: "idx_transaccion_fecha", Table: Transactions, Columns: []string{"fecha"}, Since: 4},
			},
		},
		{
			Name: BankMovements,
			Columns: columns([]*schema.Column{
				id(),
				enum("tipo", models.Strings(models.MovementKinds), "", true),
				required("monto", schema.Real),
				withDefault("fecha", schema.Text, now),
				required("descripcion", schema.Text),
				col("referencia", schema.Text),
				col("numeroDocumento", schema.Text),
				col("archivoUrl", schema.Text),
				enum("clasificacion", models.Strings(models.MovementClassifications), "", false),
				withDefault("conciliado", schema.Integer, "0"),
			}, timestamps(), []*schema.Column{
				required("cuentaBancariaId", schema.Text),
				col("transaccionId", schema.Text),
				col("servicioId", schema.Text),
			}),
			Uniques: []schema.UniqueConstraint{
				{Name: RuleBankMovementTransaction, Columns: []string{"transaccionId"}},
			},
			ForeignKeys: []schema.ForeignKey{
				{Column: "cuentaBancariaId", RefTable: BankAccounts, RefColumn: "id", Ownership: schema.Owning},
				{Column: "transaccionId", RefTable: Transactions, RefColumn: "id", Ownership: schema.Weak},
				{Column: "servicioId", RefTable: Services, RefColumn: "id", Ownership: schema.Weak},
			},
			Indexes: []*schema.Index{
				index("idx_movimiento_cuenta", BankMovements, "cuentaBancariaId"),
				index("idx_movimiento_transaccion", BankMovements, "transaccionId"),
				index("idx_movimiento_servicio", BankMovements, "servicioId"),
				{Name: "idx_movimiento_fecha", Table: BankMovements, Columns: []string{"fecha"}, Since: 4},
			},
		},
		{
			Name: LogEntries,
			Columns: columns([]*schema.Column{
				id(),
				withDefault("fecha", schema.Text, now),
				enum("tipo", models.Strings(models.LogKinds), "", true),
				required("detalle", schema.Text),
				col("observaciones", schema.Text),
				enum("situacion", models.Strings(models.LogStatuses), string(models.LogPending), false),
			}, timestamps()),
			Indexes: []*schema.Index{
				{Name: "idx_registro_fecha", Table: LogEntries, Columns: []string{"fecha"}, Since: 4},
			},
		},
		{
			Name: ReportNotices,
			Columns: columns([]*schema.Column{
				id(),
				required("texto", schema.Text),
				withDefault("orden", schema.Integer, "0"),
				required("mes", schema.Integer),
				required("anio", schema.Integer),
				withDefault("activo", schema.Integer, "1"),
			}, timestamps()),
			Indexes: []*schema.Index{index("idx_aviso_mes_anio", ReportNotices, "mes", "anio")},
		},
		{
			Name: ReportSettings,
			Columns: columns([]*schema.Column{
				id(),
				required("clave", schema.Text),
				required("valor", schema.Text),
			}, timestamps()),
			Uniques: []schema.UniqueConstraint{
				{Name: RuleReportSettingKey, Columns: []string{"clave"}},
			},
		},
	}}
}
