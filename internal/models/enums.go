package models

import "slices"

// Enum is implemented by every closed-set column type
type Enum interface {
	IsValid() bool
}

// Strings converts enum values to their stored representation
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// OccupancyKind tells whether a record stands for the owner or the tenant of a unit
type OccupancyKind string

const (
	OccupancyOwner  OccupancyKind = "PROPIETARIO"
	OccupancyTenant OccupancyKind = "INQUILINO"
)

var OccupancyKinds = []OccupancyKind{OccupancyOwner, OccupancyTenant}

func (k OccupancyKind) IsValid() bool { return slices.Contains(OccupancyKinds, k) }

// TransactionKind is the kind of a ledger entry
type TransactionKind string

const (
	KindIncome         TransactionKind = "INGRESO"
	KindExpense        TransactionKind = "EGRESO"
	KindCreditSale     TransactionKind = "VENTA_CREDITO"
	KindPaymentReceipt TransactionKind = "RECIBO_PAGO"
)

var TransactionKinds = []TransactionKind{KindIncome, KindExpense, KindCreditSale, KindPaymentReceipt}

func (k TransactionKind) IsValid() bool { return slices.Contains(TransactionKinds, k) }

// Category classifies a transaction
type Category string

const (
	CategoryCommonExpenses Category = "GASTOS_COMUNES"
	CategoryReserveFund    Category = "FONDO_RESERVA"
	CategoryMaintenance    Category = "MANTENIMIENTO"
	CategoryServices       Category = "SERVICIOS"
	CategoryAdministration Category = "ADMINISTRACION"
	CategoryRepairs        Category = "REPARACIONES"
	CategoryCleaning       Category = "LIMPIEZA"
	CategorySecurity       Category = "SEGURIDAD"
	CategoryOther          Category = "OTROS"
)

var Categories = []Category{
	CategoryCommonExpenses, CategoryReserveFund, CategoryMaintenance,
	CategoryServices, CategoryAdministration, CategoryRepairs,
	CategoryCleaning, CategorySecurity, CategoryOther,
}

func (c Category) IsValid() bool { return slices.Contains(Categories, c) }

// PaymentMethod is how a transaction was paid
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "EFECTIVO"
	PaymentTransfer PaymentMethod = "TRANSFERENCIA"
	PaymentCard     PaymentMethod = "TARJETA"
	PaymentCheck    PaymentMethod = "CHEQUE"
	PaymentOther    PaymentMethod = "OTRO"
)

var PaymentMethods = []PaymentMethod{PaymentCash, PaymentTransfer, PaymentCard, PaymentCheck, PaymentOther}

func (m PaymentMethod) IsValid() bool { return slices.Contains(PaymentMethods, m) }

// CreditState tracks repayment of a credit sale
type CreditState string

const (
	CreditPending CreditState = "PENDIENTE"
	CreditPartial CreditState = "PARCIAL"
	CreditPaid    CreditState = "PAGADO"
)

var CreditStates = []CreditState{CreditPending, CreditPartial, CreditPaid}

func (s CreditState) IsValid() bool { return slices.Contains(CreditStates, s) }

// PaymentClassification allocates a receipt between common expenses and the reserve fund
type PaymentClassification string

const (
	ClassCommonExpense PaymentClassification = "GASTO_COMUN"
	ClassReserveFund   PaymentClassification = "FONDO_RESERVA"
	ClassMixed         PaymentClassification = "MIXTO"
)

var PaymentClassifications = []PaymentClassification{ClassCommonExpense, ClassReserveFund, ClassMixed}

func (c PaymentClassification) IsValid() bool { return slices.Contains(PaymentClassifications, c) }

// MovementKind is the direction of a bank movement
type MovementKind string

const (
	MovementIncome  MovementKind = "INGRESO"
	MovementExpense MovementKind = "EGRESO"
)

var MovementKinds = []MovementKind{MovementIncome, MovementExpense}

func (k MovementKind) IsValid() bool { return slices.Contains(MovementKinds, k) }

// MovementClassification tells which fund a bank movement belongs to
type MovementClassification string

const (
	MovementCommonExpense MovementClassification = "GASTO_COMUN"
	MovementReserveFund   MovementClassification = "FONDO_RESERVA"
)

var MovementClassifications = []MovementClassification{MovementCommonExpense, MovementReserveFund}

func (c MovementClassification) IsValid() bool { return slices.Contains(MovementClassifications, c) }

// LogKind is the kind of a building log entry
type LogKind string

const (
	LogNews        LogKind = "NOVEDAD"
	LogDueDate     LogKind = "VENCIMIENTO"
	LogMaintenance LogKind = "MANTENIMIENTO"
	LogMeeting     LogKind = "REUNION"
	LogIncident    LogKind = "INCIDENTE"
	LogReminder    LogKind = "RECORDATORIO"
	LogOther       LogKind = "OTRO"
)

var LogKinds = []LogKind{LogNews, LogDueDate, LogMaintenance, LogMeeting, LogIncident, LogReminder, LogOther}

func (k LogKind) IsValid() bool { return slices.Contains(LogKinds, k) }

// LogStatus is the situation of a building log entry
type LogStatus string

const (
	LogPending    LogStatus = "PENDIENTE"
	LogInProgress LogStatus = "EN_PROCESO"
	LogDone       LogStatus = "REALIZADO"
	LogCancelled  LogStatus = "CANCELADO"
	LogOverdue    LogStatus = "VENCIDO"
)

var LogStatuses = []LogStatus{LogPending, LogInProgress, LogDone, LogCancelled, LogOverdue}

func (s LogStatus) IsValid() bool { return slices.Contains(LogStatuses, s) }
