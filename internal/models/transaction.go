package models

// Transaction is a ledger entry. Credit sales carry a repayment state derived
// from PaidAmount; payment receipts carry a fund classification.
type Transaction struct {
	ID                  string                 `gorm:"column:id;primaryKey" json:"id"`
	Kind                TransactionKind        `gorm:"column:tipo" json:"tipo" validate:"enum"`
	Amount              float64                `gorm:"column:monto" json:"monto" validate:"gt=0"`
	Date                Timestamp              `gorm:"column:fecha" json:"fecha"`
	Category            *Category              `gorm:"column:categoria" json:"categoria" validate:"omitempty,enum"`
	Description         *string                `gorm:"column:descripcion" json:"descripcion"`
	Reference           *string                `gorm:"column:referencia" json:"referencia"`
	PaymentMethod       *PaymentMethod         `gorm:"column:metodoPago" json:"metodoPago" validate:"omitempty,enum"`
	Notes               *string                `gorm:"column:notas" json:"notas"`
	CreditState         *CreditState           `gorm:"column:estadoCredito" json:"estadoCredito" validate:"omitempty,enum"`
	PaidAmount          *float64               `gorm:"column:montoPagado" json:"montoPagado"`
	Classification      *PaymentClassification `gorm:"column:clasificacionPago" json:"clasificacionPago" validate:"omitempty,enum"`
	CommonExpenseAmount *float64               `gorm:"column:montoGastoComun" json:"montoGastoComun"`
	ReserveFundAmount   *float64               `gorm:"column:montoFondoReserva" json:"montoFondoReserva"`
	CreatedAt           Timestamp              `gorm:"column:createdAt;autoCreateTime:false" json:"createdAt"`
	UpdatedAt           Timestamp              `gorm:"column:updatedAt;autoUpdateTime:false" json:"updatedAt"`
	ApartmentID         *string                `gorm:"column:apartamentoId" json:"apartamentoId"`
}

func (Transaction) TableName() string { return "Transaccion" }

// Outstanding is what remains to be paid on a credit sale
func (t *Transaction) Outstanding() float64 {
	if t.PaidAmount == nil {
		return t.Amount
	}
	return t.Amount - *t.PaidAmount
}
