package models

// BankAccount is an account of the building. At most one is the default.
type BankAccount struct {
	ID             string    `gorm:"column:id;primaryKey" json:"id"`
	Bank           string    `gorm:"column:banco" json:"banco" validate:"required"`
	AccountType    string    `gorm:"column:tipoCuenta" json:"tipoCuenta" validate:"required"`
	Number         string    `gorm:"column:numeroCuenta" json:"numeroCuenta" validate:"required"`
	Holder         *string   `gorm:"column:titular" json:"titular"`
	InitialBalance float64   `gorm:"column:saldoInicial" json:"saldoInicial"`
	Active         bool      `gorm:"column:activa" json:"activa"`
	Default        bool      `gorm:"column:porDefecto" json:"porDefecto"`
	CreatedAt      Timestamp `gorm:"column:createdAt;autoCreateTime:false" json:"createdAt"`
	UpdatedAt      Timestamp `gorm:"column:updatedAt;autoUpdateTime:false" json:"updatedAt"`
}

func (BankAccount) TableName() string { return "CuentaBancaria" }

// BankMovement is a deposit or withdrawal on a bank account
type BankMovement struct {
	ID             string                  `gorm:"column:id;primaryKey" json:"id"`
	Kind           MovementKind            `gorm:"column:tipo" json:"tipo" validate:"enum"`
	Amount         float64                 `gorm:"column:monto" json:"monto" validate:"gt=0"`
	Date           Timestamp               `gorm:"column:fecha" json:"fecha"`
	Description    string                  `gorm:"column:descripcion" json:"descripcion" validate:"required"`
	Reference      *string                 `gorm:"column:referencia" json:"referencia"`
	DocumentNumber *string                 `gorm:"column:numeroDocumento" json:"numeroDocumento"`
	FileURL        *string                 `gorm:"column:archivoUrl" json:"archivoUrl"`
	Classification *MovementClassification `gorm:"column:clasificacion" json:"clasificacion" validate:"omitempty,enum"`
	Reconciled     bool                    `gorm:"column:conciliado" json:"conciliado"`
	CreatedAt      Timestamp               `gorm:"column:createdAt;autoCreateTime:false" json:"createdAt"`
	UpdatedAt      Timestamp               `gorm:"column:updatedAt;autoUpdateTime:false" json:"updatedAt"`
	AccountID      string                  `gorm:"column:cuentaBancariaId" json:"cuentaBancariaId" validate:"required"`
	TransactionID  *string                 `gorm:"column:transaccionId" json:"transaccionId"`
	ServiceID      *string                 `gorm:"column:servicioId" json:"servicioId"`
}

func (BankMovement) TableName() string { return "MovimientoBancario" }
