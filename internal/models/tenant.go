package models

// Tenant is a person living in or owning a unit
type Tenant struct {
	ID          string        `gorm:"column:id;primaryKey" json:"id"`
	FirstName   string        `gorm:"column:nombre" json:"nombre" validate:"required"`
	LastName    string        `gorm:"column:apellido" json:"apellido" validate:"required"`
	NationalID  *string       `gorm:"column:cedula" json:"cedula"`
	Email       *string       `gorm:"column:email" json:"email" validate:"omitempty,email"`
	Phone       *string       `gorm:"column:telefono" json:"telefono"`
	Kind        OccupancyKind `gorm:"column:tipo" json:"tipo" validate:"enum"`
	Active      bool          `gorm:"column:activo" json:"activo"`
	MoveIn      Timestamp     `gorm:"column:fechaIngreso" json:"fechaIngreso"`
	MoveOut     *Timestamp    `gorm:"column:fechaSalida" json:"fechaSalida"`
	Notes       *string       `gorm:"column:notas" json:"notas"`
	CreatedAt   Timestamp     `gorm:"column:createdAt;autoCreateTime:false" json:"createdAt"`
	UpdatedAt   Timestamp     `gorm:"column:updatedAt;autoUpdateTime:false" json:"updatedAt"`
	ApartmentID *string       `gorm:"column:apartamentoId" json:"apartamentoId"`
}

func (Tenant) TableName() string { return "Inquilino" }
