package models

// Apartment is a building unit. A unit may be registered twice, once for the
// owner and once for the tenant, hence the (number, occupancy) key.
type Apartment struct {
	ID               string        `gorm:"column:id;primaryKey" json:"id"`
	Number           string        `gorm:"column:numero" json:"numero" validate:"required"`
	Floor            *int          `gorm:"column:piso" json:"piso"`
	Share            float64       `gorm:"column:alicuota" json:"alicuota" validate:"gte=0"`
	CommonExpense    float64       `gorm:"column:gastosComunes" json:"gastosComunes" validate:"gte=0"`
	ReserveFund      float64       `gorm:"column:fondoReserva" json:"fondoReserva" validate:"gte=0"`
	Occupancy        OccupancyKind `gorm:"column:tipoOcupacion" json:"tipoOcupacion" validate:"enum"`
	ContactFirstName *string       `gorm:"column:contactoNombre" json:"contactoNombre"`
	ContactLastName  *string       `gorm:"column:contactoApellido" json:"contactoApellido"`
	ContactPhone     *string       `gorm:"column:contactoCelular" json:"contactoCelular"`
	ContactEmail     *string       `gorm:"column:contactoEmail" json:"contactoEmail" validate:"omitempty,email"`
	Notes            *string       `gorm:"column:notas" json:"notas"`
	CreatedAt        Timestamp     `gorm:"column:createdAt;autoCreateTime:false" json:"createdAt"`
	UpdatedAt        Timestamp     `gorm:"column:updatedAt;autoUpdateTime:false" json:"updatedAt"`
}

func (Apartment) TableName() string { return "Apartamento" }
