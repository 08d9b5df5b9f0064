package models

// ServiceType is a category of external provider, referenced by code
type ServiceType struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Code      string    `gorm:"column:codigo" json:"codigo" validate:"required"`
	Name      string    `gorm:"column:nombre" json:"nombre" validate:"required"`
	Color     string    `gorm:"column:color" json:"color"`
	Order     int       `gorm:"column:orden" json:"orden"`
	Active    bool      `gorm:"column:activo" json:"activo"`
	CreatedAt Timestamp `gorm:"column:createdAt;autoCreateTime:false" json:"createdAt"`
	UpdatedAt Timestamp `gorm:"column:updatedAt;autoUpdateTime:false" json:"updatedAt"`
}

func (ServiceType) TableName() string { return "TipoServicio" }

// Service is an external provider (plumber, utility company, ...)
type Service struct {
	ID            string    `gorm:"column:id;primaryKey" json:"id"`
	Type          string    `gorm:"column:tipo" json:"tipo" validate:"required"`
	Name          string    `gorm:"column:nombre" json:"nombre" validate:"required"`
	Phone         *string   `gorm:"column:celular" json:"celular"`
	Email         *string   `gorm:"column:email" json:"email" validate:"omitempty,email"`
	Bank          *string   `gorm:"column:banco" json:"banco"`
	AccountNumber *string   `gorm:"column:numeroCuenta" json:"numeroCuenta"`
	Notes         *string   `gorm:"column:observaciones" json:"observaciones"`
	Active        bool      `gorm:"column:activo" json:"activo"`
	CreatedAt     Timestamp `gorm:"column:createdAt;autoCreateTime:false" json:"createdAt"`
	UpdatedAt     Timestamp `gorm:"column:updatedAt;autoUpdateTime:false" json:"updatedAt"`
}

func (Service) TableName() string { return "Servicio" }
