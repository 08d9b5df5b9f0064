package models

// ReportNotice is a free-text notice printed on the monthly report
type ReportNotice struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Text      string    `gorm:"column:texto" json:"texto" validate:"required"`
	Order     int       `gorm:"column:orden" json:"orden" validate:"gte=0"`
	Month     int       `gorm:"column:mes" json:"mes" validate:"min=1,max=12"`
	Year      int       `gorm:"column:anio" json:"anio" validate:"min=1900"`
	Active    bool      `gorm:"column:activo" json:"activo"`
	CreatedAt Timestamp `gorm:"column:createdAt;autoCreateTime:false" json:"createdAt"`
	UpdatedAt Timestamp `gorm:"column:updatedAt;autoUpdateTime:false" json:"updatedAt"`
}

func (ReportNotice) TableName() string { return "AvisoInforme" }

// ReportSetting is a key/value setting of the report
type ReportSetting struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Key       string    `gorm:"column:clave" json:"clave" validate:"required"`
	Value     string    `gorm:"column:valor" json:"valor"`
	CreatedAt Timestamp `gorm:"column:createdAt;autoCreateTime:false" json:"createdAt"`
	UpdatedAt Timestamp `gorm:"column:updatedAt;autoUpdateTime:false" json:"updatedAt"`
}

func (ReportSetting) TableName() string { return "ConfiguracionInforme" }
