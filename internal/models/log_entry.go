package models

// LogEntry is an item of the building log book
type LogEntry struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Date      Timestamp `gorm:"column:fecha" json:"fecha"`
	Kind      LogKind   `gorm:"column:tipo" json:"tipo" validate:"enum"`
	Detail    string    `gorm:"column:detalle" json:"detalle" validate:"required"`
	Notes     *string   `gorm:"column:observaciones" json:"observaciones"`
	Status    LogStatus `gorm:"column:situacion" json:"situacion" validate:"enum"`
	CreatedAt Timestamp `gorm:"column:createdAt;autoCreateTime:false" json:"createdAt"`
	UpdatedAt Timestamp `gorm:"column:updatedAt;autoUpdateTime:false" json:"updatedAt"`
}

func (LogEntry) TableName() string { return "Registro" }
