package vehiclerepo

import "time"

// VehicleDTO is the GORM data transfer object for the vehicles table.
type VehicleDTO struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	Plate         string `gorm:"type:varchar(16);uniqueIndex;not null"`
	TransportType string `gorm:"type:varchar(50);index;not null"`
	OwnerID       int64  `gorm:"index;not null"`
	CreatedAt     time.Time
}

// TableName implements the GORM Tabler interface.
func (VehicleDTO) TableName() string {
	return "vehicles"
}
