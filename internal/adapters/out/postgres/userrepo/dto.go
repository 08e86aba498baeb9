package userrepo

import "time"

// UserDTO is the GORM data transfer object for the users table.
type UserDTO struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	Name          string `gorm:"type:varchar(255);not null"`
	Email         string `gorm:"type:varchar(255);uniqueIndex;not null"`
	LoyaltyPoints int64  `gorm:"not null;default:0"`
	CreatedAt     time.Time
}

// TableName implements the GORM Tabler interface.
func (UserDTO) TableName() string {
	return "users"
}
