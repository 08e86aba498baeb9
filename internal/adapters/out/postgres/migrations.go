package postgres

import (
	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/adapters/out/postgres/userrepo"
	"dispatch/internal/adapters/out/postgres/vehiclerepo"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schemas of every table the adapters
// persist to. Addresses migrate before legs so the leg's address
// reference has a target.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.AddressDTO{},
		&deliveryrepo.RouteLegDTO{},
		&deliveryrepo.ItemDTO{},
		&userrepo.UserDTO{},
		&vehiclerepo.VehicleDTO{},
	)
}
