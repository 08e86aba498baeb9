package vehiclerepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormVehicleRepository implements ports.VehicleRepository using GORM.
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GORM vehicle repository.
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// Exists reports whether a vehicle row with the given identity is present.
func (r *GormVehicleRepository) Exists(ctx context.Context, id kernel.ID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&VehicleDTO{}).
		Where("id = ?", id.Int64()).
		Count(&count).Error; err != nil {
		return false, errs.NewStorageError("vehicle.exists", err)
	}

	return count > 0, nil
}

// GetTransportType retrieves the transport type of the vehicle.
func (r *GormVehicleRepository) GetTransportType(ctx context.Context, id kernel.ID) (string, error) {
	if err := id.Validate(); err != nil {
		return "", err
	}

	var dto VehicleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NewObjectNotFoundError("vehicleId", id.String())
		}
		return "", errs.NewStorageError("vehicle.get", err)
	}

	return dto.TransportType, nil
}
