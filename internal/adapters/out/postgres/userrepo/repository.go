package userrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Exists reports whether a user row with the given identity is present.
func (r *GormUserRepository) Exists(ctx context.Context, id kernel.ID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&UserDTO{}).
		Where("id = ?", id.Int64()).
		Count(&count).Error; err != nil {
		return false, errs.NewStorageError("user.exists", err)
	}

	return count > 0, nil
}

// CreditPoints adds points to a user's loyalty balance. The increment is
// expressed against the stored value, so concurrent credits never lose
// an update.
func (r *GormUserRepository) CreditPoints(ctx context.Context, id kernel.ID, points int) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&UserDTO{}).
		Where("id = ?", id.Int64()).
		Update("loyalty_points", gorm.Expr("loyalty_points + ?", points))
	if result.Error != nil {
		return errs.NewStorageError("user.creditPoints", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("userId", id.String())
	}

	return nil
}

// GetLoyaltyPoints retrieves a user's current loyalty balance.
func (r *GormUserRepository) GetLoyaltyPoints(ctx context.Context, id kernel.ID) (int, error) {
	if err := id.Validate(); err != nil {
		return 0, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errs.NewObjectNotFoundError("userId", id.String())
		}
		return 0, errs.NewStorageError("user.get", err)
	}

	return int(dto.LoyaltyPoints), nil
}
