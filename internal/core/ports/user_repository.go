package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// UserRepository is the narrow contract against the externally owned
// user store: existence checks for the validation gate and the loyalty
// counter mutation tied to delivery completion.
type UserRepository interface {
	// Exists reports whether a user row with the given id exists.
	Exists(ctx context.Context, id kernel.ID) (bool, error)

	// CreditPoints atomically adds loyalty points to the user's counter.
	// Must run inside the transaction of the triggering operation so the
	// accrual commits or rolls back with the status write.
	CreditPoints(ctx context.Context, id kernel.ID, points int) error

	// GetLoyaltyPoints returns the user's current loyalty balance.
	GetLoyaltyPoints(ctx context.Context, id kernel.ID) (int, error)
}

// VehicleRepository is the narrow contract against the externally owned
// vehicle store.
type VehicleRepository interface {
	// Exists reports whether a vehicle row with the given id exists.
	Exists(ctx context.Context, id kernel.ID) (bool, error)

	// GetTransportType returns the vehicle's transport-type tag.
	GetTransportType(ctx context.Context, id kernel.ID) (string, error)
}
