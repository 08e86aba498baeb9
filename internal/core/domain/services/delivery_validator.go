package services

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ReferenceChecker answers existence questions about externally owned
// rows. The user and vehicle stores live outside the core; each check is
// a single lookup, not a join.
type ReferenceChecker interface {
	// UserExists reports whether a user row with the given id exists.
	UserExists(ctx context.Context, id kernel.ID) (bool, error)

	// VehicleExists reports whether a vehicle row with the given id exists.
	VehicleExists(ctx context.Context, id kernel.ID) (bool, error)
}

// DeliveryValidator performs the referential part of the validation gate:
// vehicle, driver, and requester ids, when present, must reference
// existing rows. Field-shape checks happen in the command constructors;
// both layers fail fast on the first violation encountered.
type DeliveryValidator struct {
	checker ReferenceChecker
}

// NewDeliveryValidator creates a validator backed by the given checker.
func NewDeliveryValidator(checker ReferenceChecker) DeliveryValidator {
	return DeliveryValidator{checker: checker}
}

// ValidateReferences checks the foreign ids of a candidate delivery.
// The requester is required; driver and vehicle are optional and checked
// only when present. The first violation is returned immediately.
func (v DeliveryValidator) ValidateReferences(
	ctx context.Context,
	requesterID kernel.ID,
	driverID, vehicleID *kernel.ID,
) error {
	if err := requesterID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("requesterId", err)
	}

	exists, err := v.checker.UserExists(ctx, requesterID)
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError("requesterId", requesterID.String())
	}

	if vehicleID != nil {
		exists, err = v.checker.VehicleExists(ctx, *vehicleID)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError("vehicleId", vehicleID.String())
		}
	}

	if driverID != nil {
		exists, err = v.checker.UserExists(ctx, *driverID)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError("driverId", driverID.String())
		}
	}

	return nil
}
