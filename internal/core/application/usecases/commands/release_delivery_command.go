package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrReleaseDeliveryCommandIsNotConstructed = errors.New(
	"ReleaseDeliveryCommand must be created via NewReleaseDeliveryCommand constructor",
)

// ReleaseDeliveryCommand represents the current holder giving a claimed
// delivery back to the pending pool.
type ReleaseDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.ID
	driverID   kernel.ID

	guard guard.ConstructorGuard
}

// NewReleaseDeliveryCommand creates a command to release a delivery.
func NewReleaseDeliveryCommand(deliveryID, driverID kernel.ID) (ReleaseDeliveryCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return ReleaseDeliveryCommand{}, err
	}
	if err := driverID.Validate(); err != nil {
		return ReleaseDeliveryCommand{}, errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}

	return ReleaseDeliveryCommand{
		deliveryID: deliveryID,
		driverID:   driverID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrReleaseDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identity of the delivery being released.
func (c ReleaseDeliveryCommand) DeliveryID() kernel.ID {
	return c.deliveryID
}

// DriverID returns the identity of the driver releasing their hold.
func (c ReleaseDeliveryCommand) DriverID() kernel.ID {
	return c.driverID
}
