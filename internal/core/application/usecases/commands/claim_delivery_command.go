package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrClaimDeliveryCommandIsNotConstructed = errors.New(
	"ClaimDeliveryCommand must be created via NewClaimDeliveryCommand constructor",
)

// ClaimDeliveryCommand represents a driver's attempt to take exclusive
// hold of a pending delivery with a specific vehicle.
type ClaimDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.ID
	driverID   kernel.ID
	vehicleID  kernel.ID

	guard guard.ConstructorGuard
}

// NewClaimDeliveryCommand creates a command to claim a delivery.
func NewClaimDeliveryCommand(deliveryID, driverID, vehicleID kernel.ID) (ClaimDeliveryCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return ClaimDeliveryCommand{}, err
	}
	if err := driverID.Validate(); err != nil {
		return ClaimDeliveryCommand{}, errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}
	if err := vehicleID.Validate(); err != nil {
		return ClaimDeliveryCommand{}, errs.NewValueIsRequiredErrorWithCause("vehicleId", err)
	}

	return ClaimDeliveryCommand{
		deliveryID: deliveryID,
		driverID:   driverID,
		vehicleID:  vehicleID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrClaimDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identity of the delivery being claimed.
func (c ClaimDeliveryCommand) DeliveryID() kernel.ID {
	return c.deliveryID
}

// DriverID returns the identity of the claiming driver.
func (c ClaimDeliveryCommand) DriverID() kernel.ID {
	return c.driverID
}

// VehicleID returns the identity of the vehicle used for the claim.
func (c ClaimDeliveryCommand) VehicleID() kernel.ID {
	return c.vehicleID
}
