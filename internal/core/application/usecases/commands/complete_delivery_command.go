package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// completionLoyaltyPoints is the fixed accrual credited to the requester
// when their delivery is fulfilled.
const completionLoyaltyPoints = 10

// CompleteDeliveryCommand represents the holding driver marking a claimed
// delivery as fulfilled.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.ID
	driverID   kernel.ID

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command to complete a delivery.
func NewCompleteDeliveryCommand(deliveryID, driverID kernel.ID) (CompleteDeliveryCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return CompleteDeliveryCommand{}, err
	}
	if err := driverID.Validate(); err != nil {
		return CompleteDeliveryCommand{}, errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}

	return CompleteDeliveryCommand{
		deliveryID: deliveryID,
		driverID:   driverID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identity of the delivery being completed.
func (c CompleteDeliveryCommand) DeliveryID() kernel.ID {
	return c.deliveryID
}

// DriverID returns the identity of the driver completing the delivery.
func (c CompleteDeliveryCommand) DriverID() kernel.ID {
	return c.driverID
}
