package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCancelDeliveryCommandIsNotConstructed = errors.New(
	"CancelDeliveryCommand must be created via NewCancelDeliveryCommand constructor",
)

// CancelDeliveryCommand represents abandoning a delivery before
// completion. Cancellation detaches any claiming driver and vehicle.
type CancelDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.ID

	guard guard.ConstructorGuard
}

// NewCancelDeliveryCommand creates a command to cancel a delivery.
func NewCancelDeliveryCommand(deliveryID kernel.ID) (CancelDeliveryCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return CancelDeliveryCommand{}, err
	}

	return CancelDeliveryCommand{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identity of the delivery to cancel.
func (c CancelDeliveryCommand) DeliveryID() kernel.ID {
	return c.deliveryID
}
