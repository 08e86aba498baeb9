package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrDeleteDeliveryCommandIsNotConstructed = errors.New(
	"DeleteDeliveryCommand must be created via NewDeleteDeliveryCommand constructor",
)

// DeleteDeliveryCommand represents a request to remove a delivery and
// everything that hangs off it: legs, their addresses, and items.
type DeleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.ID

	guard guard.ConstructorGuard
}

// NewDeleteDeliveryCommand creates a command to delete a delivery.
func NewDeleteDeliveryCommand(deliveryID kernel.ID) (DeleteDeliveryCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return DeleteDeliveryCommand{}, err
	}

	return DeleteDeliveryCommand{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identity of the delivery to delete.
func (c DeleteDeliveryCommand) DeliveryID() kernel.ID {
	return c.deliveryID
}
