package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand represents a payment confirmation for a delivery
// awaiting payment. Confirmation moves the delivery into the pool drivers
// can discover.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.ID

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command to confirm payment.
func NewConfirmPaymentCommand(deliveryID kernel.ID) (ConfirmPaymentCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return ConfirmPaymentCommand{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// DeliveryID returns the identity of the delivery being paid for.
func (c ConfirmPaymentCommand) DeliveryID() kernel.ID {
	return c.deliveryID
}
