package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrUpdateDeliveryCommandIsNotConstructed = errors.New(
		"UpdateDeliveryCommand must be created via NewUpdateDeliveryCommand constructor",
	)
	ErrNothingToAmend = errors.New("at least one field to amend is required")
)

// UpdateDeliveryCommand represents a request to amend pre-dispatch fields
// of a delivery. Nil fields are left untouched; the route and items are
// never amendable.
type UpdateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID    kernel.ID
	value         *kernel.Money
	description   *string
	category      *string
	transportType *string
	scheduledTime *time.Time

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryCommand creates a command to amend a delivery.
// At least one field must be set.
func NewUpdateDeliveryCommand(
	deliveryID kernel.ID,
	value *kernel.Money,
	description, category, transportType *string,
	scheduledTime *time.Time,
) (UpdateDeliveryCommand, error) {
	command := UpdateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setDeliveryID(deliveryID); err != nil {
		return UpdateDeliveryCommand{}, err
	}
	if value != nil {
		if err := value.Validate(); err != nil {
			return UpdateDeliveryCommand{}, err
		}
	}
	if description != nil && *description == "" {
		return UpdateDeliveryCommand{}, ErrDescriptionIsRequired
	}
	if value == nil && description == nil && category == nil &&
		transportType == nil && scheduledTime == nil {
		return UpdateDeliveryCommand{}, ErrNothingToAmend
	}

	command.value = value
	command.description = description
	command.category = category
	command.transportType = transportType
	command.scheduledTime = scheduledTime

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identity of the delivery to amend.
func (c UpdateDeliveryCommand) DeliveryID() kernel.ID {
	return c.deliveryID
}

// Value returns the new fare, or nil to keep the current one.
func (c UpdateDeliveryCommand) Value() *kernel.Money {
	return c.value
}

// Description returns the new description, or nil.
func (c UpdateDeliveryCommand) Description() *string {
	return c.description
}

// Category returns the new category tag, or nil.
func (c UpdateDeliveryCommand) Category() *string {
	return c.category
}

// TransportType returns the new vehicle type tag, or nil.
func (c UpdateDeliveryCommand) TransportType() *string {
	return c.transportType
}

// ScheduledTime returns the new pickup time, or nil.
func (c UpdateDeliveryCommand) ScheduledTime() *time.Time {
	return c.scheduledTime
}

func (c *UpdateDeliveryCommand) setDeliveryID(deliveryID kernel.ID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}
