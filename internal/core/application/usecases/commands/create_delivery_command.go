package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"

	"github.com/google/uuid"
)

var (
	ErrCreateDeliveryCommandIsNotConstructed = errors.New(
		"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
	)
	ErrIdempotencyKeyIsRequired = errors.New("idempotency key is required")
	ErrDescriptionIsRequired    = errors.New("description is required")
	ErrRouteIsTooShort          = errors.New("route must have at least two legs")
	ErrItemsAreRequired         = errors.New("at least one item is required")
)

// LegInput carries the address of one route leg as submitted by the
// requester. Legs are ordered by position in the slice; the first and
// last become origin and destination and must carry coordinates.
type LegInput struct {
	Street       string
	Number       string
	Unit         string
	Neighborhood string
	City         string
	State        string
	PostalCode   string
	Latitude     *float64
	Longitude    *float64
}

// ItemInput carries one declared package of the delivery.
type ItemInput struct {
	Name     string
	Weight   float64
	Quantity int
	Remarks  string
}

// CreateDeliveryCommand represents a request to register a new delivery
// in payment_pending status. The idempotency key dedupes retried
// submissions of the same request.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	idempotencyKey uuid.UUID
	requesterID    kernel.ID
	value          kernel.Money
	description    string
	category       string
	transportType  string
	scheduledTime  *time.Time
	legs           []LegInput
	items          []ItemInput

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to register a new delivery.
// Shape checks run here and stop at the first violation; referential
// checks happen in the handler inside the transaction.
func NewCreateDeliveryCommand(
	idempotencyKey uuid.UUID,
	requesterID kernel.ID,
	value kernel.Money,
	description, category, transportType string,
	scheduledTime *time.Time,
	legs []LegInput,
	items []ItemInput,
) (CreateDeliveryCommand, error) {
	command := CreateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setIdempotencyKey(idempotencyKey); err != nil {
		return CreateDeliveryCommand{}, err
	}
	if err := command.setRequesterID(requesterID); err != nil {
		return CreateDeliveryCommand{}, err
	}
	if err := command.setValue(value); err != nil {
		return CreateDeliveryCommand{}, err
	}
	if err := command.setDescription(description); err != nil {
		return CreateDeliveryCommand{}, err
	}
	if err := command.setLegs(legs); err != nil {
		return CreateDeliveryCommand{}, err
	}
	if err := command.setItems(items); err != nil {
		return CreateDeliveryCommand{}, err
	}

	command.category = category
	command.transportType = transportType
	command.scheduledTime = scheduledTime

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// IdempotencyKey returns the client-supplied deduplication key.
func (c CreateDeliveryCommand) IdempotencyKey() uuid.UUID {
	return c.idempotencyKey
}

// RequesterID returns the identity of the requesting user.
func (c CreateDeliveryCommand) RequesterID() kernel.ID {
	return c.requesterID
}

// Value returns the fare of the delivery.
func (c CreateDeliveryCommand) Value() kernel.Money {
	return c.value
}

// Description returns the free-text description.
func (c CreateDeliveryCommand) Description() string {
	return c.description
}

// Category returns the category tag, possibly empty.
func (c CreateDeliveryCommand) Category() string {
	return c.category
}

// TransportType returns the required vehicle type tag; empty means any.
func (c CreateDeliveryCommand) TransportType() string {
	return c.transportType
}

// ScheduledTime returns the requested pickup time, or nil.
func (c CreateDeliveryCommand) ScheduledTime() *time.Time {
	return c.scheduledTime
}

// Legs returns the submitted route legs in order.
func (c CreateDeliveryCommand) Legs() []LegInput {
	return c.legs
}

// Items returns the declared packages.
func (c CreateDeliveryCommand) Items() []ItemInput {
	return c.items
}

func (c *CreateDeliveryCommand) setIdempotencyKey(key uuid.UUID) error {
	if key == uuid.Nil {
		return ErrIdempotencyKeyIsRequired
	}

	c.idempotencyKey = key
	return nil
}

func (c *CreateDeliveryCommand) setRequesterID(requesterID kernel.ID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}

	c.requesterID = requesterID
	return nil
}

func (c *CreateDeliveryCommand) setValue(value kernel.Money) error {
	if err := value.Validate(); err != nil {
		return err
	}

	c.value = value
	return nil
}

func (c *CreateDeliveryCommand) setDescription(description string) error {
	if description == "" {
		return ErrDescriptionIsRequired
	}

	c.description = description
	return nil
}

func (c *CreateDeliveryCommand) setLegs(legs []LegInput) error {
	if len(legs) < 2 {
		return ErrRouteIsTooShort
	}

	c.legs = legs
	return nil
}

func (c *CreateDeliveryCommand) setItems(items []ItemInput) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = items
	return nil
}
