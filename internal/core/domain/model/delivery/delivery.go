package delivery

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/google/uuid"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was
	// not created through NewDelivery or RestoreDelivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery")

	// ErrIDAlreadyAssigned is returned when SetID is called on a delivery
	// that already carries a persistent identity.
	ErrIDAlreadyAssigned = errors.New("delivery id is already assigned")
)

// Delivery is the aggregate root for one order: the core record plus its
// ordered route legs and cargo items, treated as one consistency unit.
//
// Invariants:
//   - value is non-negative and fixed at creation (fare snapshot)
//   - driver and vehicle are both unset or both set
//   - completion time is set if and only if status is completed
//   - leg ordinals form a contiguous one-based sequence; origin and
//     destination legs carry coordinates
//
// The route and items are immutable after construction; only the core
// record accepts amendments, and only before a driver is involved.
type Delivery struct {
	id             kernel.ID
	idempotencyKey uuid.UUID
	value          kernel.Money
	status         Status
	description    string
	category       string
	transportType  string
	scheduledTime  *time.Time
	completedTime  *time.Time
	vehicleID      *kernel.ID
	driverID       *kernel.ID
	requesterID    kernel.ID
	legs           []RouteLeg
	items          []Item

	guard guard.ConstructorGuard
}

// NewDelivery creates a delivery in payment_pending status. The identity
// stays zero until the storage engine assigns one; the idempotency key is
// client-supplied and dedupes retried creates.
func NewDelivery(
	idempotencyKey uuid.UUID,
	value kernel.Money,
	description, category, transportType string,
	scheduledTime *time.Time,
	requesterID kernel.ID,
	legs []RouteLeg,
	items []Item,
) (*Delivery, error) {
	if idempotencyKey == uuid.Nil {
		return nil, errs.NewValueIsRequiredError("idempotencyKey")
	}
	if err := value.Validate(); err != nil {
		return nil, err
	}
	if err := requesterID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("requesterId", err)
	}
	if err := validateLegs(legs); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return &Delivery{
		idempotencyKey: idempotencyKey,
		value:          value,
		status:         PaymentPending,
		description:    description,
		category:       category,
		transportType:  transportType,
		scheduledTime:  scheduledTime,
		requesterID:    requesterID,
		legs:           sortedByOrdinal(legs),
		items:          append([]Item(nil), items...),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// RestoreDelivery reconstructs a delivery from persistence, re-checking
// the aggregate invariants so corrupt rows never become live aggregates.
func RestoreDelivery(
	id kernel.ID,
	idempotencyKey uuid.UUID,
	value kernel.Money,
	status Status,
	description, category, transportType string,
	scheduledTime, completedTime *time.Time,
	vehicleID, driverID *kernel.ID,
	requesterID kernel.ID,
	legs []RouteLeg,
	items []Item,
) (*Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if (driverID == nil) != (vehicleID == nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("driverId",
			errors.New("driver and vehicle must be set together"))
	}
	if (completedTime != nil) != (status == Completed) {
		return nil, errs.NewValueIsInvalidErrorWithCause("completedTime",
			fmt.Errorf("completion time does not match status %s", status))
	}

	d, err := NewDelivery(idempotencyKey, value, description, category, transportType,
		scheduledTime, requesterID, legs, items)
	if err != nil {
		return nil, err
	}

	d.id = id
	d.status = status
	d.completedTime = completedTime
	d.vehicleID = vehicleID
	d.driverID = driverID
	return d, nil
}

// Validate ensures the delivery was created through a constructor.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// SetID assigns the storage-generated identity exactly once.
func (d *Delivery) SetID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if !d.id.IsZero() {
		return ErrIDAlreadyAssigned
	}
	d.id = id
	return nil
}

// ConfirmPayment transitions the delivery to pending, making it
// discoverable by drivers.
func (d *Delivery) ConfirmPayment() error {
	next, err := d.status.ConfirmPayment()
	if err != nil {
		return err
	}
	d.status = next
	return nil
}

// Claim assigns the delivery to the driver and vehicle, transitioning to
// accepted. The persistence layer must additionally guard the write with
// a conditional update so racing claims cannot both succeed.
func (d *Delivery) Claim(driverID, vehicleID kernel.ID) error {
	if err := driverID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}
	if err := vehicleID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("vehicleId", err)
	}

	next, err := d.status.Claim()
	if err != nil {
		return err
	}
	d.status = next
	d.driverID = &driverID
	d.vehicleID = &vehicleID
	return nil
}

// Release returns an accepted delivery to the pending pool, clearing the
// driver and vehicle. Only the current holder may release.
func (d *Delivery) Release(driverID kernel.ID) error {
	if err := d.ensureHolder(driverID); err != nil {
		return err
	}

	next, err := d.status.Release()
	if err != nil {
		return err
	}
	d.status = next
	d.driverID = nil
	d.vehicleID = nil
	return nil
}

// Complete marks the delivery fulfilled at the given time. Only the
// current holder may complete, and a delivery completes at most once.
func (d *Delivery) Complete(driverID kernel.ID, completedAt time.Time) error {
	if err := d.ensureHolder(driverID); err != nil {
		return err
	}

	next, err := d.status.Complete()
	if err != nil {
		return err
	}
	if d.completedTime != nil {
		return NewInvalidTransitionError(d.status, Completed)
	}
	d.status = next
	d.completedTime = &completedAt
	return nil
}

// Cancel abandons a non-terminal delivery, clearing any driver and
// vehicle assignment.
func (d *Delivery) Cancel() error {
	next, err := d.status.Cancel()
	if err != nil {
		return err
	}
	d.status = next
	d.driverID = nil
	d.vehicleID = nil
	return nil
}

// Amend applies a partial patch to the core record. Nil fields are left
// unchanged. Amendments are only accepted before a driver is involved,
// while the order is still being priced and paid.
func (d *Delivery) Amend(
	value *kernel.Money,
	description, category, transportType *string,
	scheduledTime *time.Time,
) error {
	if d.status != PaymentPending && d.status != Pending {
		return NewInvalidTransitionError(d.status, d.status)
	}

	if value != nil {
		if err := value.Validate(); err != nil {
			return err
		}
		d.value = *value
	}
	if description != nil {
		d.description = *description
	}
	if category != nil {
		d.category = *category
	}
	if transportType != nil {
		d.transportType = *transportType
	}
	if scheduledTime != nil {
		d.scheduledTime = scheduledTime
	}
	return nil
}

// IsEqual compares two deliveries by identity.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id == other.id
}

// ID returns the delivery identity; zero until persisted.
func (d *Delivery) ID() kernel.ID { return d.id }

// IdempotencyKey returns the client-supplied creation key.
func (d *Delivery) IdempotencyKey() uuid.UUID { return d.idempotencyKey }

// Value returns the fare fixed at creation.
func (d *Delivery) Value() kernel.Money { return d.value }

// Status returns the current lifecycle state.
func (d *Delivery) Status() Status { return d.status }

// Description returns the free-text description.
func (d *Delivery) Description() string { return d.description }

// Category returns the category tag.
func (d *Delivery) Category() string { return d.category }

// TransportType returns the required vehicle type tag; empty means any
// vehicle may serve the delivery.
func (d *Delivery) TransportType() string { return d.transportType }

// ScheduledTime returns the requested pickup time, or nil.
func (d *Delivery) ScheduledTime() *time.Time { return d.scheduledTime }

// CompletedTime returns the fulfillment time; nil unless completed.
func (d *Delivery) CompletedTime() *time.Time { return d.completedTime }

// Vehicle returns the claimed vehicle identity, or nil.
func (d *Delivery) Vehicle() *kernel.ID { return d.vehicleID }

// Driver returns the claiming driver identity, or nil.
func (d *Delivery) Driver() *kernel.ID { return d.driverID }

// Requester returns the requesting user identity.
func (d *Delivery) Requester() kernel.ID { return d.requesterID }

// Legs returns the route legs ordered by ordinal.
func (d *Delivery) Legs() []RouteLeg {
	return append([]RouteLeg(nil), d.legs...)
}

// Items returns the cargo items.
func (d *Delivery) Items() []Item {
	return append([]Item(nil), d.items...)
}

// Origin returns the leg with the minimum ordinal, or nil for an empty route.
func (d *Delivery) Origin() *RouteLeg {
	if len(d.legs) == 0 {
		return nil
	}
	leg := d.legs[0]
	return &leg
}

// Destination returns the leg with the maximum ordinal, or nil for an empty route.
func (d *Delivery) Destination() *RouteLeg {
	if len(d.legs) == 0 {
		return nil
	}
	leg := d.legs[len(d.legs)-1]
	return &leg
}

func (d *Delivery) ensureHolder(driverID kernel.ID) error {
	if err := driverID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}
	if d.driverID == nil || *d.driverID != driverID {
		return ErrNotHolder
	}
	return nil
}

// validateLegs checks each leg and the contiguity of the one-based
// ordinal sequence. Origin and destination must carry coordinates.
func validateLegs(legs []RouteLeg) error {
	for _, leg := range legs {
		if err := leg.Validate(); err != nil {
			return err
		}
	}
	if len(legs) == 0 {
		return nil
	}

	ordered := sortedByOrdinal(legs)
	for i, leg := range ordered {
		if leg.Ordinal() != i+1 {
			return errs.NewValueIsInvalidErrorWithCause("order",
				fmt.Errorf("leg ordinals must form a contiguous sequence starting at 1, got %d at position %d",
					leg.Ordinal(), i+1))
		}
	}

	origin, destination := ordered[0], ordered[len(ordered)-1]
	if !origin.Address().HasCoordinates() || !destination.Address().HasCoordinates() {
		return errs.NewValueIsRequiredErrorWithCause("coordinates",
			errors.New("origin and destination legs must carry latitude and longitude"))
	}
	return nil
}

func sortedByOrdinal(legs []RouteLeg) []RouteLeg {
	ordered := append([]RouteLeg(nil), legs...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Ordinal() < ordered[j].Ordinal()
	})
	return ordered
}
