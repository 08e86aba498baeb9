package delivery

import (
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrRouteLegIsNotConstructed indicates a RouteLeg that was not created
// through NewRouteLeg or RestoreRouteLeg.
var ErrRouteLegIsNotConstructed = errs.NewValueIsRequiredError(
	"RouteLeg must be created via NewRouteLeg or RestoreRouteLeg",
)

// RouteLeg is one ordered stop in a delivery's trajectory. Each leg owns
// exactly one address. Ordinals are one-based and form a contiguous
// sequence within a delivery; the minimum ordinal is the origin and the
// maximum is the destination.
type RouteLeg struct {
	id      kernel.ID
	ordinal int
	address Address

	guard guard.ConstructorGuard
}

// NewRouteLeg creates a leg for a new delivery. The ordinal must be a
// positive integer; contiguity across legs is checked by the aggregate.
func NewRouteLeg(ordinal int, address Address) (RouteLeg, error) {
	if ordinal < 1 {
		return RouteLeg{}, errs.NewValueIsInvalidErrorWithCause("order",
			fmt.Errorf("%d is not a positive ordinal", ordinal))
	}
	if err := address.Validate(); err != nil {
		return RouteLeg{}, err
	}

	return RouteLeg{
		ordinal: ordinal,
		address: address,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// RestoreRouteLeg reconstructs a leg from persistence.
func RestoreRouteLeg(id kernel.ID, ordinal int, address Address) (RouteLeg, error) {
	if err := id.Validate(); err != nil {
		return RouteLeg{}, err
	}

	leg, err := NewRouteLeg(ordinal, address)
	if err != nil {
		return RouteLeg{}, err
	}
	leg.id = id
	return leg, nil
}

// Validate ensures the leg was created through a constructor.
func (l RouteLeg) Validate() error {
	return l.guard.Validate(ErrRouteLegIsNotConstructed)
}

// ID returns the leg identity; zero until persisted.
func (l RouteLeg) ID() kernel.ID { return l.id }

// Ordinal returns the one-based position of the leg in the route.
func (l RouteLeg) Ordinal() int { return l.ordinal }

// Address returns the leg's address.
func (l RouteLeg) Address() Address { return l.address }
