package delivery

import (
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrItemIsNotConstructed indicates an Item that was not created through
// NewItem or RestoreItem.
var ErrItemIsNotConstructed = errs.NewValueIsRequiredError(
	"Item must be created via NewItem or RestoreItem",
)

// Item is one cargo entry of a delivery. Items are owned exclusively by
// their delivery and removed with it.
type Item struct {
	id       kernel.ID
	name     string
	weight   float64
	quantity int
	remarks  string

	guard guard.ConstructorGuard
}

// NewItem creates a cargo item for a new delivery.
// Weight must be positive and quantity a positive integer.
func NewItem(name string, weight float64, quantity int, remarks string) (Item, error) {
	if weight <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%v is not a positive number", weight))
	}
	if quantity < 1 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not a positive integer", quantity))
	}

	return Item{
		name:     name,
		weight:   weight,
		quantity: quantity,
		remarks:  remarks,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// RestoreItem reconstructs an item from persistence.
func RestoreItem(id kernel.ID, name string, weight float64, quantity int, remarks string) (Item, error) {
	if err := id.Validate(); err != nil {
		return Item{}, err
	}

	item, err := NewItem(name, weight, quantity, remarks)
	if err != nil {
		return Item{}, err
	}
	item.id = id
	return item, nil
}

// Validate ensures the item was created through a constructor.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ID returns the item identity; zero until persisted.
func (i Item) ID() kernel.ID { return i.id }

// Name returns the item name.
func (i Item) Name() string { return i.name }

// Weight returns the item weight.
func (i Item) Weight() float64 { return i.weight }

// Quantity returns how many units the item covers.
func (i Item) Quantity() int { return i.quantity }

// Remarks returns free-text handling remarks.
func (i Item) Remarks() string { return i.remarks }
