package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
)

// GetDeliveryQuery retrieves one delivery with its full route and items.
type GetDeliveryQuery struct {
	deliveryID kernel.ID

	guard guard.ConstructorGuard
}

// NewGetDeliveryQuery creates a query for a single delivery.
func NewGetDeliveryQuery(deliveryID kernel.ID) (GetDeliveryQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryQuery{}, err
	}

	return GetDeliveryQuery{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

// DeliveryID returns the identity of the requested delivery.
func (q GetDeliveryQuery) DeliveryID() kernel.ID {
	return q.deliveryID
}
