package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetDeliveriesByUserQueryIsNotConstructed = errors.New(
	"GetDeliveriesByUserQuery must be created via NewGetDeliveriesByUserQuery constructor",
)

// GetDeliveriesByUserQuery retrieves the deliveries a user participates
// in, whether as requester or as the claiming driver. Backs the "my
// orders" and "my trips" listings.
type GetDeliveriesByUserQuery struct {
	userID kernel.ID

	guard guard.ConstructorGuard
}

// NewGetDeliveriesByUserQuery creates a per-user delivery query.
func NewGetDeliveriesByUserQuery(userID kernel.ID) (GetDeliveriesByUserQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetDeliveriesByUserQuery{}, err
	}

	return GetDeliveriesByUserQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveriesByUserQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveriesByUserQueryIsNotConstructed)
}

// UserID returns the identity of the user whose deliveries are requested.
func (q GetDeliveriesByUserQuery) UserID() kernel.ID {
	return q.userID
}
