package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetAllDeliveriesQueryIsNotConstructed = errors.New(
	"GetAllDeliveriesQuery must be created via NewGetAllDeliveriesQuery constructor",
)

// GetAllDeliveriesQuery retrieves every delivery with routes and items.
// This is a parameterless query used by back-office listings.
type GetAllDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllDeliveriesQuery creates a query for all deliveries.
func NewGetAllDeliveriesQuery() GetAllDeliveriesQuery {
	return GetAllDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetAllDeliveriesQueryIsNotConstructed)
}
