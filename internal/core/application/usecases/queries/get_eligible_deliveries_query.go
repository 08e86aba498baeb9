package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetEligibleDeliveriesQueryIsNotConstructed = errors.New(
	"GetEligibleDeliveriesQuery must be created via NewGetEligibleDeliveriesQuery constructor",
)

// GetEligibleDeliveriesQuery retrieves the pending deliveries a vehicle
// of the given transport type can claim. An empty vehicle type matches
// only deliveries with no transport-type requirement.
type GetEligibleDeliveriesQuery struct {
	vehicleType string

	guard guard.ConstructorGuard
}

// NewGetEligibleDeliveriesQuery creates an eligibility query for the
// given vehicle type.
func NewGetEligibleDeliveriesQuery(vehicleType string) GetEligibleDeliveriesQuery {
	return GetEligibleDeliveriesQuery{
		vehicleType: vehicleType,
		guard:       guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetEligibleDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetEligibleDeliveriesQueryIsNotConstructed)
}

// VehicleType returns the transport-type tag of the driver's vehicle.
func (q GetEligibleDeliveriesQuery) VehicleType() string {
	return q.vehicleType
}
