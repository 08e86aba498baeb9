package queries

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"

	"gorm.io/gorm"
)

// GetEligibleDeliveriesQueryHandler retrieves the pending deliveries a
// vehicle can serve. The transport-type filter mirrors the dispatch
// matcher: no tag means any vehicle, otherwise a case-insensitive match.
type GetEligibleDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetEligibleDeliveriesQueryHandler creates a handler for eligibility
// queries.
func NewGetEligibleDeliveriesQueryHandler(db *gorm.DB) GetEligibleDeliveriesQueryHandler {
	return GetEligibleDeliveriesQueryHandler{db: db}
}

// Handle executes the query.
func (h GetEligibleDeliveriesQueryHandler) Handle(ctx context.Context, query GetEligibleDeliveriesQuery) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return fetchDeliveries(ctx, h.db,
		"status = ? AND (transport_type = '' OR LOWER(transport_type) = LOWER(?))",
		int(delivery.Pending), query.VehicleType())
}
