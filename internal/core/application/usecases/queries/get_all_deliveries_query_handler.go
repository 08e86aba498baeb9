package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetAllDeliveriesQueryHandler retrieves every delivery projection,
// sorted by identity for consistent output.
type GetAllDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetAllDeliveriesQueryHandler creates a handler for all-delivery
// queries.
func NewGetAllDeliveriesQueryHandler(db *gorm.DB) GetAllDeliveriesQueryHandler {
	return GetAllDeliveriesQueryHandler{db: db}
}

// Handle executes the query.
func (h GetAllDeliveriesQueryHandler) Handle(ctx context.Context, query GetAllDeliveriesQuery) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return fetchDeliveries(ctx, h.db, "TRUE")
}
