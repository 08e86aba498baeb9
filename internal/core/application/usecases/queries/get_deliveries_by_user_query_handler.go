package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetDeliveriesByUserQueryHandler retrieves delivery projections where the
// user is the requester or the claiming driver.
type GetDeliveriesByUserQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveriesByUserQueryHandler creates a handler for per-user
// delivery queries.
func NewGetDeliveriesByUserQueryHandler(db *gorm.DB) GetDeliveriesByUserQueryHandler {
	return GetDeliveriesByUserQueryHandler{db: db}
}

// Handle executes the query.
func (h GetDeliveriesByUserQueryHandler) Handle(ctx context.Context, query GetDeliveriesByUserQuery) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	userID := query.UserID().Int64()
	return fetchDeliveries(ctx, h.db, "requester_id = ? OR driver_id = ?", userID, userID)
}
