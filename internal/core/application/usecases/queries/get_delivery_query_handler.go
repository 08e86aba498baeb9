package queries

import (
	"context"

	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDeliveryQueryHandler retrieves a single delivery projection from the
// database.
type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryQueryHandler creates a handler for single-delivery queries.
func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError when no
// delivery has the requested identity.
func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) (DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return DeliveryResponse{}, err
	}

	deliveries, err := fetchDeliveries(ctx, h.db, "id = ?", query.DeliveryID().Int64())
	if err != nil {
		return DeliveryResponse{}, err
	}
	if len(deliveries) == 0 {
		return DeliveryResponse{}, errs.NewObjectNotFoundError("deliveryId", query.DeliveryID().String())
	}

	return deliveries[0], nil
}
