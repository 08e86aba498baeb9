package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/ports"
)

// publishStatusChange emits a status-change event for an already committed
// transition. Publishing is best-effort: the publisher logs failures and
// the business operation has already succeeded.
func publishStatusChange(
	ctx context.Context,
	publisher ports.EventPublisher,
	aggregate *delivery.Delivery,
	from delivery.Status,
) {
	if publisher == nil {
		return
	}

	_ = publisher.PublishStatusChanged(ctx, ports.StatusChangedEvent{
		DeliveryID: aggregate.ID(),
		From:       from,
		To:         aggregate.Status(),
		DriverID:   aggregate.Driver(),
		OccurredAt: time.Now().UTC(),
	})
}
