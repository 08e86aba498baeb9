package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// StatusChangedEvent describes one committed status transition. Consumers
// (driver trip lists, requester order views) refresh from these instead
// of the shared global notifications the original UI relied on.
type StatusChangedEvent struct {
	DeliveryID kernel.ID
	From       delivery.Status
	To         delivery.Status
	DriverID   *kernel.ID
	OccurredAt time.Time
}

// EventPublisher delivers status-change events to interested consumers.
// Publishing happens after commit and is best-effort: a publish failure
// never fails the business operation.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, event StatusChangedEvent) error
}

// NopEventPublisher discards events. Used in tests and when no broker
// is configured.
type NopEventPublisher struct{}

// PublishStatusChanged implements EventPublisher by doing nothing.
func (NopEventPublisher) PublishStatusChanged(context.Context, StatusChangedEvent) error {
	return nil
}
