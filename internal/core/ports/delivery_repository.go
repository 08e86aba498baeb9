// Package ports defines the persistence and messaging contracts between
// the domain core and infrastructure adapters, enabling dependency
// inversion and testability.
package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryRepository is the persistence contract for delivery aggregates.
// Reads reconstruct the full aggregate shape (delivery + ordered legs
// with resolved addresses + items); writes that span multiple tables run
// inside the transaction of the owning unit of work.
type DeliveryRepository interface {
	// Add persists a new aggregate: the delivery row first, then each
	// leg's address and leg row, then the items. The generated identity
	// is assigned back to the aggregate. Any failure leaves nothing behind.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to the delivery row only; the route and
	// items are immutable once the trajectory is set.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves the full aggregate by identity.
	Get(ctx context.Context, id kernel.ID) (*delivery.Delivery, error)

	// GetByIdempotencyKey retrieves the aggregate created under the given
	// client-supplied key, for deduplicating retried creates.
	GetByIdempotencyKey(ctx context.Context, key uuid.UUID) (*delivery.Delivery, error)

	// GetAll retrieves every aggregate.
	GetAll(ctx context.Context) ([]*delivery.Delivery, error)

	// GetAllPending retrieves the aggregates drivers can discover.
	GetAllPending(ctx context.Context) ([]*delivery.Delivery, error)

	// GetAllByUser retrieves the aggregates a user participates in,
	// as requester or as driver.
	GetAllByUser(ctx context.Context, userID kernel.ID) ([]*delivery.Delivery, error)

	// Delete removes items, then legs, then their addresses, then the
	// delivery row. On any step's failure the whole deletion rolls back.
	Delete(ctx context.Context, id kernel.ID) error

	// Claim executes the exclusive pending -> accepted transition as a
	// conditional update: it succeeds only if the row's status is still
	// pending at the moment of the write. A lost race surfaces as
	// delivery.ErrAlreadyClaimed, never as a half-applied claim.
	Claim(ctx context.Context, id, driverID, vehicleID kernel.ID) error

	// Release executes accepted -> pending for the current holder,
	// clearing driver and vehicle. A non-holder gets delivery.ErrNotHolder.
	Release(ctx context.Context, id, driverID kernel.ID) error

	// Complete executes accepted -> completed for the current holder,
	// setting the completion time. The write is conditional on the
	// completion time still being null, so a retried complete can never
	// apply twice.
	Complete(ctx context.Context, id, driverID kernel.ID, completedAt time.Time) error
}
