package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/ports"
)

// CompleteDeliveryCommandHandler handles the accepted -> completed
// transition and the loyalty accrual tied to it. The status write and
// the requester's point credit share one transaction: both land or
// neither does. The repository's null-completion-time condition makes a
// retried complete a no-match, so the credit can never apply twice.
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	now        func() time.Time
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery
// completion.
func NewCompleteDeliveryCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Handle processes the completion.
func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	aggregate, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	completedAt := h.now().UTC()
	if err = deliveryRepo.Complete(ctx, cmd.DeliveryID(), cmd.DriverID(), completedAt); err != nil {
		return err
	}

	if err = uow.UserRepository().CreditPoints(ctx, aggregate.Requester(), completionLoyaltyPoints); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if completeErr := aggregate.Complete(cmd.DriverID(), completedAt); completeErr == nil {
		publishStatusChange(ctx, h.publisher, aggregate, delivery.Accepted)
	}
	return nil
}
