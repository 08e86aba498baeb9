package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// CancelDeliveryCommandHandler handles cancellation from any non-terminal
// status.
type CancelDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
}

// NewCancelDeliveryCommandHandler creates a handler for delivery
// cancellation.
func NewCancelDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the cancellation.
func (h *CancelDeliveryCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryCommand) error {
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

	from := aggregate.Status()
	if err = aggregate.Cancel(); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatusChange(ctx, h.publisher, aggregate, from)
	return nil
}
