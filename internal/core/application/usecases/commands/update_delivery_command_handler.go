package commands

import (
	"context"
)

// UpdateDeliveryCommandHandler handles amendments to a stored delivery.
// The aggregate decides whether its current status still permits
// amendment.
type UpdateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewUpdateDeliveryCommandHandler creates a handler for delivery amendments.
func NewUpdateDeliveryCommandHandler(uowFactory DeliveryUoWFactory) UpdateDeliveryCommandHandler {
	return UpdateDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the delivery, applies the amendment through the aggregate,
// and persists the result in one transaction.
func (h *UpdateDeliveryCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryCommand) error {
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

	if err = aggregate.Amend(
		cmd.Value(),
		cmd.Description(),
		cmd.Category(),
		cmd.TransportType(),
		cmd.ScheduledTime(),
	); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
