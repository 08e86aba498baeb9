package commands

import (
	"context"
)

// DeleteDeliveryCommandHandler handles delivery removal. The repository
// deletes items, legs, addresses, and the delivery row in one
// transaction, so a failed step leaves the aggregate intact.
type DeleteDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewDeleteDeliveryCommandHandler creates a handler for delivery removal.
func NewDeleteDeliveryCommandHandler(uowFactory DeliveryUoWFactory) DeleteDeliveryCommandHandler {
	return DeleteDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delete command.
func (h *DeleteDeliveryCommandHandler) Handle(ctx context.Context, cmd DeleteDeliveryCommand) error {
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

	if err := uow.DeliveryRepository().Delete(ctx, cmd.DeliveryID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
