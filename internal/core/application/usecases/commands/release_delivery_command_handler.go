package commands

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/ports"
)

// ReleaseDeliveryCommandHandler handles the accepted -> pending
// transition. Only the holding driver may release; the conditional
// update rejects anyone else with delivery.ErrNotHolder.
type ReleaseDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
}

// NewReleaseDeliveryCommandHandler creates a handler for delivery releases.
func NewReleaseDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
) ReleaseDeliveryCommandHandler {
	return ReleaseDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the release.
func (h *ReleaseDeliveryCommandHandler) Handle(ctx context.Context, cmd ReleaseDeliveryCommand) error {
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

	if err = deliveryRepo.Release(ctx, cmd.DeliveryID(), cmd.DriverID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if releaseErr := aggregate.Release(cmd.DriverID()); releaseErr == nil {
		publishStatusChange(ctx, h.publisher, aggregate, delivery.Accepted)
	}
	return nil
}
