package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ClaimDeliveryCommandHandler handles the exclusive pending -> accepted
// transition. The conditional update inside the repository is the
// arbiter: of N drivers racing for the same delivery exactly one wins,
// the rest get delivery.ErrAlreadyClaimed.
type ClaimDeliveryCommandHandler struct {
	uowFactory UoWFactory
	matcher    services.DispatchMatcher
	publisher  ports.EventPublisher
}

// NewClaimDeliveryCommandHandler creates a handler for delivery claims.
func NewClaimDeliveryCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
) ClaimDeliveryCommandHandler {
	return ClaimDeliveryCommandHandler{
		uowFactory: uowFactory,
		matcher:    services.NewDispatchMatcher(),
		publisher:  publisher,
	}
}

// Handle processes the claim. The driver and vehicle must exist, and the
// vehicle's transport type must satisfy the delivery's requirement.
func (h *ClaimDeliveryCommandHandler) Handle(ctx context.Context, cmd ClaimDeliveryCommand) error {
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

	exists, err := uow.UserRepository().Exists(ctx, cmd.DriverID())
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError("driverId", cmd.DriverID().String())
	}

	vehicleType, err := uow.VehicleRepository().GetTransportType(ctx, cmd.VehicleID())
	if err != nil {
		return err
	}

	deliveryRepo := uow.DeliveryRepository()
	aggregate, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	// The transport check only applies to claimable deliveries; status
	// conflicts are classified by the conditional update below.
	if aggregate.Status() == delivery.Pending && !h.matcher.IsEligible(aggregate, vehicleType) {
		return errs.NewValueIsInvalidErrorWithCause("vehicleType",
			fmt.Errorf("vehicle type %q cannot serve a %q delivery",
				vehicleType, aggregate.TransportType()))
	}

	if err = deliveryRepo.Claim(ctx, cmd.DeliveryID(), cmd.DriverID(), cmd.VehicleID()); err != nil {
		return err
	}

	// Re-check eligibility on the row the update actually matched. The
	// pre-check above may have run against a stale payment_pending read
	// while a concurrent payment confirmation made the row claimable;
	// the rollback undoes an ineligible win.
	claimed, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}
	if !h.matcher.Matches(claimed.TransportType(), vehicleType) {
		return errs.NewValueIsInvalidErrorWithCause("vehicleType",
			fmt.Errorf("vehicle type %q cannot serve a %q delivery",
				vehicleType, claimed.TransportType()))
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if claimErr := aggregate.Claim(cmd.DriverID(), cmd.VehicleID()); claimErr == nil {
		publishStatusChange(ctx, h.publisher, aggregate, delivery.Pending)
	}
	return nil
}
