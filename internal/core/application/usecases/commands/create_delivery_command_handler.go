package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// CreateDeliveryCommandHandler handles the business logic for delivery
// creation. A retried create with a known idempotency key returns the
// identity of the already-stored delivery instead of inserting a
// duplicate.
type CreateDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
func NewCreateDeliveryCommandHandler(uowFactory UoWFactory) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery creation command and returns the identity
// of the stored delivery. The validation gate (requester must exist) and
// the multi-table aggregate write share one transaction.
func (h *CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) (kernel.ID, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	legs, items, err := buildRoute(cmd)
	if err != nil {
		return 0, err
	}

	aggregate, err := delivery.NewDelivery(
		cmd.IdempotencyKey(),
		cmd.Value(),
		cmd.Description(),
		cmd.Category(),
		cmd.TransportType(),
		cmd.ScheduledTime(),
		cmd.RequesterID(),
		legs,
		items,
	)
	if err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()

	existing, err := deliveryRepo.GetByIdempotencyKey(ctx, cmd.IdempotencyKey())
	if err == nil {
		return existing.ID(), nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return 0, err
	}

	validator := services.NewDeliveryValidator(uowReferenceChecker{
		users:    uow.UserRepository(),
		vehicles: uow.VehicleRepository(),
	})
	if err = validator.ValidateReferences(ctx, cmd.RequesterID(), nil, nil); err != nil {
		return 0, err
	}

	if err = deliveryRepo.Add(ctx, aggregate); err != nil {
		return h.resolveInsertConflict(ctx, cmd, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return aggregate.ID(), nil
}

// resolveInsertConflict classifies a failed insert. When a concurrent
// create with the same idempotency key committed first, the unique index
// rejects the loser; the stored delivery's identity is the right answer
// then. Any other failure is returned unchanged. The lookup runs on a
// fresh unit of work because the failed transaction is already doomed.
func (h *CreateDeliveryCommandHandler) resolveInsertConflict(
	ctx context.Context,
	cmd CreateDeliveryCommand,
	insertErr error,
) (kernel.ID, error) {
	if !errors.Is(insertErr, errs.ErrStorage) {
		return 0, insertErr
	}

	existing, lookupErr := h.uowFactory.Create().DeliveryRepository().
		GetByIdempotencyKey(ctx, cmd.IdempotencyKey())
	if lookupErr != nil {
		return 0, insertErr
	}

	return existing.ID(), nil
}

// buildRoute turns the submitted leg and item inputs into domain objects.
// Leg ordinals follow the submitted order, starting at one.
func buildRoute(cmd CreateDeliveryCommand) ([]delivery.RouteLeg, []delivery.Item, error) {
	legInputs := cmd.Legs()
	legs := make([]delivery.RouteLeg, 0, len(legInputs))
	for i, input := range legInputs {
		address, err := delivery.NewAddress(
			input.Street, input.Number, input.Unit, input.Neighborhood,
			input.City, input.State, input.PostalCode,
			input.Latitude, input.Longitude,
		)
		if err != nil {
			return nil, nil, err
		}

		leg, err := delivery.NewRouteLeg(i+1, address)
		if err != nil {
			return nil, nil, err
		}
		legs = append(legs, leg)
	}

	itemInputs := cmd.Items()
	items := make([]delivery.Item, 0, len(itemInputs))
	for _, input := range itemInputs {
		item, err := delivery.NewItem(input.Name, input.Weight, input.Quantity, input.Remarks)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
	}

	return legs, items, nil
}
