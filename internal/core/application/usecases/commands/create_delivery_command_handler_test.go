package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateCommand(t)

	repo := new(MockDeliveryRepository)
	users := new(MockUserRepository)
	vehicles := new(MockVehicleRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetByIdempotencyKey", mock.Anything, cmd.IdempotencyKey()).
			Return(nil, errs.NewObjectNotFoundError("idempotencyKey", cmd.IdempotencyKey().String())).Once(),
		uow.On("UserRepository").Return(users).Once(),
		uow.On("VehicleRepository").Return(vehicles).Once(),
		users.On("Exists", mock.Anything, kernel.ID(7)).Return(true, nil).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).
			Run(func(args mock.Arguments) {
				aggregate := args.Get(1).(*delivery.Delivery)
				require.NoError(t, aggregate.SetID(kernel.ID(42)))
			}).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory)
	id, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, kernel.ID(42), id)
	repo.AssertExpectations(t)
	users.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_DuplicateKeyReturnsExisting(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateCommand(t)
	existing := storedDelivery(t, kernel.ID(9), delivery.PaymentPending)

	repo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetByIdempotencyKey", mock.Anything, cmd.IdempotencyKey()).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory)
	id, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, kernel.ID(9), id)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateDeliveryCommandHandler_Handle_ConcurrentCreateLosesRaceReturnsExisting(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateCommand(t)
	existing := storedDelivery(t, kernel.ID(9), delivery.PaymentPending)

	// The winner commits between this handler's dedupe read and its
	// insert, so the unique index rejects the insert.
	repo := new(MockDeliveryRepository)
	users := new(MockUserRepository)
	vehicles := new(MockVehicleRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetByIdempotencyKey", mock.Anything, cmd.IdempotencyKey()).
			Return(nil, errs.NewObjectNotFoundError("idempotencyKey", cmd.IdempotencyKey().String())).Once(),
		uow.On("UserRepository").Return(users).Once(),
		uow.On("VehicleRepository").Return(vehicles).Once(),
		users.On("Exists", mock.Anything, kernel.ID(7)).Return(true, nil).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).
			Return(errs.NewStorageError("delivery.create", assert.AnError)).Once(),
	)

	lookupRepo := new(MockDeliveryRepository)
	lookupRepo.On("GetByIdempotencyKey", mock.Anything, cmd.IdempotencyKey()).Return(existing, nil).Once()
	lookupUow := new(MockUoW)
	lookupUow.On("DeliveryRepository").Return(lookupRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	factory.On("Create").Return(lookupUow).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory)
	id, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, kernel.ID(9), id)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	lookupRepo.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_InsertFailureWithoutWinnerSurfacesError(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateCommand(t)

	repo := new(MockDeliveryRepository)
	users := new(MockUserRepository)
	vehicles := new(MockVehicleRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetByIdempotencyKey", mock.Anything, cmd.IdempotencyKey()).
			Return(nil, errs.NewObjectNotFoundError("idempotencyKey", cmd.IdempotencyKey().String())).Once(),
		uow.On("UserRepository").Return(users).Once(),
		uow.On("VehicleRepository").Return(vehicles).Once(),
		users.On("Exists", mock.Anything, kernel.ID(7)).Return(true, nil).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).
			Return(errs.NewStorageError("delivery.create", assert.AnError)).Once(),
	)

	lookupRepo := new(MockDeliveryRepository)
	lookupRepo.On("GetByIdempotencyKey", mock.Anything, cmd.IdempotencyKey()).
		Return(nil, errs.NewObjectNotFoundError("idempotencyKey", cmd.IdempotencyKey().String())).Once()
	lookupUow := new(MockUoW)
	lookupUow.On("DeliveryRepository").Return(lookupRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	factory.On("Create").Return(lookupUow).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrStorage)
}

func TestCreateDeliveryCommandHandler_Handle_UnknownRequester(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateCommand(t)

	repo := new(MockDeliveryRepository)
	users := new(MockUserRepository)
	vehicles := new(MockVehicleRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetByIdempotencyKey", mock.Anything, cmd.IdempotencyKey()).
			Return(nil, errs.NewObjectNotFoundError("idempotencyKey", cmd.IdempotencyKey().String())).Once(),
		uow.On("UserRepository").Return(users).Once(),
		uow.On("VehicleRepository").Return(vehicles).Once(),
		users.On("Exists", mock.Anything, kernel.ID(7)).Return(false, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateDeliveryCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateDeliveryCommand{} // not constructed properly
	factory := new(MockUoWFactory)
	h := commands.NewCreateDeliveryCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
