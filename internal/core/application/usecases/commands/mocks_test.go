package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.ID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetByIdempotencyKey(ctx context.Context, key uuid.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetAll(ctx context.Context) ([]*delivery.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetAllPending(ctx context.Context) ([]*delivery.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetAllByUser(ctx context.Context, userID kernel.ID) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) Delete(ctx context.Context, id kernel.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Claim(ctx context.Context, id, driverID, vehicleID kernel.ID) error {
	args := m.Called(ctx, id, driverID, vehicleID)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Release(ctx context.Context, id, driverID kernel.ID) error {
	args := m.Called(ctx, id, driverID)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Complete(ctx context.Context, id, driverID kernel.ID, completedAt time.Time) error {
	args := m.Called(ctx, id, driverID, completedAt)
	return args.Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Exists(ctx context.Context, id kernel.ID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) CreditPoints(ctx context.Context, id kernel.ID, points int) error {
	args := m.Called(ctx, id, points)
	return args.Error(0)
}

func (m *MockUserRepository) GetLoyaltyPoints(ctx context.Context, id kernel.ID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Exists(ctx context.Context, id kernel.ID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockVehicleRepository) GetTransportType(ctx context.Context, id kernel.ID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

func (m *MockUoW) VehicleRepository() ports.VehicleRepository {
	args := m.Called()
	return args.Get(0).(ports.VehicleRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

// --- fixtures ---

func floatPtr(v float64) *float64 { return &v }

func validLegInputs() []commands.LegInput {
	return []commands.LegInput{
		{
			Street:    "Alameda Santos",
			Number:    "45",
			City:      "Sao Paulo",
			Latitude:  floatPtr(-23.57),
			Longitude: floatPtr(-46.65),
		},
		{
			Street:    "Rua Augusta",
			Number:    "1200",
			City:      "Sao Paulo",
			Latitude:  floatPtr(-23.55),
			Longitude: floatPtr(-46.66),
		},
	}
}

func validItemInputs() []commands.ItemInput {
	return []commands.ItemInput{
		{Name: "documents", Weight: 2.5, Quantity: 1},
	}
}

func validCreateCommand(t *testing.T) commands.CreateDeliveryCommand {
	t.Helper()

	value, err := kernel.MoneyFromFloat(42.50)
	require.NoError(t, err)

	cmd, err := commands.NewCreateDeliveryCommand(
		uuid.New(),
		kernel.ID(7),
		value,
		"office paperwork",
		"documents",
		"moto",
		nil,
		validLegInputs(),
		validItemInputs(),
	)
	require.NoError(t, err)
	return cmd
}

// storedDelivery reconstructs an aggregate in the given status, as the
// repository would return it.
func storedDelivery(t *testing.T, id kernel.ID, status delivery.Status) *delivery.Delivery {
	t.Helper()

	origin, err := delivery.RestoreAddress(kernel.ID(100),
		"Alameda Santos", "45", "", "", "Sao Paulo", "", "",
		floatPtr(-23.57), floatPtr(-46.65))
	require.NoError(t, err)
	destination, err := delivery.RestoreAddress(kernel.ID(101),
		"Rua Augusta", "1200", "", "", "Sao Paulo", "", "",
		floatPtr(-23.55), floatPtr(-46.66))
	require.NoError(t, err)

	legOne, err := delivery.RestoreRouteLeg(kernel.ID(200), 1, origin)
	require.NoError(t, err)
	legTwo, err := delivery.RestoreRouteLeg(kernel.ID(201), 2, destination)
	require.NoError(t, err)

	item, err := delivery.RestoreItem(kernel.ID(300), "documents", 2.5, 1, "")
	require.NoError(t, err)

	value, err := kernel.MoneyFromFloat(42.50)
	require.NoError(t, err)

	var (
		driverID      *kernel.ID
		vehicleID     *kernel.ID
		completedTime *time.Time
	)
	if status == delivery.Accepted || status == delivery.Completed {
		d := kernel.ID(55)
		v := kernel.ID(66)
		driverID = &d
		vehicleID = &v
	}
	if status == delivery.Completed {
		at := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
		completedTime = &at
	}

	aggregate, err := delivery.RestoreDelivery(
		id,
		uuid.New(),
		value,
		status,
		"office paperwork",
		"documents",
		"moto",
		nil,
		completedTime,
		vehicleID,
		driverID,
		kernel.ID(7),
		[]delivery.RouteLeg{legOne, legTwo},
		[]delivery.Item{item},
	)
	require.NoError(t, err)
	return aggregate
}
