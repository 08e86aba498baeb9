package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/userrepo"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = postgres_adapter.AutoMigrate(db)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE deliveries, route_legs, addresses, delivery_items, users, vehicles RESTART IDENTITY CASCADE",
	).Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.DeliveryRepository())
	suite.NotNil(uow1.UserRepository())
	suite.NotNil(uow1.VehicleRepository())
	suite.NotNil(uow2.DeliveryRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Begin on an active transaction is a no-op.
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitWithoutBegin_ReturnsError() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_Commit_PersistsAggregateGraph() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	aggregate := suite.createTestDelivery()
	err := uow.DeliveryRepository().Add(ctx, aggregate)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Commit(ctx))

	suite.assertRowCount("deliveries", 1)
	suite.assertRowCount("route_legs", 2)
	suite.assertRowCount("delivery_items", 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_Rollback_DiscardsAggregateGraph() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	aggregate := suite.createTestDelivery()
	err := uow.DeliveryRepository().Add(ctx, aggregate)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertRowCount("deliveries", 0)
	suite.assertRowCount("route_legs", 0)
	suite.assertRowCount("addresses", 0)
	suite.assertRowCount("delivery_items", 0)
}

// The completion flow writes two tables: the delivery status flip and the
// requester's loyalty credit. Both must land or neither.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CompletionAndLoyaltyCreditAreAtomic() {
	ctx := context.Background()
	requesterID := suite.seedUser("requester@example.com")

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	aggregate := suite.createTestDelivery()
	suite.Require().NoError(aggregate.ConfirmPayment())
	suite.Require().NoError(setup.DeliveryRepository().Add(ctx, aggregate))
	suite.Require().NoError(setup.Commit(ctx))

	driverID := kernel.ID(55)
	suite.Require().NoError(suite.factory.Create().DeliveryRepository().Claim(ctx, aggregate.ID(), driverID, kernel.ID(66)))

	// Committed path: status flip and credit both land.
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DeliveryRepository().Complete(ctx, aggregate.ID(), driverID, time.Now().UTC()))
	suite.Require().NoError(uow.UserRepository().CreditPoints(ctx, requesterID, 10))
	suite.Require().NoError(uow.Commit(ctx))

	points, err := userrepo.NewGormUserRepository(suite.db).GetLoyaltyPoints(ctx, requesterID)
	suite.Require().NoError(err)
	suite.Equal(10, points)

	// Retried path: the conditional completion fails, the credit never
	// reaches the database because the transaction rolls back.
	retry := suite.factory.Create()
	suite.Require().NoError(retry.Begin(ctx))
	err = retry.DeliveryRepository().Complete(ctx, aggregate.ID(), driverID, time.Now().UTC())
	suite.Require().Error(err)
	suite.ErrorIs(err, delivery.ErrInvalidTransition)
	suite.Require().NoError(retry.Rollback(ctx))

	points, err = userrepo.NewGormUserRepository(suite.db).GetLoyaltyPoints(ctx, requesterID)
	suite.Require().NoError(err)
	suite.Equal(10, points, "retried completion must not credit twice")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TracksAggregatesAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	aggregate := suite.createTestDelivery()
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	gormUow, ok := uow.(*postgres_adapter.GormUnitOfWork)
	suite.Require().True(ok)
	tracked := gormUow.GetTrackedAggregates()
	suite.Require().Len(tracked, 1)
	suite.Same(aggregate, tracked[0])
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoriesShareTransaction() {
	ctx := context.Background()
	requesterID := suite.seedUser("shared@example.com")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	// A write made through one repository is visible to another repository
	// of the same unit of work before commit.
	suite.Require().NoError(uow.UserRepository().CreditPoints(ctx, requesterID, 5))

	points, err := uow.UserRepository().GetLoyaltyPoints(ctx, requesterID)
	suite.Require().NoError(err)
	suite.Equal(5, points)

	suite.Require().NoError(uow.Rollback(ctx))

	points, err = userrepo.NewGormUserRepository(suite.db).GetLoyaltyPoints(ctx, requesterID)
	suite.Require().NoError(err)
	suite.Equal(0, points)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CreditUnknownUser_ReturnsNotFound() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	err := uow.UserRepository().CreditPoints(ctx, kernel.ID(424242), 10)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestDelivery() *delivery.Delivery {
	value, err := kernel.NewMoney(4250)
	suite.Require().NoError(err)

	pickup, err := delivery.NewAddress(
		"Alameda Santos", "1100", "", "Jardim Paulista", "Sao Paulo", "SP", "01418-100",
		coordinate(-23.5707), coordinate(-46.6525),
	)
	suite.Require().NoError(err)
	origin, err := delivery.NewRouteLeg(1, pickup)
	suite.Require().NoError(err)

	dropoff, err := delivery.NewAddress(
		"Rua Augusta", "2690", "", "Cerqueira Cesar", "Sao Paulo", "SP", "01412-100",
		coordinate(-23.5614), coordinate(-46.6608),
	)
	suite.Require().NoError(err)
	destination, err := delivery.NewRouteLeg(2, dropoff)
	suite.Require().NoError(err)

	item, err := delivery.NewItem("documents", 2.5, 1, "")
	suite.Require().NoError(err)

	aggregate, err := delivery.NewDelivery(
		uuid.New(), value, "signed contracts", "documents", "moto",
		nil, kernel.ID(1), []delivery.RouteLeg{origin, destination}, []delivery.Item{item},
	)
	suite.Require().NoError(err)

	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) seedUser(email string) kernel.ID {
	dto := userrepo.UserDTO{Name: "Test User", Email: email}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return kernel.ID(dto.ID)
}

func (suite *UnitOfWorkIntegrationTestSuite) assertRowCount(table string, expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Table(table).Count(&count).Error)
	suite.Equal(expected, count, "unexpected row count in %s", table)
}

func coordinate(value float64) *float64 {
	return &value
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
