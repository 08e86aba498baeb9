package queries_test

import (
	"context"
	"time"

	postgresadapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// queryHandlerSuite owns the throwaway database shared by the query
// handler suites: one postgres container, a migrated schema, and a
// delivery repository used to seed fixtures.
type queryHandlerSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *deliveryrepo.GormDeliveryRepository
}

func (suite *queryHandlerSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = postgresadapter.AutoMigrate(db)
	suite.Require().NoError(err)

	suite.repo = deliveryrepo.NewGormDeliveryRepository(db, &mockAggregateTracker{})
}

func (suite *queryHandlerSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *queryHandlerSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE deliveries, route_legs, addresses, delivery_items RESTART IDENTITY CASCADE",
	).Error
	suite.Require().NoError(err)
}

func (suite *queryHandlerSuite) makeRoute() []delivery.RouteLeg {
	pickup, err := delivery.NewAddress(
		"Alameda Santos", "1100", "", "Jardim Paulista", "Sao Paulo", "SP", "01418-100",
		coordinate(-23.5707), coordinate(-46.6525),
	)
	suite.Require().NoError(err)
	origin, err := delivery.NewRouteLeg(1, pickup)
	suite.Require().NoError(err)

	dropoff, err := delivery.NewAddress(
		"Rua Augusta", "2690", "ap 12", "Cerqueira Cesar", "Sao Paulo", "SP", "01412-100",
		coordinate(-23.5614), coordinate(-46.6608),
	)
	suite.Require().NoError(err)
	destination, err := delivery.NewRouteLeg(2, dropoff)
	suite.Require().NoError(err)

	return []delivery.RouteLeg{origin, destination}
}

// storeDelivery seeds one delivery in the given status. The requester is
// fixed per call; driver and vehicle are assigned only for claimed and
// completed fixtures.
func (suite *queryHandlerSuite) storeDelivery(
	status delivery.Status,
	requesterID kernel.ID,
	driverID kernel.ID,
	transportType string,
) *delivery.Delivery {
	value, err := kernel.NewMoney(4250)
	suite.Require().NoError(err)

	item, err := delivery.NewItem("documents", 2.5, 1, "")
	suite.Require().NoError(err)

	aggregate, err := delivery.NewDelivery(
		uuid.New(), value, "signed contracts", "documents", transportType,
		nil, requesterID, suite.makeRoute(), []delivery.Item{item},
	)
	suite.Require().NoError(err)

	vehicleID := driverID + 1000

	switch status {
	case delivery.Pending:
		suite.Require().NoError(aggregate.ConfirmPayment())
	case delivery.Accepted:
		suite.Require().NoError(aggregate.ConfirmPayment())
		suite.Require().NoError(aggregate.Claim(driverID, vehicleID))
	case delivery.Completed:
		suite.Require().NoError(aggregate.ConfirmPayment())
		suite.Require().NoError(aggregate.Claim(driverID, vehicleID))
		suite.Require().NoError(aggregate.Complete(driverID, time.Now().UTC()))
	case delivery.Cancelled:
		suite.Require().NoError(aggregate.Cancel())
	case delivery.PaymentPending:
		// Initial status, nothing to do.
	}

	err = suite.repo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)

	return aggregate
}

func coordinate(value float64) *float64 {
	return &value
}

// mockAggregateTracker implements the tracker the repository expects.
// It's a no-op since query tests never publish domain events.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.ID, _ any) {
}
