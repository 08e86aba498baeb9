package queries_test

import (
	"context"
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
)

type GetDeliveriesByUserQueryHandlerTestSuite struct {
	queryHandlerSuite
	handler queries.GetDeliveriesByUserQueryHandler
}

func (suite *GetDeliveriesByUserQueryHandlerTestSuite) SetupSuite() {
	suite.queryHandlerSuite.SetupSuite()
	suite.handler = queries.NewGetDeliveriesByUserQueryHandler(suite.db)
}

func (suite *GetDeliveriesByUserQueryHandlerTestSuite) TestHandle_MatchesRequesterAndDriver() {
	asRequester := suite.storeDelivery(delivery.Pending, kernel.ID(7), 0, "moto")
	asDriver := suite.storeDelivery(delivery.Accepted, kernel.ID(9), kernel.ID(7), "moto")
	suite.storeDelivery(delivery.Pending, kernel.ID(8), 0, "moto")

	query, err := queries.NewGetDeliveriesByUserQuery(kernel.ID(7))
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	resultIDs := make(map[kernel.ID]bool)
	for _, r := range result {
		resultIDs[r.ID] = true
	}
	suite.True(resultIDs[asRequester.ID()])
	suite.True(resultIDs[asDriver.ID()])
}

func (suite *GetDeliveriesByUserQueryHandlerTestSuite) TestHandle_UserWithoutDeliveries_ReturnsEmptySlice() {
	suite.storeDelivery(delivery.Pending, kernel.ID(7), 0, "moto")

	query, err := queries.NewGetDeliveriesByUserQuery(kernel.ID(999))
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetDeliveriesByUserQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.GetDeliveriesByUserQuery{})

	suite.Require().Error(err)
	suite.ErrorIs(err, queries.ErrGetDeliveriesByUserQueryIsNotConstructed)
}

func TestGetDeliveriesByUserQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetDeliveriesByUserQueryHandlerTestSuite))
}
