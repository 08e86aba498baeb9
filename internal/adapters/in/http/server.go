// Package http exposes the delivery operations over an echo server.
// Handlers stay thin: parse, build a command or query, delegate, map the
// error. Route names follow the public API of the service.
package http

import (
	"net/http"
	"strconv"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createHandler         commands.CreateDeliveryCommandHandler
	updateHandler         commands.UpdateDeliveryCommandHandler
	deleteHandler         commands.DeleteDeliveryCommandHandler
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler
	claimHandler          commands.ClaimDeliveryCommandHandler
	releaseHandler        commands.ReleaseDeliveryCommandHandler
	completeHandler       commands.CompleteDeliveryCommandHandler
	cancelHandler         commands.CancelDeliveryCommandHandler

	getDeliveryHandler queries.GetDeliveryQueryHandler
	getAllHandler      queries.GetAllDeliveriesQueryHandler
	getByUserHandler   queries.GetDeliveriesByUserQueryHandler
	getEligibleHandler queries.GetEligibleDeliveriesQueryHandler
}

// NewServer creates a new HTTP server with the required command and
// query handlers.
func NewServer(
	createHandler commands.CreateDeliveryCommandHandler,
	updateHandler commands.UpdateDeliveryCommandHandler,
	deleteHandler commands.DeleteDeliveryCommandHandler,
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler,
	claimHandler commands.ClaimDeliveryCommandHandler,
	releaseHandler commands.ReleaseDeliveryCommandHandler,
	completeHandler commands.CompleteDeliveryCommandHandler,
	cancelHandler commands.CancelDeliveryCommandHandler,
	getDeliveryHandler queries.GetDeliveryQueryHandler,
	getAllHandler queries.GetAllDeliveriesQueryHandler,
	getByUserHandler queries.GetDeliveriesByUserQueryHandler,
	getEligibleHandler queries.GetEligibleDeliveriesQueryHandler,
) *Server {
	return &Server{
		createHandler:         createHandler,
		updateHandler:         updateHandler,
		deleteHandler:         deleteHandler,
		confirmPaymentHandler: confirmPaymentHandler,
		claimHandler:          claimHandler,
		releaseHandler:        releaseHandler,
		completeHandler:       completeHandler,
		cancelHandler:         cancelHandler,
		getDeliveryHandler:    getDeliveryHandler,
		getAllHandler:         getAllHandler,
		getByUserHandler:      getByUserHandler,
		getEligibleHandler:    getEligibleHandler,
	}
}

// RegisterRoutes attaches every delivery endpoint to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	group := e.Group("/delivery")
	group.POST("/save", s.SaveDelivery)
	group.POST("/update", s.UpdateDelivery)
	group.GET("/getAll", s.GetAllDeliveries)
	group.GET("/eligible", s.GetEligibleDeliveries)
	group.GET("/user/:id", s.GetDeliveriesByUser)
	group.GET("/:id", s.GetDelivery)
	group.DELETE("/:id", s.DeleteDelivery)
	group.POST("/:id/pay", s.ConfirmPayment)
	group.POST("/:id/claim", s.ClaimDelivery)
	group.POST("/:id/release", s.ReleaseDelivery)
	group.POST("/:id/complete", s.CompleteDelivery)
	group.POST("/:id/cancel", s.CancelDelivery)
}

// SaveDelivery handles POST /delivery/save - registers a new delivery.
func (s *Server) SaveDelivery(ctx echo.Context) error {
	var request SaveDeliveryRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, err)
	}

	idempotencyKey, err := uuid.Parse(request.IdempotencyKey)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	requesterID, err := kernel.NewID(request.RequesterID)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	value, err := kernel.MoneyFromFloat(request.Value)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	cmd, err := commands.NewCreateDeliveryCommand(
		idempotencyKey,
		requesterID,
		value,
		request.Description,
		request.Category,
		request.TransportType,
		request.ScheduledTime,
		toLegInputs(request.Legs),
		toItemInputs(request.Items),
	)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	id, err := s.createHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, SaveDeliveryResponse{ID: id.Int64()})
}

// UpdateDelivery handles POST /delivery/update - amends pre-dispatch fields.
func (s *Server) UpdateDelivery(ctx echo.Context) error {
	var request UpdateDeliveryRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, err)
	}

	deliveryID, err := kernel.NewID(request.ID)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	var value *kernel.Money
	if request.Value != nil {
		money, moneyErr := kernel.MoneyFromFloat(*request.Value)
		if moneyErr != nil {
			return respondBadRequest(ctx, moneyErr)
		}
		value = &money
	}

	cmd, err := commands.NewUpdateDeliveryCommand(
		deliveryID,
		value,
		request.Description,
		request.Category,
		request.TransportType,
		request.ScheduledTime,
	)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	if err = s.updateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetDelivery handles GET /delivery/:id.
func (s *Server) GetDelivery(ctx echo.Context) error {
	deliveryID, err := parseID(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	query, err := queries.NewGetDeliveryQuery(deliveryID)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	response, err := s.getDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDeliveryPayload(response))
}

// GetAllDeliveries handles GET /delivery/getAll.
func (s *Server) GetAllDeliveries(ctx echo.Context) error {
	query := queries.NewGetAllDeliveriesQuery()

	responses, err := s.getAllHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDeliveryPayloads(responses))
}

// GetDeliveriesByUser handles GET /delivery/user/:id - the user's
// deliveries as requester or driver.
func (s *Server) GetDeliveriesByUser(ctx echo.Context) error {
	userID, err := parseID(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	query, err := queries.NewGetDeliveriesByUserQuery(userID)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	responses, err := s.getByUserHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDeliveryPayloads(responses))
}

// GetEligibleDeliveries handles GET /delivery/eligible?vehicleType= -
// the pending deliveries a vehicle of the given type can claim.
func (s *Server) GetEligibleDeliveries(ctx echo.Context) error {
	query := queries.NewGetEligibleDeliveriesQuery(ctx.QueryParam("vehicleType"))

	responses, err := s.getEligibleHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDeliveryPayloads(responses))
}

// ConfirmPayment handles POST /delivery/:id/pay.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	deliveryID, err := parseID(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	cmd, err := commands.NewConfirmPaymentCommand(deliveryID)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	if err = s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ClaimDelivery handles POST /delivery/:id/claim.
func (s *Server) ClaimDelivery(ctx echo.Context) error {
	deliveryID, err := parseID(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	var request ClaimRequest
	if err = ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, err)
	}

	driverID, err := kernel.NewID(request.DriverID)
	if err != nil {
		return respondBadRequest(ctx, err)
	}
	vehicleID, err := kernel.NewID(request.VehicleID)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	cmd, err := commands.NewClaimDeliveryCommand(deliveryID, driverID, vehicleID)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	if err = s.claimHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReleaseDelivery handles POST /delivery/:id/release.
func (s *Server) ReleaseDelivery(ctx echo.Context) error {
	deliveryID, err := parseID(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	var request DriverRequest
	if err = ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, err)
	}

	driverID, err := kernel.NewID(request.DriverID)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	cmd, err := commands.NewReleaseDeliveryCommand(deliveryID, driverID)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	if err = s.releaseHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /delivery/:id/complete.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	deliveryID, err := parseID(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	var request DriverRequest
	if err = ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, err)
	}

	driverID, err := kernel.NewID(request.DriverID)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	cmd, err := commands.NewCompleteDeliveryCommand(deliveryID, driverID)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	if err = s.completeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelDelivery handles POST /delivery/:id/cancel.
func (s *Server) CancelDelivery(ctx echo.Context) error {
	deliveryID, err := parseID(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	cmd, err := commands.NewCancelDeliveryCommand(deliveryID)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	if err = s.cancelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteDelivery handles DELETE /delivery/:id.
func (s *Server) DeleteDelivery(ctx echo.Context) error {
	deliveryID, err := parseID(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	cmd, err := commands.NewDeleteDeliveryCommand(deliveryID)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	if err = s.deleteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func parseID(raw string) (kernel.ID, error) {
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return kernel.NewID(value)
}
