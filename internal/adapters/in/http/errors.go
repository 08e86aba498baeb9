package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFromError maps domain and storage errors onto HTTP status codes.
// Unknown errors are treated as internal failures.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, delivery.ErrAlreadyClaimed),
		errors.Is(err, delivery.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, delivery.ErrNotHolder):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrStorage):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope for a failed operation.
func respondError(ctx echo.Context, err error) error {
	code := statusFromError(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal error"
	}
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

// respondBadRequest writes a 400 envelope for malformed input.
func respondBadRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}
