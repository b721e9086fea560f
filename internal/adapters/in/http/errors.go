package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps application errors onto HTTP status codes. This is the single
// place where the error taxonomy meets the transport: not-found and conflict
// stay distinguishable, and role violations surface as forbidden.
func statusOf(err error) int {
	switch {
	case errors.Is(err, queries.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, commands.ErrNotADispatcher),
		errors.Is(err, commands.ErrNotAReceiver),
		errors.Is(err, commands.ErrNotOrderReceiver):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrObjectAlreadyExists),
		errors.Is(err, order.ErrAlreadyClaimed),
		errors.Is(err, order.ErrNotDelivering),
		errors.Is(err, order.ErrAlreadyCompleted):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders an application error. Internal failures never leak
// details to the client.
func writeError(ctx echo.Context, err error) error {
	code := statusOf(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal error"
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: message,
	})
}

// writeBadRequest renders a validation failure from request parsing or
// command construction.
func writeBadRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}
