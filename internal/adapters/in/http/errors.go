package http

import (
	"errors"
	"net/http"

	"takeout/internal/core/application/appservices"
	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/domain/services"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusOf maps a failure to the HTTP status and the message shown to the caller.
// Anything unrecognized is an internal error and its text is not exposed.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, commands.ErrOrderNotFound),
		errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "order not found"
	case errors.Is(err, commands.ErrAddressNotFound):
		return http.StatusNotFound, "address not found"
	case errors.Is(err, services.ErrEmptyCart):
		return http.StatusUnprocessableEntity, "cart is empty"
	case errors.Is(err, appservices.ErrAddressUnresolvable):
		return http.StatusUnprocessableEntity, "address cannot be resolved"
	case errors.Is(err, appservices.ErrRouteUnavailable):
		return http.StatusUnprocessableEntity, "no delivery route to the address"
	case errors.Is(err, appservices.ErrOutOfRange):
		return http.StatusUnprocessableEntity, "address is out of delivery range"
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict, err.Error()
	case errors.Is(err, ports.ErrAlreadyPaid):
		return http.StatusConflict, "order is already paid"
	case errors.Is(err, ports.ErrConcurrentModification):
		return http.StatusConflict, "order was modified concurrently, retry"
	case errors.Is(err, appservices.ErrRefundFailed):
		return http.StatusBadGateway, "refund failed, order left unchanged"
	case errors.Is(err, ports.ErrGateway):
		return http.StatusBadGateway, "upstream service failed"
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (s *Server) fail(c echo.Context, err error) error {
	code, msg := statusOf(err)
	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
	}
	return c.JSON(code, Error{Code: code, Message: msg})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: msg})
}
