package http

import (
	"errors"
	"io"
	"net/http"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const maxWebhookBody = 64 << 10

// PaymentWebhook handles POST /api/webhooks/payment.
//
// Any 2xx tells the gateway to stop redelivering. A callback for an unknown order
// is logged and acknowledged. Transient failures answer 5xx or 409 so the gateway
// tries again; that includes a failed refund of a capture on a cancelled order.
func (s *Server) PaymentWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return badRequest(c, "unreadable body")
	}

	capture, err := s.captures.ParseCapture(payload, c.Request().Header.Get("Stripe-Signature"))
	if errors.Is(err, ports.ErrEventIgnored) {
		return c.NoContent(http.StatusOK)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Rejected payment webhook", "error", err)
		return badRequest(c, "invalid webhook")
	}

	cmd, err := commands.NewConfirmPaymentCommand(capture.OrderNumber, capture.TransactionID, capture.Amount)
	if err != nil {
		s.logger.WarnContext(ctx, "Malformed payment capture", "order_number", capture.OrderNumber, "error", err)
		return badRequest(c, "malformed capture")
	}

	err = s.h.ConfirmPayment.Handle(ctx, cmd)
	switch {
	case err == nil:
		return c.NoContent(http.StatusOK)
	case errors.Is(err, commands.ErrOrderNotFound):
		s.logger.WarnContext(ctx, "Payment for unknown order", "order_number", capture.OrderNumber,
			"transaction_id", capture.TransactionID)
		return c.NoContent(http.StatusOK)
	default:
		return s.fail(c, err)
	}
}

// Realtime handles GET /ws/{sid}.
func (s *Server) Realtime(c echo.Context) error {
	if err := s.realtime.Serve(c.Response(), c.Request(), c.Param("sid")); err != nil {
		s.logger.WarnContext(c.Request().Context(), "Websocket upgrade failed", "error", err)
	}
	return nil
}
