package http

import (
	"net/http"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/application/usecases/queries"
	"takeout/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// SubmitOrder handles POST /api/user/orders.
func (s *Server) SubmitOrder(c echo.Context) error {
	var req SubmitOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewSubmitOrderCommand(identityOf(c).UserID, req.AddressBookID, req.Remark)
	if err != nil {
		return s.fail(c, err)
	}
	res, err := s.h.SubmitOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, SubmitOrderResponse{
		ID:        res.ID,
		Number:    res.Number,
		Amount:    res.Amount.String(),
		OrderTime: res.CreatedAt,
	})
}

// OrderHistory handles GET /api/user/orders.
func (s *Server) OrderHistory(c echo.Context) error {
	p, err := bindListParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	query, err := queries.NewGetOrderHistoryQuery(identityOf(c).UserID, order.Status(p.status()), p.page(), p.pageSize())
	if err != nil {
		return s.fail(c, err)
	}
	page, err := s.h.History.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderPage(page))
}

// InitiatePayment handles POST /api/user/orders/payment.
func (s *Server) InitiatePayment(c echo.Context) error {
	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewInitiatePaymentCommand(identityOf(c).UserID, req.OrderNumber)
	if err != nil {
		return s.fail(c, err)
	}
	prepay, err := s.h.InitiatePayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, PaymentResponse{Token: prepay.Token, TransactionID: prepay.TransactionID})
}

// OwnOrderDetail handles GET /api/user/orders/{orderId}.
func (s *Server) OwnOrderDetail(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	query, err := queries.NewGetOwnOrderDetailQuery(identityOf(c).UserID, id)
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.h.Detail.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrder(view))
}

// UserCancel handles PUT /api/user/orders/{orderId}/cancel.
func (s *Server) UserCancel(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewUserCancelCommand(identityOf(c).UserID, id)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.UserCancel.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RepeatOrder handles POST /api/user/orders/{orderId}/repeat.
func (s *Server) RepeatOrder(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewRepeatOrderCommand(identityOf(c).UserID, id)
	if err != nil {
		return s.fail(c, err)
	}
	added, err := s.h.Repeat.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, RepeatResponse{Added: added})
}

// RemindOrder handles POST /api/user/orders/{orderId}/reminder.
func (s *Server) RemindOrder(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewRemindOrderCommand(identityOf(c).UserID, id)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.Remind.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
