package http

import (
	"context"
	"net/http"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/application/usecases/queries"
	"takeout/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// SearchOrders handles GET /api/admin/orders.
func (s *Server) SearchOrders(c echo.Context) error {
	p, err := bindListParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	query, err := queries.NewSearchOrdersQuery(queries.OrderFilter{
		Status: order.Status(p.status()),
		Number: p.number(),
		Phone:  p.phone(),
		Begin:  p.BeginTime,
		End:    p.EndTime,
	}, p.page(), p.pageSize())
	if err != nil {
		return s.fail(c, err)
	}
	page, err := s.h.Search.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderPage(page))
}

// OrderStatistics handles GET /api/admin/orders/statistics.
func (s *Server) OrderStatistics(c echo.Context) error {
	res, err := s.h.Statistics.Handle(c.Request().Context(), queries.NewGetOrderStatisticsQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, Statistics{
		ToBeConfirmed:      res.ToBeConfirmed,
		Confirmed:          res.Confirmed,
		DeliveryInProgress: res.DeliveryInProgress,
	})
}

// OrderDetail handles GET /api/admin/orders/{orderId}.
func (s *Server) OrderDetail(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	query, err := queries.NewGetOrderDetailQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.h.Detail.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrder(view))
}

// ConfirmOrder handles PUT /api/admin/orders/{orderId}/confirm.
func (s *Server) ConfirmOrder(c echo.Context) error {
	return s.transition(c, func(ctx context.Context, id int64) error {
		cmd, err := commands.NewConfirmOrderCommand(id)
		if err != nil {
			return err
		}
		return s.h.Confirm.Handle(ctx, cmd)
	})
}

// RejectOrder handles PUT /api/admin/orders/{orderId}/rejection.
func (s *Server) RejectOrder(c echo.Context) error {
	var req ReasonRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	return s.transition(c, func(ctx context.Context, id int64) error {
		cmd, err := commands.NewRejectOrderCommand(id, req.Reason)
		if err != nil {
			return err
		}
		return s.h.Reject.Handle(ctx, cmd)
	})
}

// AdminCancel handles PUT /api/admin/orders/{orderId}/cancel.
func (s *Server) AdminCancel(c echo.Context) error {
	var req ReasonRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	return s.transition(c, func(ctx context.Context, id int64) error {
		cmd, err := commands.NewAdminCancelCommand(id, req.Reason)
		if err != nil {
			return err
		}
		return s.h.AdminCancel.Handle(ctx, cmd)
	})
}

// DispatchOrder handles PUT /api/admin/orders/{orderId}/delivery.
func (s *Server) DispatchOrder(c echo.Context) error {
	return s.transition(c, func(ctx context.Context, id int64) error {
		cmd, err := commands.NewDispatchOrderCommand(id)
		if err != nil {
			return err
		}
		return s.h.Dispatch.Handle(ctx, cmd)
	})
}

// CompleteOrder handles PUT /api/admin/orders/{orderId}/complete.
func (s *Server) CompleteOrder(c echo.Context) error {
	return s.transition(c, func(ctx context.Context, id int64) error {
		cmd, err := commands.NewCompleteOrderCommand(id)
		if err != nil {
			return err
		}
		return s.h.Complete.Handle(ctx, cmd)
	})
}

func (s *Server) transition(c echo.Context, run func(ctx context.Context, id int64) error) error {
	id, err := orderIDParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := run(c.Request().Context(), id); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
