// Package http exposes the order service over HTTP: customer and merchant
// routes, the payment webhook, the operator websocket and health endpoints.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/application/usecases/queries"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handler runs a command that yields no result.
type Handler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// ResultHandler runs a command or query that yields R.
type ResultHandler[C, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// Handlers are the use cases the routes delegate to.
type Handlers struct {
	SubmitOrder     ResultHandler[commands.SubmitOrderCommand, commands.SubmitOrderResult]
	InitiatePayment ResultHandler[commands.InitiatePaymentCommand, ports.Prepay]
	ConfirmPayment  Handler[commands.ConfirmPaymentCommand]
	UserCancel      Handler[commands.UserCancelCommand]
	Remind          Handler[commands.RemindOrderCommand]
	Repeat          ResultHandler[commands.RepeatOrderCommand, int]

	Confirm     Handler[commands.ConfirmOrderCommand]
	Reject      Handler[commands.RejectOrderCommand]
	AdminCancel Handler[commands.AdminCancelCommand]
	Dispatch    Handler[commands.DispatchOrderCommand]
	Complete    Handler[commands.CompleteOrderCommand]

	History    ResultHandler[queries.GetOrderHistoryQuery, queries.Page[queries.OrderView]]
	Search     ResultHandler[queries.SearchOrdersQuery, queries.Page[queries.OrderView]]
	Detail     ResultHandler[queries.GetOrderDetailQuery, queries.OrderView]
	Statistics ResultHandler[queries.GetOrderStatisticsQuery, queries.GetOrderStatisticsQueryResponse]
}

// Realtime accepts operator websocket connections.
type Realtime interface {
	Serve(w http.ResponseWriter, r *http.Request, sid string) error
}

type Options struct {
	Captures ports.PaymentWebhookParser
	Realtime Realtime
	Auth     *Authenticator
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

type Server struct {
	h        Handlers
	captures ports.PaymentWebhookParser
	realtime Realtime
	auth     *Authenticator
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

func NewServer(h Handlers, opts Options) (*Server, error) {
	if opts.Captures == nil || opts.Realtime == nil || opts.Auth == nil || opts.Metrics == nil {
		return nil, errors.New("captures, realtime, auth and metrics are required")
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Server{
		h:        h,
		captures: opts.Captures,
		realtime: opts.Realtime,
		auth:     opts.Auth,
		metrics:  opts.Metrics,
		gatherer: opts.Gatherer,
		logger:   opts.Logger.With("component", "HTTPServer"),
	}, nil
}

// Register mounts every route on e.
func (s *Server) Register(ctx context.Context, e *echo.Echo) error {
	doc, err := LoadDocument(ctx)
	if err != nil {
		return err
	}
	if err := registerSwagger(doc); err != nil {
		return err
	}
	validate, err := validateRequests(doc)
	if err != nil {
		return err
	}

	e.Use(middleware.Recover())
	e.Use(s.observe)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(s.gatherer)))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", validate)

	user := api.Group("/user", s.auth.Require(RoleUser))
	user.POST("/orders", s.SubmitOrder)
	user.GET("/orders", s.OrderHistory)
	user.POST("/orders/payment", s.InitiatePayment)
	user.GET("/orders/:orderId", s.OwnOrderDetail)
	user.PUT("/orders/:orderId/cancel", s.UserCancel)
	user.POST("/orders/:orderId/repeat", s.RepeatOrder)
	user.POST("/orders/:orderId/reminder", s.RemindOrder)

	admin := api.Group("/admin", s.auth.Require(RoleAdmin))
	admin.GET("/orders", s.SearchOrders)
	admin.GET("/orders/statistics", s.OrderStatistics)
	admin.GET("/orders/:orderId", s.OrderDetail)
	admin.PUT("/orders/:orderId/confirm", s.ConfirmOrder)
	admin.PUT("/orders/:orderId/rejection", s.RejectOrder)
	admin.PUT("/orders/:orderId/cancel", s.AdminCancel)
	admin.PUT("/orders/:orderId/delivery", s.DispatchOrder)
	admin.PUT("/orders/:orderId/complete", s.CompleteOrder)

	api.POST("/webhooks/payment", s.PaymentWebhook)

	e.GET("/ws/:sid", s.Realtime, s.auth.Require(RoleAdmin))
	return nil
}

// observe records request count and latency per route template.
func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
		}
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		s.metrics.HTTPLatencyMS.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
		return err
	}
}
