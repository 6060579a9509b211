package cmd

import (
	"fmt"
	"log/slog"
	"time"

	httpin "takeout/internal/adapters/in/http"
	"takeout/internal/adapters/out/postgres"
	"takeout/internal/core/application/appservices"
	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/application/usecases/queries"
	"takeout/internal/core/domain/services"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/keylock"

	"gorm.io/gorm"
)

// Dependencies are the outbound adapters built by main.
type Dependencies struct {
	Gateway   ports.PaymentGateway
	Geo       ports.GeoLookup
	Timeouts  ports.TimeoutScheduler
	Notifier  ports.Notifier
	Publisher ports.EventPublisher
	Logger    *slog.Logger
}

// CompositionRoot wires use cases to adapters. Every transition handler shares
// one per-order lock table so they serialize against each other.
type CompositionRoot struct {
	gormDB         *gorm.DB
	uowFactory     *postgres.GormUnitOfWorkFactory
	locks          *keylock.Locker[int64]
	numbers        *services.OrderNumberGenerator
	addresses      *appservices.AddressValidator
	compensation   *appservices.CompensationEngine
	deps           Dependencies
	paymentTimeout time.Duration
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, deps Dependencies) (*CompositionRoot, error) {
	addresses, err := appservices.NewAddressValidator(deps.Geo, cfg.ShopAddress, cfg.DeliveryMaxDistanceMeters)
	if err != nil {
		return nil, fmt.Errorf("address validator: %w", err)
	}
	compensation, err := appservices.NewCompensationEngine(deps.Gateway, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("compensation engine: %w", err)
	}

	return &CompositionRoot{
		gormDB:         gormDB,
		uowFactory:     postgres.NewGormUnitOfWorkFactory(gormDB),
		locks:          keylock.New[int64](),
		numbers:        services.NewOrderNumberGenerator(time.Now),
		addresses:      addresses,
		compensation:   compensation,
		deps:           deps,
		paymentTimeout: cfg.PaymentTimeout,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) cartUoWFactory() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) checkoutUoWFactory() commands.CheckoutUoWFactory {
	return FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(
		c.checkoutUoWFactory(), c.addresses, c.numbers, c.deps.Timeouts, c.paymentTimeout,
	)
}

func (c *CompositionRoot) CreateInitiatePaymentCommandHandler() commands.InitiatePaymentCommandHandler {
	return commands.NewInitiatePaymentCommandHandler(c.orderUoWFactory(), c.deps.Gateway)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.orderUoWFactory(), c.locks, c.deps.Notifier, c.compensation)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.orderUoWFactory(), c.locks)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	return commands.NewRejectOrderCommandHandler(c.orderUoWFactory(), c.locks, c.compensation)
}

func (c *CompositionRoot) CreateUserCancelCommandHandler() commands.UserCancelCommandHandler {
	return commands.NewUserCancelCommandHandler(c.orderUoWFactory(), c.locks, c.compensation)
}

func (c *CompositionRoot) CreateAdminCancelCommandHandler() commands.AdminCancelCommandHandler {
	return commands.NewAdminCancelCommandHandler(c.orderUoWFactory(), c.locks, c.compensation)
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(c.orderUoWFactory(), c.locks, c.deps.Publisher, c.deps.Logger)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.orderUoWFactory(), c.locks)
}

func (c *CompositionRoot) CreateTimeoutCancelCommandHandler() commands.TimeoutCancelCommandHandler {
	return commands.NewTimeoutCancelCommandHandler(c.orderUoWFactory(), c.locks)
}

func (c *CompositionRoot) CreateRemindOrderCommandHandler() commands.RemindOrderCommandHandler {
	return commands.NewRemindOrderCommandHandler(c.orderUoWFactory(), c.deps.Notifier)
}

func (c *CompositionRoot) CreateRepeatOrderCommandHandler() commands.RepeatOrderCommandHandler {
	return commands.NewRepeatOrderCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSearchOrdersQueryHandler() queries.SearchOrdersQueryHandler {
	return queries.NewSearchOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderDetailQueryHandler() queries.GetOrderDetailQueryHandler {
	return queries.NewGetOrderDetailQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatisticsQueryHandler() queries.GetOrderStatisticsQueryHandler {
	return queries.NewGetOrderStatisticsQueryHandler(c.gormDB)
}

// HTTPHandlers collects every use case the HTTP adapter routes to.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		SubmitOrder:     c.CreateSubmitOrderCommandHandler(),
		InitiatePayment: c.CreateInitiatePaymentCommandHandler(),
		ConfirmPayment:  c.CreateConfirmPaymentCommandHandler(),
		UserCancel:      c.CreateUserCancelCommandHandler(),
		Remind:          c.CreateRemindOrderCommandHandler(),
		Repeat:          c.CreateRepeatOrderCommandHandler(),
		Confirm:         c.CreateConfirmOrderCommandHandler(),
		Reject:          c.CreateRejectOrderCommandHandler(),
		AdminCancel:     c.CreateAdminCancelCommandHandler(),
		Dispatch:        c.CreateDispatchOrderCommandHandler(),
		Complete:        c.CreateCompleteOrderCommandHandler(),
		History:         c.CreateGetOrderHistoryQueryHandler(),
		Search:          c.CreateSearchOrdersQueryHandler(),
		Detail:          c.CreateGetOrderDetailQueryHandler(),
		Statistics:      c.CreateGetOrderStatisticsQueryHandler(),
	}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}
