package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"takeout/internal/core/application/appservices"
	"takeout/internal/core/domain/model/cart"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/domain/services"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// AddressChecker is satisfied by *appservices.AddressValidator.
type AddressChecker interface {
	Validate(ctx context.Context, address string) (appservices.AddressCheck, error)
}

// NumberGenerator is satisfied by *services.OrderNumberGenerator.
type NumberGenerator interface {
	Next() string
}

type SubmitOrderResult struct {
	ID        int64
	Number    string
	Amount    kernel.Money
	CreatedAt time.Time
}

// SubmitOrderCommandHandler creates an order from the user's cart.
//
// The address range check and cart consolidation run concurrently and before the
// transaction starts, so no lock or transaction is held across the geocoding call.
// The order insert, cart cleanup and timeout scheduling then share one unit of
// work: if the timeout cannot be scheduled the order is rolled back. A cart line
// already consumed by a concurrent submission rolls the order back too.
type SubmitOrderCommandHandler struct {
	uowFactory     CheckoutUoWFactory
	addresses      AddressChecker
	consolidator   services.CartConsolidator
	numbers        NumberGenerator
	scheduler      ports.TimeoutScheduler
	paymentTimeout time.Duration
}

func NewSubmitOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	addresses AddressChecker,
	numbers NumberGenerator,
	scheduler ports.TimeoutScheduler,
	paymentTimeout time.Duration,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory:     uowFactory,
		addresses:      addresses,
		consolidator:   services.NewCartConsolidator(),
		numbers:        numbers,
		scheduler:      scheduler,
		paymentTimeout: paymentTimeout,
	}
}

func (h SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (SubmitOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitOrderResult{}, err
	}

	uow := h.uowFactory.Create()

	var (
		entry ports.AddressBookEntry
		lines []cart.Line
		items []order.LineItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e, err := uow.AddressBookRepository().Get(gctx, cmd.AddressBookID())
		if errors.Is(err, errs.ErrObjectNotFound) || (err == nil && e.UserID != cmd.UserID()) {
			return fmt.Errorf("%w: %d", ErrAddressNotFound, cmd.AddressBookID())
		}
		if err != nil {
			return err
		}
		if _, err = h.addresses.Validate(gctx, e.FullAddress()); err != nil {
			return err
		}
		entry = e
		return nil
	})
	g.Go(func() error {
		ls, err := uow.CartRepository().ListByUser(gctx, cmd.UserID())
		if err != nil {
			return err
		}
		its, err := h.consolidator.Consolidate(ls)
		if err != nil {
			return err
		}
		lines, items = ls, its
		return nil
	})
	if err := g.Wait(); err != nil {
		return SubmitOrderResult{}, err
	}

	delivery, err := order.NewDelivery(entry.ID, entry.Consignee, entry.Phone, entry.FullAddress())
	if err != nil {
		return SubmitOrderResult{}, err
	}

	now := time.Now()
	o, err := order.NewOrder(h.numbers.Next(), cmd.UserID(), delivery, items, cmd.Remark(), now)
	if err != nil {
		return SubmitOrderResult{}, err
	}

	if err = uow.Begin(ctx); err != nil {
		return SubmitOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return SubmitOrderResult{}, err
	}

	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ID())
	}
	removed, err := uow.CartRepository().RemoveLines(ctx, cmd.UserID(), ids)
	if err != nil {
		return SubmitOrderResult{}, err
	}
	if removed != int64(len(ids)) {
		return SubmitOrderResult{}, fmt.Errorf("%w: cart of user %d was checked out concurrently",
			ports.ErrConcurrentModification, cmd.UserID())
	}

	task := ports.TimeoutTask{OrderID: o.ID(), FireAt: now.Add(h.paymentTimeout)}
	if err = h.scheduler.Schedule(ctx, task); err != nil {
		return SubmitOrderResult{}, fmt.Errorf("schedule payment timeout: %w", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return SubmitOrderResult{}, err
	}

	return SubmitOrderResult{
		ID:        o.ID(),
		Number:    o.Number(),
		Amount:    o.Amount(),
		CreatedAt: o.CreatedAt(),
	}, nil
}
