package commands

import (
	"context"
	"log/slog"
	"time"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"

	"github.com/google/uuid"
)

// DispatchOrderCommandHandler starts delivery and emits an OrderDispatched event
// after commit. A failed publish is logged; the transition stays committed.
type DispatchOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      OrderLocker
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewDispatchOrderCommandHandler(
	uowFactory OrderUoWFactory,
	locks OrderLocker,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
		logger:     logger.With("component", "DispatchOrderCommandHandler"),
	}
}

func (h DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, _, err := transition(ctx, h.locks, h.uowFactory, cmd.OrderID(),
		func(_ context.Context, o *order.Order) (bool, error) {
			return true, o.Dispatch()
		})
	if err != nil {
		return err
	}

	event := ports.OrderDispatched{
		EventID:      uuid.NewString(),
		OrderID:      o.ID(),
		Number:       o.Number(),
		UserID:       o.UserID(),
		Consignee:    o.Delivery().Consignee(),
		Phone:        o.Delivery().Phone(),
		Address:      o.Delivery().Address(),
		Amount:       o.Amount().String(),
		DispatchedAt: time.Now().UTC(),
	}
	if err = h.publisher.PublishOrderDispatched(ctx, event); err != nil {
		h.logger.Error("failed to publish dispatched event", "order_id", o.ID(), "event_id", event.EventID, "error", err)
	}
	return nil
}
