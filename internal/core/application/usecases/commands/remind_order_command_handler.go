package commands

import (
	"context"
	"fmt"

	"takeout/internal/core/domain/model/notification"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/errs"
)

// RemindOrderCommandHandler pushes a Reminder event for a paid, unfinished order.
type RemindOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

func NewRemindOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) RemindOrderCommandHandler {
	return RemindOrderCommandHandler{uowFactory: uowFactory, notifier: notifier}
}

func (h RemindOrderCommandHandler) Handle(ctx context.Context, cmd RemindOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return notFound(err, cmd.OrderID())
	}
	if !o.IsOwnedBy(cmd.UserID()) {
		return fmt.Errorf("%w: %d", ErrOrderNotFound, cmd.OrderID())
	}

	switch o.Status() {
	case order.ToBeConfirmed, order.Confirmed, order.DeliveryInProgress:
	default:
		return errs.NewInvalidTransitionError("remind", o.Status())
	}

	h.notifier.Broadcast(notification.ReminderEvent(o.ID(), o.Number()))
	return nil
}
