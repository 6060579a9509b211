package commands_test

import (
	"fmt"
	"testing"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.ParseMoney(s)
	require.NoError(t, err)
	return m
}

// newPendingOrder builds an unpaid order of 2 x 12.50 for userID.
func newPendingOrder(t *testing.T, userID int64, number string) *order.Order {
	t.Helper()
	line, err := order.NewLineItem("Kung Pao Chicken", "", 7, 0, "", 2, money(t, "12.50"))
	require.NoError(t, err)
	d, err := order.NewDelivery(3, "Li Lei", "13800000000", "Beijing Haidian 1 Main St")
	require.NoError(t, err)
	o, err := order.NewOrder(number, userID, d, []order.LineItem{line}, "", time.Now())
	require.NoError(t, err)
	return o
}

// storedOrder returns a persisted order with the given id moved to status by the
// regular transitions.
func storedOrder(t *testing.T, id, userID int64, status order.Status) *order.Order {
	t.Helper()
	o := newPendingOrder(t, userID, fmt.Sprintf("20240101120000%06d", id))
	require.NoError(t, o.AssignID(id))
	advance(t, o, status)
	return o
}

func advance(t *testing.T, o *order.Order, status order.Status) {
	t.Helper()
	now := time.Now()
	steps := map[order.Status]func() error{
		order.ToBeConfirmed: func() error {
			_, err := o.MarkPaid("pi_"+o.Number(), o.Amount(), now)
			return err
		},
		order.Confirmed:          o.Confirm,
		order.DeliveryInProgress: o.Dispatch,
		order.Completed:          func() error { return o.Complete(now) },
	}
	path := []order.Status{order.ToBeConfirmed, order.Confirmed, order.DeliveryInProgress, order.Completed}

	if status == order.Cancelled {
		require.NoError(t, o.AdminCancel("closed", now))
		return
	}
	for _, s := range path {
		if o.Status() == status {
			return
		}
		require.NoError(t, steps[s]())
	}
	require.Equal(t, status, o.Status())
}
