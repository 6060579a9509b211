package commands_test

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"takeout/internal/core/application/appservices"
	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/domain/model/cart"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

// memoryStore is a transactional in-memory backend for scenario tests.
// Writes are buffered per unit of work and applied atomically on Commit; updates
// carry the same optimistic version check as the postgres repository.
type memoryStore struct {
	mu        sync.Mutex
	orders    map[int64]*order.Order
	carts     map[int64][]cart.Line
	addresses map[int64]ports.AddressBookEntry
	nextOrder atomic.Int64
	nextLine  atomic.Int64
	commits   atomic.Int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		orders:    map[int64]*order.Order{},
		carts:     map[int64][]cart.Line{},
		addresses: map[int64]ports.AddressBookEntry{},
	}
}

func (s *memoryStore) order(t *testing.T, id int64) *order.Order {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	require.True(t, ok, "order %d not stored", id)
	return cloneOrder(o, o.Version())
}

func (s *memoryStore) cart(userID int64) []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.carts[userID])
}

func (s *memoryStore) putCartLine(t *testing.T, userID int64, name string, dishID int64, qty int, price string) {
	t.Helper()
	p, err := kernel.ParseMoney(price)
	require.NoError(t, err)
	l, err := cart.RestoreLine(s.nextLine.Add(1), userID, name, "", dishID, 0, "", qty, p, time.Now())
	require.NoError(t, err)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[userID] = append(s.carts[userID], l)
}

func (s *memoryStore) putAddress(e ports.AddressBookEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addresses[e.ID] = e
}

// putOrder stores o directly, bypassing any unit of work.
func (s *memoryStore) putOrder(t *testing.T, o *order.Order) {
	t.Helper()
	if o.ID() == 0 {
		require.NoError(t, o.AssignID(s.nextOrder.Add(1)))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID()] = cloneOrder(o, o.Version())
}

func (s *memoryStore) OrderFactory() commands.OrderUoWFactory {
	return orderUoWFactory(func() commands.OrderUoW { return &memoryUoW{store: s} })
}

func (s *memoryStore) CartFactory() commands.CartUoWFactory {
	return cartUoWFactory(func() commands.CartUoW { return &memoryUoW{store: s} })
}

func (s *memoryStore) CheckoutFactory() commands.CheckoutUoWFactory {
	return checkoutUoWFactory(func() commands.CheckoutUoW { return &memoryUoW{store: s} })
}

type (
	orderUoWFactory    func() commands.OrderUoW
	cartUoWFactory     func() commands.CartUoW
	checkoutUoWFactory func() commands.CheckoutUoW
)

func (f orderUoWFactory) Create() commands.OrderUoW       { return f() }
func (f cartUoWFactory) Create() commands.CartUoW         { return f() }
func (f checkoutUoWFactory) Create() commands.CheckoutUoW { return f() }

type memoryUoW struct {
	store   *memoryStore
	inTx    bool
	pending []func() error
}

func (u *memoryUoW) Begin(context.Context) error {
	if u.inTx {
		return errors.New("transaction already started")
	}
	u.inTx = true
	return nil
}

func (u *memoryUoW) Commit(context.Context) error {
	if !u.inTx {
		return errors.New("no transaction")
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	orders, carts := maps.Clone(u.store.orders), maps.Clone(u.store.carts)
	for _, apply := range u.pending {
		if err := apply(); err != nil {
			u.store.orders, u.store.carts = orders, carts
			u.pending, u.inTx = nil, false
			return err
		}
	}
	u.pending, u.inTx = nil, false
	u.store.commits.Add(1)
	return nil
}

func (u *memoryUoW) Rollback(context.Context) error {
	u.pending, u.inTx = nil, false
	return nil
}

func (u *memoryUoW) OrderRepository() ports.OrderRepository {
	return memoryOrders{u: u}
}

func (u *memoryUoW) CartRepository() ports.CartRepository {
	return memoryCarts{u: u}
}

func (u *memoryUoW) AddressBookRepository() ports.AddressBookRepository {
	return memoryAddresses{s: u.store}
}

// write runs apply now outside a transaction or queues it until Commit.
func (u *memoryUoW) write(apply func() error) error {
	if u.inTx {
		u.pending = append(u.pending, apply)
		return nil
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	return apply()
}

type memoryOrders struct{ u *memoryUoW }

func (r memoryOrders) Add(_ context.Context, o *order.Order) error {
	if err := o.AssignID(r.u.store.nextOrder.Add(1)); err != nil {
		return err
	}
	snapshot := cloneOrder(o, 0)
	return r.u.write(func() error {
		for _, existing := range r.u.store.orders {
			if existing.Number() == snapshot.Number() {
				return fmt.Errorf("duplicate order number %s", snapshot.Number())
			}
		}
		r.u.store.orders[snapshot.ID()] = snapshot
		return nil
	})
}

func (r memoryOrders) Update(_ context.Context, o *order.Order) error {
	snapshot := cloneOrder(o, o.Version()+1)
	return r.u.write(func() error {
		current, ok := r.u.store.orders[o.ID()]
		if !ok || current.Version() != o.Version() {
			return ports.ErrConcurrentModification
		}
		r.u.store.orders[o.ID()] = snapshot
		return nil
	})
}

func (r memoryOrders) Get(_ context.Context, id int64) (*order.Order, error) {
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	o, ok := r.u.store.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return cloneOrder(o, o.Version()), nil
}

func (r memoryOrders) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r memoryOrders) GetByNumber(_ context.Context, number string) (*order.Order, error) {
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	for _, o := range r.u.store.orders {
		if o.Number() == number {
			return cloneOrder(o, o.Version()), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order", number)
}

type memoryCarts struct{ u *memoryUoW }

func (r memoryCarts) ListByUser(_ context.Context, userID int64) ([]cart.Line, error) {
	return r.u.store.cart(userID), nil
}

func (r memoryCarts) AddLines(_ context.Context, lines []cart.Line) error {
	stored := make([]cart.Line, 0, len(lines))
	for _, l := range lines {
		restored, err := cart.RestoreLine(r.u.store.nextLine.Add(1), l.UserID(), l.Name(), l.Image(),
			l.DishID(), l.SetmealID(), l.Flavor(), l.Quantity(), l.UnitPrice(), l.CreatedAt())
		if err != nil {
			return err
		}
		stored = append(stored, restored)
	}
	return r.u.write(func() error {
		for _, l := range stored {
			r.u.store.carts[l.UserID()] = append(r.u.store.carts[l.UserID()], l)
		}
		return nil
	})
}

// RemoveLines counts the lines present now. Inside a transaction the delete is
// re-checked on Commit, where lines taken by another commit abort it.
func (r memoryCarts) RemoveLines(_ context.Context, userID int64, ids []int64) (int64, error) {
	r.u.store.mu.Lock()
	present := int64(countLines(r.u.store.carts[userID], ids))
	r.u.store.mu.Unlock()

	err := r.u.write(func() error {
		if int64(countLines(r.u.store.carts[userID], ids)) != present {
			return ports.ErrConcurrentModification
		}
		r.u.store.carts[userID] = slices.DeleteFunc(slices.Clone(r.u.store.carts[userID]), func(l cart.Line) bool {
			return slices.Contains(ids, l.ID())
		})
		return nil
	})
	return present, err
}

func countLines(lines []cart.Line, ids []int64) int {
	n := 0
	for _, l := range lines {
		if slices.Contains(ids, l.ID()) {
			n++
		}
	}
	return n
}

type memoryAddresses struct{ s *memoryStore }

func (r memoryAddresses) Get(_ context.Context, id int64) (ports.AddressBookEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.addresses[id]
	if !ok {
		return ports.AddressBookEntry{}, errs.NewObjectNotFoundError("address book entry", id)
	}
	return e, nil
}

func cloneOrder(o *order.Order, version int64) *order.Order {
	c, err := order.RestoreOrder(order.RestoreParams{
		ID:              o.ID(),
		Number:          o.Number(),
		UserID:          o.UserID(),
		Status:          o.Status(),
		PayStatus:       o.PayStatus(),
		Amount:          o.Amount(),
		PaidAmount:      o.PaidAmount(),
		TransactionID:   o.TransactionID(),
		Delivery:        o.Delivery(),
		Lines:           o.Lines(),
		Remark:          o.Remark(),
		CreatedAt:       o.CreatedAt(),
		CheckoutAt:      o.CheckoutAt(),
		CancelledAt:     o.CancelledAt(),
		DeliveredAt:     o.DeliveredAt(),
		CancelReason:    o.CancelReason(),
		RejectionReason: o.RejectionReason(),
		Version:         version,
	})
	if err != nil {
		panic(err)
	}
	return c
}

// memoryScheduler records scheduled payment timeouts.
type memoryScheduler struct {
	mu    sync.Mutex
	tasks []ports.TimeoutTask
	err   error
}

func (s *memoryScheduler) Schedule(_ context.Context, task ports.TimeoutTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.tasks = append(s.tasks, task)
	return nil
}

func (s *memoryScheduler) Tasks() []ports.TimeoutTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// countingRefunder counts refunds of paid orders and can be told to fail.
type countingRefunder struct {
	calls atomic.Int64
	fail  atomic.Bool
}

func (r *countingRefunder) Refund(_ context.Context, o *order.Order) error {
	if !o.NeedsRefund() {
		return nil
	}
	if r.fail.Load() {
		return errors.New("gateway unavailable")
	}
	r.calls.Add(1)
	return nil
}

// staticAddresses accepts every address with a fixed distance.
type staticAddresses struct{ err error }

func (a staticAddresses) Validate(context.Context, string) (appservices.AddressCheck, error) {
	return appservices.AddressCheck{DistanceMeters: 1200}, a.err
}
