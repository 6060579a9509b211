package commands_test

import (
	"context"
	"sync"

	"takeout/internal/core/application/appservices"
	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/domain/model/cart"
	"takeout/internal/core/domain/model/notification"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/keylock"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) ListByUser(ctx context.Context, userID int64) ([]cart.Line, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.Line), args.Error(1)
}

func (m *MockCartRepository) AddLines(ctx context.Context, lines []cart.Line) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

func (m *MockCartRepository) RemoveLines(ctx context.Context, userID int64, ids []int64) (int64, error) {
	args := m.Called(ctx, userID, ids)
	return args.Get(0).(int64), args.Error(1)
}

type MockAddressBookRepository struct{ mock.Mock }

func (m *MockAddressBookRepository) Get(ctx context.Context, id int64) (ports.AddressBookEntry, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.AddressBookEntry), args.Error(1)
}

// MockUoW satisfies every typed unit of work in the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CartRepository() ports.CartRepository {
	args := m.Called()
	return args.Get(0).(ports.CartRepository)
}

func (m *MockUoW) AddressBookRepository() ports.AddressBookRepository {
	args := m.Called()
	return args.Get(0).(ports.AddressBookRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockCartUoWFactory struct{ mock.Mock }

func (m *MockCartUoWFactory) Create() commands.CartUoW {
	args := m.Called()
	return args.Get(0).(commands.CartUoW)
}

type MockAddressChecker struct{ mock.Mock }

func (m *MockAddressChecker) Validate(ctx context.Context, address string) (appservices.AddressCheck, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(appservices.AddressCheck), args.Error(1)
}

type MockTimeoutScheduler struct{ mock.Mock }

func (m *MockTimeoutScheduler) Schedule(ctx context.Context, task ports.TimeoutTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreatePrepay(ctx context.Context, req ports.PrepayRequest) (ports.Prepay, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.Prepay), args.Error(1)
}

func (m *MockPaymentGateway) Refund(ctx context.Context, req ports.RefundRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type MockRefunder struct{ mock.Mock }

func (m *MockRefunder) Refund(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishOrderDispatched(ctx context.Context, event ports.OrderDispatched) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// recordingNotifier keeps every broadcast event.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notification.Event
}

func (n *recordingNotifier) Broadcast(event notification.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Events() []notification.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification.Event(nil), n.events...)
}

type fixedNumbers string

func (f fixedNumbers) Next() string { return string(f) }

func newLocks() *keylock.Locker[int64] {
	return keylock.New[int64]()
}
