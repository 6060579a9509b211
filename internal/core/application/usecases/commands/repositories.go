// Package commands contains the operations that change order state.
// Every command is built by its constructor, validated by its handler, and applied
// inside a unit of work; transitions on one order id are serialized.
package commands

import (
	"context"
	"errors"

	"takeout/internal/core/ports"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrAddressNotFound = errors.New("address not found")
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	AddressBookRepoFactory interface {
		AddressBookRepository() ports.AddressBookRepository
	}

	// OrderUoW manages transactions that only touch orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CartUoW manages transactions that move data between orders and carts.
	CartUoW interface {
		TxManager
		OrderRepoFactory
		CartRepoFactory
	}

	CartUoWFactory interface {
		Create() CartUoW
	}

	// CheckoutUoW is used by order submission, which also reads the address book.
	//
	// Example:
	//   uow := factory.Create()
	//   entry, err := uow.AddressBookRepository().Get(ctx, id) // outside the transaction
	//   err = uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//   err = uow.OrderRepository().Add(ctx, o)
	//   removed, err := uow.CartRepository().RemoveLines(ctx, userID, ids)
	//   err = uow.Commit(ctx)
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		CartRepoFactory
		AddressBookRepoFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}
)

// OrderLocker serializes work on one order id inside the process.
// *keylock.Locker[int64] satisfies it.
type OrderLocker interface {
	Lock(ctx context.Context, id int64) (func(), error)
}
