package commands

import (
	"context"
	"errors"
	"fmt"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/errs"
)

// mutateFunc inspects and changes a locked order. Returning changed=false skips
// the update; the transaction still commits.
type mutateFunc func(ctx context.Context, o *order.Order) (changed bool, err error)

// transition runs mutate on order id under the in-process lock and a row lock,
// then persists and commits. The returned order reflects the committed state.
func transition(
	ctx context.Context,
	locks OrderLocker,
	uowFactory OrderUoWFactory,
	id int64,
	mutate mutateFunc,
) (*order.Order, bool, error) {
	unlock, err := locks.Lock(ctx, id)
	if err != nil {
		return nil, false, err
	}
	defer unlock()

	uow := uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, false, notFound(err, id)
	}

	changed, err := mutate(ctx, o)
	if err != nil {
		return nil, false, err
	}

	if changed {
		if err = repo.Update(ctx, o); err != nil {
			return nil, false, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return o, changed, nil
}

// notFound maps a repository miss to ErrOrderNotFound and passes other errors through.
func notFound(err error, key any) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("%w: %v", ErrOrderNotFound, key)
	}
	return err
}

// lookupByNumber resolves an order number to an order without locking.
func lookupByNumber(ctx context.Context, repo ports.OrderRepository, number string) (*order.Order, error) {
	o, err := repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, notFound(err, number)
	}
	return o, nil
}
