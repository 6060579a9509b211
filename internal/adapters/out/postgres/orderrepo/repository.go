package orderrepo

import (
	"context"
	"errors"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// mutableColumns are the only columns Update writes.
var mutableColumns = []string{
	"status",
	"pay_status",
	"paid_amount",
	"transaction_id",
	"checkout_time",
	"cancel_time",
	"delivery_time",
	"cancel_reason",
	"rejection_reason",
	"version",
}

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order with its lines and assigns the generated id.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return aggregate.AssignID(dto.ID)
}

// Update writes the lifecycle columns and bumps the version. The row must
// still carry the version the aggregate was loaded with.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", aggregate.ID(), aggregate.Version()).
		Select(mutableColumns).
		Omit(clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrConcurrentModification
	}

	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	return r.first(r.db.WithContext(ctx), "id = ?", id)
}

// GetForUpdate takes a row lock held until the surrounding transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id)
}

func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	return r.first(r.db.WithContext(ctx), "number = ?", number)
}

func (r *GormOrderRepository) first(db *gorm.DB, query string, key any) (*order.Order, error) {
	var dto OrderDTO
	err := db.Preload("Lines", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id")
	}).First(&dto, query, key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", key)
		}
		return nil, err
	}

	return toDomain(dto)
}
