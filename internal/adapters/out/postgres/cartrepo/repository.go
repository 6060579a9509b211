package cartrepo

import (
	"context"

	"takeout/internal/core/domain/model/cart"

	"gorm.io/gorm"
)

// GormCartRepository implements ports.CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// ListByUser returns the user's lines in insertion order.
func (r *GormCartRepository) ListByUser(ctx context.Context, userID int64) ([]cart.Line, error) {
	var dtos []CartLineDTO
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	lines := make([]cart.Line, 0, len(dtos))
	for _, dto := range dtos {
		l, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}

func (r *GormCartRepository) AddLines(ctx context.Context, lines []cart.Line) error {
	if len(lines) == 0 {
		return nil
	}

	dtos := make([]CartLineDTO, 0, len(lines))
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
		dto := fromDomain(l)
		dto.ID = 0
		dtos = append(dtos, dto)
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// RemoveLines deletes only the listed ids of userID. Inside a transaction the
// DELETE waits on rows locked by a concurrent checkout and then skips them.
func (r *GormCartRepository) RemoveLines(ctx context.Context, userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&CartLineDTO{})
	return res.RowsAffected, res.Error
}
