// Package cartrepo reads and edits the shopping cart lines the orchestrator
// consumes at submission and refills on repeat.
package cartrepo

import (
	"time"

	"takeout/internal/core/domain/model/cart"
	"takeout/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type CartLineDTO struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"not null;index"`
	Name      string `gorm:"type:varchar(64);not null"`
	Image     string `gorm:"type:varchar(255);not null;default:''"`
	DishID    *int64
	SetmealID *int64
	Flavor    string          `gorm:"type:varchar(64);not null;default:''"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

func (CartLineDTO) TableName() string {
	return "cart_lines"
}

func fromDomain(l cart.Line) CartLineDTO {
	return CartLineDTO{
		ID:        l.ID(),
		UserID:    l.UserID(),
		Name:      l.Name(),
		Image:     l.Image(),
		DishID:    optionalID(l.DishID()),
		SetmealID: optionalID(l.SetmealID()),
		Flavor:    l.Flavor(),
		Quantity:  l.Quantity(),
		UnitPrice: l.UnitPrice().Amount(),
		CreatedAt: l.CreatedAt(),
	}
}

func toDomain(dto CartLineDTO) (cart.Line, error) {
	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return cart.Line{}, err
	}
	return cart.RestoreLine(
		dto.ID, dto.UserID,
		dto.Name, dto.Image,
		derefID(dto.DishID), derefID(dto.SetmealID),
		dto.Flavor, dto.Quantity, price, dto.CreatedAt,
	)
}

func optionalID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
