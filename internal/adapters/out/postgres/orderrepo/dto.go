// Package orderrepo persists the order aggregate and its line items.
// Line items and the delivery snapshot are written once on insert; updates
// only touch lifecycle columns and are guarded by the version column.
package orderrepo

import (
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO maps the orders table.
type OrderDTO struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	Number          string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	UserID          int64           `gorm:"not null;index"`
	Status          int             `gorm:"type:smallint;not null;index"`
	PayStatus       int             `gorm:"type:smallint;not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaidAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TransactionID   string          `gorm:"type:varchar(64);not null;default:''"`
	AddressBookID   int64           `gorm:"not null"`
	Consignee       string          `gorm:"type:varchar(64);not null;default:''"`
	Phone           string          `gorm:"type:varchar(32);not null;index"`
	Address         string          `gorm:"type:varchar(255);not null"`
	Remark          string          `gorm:"type:varchar(255);not null;default:''"`
	OrderTime       time.Time       `gorm:"not null;index"`
	CheckoutTime    *time.Time
	CancelTime      *time.Time
	DeliveryTime    *time.Time
	CancelReason    string         `gorm:"type:varchar(255);not null;default:''"`
	RejectionReason string         `gorm:"type:varchar(255);not null;default:''"`
	Version         int64          `gorm:"not null;default:0"`
	Lines           []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO maps the order_lines table. Exactly one of DishID and SetmealID is set.
type OrderLineDTO struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	OrderID   int64  `gorm:"not null;index"`
	Name      string `gorm:"type:varchar(64);not null"`
	Image     string `gorm:"type:varchar(255);not null;default:''"`
	DishID    *int64
	SetmealID *int64
	Flavor    string          `gorm:"type:varchar(64);not null;default:''"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(o *order.Order) OrderDTO {
	lines := make([]OrderLineDTO, 0, len(o.Lines()))
	for _, li := range o.Lines() {
		lines = append(lines, OrderLineDTO{
			ID:        li.ID(),
			OrderID:   o.ID(),
			Name:      li.Name(),
			Image:     li.Image(),
			DishID:    optionalID(li.DishID()),
			SetmealID: optionalID(li.SetmealID()),
			Flavor:    li.Flavor(),
			Quantity:  li.Quantity(),
			UnitPrice: li.UnitPrice().Amount(),
		})
	}

	d := o.Delivery()
	return OrderDTO{
		ID:              o.ID(),
		Number:          o.Number(),
		UserID:          o.UserID(),
		Status:          int(o.Status()),
		PayStatus:       int(o.PayStatus()),
		Amount:          o.Amount().Amount(),
		PaidAmount:      o.PaidAmount().Amount(),
		TransactionID:   o.TransactionID(),
		AddressBookID:   d.AddressBookID(),
		Consignee:       d.Consignee(),
		Phone:           d.Phone(),
		Address:         d.Address(),
		Remark:          o.Remark(),
		OrderTime:       o.CreatedAt(),
		CheckoutTime:    o.CheckoutAt(),
		CancelTime:      o.CancelledAt(),
		DeliveryTime:    o.DeliveredAt(),
		CancelReason:    o.CancelReason(),
		RejectionReason: o.RejectionReason(),
		Version:         o.Version(),
		Lines:           lines,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}
	paid, err := kernel.NewMoney(dto.PaidAmount)
	if err != nil {
		return nil, err
	}

	delivery, err := order.NewDelivery(dto.AddressBookID, dto.Consignee, dto.Phone, dto.Address)
	if err != nil {
		return nil, err
	}

	lines := make([]order.LineItem, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		price, priceErr := kernel.NewMoney(l.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		li, lineErr := order.RestoreLineItem(
			l.ID, l.Name, l.Image,
			derefID(l.DishID), derefID(l.SetmealID),
			l.Flavor, l.Quantity, price,
		)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, li)
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:              dto.ID,
		Number:          dto.Number,
		UserID:          dto.UserID,
		Status:          order.Status(dto.Status),
		PayStatus:       order.PayStatus(dto.PayStatus),
		Amount:          amount,
		PaidAmount:      paid,
		TransactionID:   dto.TransactionID,
		Delivery:        delivery,
		Lines:           lines,
		Remark:          dto.Remark,
		CreatedAt:       dto.OrderTime,
		CheckoutAt:      dto.CheckoutTime,
		CancelledAt:     dto.CancelTime,
		DeliveredAt:     dto.DeliveryTime,
		CancelReason:    dto.CancelReason,
		RejectionReason: dto.RejectionReason,
		Version:         dto.Version,
	})
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
