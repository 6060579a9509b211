// Package queries contains read operations over orders.
// Handlers run SQL directly against the read tables and return flat read models;
// nothing here loads aggregates or takes locks.
package queries

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Page is one page of a filtered listing together with the unpaged total.
type Page[T any] struct {
	Total   int64
	Records []T
}

type OrderLineView struct {
	ID        int64
	Name      string
	Image     string
	DishID    int64
	SetmealID int64
	Flavor    string
	Quantity  int
	UnitPrice kernel.Money
}

// OrderView is the read model shared by history, search and detail.
// Summary is derived from the lines on every read and never stored.
type OrderView struct {
	ID              int64
	Number          string
	UserID          int64
	Status          order.Status
	PayStatus       order.PayStatus
	Amount          kernel.Money
	AddressBookID   int64
	Consignee       string
	Phone           string
	Address         string
	Remark          string
	OrderTime       time.Time
	CheckoutTime    *time.Time
	CancelTime      *time.Time
	DeliveryTime    *time.Time
	CancelReason    string
	RejectionReason string
	Summary         string
	Lines           []OrderLineView
}

const orderColumns = `
	id, number, user_id, status, pay_status, amount, address_book_id,
	consignee, phone, address, remark, order_time, checkout_time,
	cancel_time, delivery_time, cancel_reason, rejection_reason`

func scanOrders(rows *sql.Rows) ([]OrderView, error) {
	defer rows.Close()

	views := make([]OrderView, 0)
	for rows.Next() {
		var (
			v                 OrderView
			status, payStatus int
			amount            decimal.Decimal
		)
		err := rows.Scan(
			&v.ID, &v.Number, &v.UserID, &status, &payStatus, &amount, &v.AddressBookID,
			&v.Consignee, &v.Phone, &v.Address, &v.Remark, &v.OrderTime, &v.CheckoutTime,
			&v.CancelTime, &v.DeliveryTime, &v.CancelReason, &v.RejectionReason,
		)
		if err != nil {
			return nil, err
		}

		if v.Amount, err = kernel.NewMoney(amount); err != nil {
			return nil, err
		}
		v.Status = order.Status(status)
		v.PayStatus = order.PayStatus(payStatus)
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}

// attachLines loads the lines of every view in one query and fills Lines and Summary.
func attachLines(ctx context.Context, db *gorm.DB, views []OrderView) error {
	if len(views) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(views))
	index := make(map[int64]int, len(views))
	for i, v := range views {
		ids = append(ids, v.ID)
		index[v.ID] = i
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			id,
			name,
			image,
			COALESCE(dish_id, 0),
			COALESCE(setmeal_id, 0),
			flavor,
			quantity,
			unit_price
		FROM order_lines
		WHERE order_id IN ?
		ORDER BY order_id, id
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID int64
			line    OrderLineView
			price   decimal.Decimal
		)
		err = rows.Scan(
			&orderID, &line.ID, &line.Name, &line.Image, &line.DishID,
			&line.SetmealID, &line.Flavor, &line.Quantity, &price,
		)
		if err != nil {
			return err
		}
		if line.UnitPrice, err = kernel.NewMoney(price); err != nil {
			return err
		}

		v := &views[index[orderID]]
		v.Lines = append(v.Lines, line)
	}
	if err = rows.Err(); err != nil {
		return err
	}

	for i := range views {
		views[i].Summary = summarize(views[i].Lines)
	}
	return nil
}

func summarize(lines []OrderLineView) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l.Name)
		sb.WriteByte('*')
		sb.WriteString(strconv.Itoa(l.Quantity))
		sb.WriteByte(';')
	}
	return sb.String()
}
