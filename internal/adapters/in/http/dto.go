package http

import (
	"time"

	"takeout/internal/core/application/usecases/queries"
)

type SubmitOrderRequest struct {
	AddressBookID int64  `json:"addressBookId"`
	Remark        string `json:"remark"`
}

type SubmitOrderResponse struct {
	ID        int64     `json:"id"`
	Number    string    `json:"number"`
	Amount    string    `json:"amount"`
	OrderTime time.Time `json:"orderTime"`
}

type PaymentRequest struct {
	OrderNumber string `json:"orderNumber"`
}

type PaymentResponse struct {
	Token         string `json:"token"`
	TransactionID string `json:"transactionId"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type RepeatResponse struct {
	Added int `json:"added"`
}

type OrderLine struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	DishID    int64  `json:"dishId,omitempty"`
	SetmealID int64  `json:"setmealId,omitempty"`
	Flavor    string `json:"flavor,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

type Order struct {
	ID              int64       `json:"id"`
	Number          string      `json:"number"`
	UserID          int64       `json:"userId"`
	Status          int         `json:"status"`
	PayStatus       int         `json:"payStatus"`
	Amount          string      `json:"amount"`
	AddressBookID   int64       `json:"addressBookId"`
	Consignee       string      `json:"consignee"`
	Phone           string      `json:"phone"`
	Address         string      `json:"address"`
	Remark          string      `json:"remark"`
	OrderTime       time.Time   `json:"orderTime"`
	CheckoutTime    *time.Time  `json:"checkoutTime"`
	CancelTime      *time.Time  `json:"cancelTime"`
	DeliveryTime    *time.Time  `json:"deliveryTime"`
	CancelReason    string      `json:"cancelReason,omitempty"`
	RejectionReason string      `json:"rejectionReason,omitempty"`
	OrderDishes     string      `json:"orderDishes"`
	OrderDetailList []OrderLine `json:"orderDetailList"`
}

type OrderPage struct {
	Total   int64   `json:"total"`
	Records []Order `json:"records"`
}

type Statistics struct {
	ToBeConfirmed      int64 `json:"toBeConfirmed"`
	Confirmed          int64 `json:"confirmed"`
	DeliveryInProgress int64 `json:"deliveryInProgress"`
}

func toOrder(v queries.OrderView) Order {
	lines := make([]OrderLine, len(v.Lines))
	for i, l := range v.Lines {
		lines[i] = OrderLine{
			ID:        l.ID,
			Name:      l.Name,
			Image:     l.Image,
			DishID:    l.DishID,
			SetmealID: l.SetmealID,
			Flavor:    l.Flavor,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.String(),
		}
	}

	return Order{
		ID:              v.ID,
		Number:          v.Number,
		UserID:          v.UserID,
		Status:          int(v.Status),
		PayStatus:       int(v.PayStatus),
		Amount:          v.Amount.String(),
		AddressBookID:   v.AddressBookID,
		Consignee:       v.Consignee,
		Phone:           v.Phone,
		Address:         v.Address,
		Remark:          v.Remark,
		OrderTime:       v.OrderTime,
		CheckoutTime:    v.CheckoutTime,
		CancelTime:      v.CancelTime,
		DeliveryTime:    v.DeliveryTime,
		CancelReason:    v.CancelReason,
		RejectionReason: v.RejectionReason,
		OrderDishes:     v.Summary,
		OrderDetailList: lines,
	}
}

func toOrderPage(p queries.Page[queries.OrderView]) OrderPage {
	records := make([]Order, len(p.Records))
	for i, v := range p.Records {
		records[i] = toOrder(v)
	}
	return OrderPage{Total: p.Total, Records: records}
}
