// Package notification defines the messages pushed to connected operator clients.
// Events are never stored.
package notification

import (
	"encoding/json"
	"fmt"
)

// Type tags an Event. The numeric values are part of the push protocol.
type Type int

const (
	NewOrder Type = 1
	Reminder Type = 2
)

func (t Type) String() string {
	switch t {
	case NewOrder:
		return "NewOrder"
	case Reminder:
		return "Reminder"
	default:
		return "Unknown"
	}
}

type Event struct {
	Type    Type   `json:"type"`
	OrderID int64  `json:"orderId"`
	Content string `json:"content"`
}

// NewOrderEvent is pushed when an order has been paid and waits for the merchant.
func NewOrderEvent(orderID int64, number string) Event {
	return Event{Type: NewOrder, OrderID: orderID, Content: content(number)}
}

// ReminderEvent is pushed when the customer asks the merchant to hurry.
func ReminderEvent(orderID int64, number string) Event {
	return Event{Type: Reminder, OrderID: orderID, Content: content(number)}
}

// Text encodes the event as the JSON text frame clients receive.
func (e Event) Text() ([]byte, error) {
	return json.Marshal(e)
}

func content(number string) string {
	return fmt.Sprintf("Order number: %s", number)
}
