package order

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Cancel reasons recorded by system-initiated transitions.
const (
	ReasonUserCancelled  = "user cancelled"
	ReasonPaymentTimeout = "payment timeout"
)

// Order is the aggregate root of the lifecycle orchestrator.
//
// Order follows these invariants:
//   - Amount equals the sum of the line item subtotals and never changes
//   - Line items and the delivery snapshot are immutable after construction
//   - Status only follows the transition table in status.go
//   - PayStatus only moves Unpaid -> Paid -> Refunded
//   - A paid order is never cancelled without being marked Refunded
type Order struct {
	id     int64
	number string
	userID int64

	status    Status
	payStatus PayStatus

	amount        kernel.Money
	paidAmount    kernel.Money
	transactionID string

	delivery Delivery
	lines    []LineItem
	remark   string

	createdAt   time.Time
	checkoutAt  *time.Time
	cancelledAt *time.Time
	deliveredAt *time.Time

	cancelReason    string
	rejectionReason string

	// version is the optimistic concurrency token persisted with the order.
	version int64

	isConstructed bool
}

// NewOrder creates an order in PendingPayment/Unpaid. The id stays 0 until the
// repository assigns one with AssignID.
//
// Example:
//
//	price, _ := kernel.ParseMoney("12.00")
//	line, _ := order.NewLineItem("Kung Pao Chicken", "", 7, 0, "", 1, price)
//	d, _ := order.NewDelivery(3, "Li Lei", "13800000000", "1 Main St")
//	o, err := order.NewOrder("20240101120000000001", 42, d, []order.LineItem{line}, "", time.Now())
func NewOrder(
	number string,
	userID int64,
	delivery Delivery,
	lines []LineItem,
	remark string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        PendingPayment,
		payStatus:     Unpaid,
		paidAmount:    kernel.ZeroMoney(),
		remark:        remark,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setNumber(number),
		o.setUserID(userID),
		o.setDelivery(delivery),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreParams carries a persisted order back into the domain.
type RestoreParams struct {
	ID              int64
	Number          string
	UserID          int64
	Status          Status
	PayStatus       PayStatus
	Amount          kernel.Money
	PaidAmount      kernel.Money
	TransactionID   string
	Delivery        Delivery
	Lines           []LineItem
	Remark          string
	CreatedAt       time.Time
	CheckoutAt      *time.Time
	CancelledAt     *time.Time
	DeliveredAt     *time.Time
	CancelReason    string
	RejectionReason string
	Version         int64
}

// RestoreOrder rebuilds an order loaded from storage. The stored amount is kept
// as is rather than recomputed from lines.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		id:              p.ID,
		status:          p.Status,
		payStatus:       p.PayStatus,
		transactionID:   p.TransactionID,
		remark:          p.Remark,
		createdAt:       p.CreatedAt,
		checkoutAt:      p.CheckoutAt,
		cancelledAt:     p.CancelledAt,
		deliveredAt:     p.DeliveredAt,
		cancelReason:    p.CancelReason,
		rejectionReason: p.RejectionReason,
		version:         p.Version,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setNumber(p.Number),
		o.setUserID(p.UserID),
		p.Status.Validate(),
		p.PayStatus.Validate(),
		p.Amount.Validate(),
		p.PaidAmount.Validate(),
		o.setDelivery(p.Delivery),
	); err != nil {
		return nil, err
	}
	if p.ID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", p.ID))
	}

	o.amount = p.Amount
	o.paidAmount = p.PaidAmount
	o.lines = append([]LineItem(nil), p.Lines...)
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// AssignID sets the storage identity once, right after insert.
func (o *Order) AssignID(id int64) error {
	if o.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("already assigned to %d", o.id))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}
	o.id = id
	return nil
}

func (o *Order) ID() int64                { return o.id }
func (o *Order) Number() string           { return o.number }
func (o *Order) UserID() int64            { return o.userID }
func (o *Order) Status() Status           { return o.status }
func (o *Order) PayStatus() PayStatus     { return o.payStatus }
func (o *Order) Amount() kernel.Money     { return o.amount }
func (o *Order) PaidAmount() kernel.Money { return o.paidAmount }
func (o *Order) TransactionID() string    { return o.transactionID }
func (o *Order) Delivery() Delivery       { return o.delivery }
func (o *Order) Remark() string           { return o.remark }
func (o *Order) CreatedAt() time.Time     { return o.createdAt }
func (o *Order) CheckoutAt() *time.Time   { return o.checkoutAt }
func (o *Order) CancelledAt() *time.Time  { return o.cancelledAt }
func (o *Order) DeliveredAt() *time.Time  { return o.deliveredAt }
func (o *Order) CancelReason() string     { return o.cancelReason }
func (o *Order) RejectionReason() string  { return o.rejectionReason }
func (o *Order) Version() int64           { return o.version }

func (o *Order) IsOwnedBy(userID int64) bool {
	return o.userID == userID
}

// Lines returns a copy of the line items.
func (o *Order) Lines() []LineItem {
	return append([]LineItem(nil), o.lines...)
}

// NeedsRefund reports whether cancelling the order now must return captured funds.
func (o *Order) NeedsRefund() bool {
	return o.payStatus == Paid
}

// Summary renders the line items as "name*qty;" pairs for operator listings.
func (o *Order) Summary() string {
	var sb strings.Builder
	for _, li := range o.lines {
		sb.WriteString(li.Name())
		sb.WriteByte('*')
		sb.WriteString(strconv.Itoa(li.Quantity()))
		sb.WriteByte(';')
	}
	return sb.String()
}

// MarkPaid records a captured payment. It reports false without error when the
// order is no longer Unpaid, so redelivered callbacks are absorbed.
func (o *Order) MarkPaid(transactionID string, paid kernel.Money, now time.Time) (bool, error) {
	if o.payStatus != Unpaid {
		return false, nil
	}

	newStatus, err := o.status.MarkPaid()
	if err != nil {
		return false, err
	}
	newPay, err := o.payStatus.Pay()
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(transactionID) == "" {
		return false, errs.NewValueIsRequiredError("transaction id")
	}
	if err := paid.Validate(); err != nil {
		return false, err
	}

	o.status = newStatus
	o.payStatus = newPay
	o.transactionID = transactionID
	o.paidAmount = paid
	o.checkoutAt = &now
	return true, nil
}

func (o *Order) Confirm() error {
	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// ValidateReject checks the precondition of Reject without mutating the order.
func (o *Order) ValidateReject() error {
	return o.status.ValidateReject()
}

// Reject cancels an order the merchant declined. A paid order is marked Refunded,
// so the caller must have returned the funds before calling it.
func (o *Order) Reject(reason string, now time.Time) error {
	if err := o.status.ValidateReject(); err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("rejection reason")
	}
	if err := o.cancel(now); err != nil {
		return err
	}
	o.rejectionReason = reason
	return nil
}

func (o *Order) ValidateUserCancel() error {
	return o.status.ValidateUserCancel()
}

// UserCancel cancels on behalf of the customer. A paid order is marked Refunded.
func (o *Order) UserCancel(now time.Time) error {
	if err := o.status.ValidateUserCancel(); err != nil {
		return err
	}
	if err := o.cancel(now); err != nil {
		return err
	}
	o.cancelReason = ReasonUserCancelled
	return nil
}

func (o *Order) ValidateAdminCancel() error {
	return o.status.ValidateAdminCancel()
}

// AdminCancel cancels from any non-terminal status. A paid order is marked Refunded.
func (o *Order) AdminCancel(reason string, now time.Time) error {
	if err := o.status.ValidateAdminCancel(); err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("cancel reason")
	}
	if err := o.cancel(now); err != nil {
		return err
	}
	o.cancelReason = reason
	return nil
}

func (o *Order) Dispatch() error {
	newStatus, err := o.status.Dispatch()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

func (o *Order) Complete(now time.Time) error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.deliveredAt = &now
	return nil
}

// TimeoutCancel cancels an order still waiting for payment. It reports false
// without error when the order has already moved on.
func (o *Order) TimeoutCancel(now time.Time) (bool, error) {
	if o.status != PendingPayment || o.payStatus != Unpaid {
		return false, nil
	}
	if err := o.cancel(now); err != nil {
		return false, err
	}
	o.cancelReason = ReasonPaymentTimeout
	return true, nil
}

// RecordLateCapture records a payment captured after the order was cancelled
// unpaid. The order stays Cancelled and becomes Paid, so it must be refunded and
// then closed with MarkRefunded. It reports false for any other order.
func (o *Order) RecordLateCapture(transactionID string, paid kernel.Money, now time.Time) (bool, error) {
	if o.status != Cancelled || o.payStatus != Unpaid {
		return false, nil
	}
	if strings.TrimSpace(transactionID) == "" {
		return false, errs.NewValueIsRequiredError("transaction id")
	}
	if err := paid.Validate(); err != nil {
		return false, err
	}
	newPay, err := o.payStatus.Pay()
	if err != nil {
		return false, err
	}

	o.payStatus = newPay
	o.transactionID = transactionID
	o.paidAmount = paid
	o.checkoutAt = &now
	return true, nil
}

// MarkRefunded closes a late capture on a cancelled order once its funds were returned.
func (o *Order) MarkRefunded() error {
	if o.status != Cancelled {
		return errs.NewInvalidTransitionError("mark refunded", o.status)
	}
	refunded, err := o.payStatus.Refund()
	if err != nil {
		return err
	}
	o.payStatus = refunded
	return nil
}

func (o *Order) cancel(now time.Time) error {
	if !o.status.CanTransitionTo(Cancelled) {
		return errs.NewInvalidTransitionError("cancel", o.status)
	}
	if o.payStatus == Paid {
		refunded, err := o.payStatus.Refund()
		if err != nil {
			return err
		}
		o.payStatus = refunded
	}
	o.status = Cancelled
	o.cancelledAt = &now
	return nil
}

func (o *Order) setNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("number")
	}
	o.number = number
	return nil
}

func (o *Order) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("user id", fmt.Errorf("%d is not greater than 0", userID))
	}
	o.userID = userID
	return nil
}

func (o *Order) setDelivery(d Delivery) error {
	if err := d.Validate(); err != nil {
		return err
	}
	o.delivery = d
	return nil
}

// setLines copies lines and derives the order amount from them.
func (o *Order) setLines(lines []LineItem) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	total := kernel.ZeroMoney()
	for i, li := range lines {
		if err := li.Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
		sub, err := li.Subtotal()
		if err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
		if total, err = total.Add(sub); err != nil {
			return err
		}
	}

	o.lines = append([]LineItem(nil), lines...)
	o.amount = total
	return nil
}
