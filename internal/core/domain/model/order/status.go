package order

import (
	"fmt"
	"slices"

	"takeout/internal/pkg/errs"
)

// Status is the lifecycle state of an order. The numeric values are persisted
// and exposed over the API, so they must not be renumbered.
type Status int

const (
	Unknown Status = iota

	// PendingPayment is the initial status; the order waits for the payment callback.
	PendingPayment

	// ToBeConfirmed means the order is paid and waits for the merchant.
	ToBeConfirmed

	Confirmed

	DeliveryInProgress

	// Completed is terminal.
	Completed

	// Cancelled is terminal and reachable from PendingPayment, ToBeConfirmed and Confirmed.
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:            "Unknown",
	PendingPayment:     "PendingPayment",
	ToBeConfirmed:      "ToBeConfirmed",
	Confirmed:          "Confirmed",
	DeliveryInProgress: "DeliveryInProgress",
	Completed:          "Completed",
	Cancelled:          "Cancelled",
}

// transitions lists every legal target for each source status.
var transitions = map[Status][]Status{
	PendingPayment:     {ToBeConfirmed, Cancelled},
	ToBeConfirmed:      {Confirmed, Cancelled},
	Confirmed:          {DeliveryInProgress, Cancelled},
	DeliveryInProgress: {Completed},
}

// Trigger names used in transition errors.
const (
	TriggerMarkPaid      = "mark paid"
	TriggerConfirm       = "confirm"
	TriggerReject        = "reject"
	TriggerUserCancel    = "user cancel"
	TriggerAdminCancel   = "admin cancel"
	TriggerDispatch      = "dispatch"
	TriggerComplete      = "complete"
	TriggerTimeoutCancel = "timeout cancel"
)

// Validate checks that s is one of the six persisted statuses.
func (s Status) Validate() error {
	if s < PendingPayment || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo reports whether the table allows s -> to.
func (s Status) CanTransitionTo(to Status) bool {
	return slices.Contains(transitions[s], to)
}

// ValidateUserCancel allows cancellation by the customer before the merchant accepts the order.
func (s Status) ValidateUserCancel() error {
	if s != PendingPayment && s != ToBeConfirmed {
		return errs.NewInvalidTransitionError(TriggerUserCancel, s)
	}
	return nil
}

// ValidateReject allows rejection only while the order waits for the merchant.
func (s Status) ValidateReject() error {
	if s != ToBeConfirmed {
		return errs.NewInvalidTransitionError(TriggerReject, s)
	}
	return nil
}

// ValidateAdminCancel allows cancellation from any non-terminal status that has a Cancelled edge.
func (s Status) ValidateAdminCancel() error {
	if !s.CanTransitionTo(Cancelled) {
		return errs.NewInvalidTransitionError(TriggerAdminCancel, s)
	}
	return nil
}

// MarkPaid transitions PendingPayment -> ToBeConfirmed.
func (s Status) MarkPaid() (Status, error) {
	return s.move(TriggerMarkPaid, PendingPayment, ToBeConfirmed)
}

// Confirm transitions ToBeConfirmed -> Confirmed.
func (s Status) Confirm() (Status, error) {
	return s.move(TriggerConfirm, ToBeConfirmed, Confirmed)
}

// Dispatch transitions Confirmed -> DeliveryInProgress.
func (s Status) Dispatch() (Status, error) {
	return s.move(TriggerDispatch, Confirmed, DeliveryInProgress)
}

// Complete transitions DeliveryInProgress -> Completed.
func (s Status) Complete() (Status, error) {
	return s.move(TriggerComplete, DeliveryInProgress, Completed)
}

func (s Status) move(trigger string, from, to Status) (Status, error) {
	if s != from || !s.CanTransitionTo(to) {
		return 0, errs.NewInvalidTransitionError(trigger, s)
	}
	return to, nil
}

// PayStatus is the payment state of an order. It only moves forward.
type PayStatus int

const (
	Unpaid PayStatus = iota
	Paid
	Refunded
)

func (p PayStatus) Validate() error {
	if p < Unpaid || p > Refunded {
		return errs.NewValueIsInvalidErrorWithCause("pay status", fmt.Errorf("%d is not a valid pay status", p))
	}
	return nil
}

func (p PayStatus) String() string {
	switch p {
	case Unpaid:
		return "Unpaid"
	case Paid:
		return "Paid"
	case Refunded:
		return "Refunded"
	default:
		return "Unknown"
	}
}

// Pay moves Unpaid -> Paid.
func (p PayStatus) Pay() (PayStatus, error) {
	if p != Unpaid {
		return 0, errs.NewInvalidTransitionError("pay", p)
	}
	return Paid, nil
}

// Refund moves Paid -> Refunded.
func (p PayStatus) Refund() (PayStatus, error) {
	if p != Paid {
		return 0, errs.NewInvalidTransitionError("refund", p)
	}
	return Refunded, nil
}
