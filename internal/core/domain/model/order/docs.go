// Package order provides the Order aggregate and the state machine that governs it.
//
// The package includes:
//   - Order: the aggregate root holding status, pay status, amounts, the delivery snapshot and line items
//   - Status: the order lifecycle and its transition table
//   - PayStatus: the payment lifecycle, which only moves forward (Unpaid -> Paid -> Refunded)
//   - LineItem and Delivery: immutable snapshots taken when the order is submitted
//
// Status lifecycle:
//
//	PendingPayment -> ToBeConfirmed -> Confirmed -> DeliveryInProgress -> Completed
//	      |                 |              |
//	      +-----------------+--------------+--> Cancelled
//
// Every mutation goes through an Order method, which validates the source state and
// returns an errs.InvalidTransitionError when the trigger is not allowed.
package order
