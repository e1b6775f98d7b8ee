package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrInvalidTransition is returned when the requested status change is not
	// an edge of the lifecycle state machine.
	ErrInvalidTransition = errors.New("status transition is not allowed")

	// ErrUnauthorizedTransition is returned when the transition exists but the
	// acting role is not permitted to drive it.
	ErrUnauthorizedTransition = errors.New("role is not authorized for this transition")

	// ErrDispatchAlreadyAssigned is returned when a second, different courier
	// assignment is attached to an order.
	ErrDispatchAlreadyAssigned = errors.New("order already has a dispatch assignment")

	// ErrInvoiceAlreadyAssigned is returned when a second, different invoice is
	// attached to an order.
	ErrInvoiceAlreadyAssigned = errors.New("order already has an invoice")
)

// Order is the aggregate produced by checking out a cart. Its items, pricing
// and delivery details are frozen copies taken at checkout; only the
// lifecycle status, payment state and the invoice/dispatch references change
// afterwards.
type Order struct {
	id         kernel.UUID
	buyerID    kernel.UUID
	supplierID kernel.UUID

	items    []kernel.LineItem
	pricing  Pricing
	delivery Delivery

	status  Status
	payment Payment

	invoiceID *kernel.UUID
	dispatch  *DispatchRef
	// dispatchPending is raised on entering ReadyForPickup without an
	// assignment and lowered once a courier is attached, the goods leave, or
	// the order is cancelled. The recovery sweep keys off it.
	dispatchPending  bool
	dispatchAttempts int

	cancelReason   string
	refundEligible bool

	version   int
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a pending order from a checkout snapshot. The item slice
// is copied, never aliased, so the source cart can be mutated or cleared
// afterwards without affecting the order.
func NewOrder(id, buyerID, supplierID kernel.UUID, items []kernel.LineItem,
	pricing Pricing, delivery Delivery, payment Payment, now time.Time) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		buyerID.Validate(),
		supplierID.Validate(),
		pricing.Validate(),
		delivery.Validate(),
	); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	if payment == (Payment{}) {
		return nil, errs.NewValueIsRequiredError("payment")
	}
	if now.IsZero() {
		return nil, errs.NewValueIsRequiredError("now")
	}

	return &Order{
		id:            id,
		buyerID:       buyerID,
		supplierID:    supplierID,
		items:         append([]kernel.LineItem(nil), items...),
		pricing:       pricing,
		delivery:      delivery,
		status:        Pending,
		payment:       payment,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence without re-running the
// checkout rules. The status and version are taken as stored.
func RestoreOrder(id, buyerID, supplierID kernel.UUID, items []kernel.LineItem,
	pricing Pricing, delivery Delivery, status Status, payment Payment,
	invoiceID *kernel.UUID, dispatch *DispatchRef, dispatchPending bool,
	dispatchAttempts int, cancelReason string, refundEligible bool,
	version int, createdAt, updatedAt time.Time) (*Order, error) {
	o, err := NewOrder(id, buyerID, supplierID, items, pricing, delivery, payment, createdAt)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("version",
			fmt.Errorf("%d is not greater than 0", version))
	}

	o.status = status
	o.invoiceID = invoiceID
	o.dispatch = dispatch
	o.dispatchPending = dispatchPending
	o.dispatchAttempts = dispatchAttempts
	o.cancelReason = cancelReason
	o.refundEligible = refundEligible
	o.version = version
	o.updatedAt = updatedAt
	return o, nil
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// BuyerID returns the buyer who placed the order.
func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// SupplierID returns the supplier fulfilling the order.
func (o *Order) SupplierID() kernel.UUID {
	return o.supplierID
}

// Items returns a defensive copy of the frozen order lines.
func (o *Order) Items() []kernel.LineItem {
	return append([]kernel.LineItem(nil), o.items...)
}

// Pricing returns the frozen price breakdown.
func (o *Order) Pricing() Pricing {
	return o.pricing
}

// Delivery returns the frozen delivery details.
func (o *Order) Delivery() Delivery {
	return o.delivery
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Payment returns the current payment record.
func (o *Order) Payment() Payment {
	return o.payment
}

// InvoiceID returns the attached invoice identifier, nil when none exists.
func (o *Order) InvoiceID() *kernel.UUID {
	return o.invoiceID
}

// Dispatch returns the courier assignment, nil while none is attached.
func (o *Order) Dispatch() *DispatchRef {
	return o.dispatch
}

// IsDispatchPending reports whether the order is ready for pickup and still
// waiting for a courier assignment.
func (o *Order) IsDispatchPending() bool {
	return o.dispatchPending
}

// DispatchAttempts returns how many courier requests have been made.
func (o *Order) DispatchAttempts() int {
	return o.dispatchAttempts
}

// CancelReason returns the reason given at cancellation, empty otherwise.
func (o *Order) CancelReason() string {
	return o.cancelReason
}

// IsRefundEligible reports whether a completed payment was captured before
// the order was cancelled.
func (o *Order) IsRefundEligible() bool {
	return o.refundEligible
}

// Version returns the optimistic-concurrency version of the aggregate.
func (o *Order) Version() int {
	return o.version
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order was last modified.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// TransitionTo moves the order to the target status on behalf of the acting
// role. It is the only way to change the status.
//
// Requesting the current status is an idempotent no-op: (false, nil) without
// touching the order. An edge missing from the lifecycle table fails with
// ErrInvalidTransition, an edge the role may not drive fails with
// ErrUnauthorizedTransition, and in both cases the order is unchanged.
//
// Cancellation requires a non-empty reason, records refund eligibility from
// the payment state, and withdraws any pending courier request. Entering
// ReadyForPickup without an assignment raises the dispatch-pending flag.
//
// The returned bool reports whether the state actually changed, so callers
// fire side effects exactly once per real change.
func (o *Order) TransitionTo(target Status, actor Role, reason string, now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if err := target.Validate(); err != nil {
		return false, err
	}
	if err := actor.Validate(); err != nil {
		return false, err
	}

	if target == o.status {
		return false, nil
	}
	if !o.status.CanTransitionTo(target) {
		return false, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, target)
	}
	if !actor.MayDrive(o.status, target) {
		return false, fmt.Errorf("%w: %s may not drive %s -> %s", ErrUnauthorizedTransition, actor, o.status, target)
	}

	switch target {
	case Cancelled:
		if reason == "" {
			return false, errs.NewValueIsRequiredError("reason")
		}
		o.cancelReason = reason
		o.refundEligible = o.payment.Status() == PaymentCompleted
		o.dispatchPending = false
	case ReadyForPickup:
		if o.dispatch == nil {
			o.dispatchPending = true
		}
	case InTransit:
		o.dispatchPending = false
	}

	o.status = target
	o.updatedAt = now
	return true, nil
}

// SetPaymentStatus updates the payment state, keeping the chosen method.
// Payment changes stamp updatedAt like status changes do.
func (o *Order) SetPaymentStatus(status PaymentStatus, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	payment, err := NewPayment(status, o.payment.Method())
	if err != nil {
		return err
	}
	o.payment = payment
	o.updatedAt = now
	return nil
}

// AttachDispatch records a courier assignment and lowers the pending flag.
// Re-attaching the same tracking ID is a no-op; a different one fails with
// ErrDispatchAlreadyAssigned, because an order has at most one assignment.
func (o *Order) AttachDispatch(ref DispatchRef) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := ref.Validate(); err != nil {
		return err
	}

	if o.dispatch != nil {
		if o.dispatch.TrackingID() == ref.TrackingID() {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrDispatchAlreadyAssigned, o.dispatch.TrackingID())
	}

	o.dispatch = &ref
	o.dispatchPending = false
	return nil
}

// RecordDispatchAttempt counts one courier request attempt, successful or not.
func (o *Order) RecordDispatchAttempt() error {
	if err := o.Validate(); err != nil {
		return err
	}
	o.dispatchAttempts++
	return nil
}

// AttachInvoice links the order to its invoice. Re-attaching the same invoice
// is a no-op; a different one fails with ErrInvoiceAlreadyAssigned.
func (o *Order) AttachInvoice(invoiceID kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := invoiceID.Validate(); err != nil {
		return err
	}

	if o.invoiceID != nil {
		if o.invoiceID.IsEqual(invoiceID) {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrInvoiceAlreadyAssigned, o.invoiceID)
	}

	o.invoiceID = &invoiceID
	return nil
}

// Validate ensures the order was created via NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}
