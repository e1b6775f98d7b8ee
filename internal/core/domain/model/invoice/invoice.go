package invoice

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrInvoiceIsNotConstructed is returned when an Invoice was not created
	// through NewInvoice or RestoreInvoice.
	ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice or RestoreInvoice")

	// ErrPaymentNotCompleted is returned when invoice generation is requested
	// for an order whose payment has not completed.
	ErrPaymentNotCompleted = errors.New("invoice requires a completed payment")
)

// Invoice is the billing document for one order. The item and pricing
// snapshot is frozen at generation; only the email-send bookkeeping changes
// afterwards.
type Invoice struct {
	id         kernel.UUID
	orderID    kernel.UUID
	buyerID    kernel.UUID
	supplierID kernel.UUID

	// number is unique and monotonically increasing per supplier.
	number int

	items   []kernel.LineItem
	pricing order.Pricing

	generatedAt time.Time

	emailSent bool
	sendCount int

	isConstructed bool
}

// NewInvoice creates an invoice from an order snapshot. The number must be
// positive and come from the supplier's sequence; items are copied.
func NewInvoice(id, orderID, buyerID, supplierID kernel.UUID, number int,
	items []kernel.LineItem, pricing order.Pricing, generatedAt time.Time) (*Invoice, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		buyerID.Validate(),
		supplierID.Validate(),
		pricing.Validate(),
	); err != nil {
		return nil, err
	}
	if number < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("number",
			fmt.Errorf("%d is not greater than 0", number))
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	if generatedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("generatedAt")
	}

	return &Invoice{
		id:            id,
		orderID:       orderID,
		buyerID:       buyerID,
		supplierID:    supplierID,
		number:        number,
		items:         append([]kernel.LineItem(nil), items...),
		pricing:       pricing,
		generatedAt:   generatedAt,
		isConstructed: true,
	}, nil
}

// RestoreInvoice reconstructs an invoice from persistence.
func RestoreInvoice(id, orderID, buyerID, supplierID kernel.UUID, number int,
	items []kernel.LineItem, pricing order.Pricing, generatedAt time.Time,
	emailSent bool, sendCount int) (*Invoice, error) {
	inv, err := NewInvoice(id, orderID, buyerID, supplierID, number, items, pricing, generatedAt)
	if err != nil {
		return nil, err
	}
	if sendCount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("sendCount",
			fmt.Errorf("%d is negative", sendCount))
	}

	inv.emailSent = emailSent
	inv.sendCount = sendCount
	return inv, nil
}

// ID returns the invoice identifier.
func (i *Invoice) ID() kernel.UUID {
	return i.id
}

// OrderID returns the order this invoice bills.
func (i *Invoice) OrderID() kernel.UUID {
	return i.orderID
}

// BuyerID returns the billed party.
func (i *Invoice) BuyerID() kernel.UUID {
	return i.buyerID
}

// SupplierID returns the issuing party.
func (i *Invoice) SupplierID() kernel.UUID {
	return i.supplierID
}

// Number returns the supplier-scoped sequence number.
func (i *Invoice) Number() int {
	return i.number
}

// DisplayNumber returns the human-readable invoice number, e.g. "INV-000042".
func (i *Invoice) DisplayNumber() string {
	return fmt.Sprintf("INV-%06d", i.number)
}

// Items returns a defensive copy of the billed lines.
func (i *Invoice) Items() []kernel.LineItem {
	return append([]kernel.LineItem(nil), i.items...)
}

// Pricing returns the frozen price breakdown.
func (i *Invoice) Pricing() order.Pricing {
	return i.pricing
}

// GeneratedAt returns when the invoice was generated.
func (i *Invoice) GeneratedAt() time.Time {
	return i.generatedAt
}

// IsEmailSent reports whether at least one send has been confirmed.
func (i *Invoice) IsEmailSent() bool {
	return i.emailSent
}

// SendCount returns the number of confirmed email sends.
func (i *Invoice) SendCount() int {
	return i.sendCount
}

// RecordEmailSent books one confirmed send and reports whether it was the
// first. Only confirmed sends are counted; a failed relay call must not reach
// this method.
func (i *Invoice) RecordEmailSent() (bool, error) {
	if err := i.Validate(); err != nil {
		return false, err
	}

	first := !i.emailSent
	i.emailSent = true
	i.sendCount++
	return first, nil
}

// Validate ensures the invoice was created via NewInvoice or RestoreInvoice.
func (i *Invoice) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInvoiceIsNotConstructed
	}
	return nil
}
