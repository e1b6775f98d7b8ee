package kernel

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created
// through the NewLineItem constructor.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem")

// LineItem is one priced product line of a cart or order: a product
// reference, its display name, the unit price captured at the time the line
// was formed, and a positive quantity.
//
// The line total is always computed from unit price and quantity, never
// stored, so the two can never disagree.
type LineItem struct {
	productID     UUID
	name          string
	unitPrice     Money
	quantity      int
	isConstructed bool
}

// NewLineItem creates a line item with validation.
// The product ID and unit price must be constructed values, the name must not
// be empty and the quantity must be positive.
func NewLineItem(productID UUID, name string, unitPrice Money, quantity int) (LineItem, error) {
	if err := productID.Validate(); err != nil {
		return LineItem{}, err
	}
	if name == "" {
		return LineItem{}, errs.NewValueIsRequiredError("name")
	}
	if err := unitPrice.Validate(); err != nil {
		return LineItem{}, err
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return LineItem{
		productID:     productID,
		name:          name,
		unitPrice:     unitPrice,
		quantity:      quantity,
		isConstructed: true,
	}, nil
}

// ProductID returns the referenced product identifier.
func (li LineItem) ProductID() UUID {
	return li.productID
}

// Name returns the product display name captured on the line.
func (li LineItem) Name() string {
	return li.name
}

// UnitPrice returns the per-unit price captured on the line.
func (li LineItem) UnitPrice() Money {
	return li.unitPrice
}

// Quantity returns the number of units on the line.
func (li LineItem) Quantity() int {
	return li.quantity
}

// LineTotal returns unit price multiplied by quantity.
func (li LineItem) LineTotal() Money {
	return Money{
		amount:        li.unitPrice.amount * int64(li.quantity),
		currency:      li.unitPrice.currency,
		isConstructed: true,
	}
}

// WithQuantity derives a new line item with the same product and price but a
// different quantity.
func (li LineItem) WithQuantity(quantity int) (LineItem, error) {
	return NewLineItem(li.productID, li.name, li.unitPrice, quantity)
}

// Validate ensures the line item was created via NewLineItem.
func (li LineItem) Validate() error {
	if !li.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}
