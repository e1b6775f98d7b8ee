package order

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrPricingSumMismatch is returned when the stated total does not equal
// subtotal + delivery fee + urgency surcharge.
var ErrPricingSumMismatch = errors.New("pricing total does not equal the sum of its parts")

// Pricing is the frozen price breakdown of an order, computed once at
// checkout. All four amounts share one currency and the total is always the
// exact integer sum of the other three.
type Pricing struct {
	subtotal         kernel.Money
	deliveryFee      kernel.Money
	urgencySurcharge kernel.Money
	total            kernel.Money
	isConstructed    bool
}

// NewPricing creates a pricing breakdown, verifying the single-currency rule
// and that total = subtotal + deliveryFee + urgencySurcharge exactly.
func NewPricing(subtotal, deliveryFee, urgencySurcharge, total kernel.Money) (Pricing, error) {
	sum, err := subtotal.Add(deliveryFee)
	if err != nil {
		return Pricing{}, err
	}
	sum, err = sum.Add(urgencySurcharge)
	if err != nil {
		return Pricing{}, err
	}

	cmp, err := sum.Cmp(total)
	if err != nil {
		return Pricing{}, err
	}
	if cmp != 0 {
		return Pricing{}, ErrPricingSumMismatch
	}

	return Pricing{
		subtotal:         subtotal,
		deliveryFee:      deliveryFee,
		urgencySurcharge: urgencySurcharge,
		total:            total,
		isConstructed:    true,
	}, nil
}

// Subtotal returns the sum of all line totals.
func (p Pricing) Subtotal() kernel.Money {
	return p.subtotal
}

// DeliveryFee returns the delivery fee, zero when waived.
func (p Pricing) DeliveryFee() kernel.Money {
	return p.deliveryFee
}

// UrgencySurcharge returns the urgency surcharge, zero for normal handling.
func (p Pricing) UrgencySurcharge() kernel.Money {
	return p.urgencySurcharge
}

// Total returns the grand total.
func (p Pricing) Total() kernel.Money {
	return p.total
}

// Validate ensures the pricing was created via NewPricing.
func (p Pricing) Validate() error {
	if !p.isConstructed {
		return errors.New("Pricing must be created via NewPricing")
	}
	return nil
}
