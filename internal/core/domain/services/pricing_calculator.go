package services

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// ErrBelowMinimumOrder is returned when the cart subtotal does not reach the
// supplier's minimum order value.
var ErrBelowMinimumOrder = errors.New("subtotal is below the supplier minimum order value")

// PricingCalculator computes the checkout price breakdown from cart lines,
// the supplier's delivery terms and the requested urgency tier.
//
// All arithmetic is integer minor units; the calculator introduces no
// rounding of its own. The resulting total is always the exact sum
// subtotal + delivery fee + urgency surcharge, enforced by order.NewPricing.
type PricingCalculator struct{}

// NewPricingCalculator creates a new PricingCalculator.
func NewPricingCalculator() PricingCalculator {
	return PricingCalculator{}
}

// Calculate prices a checkout.
//
// The subtotal is the sum of all line totals. It must reach the supplier's
// minimum order value or the call fails with ErrBelowMinimumOrder. The base
// delivery fee is waived when the supplier publishes a free-delivery
// threshold and the subtotal reaches it; the comparison uses the subtotal
// alone, before fee and surcharge. The urgency surcharge is the flat tier
// add-on from the supplier's policy, zero for normal handling.
func (PricingCalculator) Calculate(items []kernel.LineItem, terms catalog.DeliveryTerms,
	urgency kernel.Urgency) (order.Pricing, error) {
	if err := terms.Validate(); err != nil {
		return order.Pricing{}, err
	}
	if len(items) == 0 {
		return order.Pricing{}, errors.New("cannot price an empty cart")
	}

	subtotal := items[0].LineTotal()
	for _, item := range items[1:] {
		sum, err := subtotal.Add(item.LineTotal())
		if err != nil {
			return order.Pricing{}, err
		}
		subtotal = sum
	}

	cmp, err := subtotal.Cmp(terms.MinimumOrder())
	if err != nil {
		return order.Pricing{}, err
	}
	if cmp < 0 {
		return order.Pricing{}, fmt.Errorf("%w: %s < %s",
			ErrBelowMinimumOrder, subtotal, terms.MinimumOrder())
	}

	deliveryFee := terms.BaseDeliveryFee()
	if threshold, ok := terms.FreeDeliveryThreshold(); ok {
		cmp, err := subtotal.Cmp(threshold)
		if err != nil {
			return order.Pricing{}, err
		}
		if cmp >= 0 {
			deliveryFee, err = kernel.ZeroMoney(deliveryFee.Currency())
			if err != nil {
				return order.Pricing{}, err
			}
		}
	}

	surcharge, err := terms.Surcharges().SurchargeFor(urgency)
	if err != nil {
		return order.Pricing{}, err
	}

	total, err := subtotal.Add(deliveryFee)
	if err != nil {
		return order.Pricing{}, err
	}
	total, err = total.Add(surcharge)
	if err != nil {
		return order.Pricing{}, err
	}

	return order.NewPricing(subtotal, deliveryFee, surcharge, total)
}
