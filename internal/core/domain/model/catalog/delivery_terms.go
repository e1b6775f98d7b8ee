package catalog

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrDeliveryTermsAreNotConstructed is returned when DeliveryTerms were not
	// created through the NewDeliveryTerms constructor.
	ErrDeliveryTermsAreNotConstructed = errors.New("DeliveryTerms must be created via NewDeliveryTerms")

	// ErrSurchargeOrder is returned when the express surcharge does not exceed
	// the urgent one.
	ErrSurchargeOrder = errors.New("express surcharge must be greater than urgent surcharge")

	// ErrSurchargePolicyIsNotConstructed is returned when a SurchargePolicy was
	// not created through NewSurchargePolicy.
	ErrSurchargePolicyIsNotConstructed = errors.New("SurchargePolicy must be created via NewSurchargePolicy")
)

// SurchargePolicy carries the configured add-ons for the expedited urgency
// tiers. Surcharges are additive flat fees, supplied by configuration so the
// pricing calculator stays free of hard-coded amounts.
type SurchargePolicy struct {
	urgent        kernel.Money
	express       kernel.Money
	isConstructed bool
}

// NewSurchargePolicy creates a surcharge policy.
// The express surcharge must be strictly greater than the urgent one.
func NewSurchargePolicy(urgent, express kernel.Money) (SurchargePolicy, error) {
	if err := urgent.Validate(); err != nil {
		return SurchargePolicy{}, err
	}
	if err := express.Validate(); err != nil {
		return SurchargePolicy{}, err
	}

	cmp, err := express.Cmp(urgent)
	if err != nil {
		return SurchargePolicy{}, err
	}
	if cmp <= 0 {
		return SurchargePolicy{}, ErrSurchargeOrder
	}

	return SurchargePolicy{urgent: urgent, express: express, isConstructed: true}, nil
}

// Validate ensures the policy was created via NewSurchargePolicy.
func (sp SurchargePolicy) Validate() error {
	if !sp.isConstructed {
		return ErrSurchargePolicyIsNotConstructed
	}
	return nil
}

// SurchargeFor returns the flat add-on for the given urgency tier.
// Normal urgency maps to a zero surcharge in the policy's currency.
func (sp SurchargePolicy) SurchargeFor(u kernel.Urgency) (kernel.Money, error) {
	if err := sp.Validate(); err != nil {
		return kernel.Money{}, err
	}
	if err := u.Validate(); err != nil {
		return kernel.Money{}, err
	}

	switch u {
	case kernel.UrgencyUrgent:
		return sp.urgent, nil
	case kernel.UrgencyExpress:
		return sp.express, nil
	default:
		return kernel.ZeroMoney(sp.urgent.Currency())
	}
}

// DeliveryTerms is the delivery contract a supplier publishes: the minimum
// order value, an optional free-delivery threshold, the base delivery fee,
// the preparation lead time and the weekdays the supplier delivers on.
// Terms are owned by the supplier catalog; carts and orders only read them.
type DeliveryTerms struct {
	minimumOrder          kernel.Money
	freeDeliveryThreshold *kernel.Money
	baseDeliveryFee       kernel.Money
	leadTimeDays          int
	availableDeliveryDays []time.Weekday
	surcharges            SurchargePolicy
	isConstructed         bool
}

// NewDeliveryTerms creates validated delivery terms.
// freeDeliveryThreshold may be nil when the supplier never waives the fee.
// At least one available delivery weekday is required.
func NewDeliveryTerms(
	minimumOrder kernel.Money,
	freeDeliveryThreshold *kernel.Money,
	baseDeliveryFee kernel.Money,
	leadTimeDays int,
	availableDeliveryDays []time.Weekday,
	surcharges SurchargePolicy,
) (DeliveryTerms, error) {
	if err := minimumOrder.Validate(); err != nil {
		return DeliveryTerms{}, err
	}
	if freeDeliveryThreshold != nil {
		if err := freeDeliveryThreshold.Validate(); err != nil {
			return DeliveryTerms{}, err
		}
	}
	if err := baseDeliveryFee.Validate(); err != nil {
		return DeliveryTerms{}, err
	}
	if leadTimeDays < 0 {
		return DeliveryTerms{}, errs.NewValueIsInvalidErrorWithCause("leadTimeDays",
			fmt.Errorf("%d is negative", leadTimeDays))
	}
	if len(availableDeliveryDays) == 0 {
		return DeliveryTerms{}, errs.NewValueIsRequiredError("availableDeliveryDays")
	}
	if err := surcharges.Validate(); err != nil {
		return DeliveryTerms{}, err
	}

	days := make([]time.Weekday, len(availableDeliveryDays))
	copy(days, availableDeliveryDays)

	terms := DeliveryTerms{
		minimumOrder:          minimumOrder,
		baseDeliveryFee:       baseDeliveryFee,
		leadTimeDays:          leadTimeDays,
		availableDeliveryDays: days,
		surcharges:            surcharges,
		isConstructed:         true,
	}
	if freeDeliveryThreshold != nil {
		threshold := *freeDeliveryThreshold
		terms.freeDeliveryThreshold = &threshold
	}

	return terms, nil
}

// MinimumOrder returns the minimum order subtotal the supplier accepts.
func (dt DeliveryTerms) MinimumOrder() kernel.Money {
	return dt.minimumOrder
}

// FreeDeliveryThreshold returns the subtotal from which delivery is free.
// The second return value is false when the supplier never waives the fee.
func (dt DeliveryTerms) FreeDeliveryThreshold() (kernel.Money, bool) {
	if dt.freeDeliveryThreshold == nil {
		return kernel.Money{}, false
	}
	return *dt.freeDeliveryThreshold, true
}

// BaseDeliveryFee returns the fee charged below the free-delivery threshold.
func (dt DeliveryTerms) BaseDeliveryFee() kernel.Money {
	return dt.baseDeliveryFee
}

// LeadTimeDays returns the preparation time in days before the earliest delivery.
func (dt DeliveryTerms) LeadTimeDays() int {
	return dt.leadTimeDays
}

// Surcharges returns the urgency surcharge policy.
func (dt DeliveryTerms) Surcharges() SurchargePolicy {
	return dt.surcharges
}

// DeliversOn reports whether the supplier delivers on the given weekday.
func (dt DeliveryTerms) DeliversOn(day time.Weekday) bool {
	for _, d := range dt.availableDeliveryDays {
		if d == day {
			return true
		}
	}
	return false
}

// EarliestDeliveryDate returns the first date, counted from now, that honors
// the lead time.
func (dt DeliveryTerms) EarliestDeliveryDate(now time.Time) time.Time {
	return now.AddDate(0, 0, dt.leadTimeDays)
}

// Validate ensures the terms were created via NewDeliveryTerms.
func (dt DeliveryTerms) Validate() error {
	if !dt.isConstructed {
		return ErrDeliveryTermsAreNotConstructed
	}
	return nil
}
