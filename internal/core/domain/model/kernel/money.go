package kernel

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"

	"golang.org/x/text/currency"
)

var (
	// ErrMoneyIsNotConstructed is returned when a Money value was not created
	// through NewMoney and therefore carries no currency.
	ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney")

	// ErrCurrencyMismatch is returned when arithmetic is attempted on Money
	// values of different currencies.
	ErrCurrencyMismatch = errors.New("money values have different currencies")
)

// Money is a fixed-point monetary amount expressed in integer minor units
// (e.g. cents) of an ISO 4217 currency. All arithmetic stays in integers so
// monetary invariants can be checked with exact equality; the only rounding
// point is ScaleRatio, which rounds half away from zero.
//
// Money is immutable and safe to copy and compare with IsEqual.
type Money struct {
	amount        int64
	currency      currency.Unit
	isConstructed bool
}

// NewMoney creates a Money value of amount minor units in the given currency.
// The amount must not be negative and the currency unit must be set.
func NewMoney(amount int64, unit currency.Unit) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount))
	}
	if unit == (currency.Unit{}) {
		return Money{}, errs.NewValueIsRequiredError("currency")
	}

	return Money{
		amount:        amount,
		currency:      unit,
		isConstructed: true,
	}, nil
}

// ZeroMoney creates a zero amount in the given currency.
func ZeroMoney(unit currency.Unit) (Money, error) {
	return NewMoney(0, unit)
}

// Amount returns the amount in integer minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the ISO 4217 currency unit.
func (m Money) Currency() currency.Unit {
	return m.currency
}

// MinorUnitScale returns the number of minor-unit digits of the currency
// (2 for EUR, 0 for JPY), per the standard rounding conventions.
func (m Money) MinorUnitScale() int {
	scale, _ := currency.Standard.Rounding(m.currency)
	return scale
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsEqual reports whether both amount and currency match.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

// Add returns the sum of two Money values of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.validatePair(other); err != nil {
		return Money{}, err
	}

	return Money{amount: m.amount + other.amount, currency: m.currency, isConstructed: true}, nil
}

// MulQty returns the amount multiplied by a positive quantity.
func (m Money) MulQty(quantity int) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if quantity <= 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return Money{amount: m.amount * int64(quantity), currency: m.currency, isConstructed: true}, nil
}

// ScaleRatio returns amount*num/den rounded half away from zero, keeping the
// result in minor units. den must not be zero.
func (m Money) ScaleRatio(num, den int64) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if den == 0 {
		return Money{}, errs.NewValueIsInvalidError("denominator")
	}

	p := m.amount * num
	q := p / den
	r := p % den
	if r != 0 && abs64(r)*2 >= abs64(den) {
		if (p < 0) != (den < 0) {
			q--
		} else {
			q++
		}
	}

	return Money{amount: q, currency: m.currency, isConstructed: true}, nil
}

// Cmp compares two Money values of the same currency.
// Returns -1, 0 or 1 when m is less than, equal to, or greater than other.
func (m Money) Cmp(other Money) (int, error) {
	if err := m.validatePair(other); err != nil {
		return 0, err
	}

	switch {
	case m.amount < other.amount:
		return -1, nil
	case m.amount > other.amount:
		return 1, nil
	default:
		return 0, nil
	}
}

// String returns the amount in minor units followed by the currency code.
func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.amount, m.currency)
}

// Validate ensures the Money value was created via NewMoney.
func (m Money) Validate() error {
	if !m.isConstructed {
		return ErrMoneyIsNotConstructed
	}
	return nil
}

func (m Money) validatePair(other Money) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := other.Validate(); err != nil {
		return err
	}
	if m.currency != other.currency {
		return ErrCurrencyMismatch
	}
	return nil
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
