package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// PaymentStatus models only the payment state of an order; gateway
// integration lives outside the core.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending means payment has not been confirmed yet.
	PaymentPending

	// PaymentCompleted means payment is confirmed; invoicing becomes possible.
	PaymentCompleted

	// PaymentFailed means the last payment attempt failed. A later attempt may
	// still complete it.
	PaymentFailed
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:   "unknown",
		PaymentPending:   "pending",
		PaymentCompleted: "completed",
		PaymentFailed:    "failed",
	}
}

// PaymentStatusFromString parses a payment status from its wire name.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, name := range getPaymentStatusStrings() {
		if name == s && status != PaymentUnknown {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks that the payment status is one of the known states.
func (ps PaymentStatus) Validate() error {
	if ps != PaymentPending && ps != PaymentCompleted && ps != PaymentFailed {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", ps))
	}
	return nil
}

// String returns the wire name of the payment status.
func (ps PaymentStatus) String() string {
	if s, ok := getPaymentStatusStrings()[ps]; ok {
		return s
	}
	return "unknown"
}

// Payment couples the payment status with the method the buyer chose.
type Payment struct {
	status PaymentStatus
	method string
}

// NewPayment creates a payment record. The method must not be empty.
func NewPayment(status PaymentStatus, method string) (Payment, error) {
	if err := status.Validate(); err != nil {
		return Payment{}, err
	}
	if method == "" {
		return Payment{}, errs.NewValueIsRequiredError("payment method")
	}
	return Payment{status: status, method: method}, nil
}

// Status returns the payment status.
func (p Payment) Status() PaymentStatus {
	return p.status
}

// Method returns the chosen payment method.
func (p Payment) Method() string {
	return p.method
}
