package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkPaymentCommandIsNotConstructed = errors.New(
	"MarkPaymentCommand must be created via NewMarkPaymentCommand constructor",
)

// MarkPaymentCommand records the outcome reported by the payment gateway.
type MarkPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.PaymentStatus

	guard guard.ConstructorGuard
}

// NewMarkPaymentCommand creates a command to set an order's payment status.
func NewMarkPaymentCommand(orderID kernel.UUID, status order.PaymentStatus) (MarkPaymentCommand, error) {
	cmd := MarkPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
	); err != nil {
		return MarkPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkPaymentCommand) Validate() error {
	return c.guard.Validate(ErrMarkPaymentCommandIsNotConstructed)
}

// OrderID returns the order whose payment status changes.
func (c MarkPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the reported payment status.
func (c MarkPaymentCommand) Status() order.PaymentStatus {
	return c.status
}

func (c *MarkPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}

	c.orderID = orderID
	return nil
}

func (c *MarkPaymentCommand) setStatus(status order.PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
