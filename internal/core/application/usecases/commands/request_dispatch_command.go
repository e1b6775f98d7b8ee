package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRequestDispatchCommandIsNotConstructed = errors.New(
	"RequestDispatchCommand must be created via NewRequestDispatchCommand constructor",
)

// RequestDispatchCommand triggers the courier workflow for one order. Used by
// the recovery sweep and operators re-poking a stuck order.
type RequestDispatchCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequestDispatchCommand creates a command to request a courier for an order.
func NewRequestDispatchCommand(orderID kernel.UUID) (RequestDispatchCommand, error) {
	cmd := RequestDispatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return RequestDispatchCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestDispatchCommand) Validate() error {
	return c.guard.Validate(ErrRequestDispatchCommandIsNotConstructed)
}

// OrderID returns the order to request a courier for.
func (c RequestDispatchCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *RequestDispatchCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}

	c.orderID = orderID
	return nil
}
