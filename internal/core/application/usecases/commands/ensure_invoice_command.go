package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrEnsureInvoiceCommandIsNotConstructed = errors.New(
	"EnsureInvoiceCommand must be created via NewEnsureInvoiceCommand constructor",
)

// EnsureInvoiceCommand requests the invoice for an order, generating it on
// first use. Repeated calls return the same invoice.
type EnsureInvoiceCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewEnsureInvoiceCommand creates a command to ensure an order's invoice exists.
func NewEnsureInvoiceCommand(orderID kernel.UUID) (EnsureInvoiceCommand, error) {
	cmd := EnsureInvoiceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return EnsureInvoiceCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EnsureInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrEnsureInvoiceCommandIsNotConstructed)
}

// OrderID returns the order to invoice.
func (c EnsureInvoiceCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *EnsureInvoiceCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}

	c.orderID = orderID
	return nil
}
