package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSendInvoiceEmailCommandIsNotConstructed = errors.New(
	"SendInvoiceEmailCommand must be created via NewSendInvoiceEmailCommand constructor",
)

// SendInvoiceEmailCommand requests an email delivery of an invoice to the
// given recipient address. Re-sending an already sent invoice is allowed.
type SendInvoiceEmailCommand struct { //nolint:recvcheck //using for validation
	invoiceID kernel.UUID
	recipient string

	guard guard.ConstructorGuard
}

// NewSendInvoiceEmailCommand creates a command to email an invoice.
func NewSendInvoiceEmailCommand(invoiceID kernel.UUID, recipient string) (SendInvoiceEmailCommand, error) {
	cmd := SendInvoiceEmailCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setInvoiceID(invoiceID); err != nil {
		return SendInvoiceEmailCommand{}, err
	}
	if err := cmd.setRecipient(recipient); err != nil {
		return SendInvoiceEmailCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SendInvoiceEmailCommand) Validate() error {
	return c.guard.Validate(ErrSendInvoiceEmailCommandIsNotConstructed)
}

// InvoiceID returns the invoice to send.
func (c SendInvoiceEmailCommand) InvoiceID() kernel.UUID {
	return c.invoiceID
}

// Recipient returns the email address the invoice goes to.
func (c SendInvoiceEmailCommand) Recipient() string {
	return c.recipient
}

func (c *SendInvoiceEmailCommand) setInvoiceID(invoiceID kernel.UUID) error {
	if err := invoiceID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("invoiceID", err)
	}

	c.invoiceID = invoiceID
	return nil
}

func (c *SendInvoiceEmailCommand) setRecipient(recipient string) error {
	if recipient == "" {
		return errs.NewValueIsRequiredError("recipient")
	}

	c.recipient = recipient
	return nil
}
