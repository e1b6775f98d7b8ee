package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/invoice"
)

// InvoiceMailer delivers invoice documents through the mail relay to the
// recipient address chosen by the caller. A nil return confirms the relay
// accepted the message; only confirmed sends count toward the invoice's send
// bookkeeping.
type InvoiceMailer interface {
	Send(ctx context.Context, aggregate *invoice.Invoice, recipient, artifact string) error
}
