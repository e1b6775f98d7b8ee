package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
)

// InvoiceRepository defines the persistence contract for invoice aggregates.
type InvoiceRepository interface {
	// Add persists a new invoice aggregate to storage.
	Add(ctx context.Context, aggregate *invoice.Invoice) error

	// Update persists changes to an existing invoice aggregate.
	Update(ctx context.Context, aggregate *invoice.Invoice) error

	// Get retrieves an invoice aggregate by its identifier.
	// Returns errs.ErrObjectNotFound when no such invoice exists.
	Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error)

	// GetByOrder retrieves the invoice generated for an order.
	// Returns errs.ErrObjectNotFound when the order has no invoice yet.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*invoice.Invoice, error)

	// NextNumber reserves and returns the next number in the supplier's
	// monotonic invoice sequence. Must be called inside the same transaction
	// that persists the invoice, so a rollback releases the number.
	NextNumber(ctx context.Context, supplierID kernel.UUID) (int, error)
}
