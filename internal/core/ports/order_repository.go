// Package ports defines the contracts between the application core and the
// infrastructure adapters: repositories, the unit of work, and the outbound
// clients for the catalog, the delivery network, the mail relay and the event
// broker.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The write is
	// guarded by the aggregate's version: when another writer got in between,
	// Update fails with errs.ErrVersionIsInvalid and nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its identifier.
	// Returns errs.ErrObjectNotFound when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllAwaitingDispatch retrieves orders that are ready for pickup and
	// still waiting for a courier assignment. The recovery sweep uses it to
	// pick up requests lost to crashes or exhausted retries.
	GetAllAwaitingDispatch(ctx context.Context) ([]*order.Order, error)
}
