package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
)

// CatalogClient reads product and delivery-term data from the supplier
// catalog service. The catalog is the source of truth for prices and stock;
// the fulfillment core only snapshots what it returns.
type CatalogClient interface {
	// GetProduct fetches one product of a supplier.
	// Returns errs.ErrObjectNotFound for unknown products.
	GetProduct(ctx context.Context, supplierID, productID kernel.UUID) (catalog.Product, error)

	// GetDeliveryTerms fetches the supplier's published delivery terms.
	GetDeliveryTerms(ctx context.Context, supplierID kernel.UUID) (catalog.DeliveryTerms, error)

	// ReleaseReservation returns reserved stock to the catalog after a
	// cancellation. Best effort: failures are logged and retried out of band.
	ReleaseReservation(ctx context.Context, supplierID, orderID kernel.UUID) error
}
