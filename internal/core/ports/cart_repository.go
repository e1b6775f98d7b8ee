package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for carts. Carts live in a
// fast store outside the relational transaction; a buyer/supplier pair has at
// most one cart and writes are last-write-wins.
type CartRepository interface {
	// Get retrieves the cart for a buyer/supplier pair, or a new empty cart
	// when none is stored yet.
	Get(ctx context.Context, buyerID, supplierID kernel.UUID) (*cart.Cart, error)

	// Save stores the cart, replacing any previous state.
	Save(ctx context.Context, aggregate *cart.Cart) error

	// Delete removes the stored cart. Deleting an absent cart is a no-op.
	Delete(ctx context.Context, buyerID, supplierID kernel.UUID) error
}
