package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// AddCartItemCommandHandler applies a relative quantity change to a cart,
// validating the result against the current catalog snapshot.
type AddCartItemCommandHandler struct {
	cartRepo      ports.CartRepository
	catalogClient ports.CatalogClient
}

// NewAddCartItemCommandHandler creates a handler for cart item additions.
func NewAddCartItemCommandHandler(cartRepo ports.CartRepository,
	catalogClient ports.CatalogClient) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		cartRepo:      cartRepo,
		catalogClient: catalogClient,
	}
}

// Handle loads the cart and the product, applies the delta and stores the
// cart back. The cart store is last-write-wins, no transaction needed.
func (h *AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	product, err := h.catalogClient.GetProduct(ctx, cmd.SupplierID(), cmd.ProductID())
	if err != nil {
		return err
	}

	aggregate, err := h.cartRepo.Get(ctx, cmd.BuyerID(), cmd.SupplierID())
	if err != nil {
		return err
	}

	if err := aggregate.AddItem(product, cmd.DeltaQty()); err != nil {
		return err
	}

	return h.cartRepo.Save(ctx, aggregate)
}
