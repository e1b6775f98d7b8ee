package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// SetCartItemQuantityCommandHandler sets a cart line to an absolute quantity
// against the current catalog snapshot.
type SetCartItemQuantityCommandHandler struct {
	cartRepo      ports.CartRepository
	catalogClient ports.CatalogClient
}

// NewSetCartItemQuantityCommandHandler creates a handler for absolute cart line updates.
func NewSetCartItemQuantityCommandHandler(cartRepo ports.CartRepository,
	catalogClient ports.CatalogClient) SetCartItemQuantityCommandHandler {
	return SetCartItemQuantityCommandHandler{
		cartRepo:      cartRepo,
		catalogClient: catalogClient,
	}
}

// Handle loads the cart and the product, sets the quantity and stores the
// cart back.
func (h *SetCartItemQuantityCommandHandler) Handle(ctx context.Context, cmd SetCartItemQuantityCommand) error {
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

	if err := aggregate.SetItemQuantity(product, cmd.Quantity()); err != nil {
		return err
	}

	return h.cartRepo.Save(ctx, aggregate)
}
