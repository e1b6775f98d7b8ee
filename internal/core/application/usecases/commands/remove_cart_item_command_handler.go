package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// RemoveCartItemCommandHandler removes one line from a cart.
type RemoveCartItemCommandHandler struct {
	cartRepo ports.CartRepository
}

// NewRemoveCartItemCommandHandler creates a handler for cart line removals.
func NewRemoveCartItemCommandHandler(cartRepo ports.CartRepository) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{
		cartRepo: cartRepo,
	}
}

// Handle loads the cart, drops the line and stores the cart back. No catalog
// lookup is needed: removal never violates stock or minimum bounds.
func (h *RemoveCartItemCommandHandler) Handle(ctx context.Context, cmd RemoveCartItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := h.cartRepo.Get(ctx, cmd.BuyerID(), cmd.SupplierID())
	if err != nil {
		return err
	}

	aggregate.RemoveItem(cmd.ProductID())

	return h.cartRepo.Save(ctx, aggregate)
}
