package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSetCartItemQuantityCommandIsNotConstructed = errors.New(
	"SetCartItemQuantityCommand must be created via NewSetCartItemQuantityCommand constructor",
)

// SetCartItemQuantityCommand sets a cart line to an absolute quantity.
// Zero removes the line.
type SetCartItemQuantityCommand struct { //nolint:recvcheck //using for validation
	buyerID    kernel.UUID
	supplierID kernel.UUID
	productID  kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

// NewSetCartItemQuantityCommand creates a command to set a cart line quantity.
func NewSetCartItemQuantityCommand(buyerID, supplierID, productID kernel.UUID, quantity int) (SetCartItemQuantityCommand, error) {
	cmd := SetCartItemQuantityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBuyerID(buyerID),
		cmd.setSupplierID(supplierID),
		cmd.setProductID(productID),
		cmd.setQuantity(quantity),
	); err != nil {
		return SetCartItemQuantityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCartItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrSetCartItemQuantityCommandIsNotConstructed)
}

// BuyerID returns the cart owner.
func (c SetCartItemQuantityCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// SupplierID returns the supplier the cart is staged against.
func (c SetCartItemQuantityCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

// ProductID returns the product whose line changes.
func (c SetCartItemQuantityCommand) ProductID() kernel.UUID {
	return c.productID
}

// Quantity returns the absolute target quantity.
func (c SetCartItemQuantityCommand) Quantity() int {
	return c.quantity
}

func (c *SetCartItemQuantityCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("buyerID", err)
	}

	c.buyerID = buyerID
	return nil
}

func (c *SetCartItemQuantityCommand) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("supplierID", err)
	}

	c.supplierID = supplierID
	return nil
}

func (c *SetCartItemQuantityCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("productID", err)
	}

	c.productID = productID
	return nil
}

func (c *SetCartItemQuantityCommand) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is negative", quantity))
	}

	c.quantity = quantity
	return nil
}
