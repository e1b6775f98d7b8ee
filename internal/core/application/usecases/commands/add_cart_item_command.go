package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAddCartItemCommandIsNotConstructed = errors.New(
		"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
	)
	ErrDeltaQtyIsZero = errors.New("deltaQty must not be zero")
)

// AddCartItemCommand requests a relative quantity change for one product in
// the buyer's cart with a supplier. A negative delta lowers the staged
// quantity; reaching zero removes the line.
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	buyerID    kernel.UUID
	supplierID kernel.UUID
	productID  kernel.UUID
	deltaQty   int

	guard guard.ConstructorGuard
}

// NewAddCartItemCommand creates a command to change a cart line by deltaQty.
func NewAddCartItemCommand(buyerID, supplierID, productID kernel.UUID, deltaQty int) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBuyerID(buyerID),
		cmd.setSupplierID(supplierID),
		cmd.setProductID(productID),
		cmd.setDeltaQty(deltaQty),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

// BuyerID returns the cart owner.
func (c AddCartItemCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// SupplierID returns the supplier the cart is staged against.
func (c AddCartItemCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

// ProductID returns the product whose line changes.
func (c AddCartItemCommand) ProductID() kernel.UUID {
	return c.productID
}

// DeltaQty returns the signed quantity change.
func (c AddCartItemCommand) DeltaQty() int {
	return c.deltaQty
}

func (c *AddCartItemCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("buyerID", err)
	}

	c.buyerID = buyerID
	return nil
}

func (c *AddCartItemCommand) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("supplierID", err)
	}

	c.supplierID = supplierID
	return nil
}

func (c *AddCartItemCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("productID", err)
	}

	c.productID = productID
	return nil
}

func (c *AddCartItemCommand) setDeltaQty(deltaQty int) error {
	if deltaQty == 0 {
		return ErrDeltaQtyIsZero
	}

	c.deltaQty = deltaQty
	return nil
}
