package cart

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"golang.org/x/text/currency"
)

var (
	// ErrCartIsNotConstructed is returned when a Cart was not created through
	// NewCart or RestoreCart.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart or RestoreCart")

	// ErrQuantityExceedsStock is returned when a mutation would push a line's
	// quantity above the product's available stock.
	ErrQuantityExceedsStock = errors.New("quantity exceeds available stock")

	// ErrQuantityBelowMinimum is returned when a mutation would leave a nonzero
	// quantity below the product's minimum order quantity.
	ErrQuantityBelowMinimum = errors.New("quantity is below the product minimum order quantity")
)

// Cart is the staging aggregate for one buyer/supplier pair. Lines are keyed
// by product; mutations validate stock and minimum-quantity bounds against a
// catalog snapshot and recompute the subtotal immediately. The cart never
// clears itself: the caller clears it only after checkout has succeeded.
type Cart struct {
	buyerID    kernel.UUID
	supplierID kernel.UUID

	items map[kernel.UUID]kernel.LineItem
	// order preserves line insertion order so snapshots are deterministic.
	order []kernel.UUID

	subtotal      kernel.Money
	isConstructed bool
}

// NewCart creates an empty cart scoped to a buyer/supplier pair.
func NewCart(buyerID, supplierID kernel.UUID) (*Cart, error) {
	if err := buyerID.Validate(); err != nil {
		return nil, err
	}
	if err := supplierID.Validate(); err != nil {
		return nil, err
	}

	return &Cart{
		buyerID:       buyerID,
		supplierID:    supplierID,
		items:         make(map[kernel.UUID]kernel.LineItem),
		isConstructed: true,
	}, nil
}

// RestoreCart reconstructs a cart from persistence. Lines are taken as-is;
// the subtotal is recomputed rather than trusted.
func RestoreCart(buyerID, supplierID kernel.UUID, items []kernel.LineItem) (*Cart, error) {
	c, err := NewCart(buyerID, supplierID)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.items[item.ProductID()]; exists {
			return nil, errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("duplicate line for product %s", item.ProductID()))
		}
		if !c.IsEmpty() && item.UnitPrice().Currency() != c.currencyOf() {
			return nil, fmt.Errorf("%w: cart is in %s, line %s is in %s",
				kernel.ErrCurrencyMismatch, c.currencyOf(), item.ProductID(), item.UnitPrice().Currency())
		}
		c.items[item.ProductID()] = item
		c.order = append(c.order, item.ProductID())
	}

	c.recomputeSubtotal()
	return c, nil
}

// BuyerID returns the buyer this cart belongs to.
func (c *Cart) BuyerID() kernel.UUID {
	return c.buyerID
}

// SupplierID returns the supplier this cart is staged against.
func (c *Cart) SupplierID() kernel.UUID {
	return c.supplierID
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Quantity returns the staged quantity for a product, zero when absent.
func (c *Cart) Quantity(productID kernel.UUID) int {
	if item, ok := c.items[productID]; ok {
		return item.Quantity()
	}
	return 0
}

// Subtotal returns the sum of all line totals. It is recomputed on every
// mutation, never lazily.
func (c *Cart) Subtotal() kernel.Money {
	return c.subtotal
}

// AddItem changes a product's staged quantity by deltaQty (which may be
// negative). A resulting quantity of zero removes the line. Fails with
// ErrQuantityExceedsStock or ErrQuantityBelowMinimum when the resulting
// quantity breaks the product's bounds; the cart is left unchanged on error.
func (c *Cart) AddItem(product catalog.Product, deltaQty int) error {
	if deltaQty == 0 {
		return errs.NewValueIsInvalidError("deltaQty")
	}
	return c.SetItemQuantity(product, c.Quantity(product.ID())+deltaQty)
}

// SetItemQuantity sets a product's staged quantity to an absolute value,
// applying the same bounds as AddItem. Zero removes the line; negative
// values are invalid.
func (c *Cart) SetItemQuantity(product catalog.Product, quantity int) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := product.Validate(); err != nil {
		return err
	}

	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is negative", quantity))
	}
	if quantity == 0 {
		c.RemoveItem(product.ID())
		return nil
	}
	if quantity > product.Stock() {
		return fmt.Errorf("%w: %d requested, %d in stock", ErrQuantityExceedsStock, quantity, product.Stock())
	}
	if quantity < product.MinOrderQuantity() {
		return fmt.Errorf("%w: %d requested, minimum is %d", ErrQuantityBelowMinimum, quantity, product.MinOrderQuantity())
	}
	if !c.IsEmpty() && product.UnitPrice().Currency() != c.currencyOf() {
		return fmt.Errorf("%w: cart is in %s, product %s is in %s",
			kernel.ErrCurrencyMismatch, c.currencyOf(), product.ID(), product.UnitPrice().Currency())
	}

	item, err := kernel.NewLineItem(product.ID(), product.Name(), product.UnitPrice(), quantity)
	if err != nil {
		return err
	}

	if _, exists := c.items[product.ID()]; !exists {
		c.order = append(c.order, product.ID())
	}
	c.items[product.ID()] = item
	c.recomputeSubtotal()

	return nil
}

// RemoveItem drops a product's line. Removing an absent product is a no-op.
func (c *Cart) RemoveItem(productID kernel.UUID) {
	if _, exists := c.items[productID]; !exists {
		return
	}

	delete(c.items, productID)
	for i, id := range c.order {
		if id.IsEqual(productID) {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.recomputeSubtotal()
}

// Snapshot returns a defensive copy of the cart lines in insertion order,
// suitable for freezing into an order at checkout. Mutating the cart after
// taking a snapshot does not affect the returned slice.
func (c *Cart) Snapshot() []kernel.LineItem {
	snapshot := make([]kernel.LineItem, 0, len(c.order))
	for _, id := range c.order {
		snapshot = append(snapshot, c.items[id])
	}
	return snapshot
}

// Clear removes all lines. Called by checkout only after the order has been
// durably created.
func (c *Cart) Clear() {
	c.items = make(map[kernel.UUID]kernel.LineItem)
	c.order = nil
	c.recomputeSubtotal()
}

// Validate ensures the cart was created via NewCart or RestoreCart.
func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

// currencyOf returns the currency shared by all cart lines. Only meaningful
// on a non-empty cart.
func (c *Cart) currencyOf() currency.Unit {
	return c.items[c.order[0]].UnitPrice().Currency()
}

func (c *Cart) recomputeSubtotal() {
	c.subtotal = kernel.Money{}
	for _, id := range c.order {
		total := c.items[id].LineTotal()
		if c.subtotal.Validate() != nil {
			c.subtotal = total
			continue
		}
		// all lines share one currency, so Add cannot fail
		sum, _ := c.subtotal.Add(total)
		c.subtotal = sum
	}
}
