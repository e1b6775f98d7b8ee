package catalog

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrProductIsNotConstructed is returned when a Product was not created
// through the NewProduct constructor.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct")

// Product is a snapshot of one catalog entry at the moment the catalog was
// queried: unit price, available stock and the supplier's minimum order
// quantity for the product. Later catalog changes never reach snapshots that
// were already taken.
type Product struct {
	id               kernel.UUID
	name             string
	unitPrice        kernel.Money
	stock            int
	minOrderQuantity int
	isConstructed    bool
}

// NewProduct creates a validated product snapshot.
// Stock must not be negative and the minimum order quantity must be at least 1.
func NewProduct(id kernel.UUID, name string, unitPrice kernel.Money, stock, minOrderQuantity int) (Product, error) {
	if err := id.Validate(); err != nil {
		return Product{}, err
	}
	if name == "" {
		return Product{}, errs.NewValueIsRequiredError("name")
	}
	if err := unitPrice.Validate(); err != nil {
		return Product{}, err
	}
	if stock < 0 {
		return Product{}, errs.NewValueIsInvalidErrorWithCause("stock",
			fmt.Errorf("%d is negative", stock))
	}
	if minOrderQuantity < 1 {
		return Product{}, errs.NewValueIsInvalidErrorWithCause("minOrderQuantity",
			fmt.Errorf("%d is not greater than 0", minOrderQuantity))
	}

	return Product{
		id:               id,
		name:             name,
		unitPrice:        unitPrice,
		stock:            stock,
		minOrderQuantity: minOrderQuantity,
		isConstructed:    true,
	}, nil
}

// ID returns the product identifier.
func (p Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product display name.
func (p Product) Name() string {
	return p.name
}

// UnitPrice returns the current catalog price per unit.
func (p Product) UnitPrice() kernel.Money {
	return p.unitPrice
}

// Stock returns the units currently available for ordering.
func (p Product) Stock() int {
	return p.stock
}

// MinOrderQuantity returns the smallest quantity the supplier sells.
func (p Product) MinOrderQuantity() int {
	return p.minOrderQuantity
}

// Validate ensures the product was created via NewProduct.
func (p Product) Validate() error {
	if !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}
