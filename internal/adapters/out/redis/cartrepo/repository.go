// Package cartrepo stores carts in Redis. A cart is a small, short-lived
// working set with last-write-wins semantics, so a single JSON document per
// buyer/supplier pair fits better than relational rows.
package cartrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/text/currency"
)

// cartTTL keeps abandoned carts from accumulating forever.
const cartTTL = 14 * 24 * time.Hour

var _ ports.CartRepository = &RedisCartRepository{}

type itemDocument struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"`
	Currency  string    `json:"currency"`
	Quantity  int       `json:"quantity"`
}

type cartDocument struct {
	BuyerID    uuid.UUID      `json:"buyer_id"`
	SupplierID uuid.UUID      `json:"supplier_id"`
	Items      []itemDocument `json:"items"`
}

// RedisCartRepository implements ports.CartRepository on a Redis client.
type RedisCartRepository struct {
	client *redis.Client
}

// NewRedisCartRepository creates a cart repository over the given client.
func NewRedisCartRepository(client *redis.Client) (*RedisCartRepository, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}

	return &RedisCartRepository{client: client}, nil
}

func cartKey(buyerID, supplierID kernel.UUID) string {
	return fmt.Sprintf("cart:%s:%s", buyerID, supplierID)
}

// Get retrieves the stored cart, or a new empty one when the key is absent.
func (r *RedisCartRepository) Get(ctx context.Context, buyerID, supplierID kernel.UUID) (*cart.Cart, error) {
	if err := errors.Join(buyerID.Validate(), supplierID.Validate()); err != nil {
		return nil, err
	}

	raw, err := r.client.Get(ctx, cartKey(buyerID, supplierID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.NewCart(buyerID, supplierID)
	}
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}

	var doc cartDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}

	items := make([]kernel.LineItem, 0, len(doc.Items))
	for _, itemDoc := range doc.Items {
		unit, err := currency.ParseISO(itemDoc.Currency)
		if err != nil {
			return nil, fmt.Errorf("parse cart item currency %q: %w", itemDoc.Currency, err)
		}
		productID, err := kernel.UUIDFromBytes(itemDoc.ProductID[:])
		if err != nil {
			return nil, err
		}
		unitPrice, err := kernel.NewMoney(itemDoc.UnitPrice, unit)
		if err != nil {
			return nil, err
		}
		item, err := kernel.NewLineItem(productID, itemDoc.Name, unitPrice, itemDoc.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return cart.RestoreCart(buyerID, supplierID, items)
}

// Save stores the cart as one JSON document, replacing any previous state.
func (r *RedisCartRepository) Save(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	snapshot := aggregate.Snapshot()
	doc := cartDocument{
		BuyerID:    aggregate.BuyerID().Bytes(),
		SupplierID: aggregate.SupplierID().Bytes(),
		Items:      make([]itemDocument, 0, len(snapshot)),
	}
	for _, item := range snapshot {
		doc.Items = append(doc.Items, itemDocument{
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().Amount(),
			Currency:  item.UnitPrice().Currency().String(),
			Quantity:  item.Quantity(),
		})
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}

	key := cartKey(aggregate.BuyerID(), aggregate.SupplierID())
	if err := r.client.Set(ctx, key, raw, cartTTL).Err(); err != nil {
		return fmt.Errorf("store cart: %w", err)
	}

	return nil
}

// Delete removes the stored cart. Deleting an absent cart is a no-op.
func (r *RedisCartRepository) Delete(ctx context.Context, buyerID, supplierID kernel.UUID) error {
	if err := errors.Join(buyerID.Validate(), supplierID.Validate()); err != nil {
		return err
	}

	if err := r.client.Del(ctx, cartKey(buyerID, supplierID)).Err(); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	return nil
}
