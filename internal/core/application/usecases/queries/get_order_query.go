// Package queries contains the read-side operations of the fulfillment core.
// Query handlers read straight from the database with raw SQL, bypassing the
// aggregates: the write side owns invariants, the read side owns shape.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the full read model of one order.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to read.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItemResponse is one line of the order read model.
type OrderItemResponse struct {
	ProductID kernel.UUID
	Name      string
	UnitPrice int64
	Quantity  int
	LineTotal int64
}

// GetOrderQueryResponse is the full order read model served to clients.
type GetOrderQueryResponse struct {
	ID         kernel.UUID
	BuyerID    kernel.UUID
	SupplierID kernel.UUID

	Status        string
	PaymentStatus string
	PaymentMethod string

	Items []OrderItemResponse

	Subtotal         int64
	DeliveryFee      int64
	UrgencySurcharge int64
	Total            int64
	Currency         string

	DeliveryAddress string
	ContactName     string
	ContactPhone    string
	DeliveryDate    time.Time
	TimeSlot        string
	Urgency         string
	Instructions    string

	InvoiceID        *kernel.UUID
	TrackingID       *string
	DispatchPending  bool
	DispatchAttempts int

	CancelReason   string
	RefundEligible bool

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}
