package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery lists every order that has not reached a terminal
// status yet, newest first.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for all active orders.
func NewGetActiveOrdersQuery() (GetActiveOrdersQuery, error) {
	return GetActiveOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// ActiveOrderResponse is one row of the active-orders listing. It carries
// just enough for a board view; GetOrderQuery serves the detail.
type ActiveOrderResponse struct {
	ID         kernel.UUID
	BuyerID    kernel.UUID
	SupplierID kernel.UUID

	Status        string
	PaymentStatus string

	Total    int64
	Currency string

	DeliveryDate    time.Time
	Urgency         string
	DispatchPending bool

	CreatedAt time.Time
}

// GetActiveOrdersQueryResponse wraps the listing rows.
type GetActiveOrdersQueryResponse struct {
	Orders []ActiveOrderResponse
}
