package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderCreatedEvent is published once per successful checkout.
type OrderCreatedEvent struct {
	OrderID    kernel.UUID
	BuyerID    kernel.UUID
	SupplierID kernel.UUID
	Total      int64
	Currency   string
	OccurredAt time.Time
}

// OrderStatusChangedEvent is published once per real status change; idempotent
// no-op transitions publish nothing.
type OrderStatusChangedEvent struct {
	OrderID    kernel.UUID
	From       order.Status
	To         order.Status
	OccurredAt time.Time
}

// InvoiceSentEvent is published once per confirmed invoice email send.
type InvoiceSentEvent struct {
	InvoiceID  kernel.UUID
	OrderID    kernel.UUID
	SendCount  int
	OccurredAt time.Time
}

// EventPublisher pushes integration events to the message broker. Publishing
// is a collaborator notification: implementations log failures but callers
// never fail their command over a lost event.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error
	PublishOrderStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error
	PublishInvoiceSent(ctx context.Context, event InvoiceSentEvent) error
}
