// Package rabbitmq publishes integration events to a topic exchange. Other
// services (notifications, analytics, the supplier portal) bind their own
// queues; this side only guarantees the routing-key contract.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchangeName = "fulfillment.events"

	orderCreatedKey       = "order.created.v1"
	orderStatusChangedKey = "order.status_changed.v1"
	invoiceSentKey        = "invoice.sent.v1"

	publishTimeout = 3 * time.Second
)

var _ ports.EventPublisher = &Publisher{}

// Publisher implements ports.EventPublisher over one AMQP channel.
type Publisher struct {
	channel *amqp.Channel
}

// NewPublisher declares the topic exchange and returns a publisher bound to
// the given channel.
func NewPublisher(channel *amqp.Channel) (*Publisher, error) {
	if channel == nil {
		return nil, errs.NewValueIsRequiredError("channel")
	}

	err := channel.ExchangeDeclare(exchangeName, "topic",
		true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchangeName, err)
	}

	return &Publisher{channel: channel}, nil
}

type orderCreatedMessage struct {
	OrderID    string    `json:"order_id"`
	BuyerID    string    `json:"buyer_id"`
	SupplierID string    `json:"supplier_id"`
	Total      int64     `json:"total"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}

type orderStatusChangedMessage struct {
	OrderID    string    `json:"order_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}

type invoiceSentMessage struct {
	InvoiceID  string    `json:"invoice_id"`
	OrderID    string    `json:"order_id"`
	SendCount  int       `json:"send_count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PublishOrderCreated pushes an order.created.v1 event.
func (p *Publisher) PublishOrderCreated(ctx context.Context, event ports.OrderCreatedEvent) error {
	return p.publish(ctx, orderCreatedKey, orderCreatedMessage{
		OrderID:    event.OrderID.String(),
		BuyerID:    event.BuyerID.String(),
		SupplierID: event.SupplierID.String(),
		Total:      event.Total,
		Currency:   event.Currency,
		OccurredAt: event.OccurredAt,
	})
}

// PublishOrderStatusChanged pushes an order.status_changed.v1 event.
func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, event ports.OrderStatusChangedEvent) error {
	return p.publish(ctx, orderStatusChangedKey, orderStatusChangedMessage{
		OrderID:    event.OrderID.String(),
		From:       event.From.String(),
		To:         event.To.String(),
		OccurredAt: event.OccurredAt,
	})
}

// PublishInvoiceSent pushes an invoice.sent.v1 event.
func (p *Publisher) PublishInvoiceSent(ctx context.Context, event ports.InvoiceSentEvent) error {
	return p.publish(ctx, invoiceSentKey, invoiceSentMessage{
		InvoiceID:  event.InvoiceID.String(),
		OrderID:    event.OrderID.String(),
		SendCount:  event.SendCount,
		OccurredAt: event.OccurredAt,
	})
}

func (p *Publisher) publish(ctx context.Context, routingKey string, message any) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", routingKey, err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(ctx, exchangeName, routingKey, false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("publish %s event: %w", routingKey, err)
	}

	return nil
}
