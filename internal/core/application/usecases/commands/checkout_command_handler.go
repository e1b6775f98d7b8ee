package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

var (
	// ErrCartIsEmpty is returned when checkout is attempted on an empty cart.
	ErrCartIsEmpty = errors.New("cart is empty")

	// ErrDeliveryDateTooSoon is returned when the requested delivery date is
	// inside the supplier's preparation lead time.
	ErrDeliveryDateTooSoon = errors.New("delivery date is inside the supplier lead time")

	// ErrDeliveryDayUnavailable is returned when the supplier does not deliver
	// on the requested weekday.
	ErrDeliveryDayUnavailable = errors.New("supplier does not deliver on the requested day")
)

// CheckoutCommandHandler turns a cart into a pending order: validates the
// delivery date against the supplier's terms, prices the cart, persists the
// order and only then clears the cart and announces the creation.
type CheckoutCommandHandler struct {
	uowFactory    OrderUoWFactory
	cartRepo      ports.CartRepository
	catalogClient ports.CatalogClient
	publisher     ports.EventPublisher
	calculator    services.PricingCalculator
	logger        *slog.Logger
}

// NewCheckoutCommandHandler creates a handler for checkouts.
func NewCheckoutCommandHandler(uowFactory OrderUoWFactory, cartRepo ports.CartRepository,
	catalogClient ports.CatalogClient, publisher ports.EventPublisher,
	logger *slog.Logger) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory:    uowFactory,
		cartRepo:      cartRepo,
		catalogClient: catalogClient,
		publisher:     publisher,
		calculator:    services.NewPricingCalculator(),
		logger:        logger.With("component", "checkout"),
	}
}

// Handle processes the checkout. The pricing failure modes (below minimum
// order, invalid urgency) and the delivery date checks all surface before the
// transaction opens; once the order row is committed, the cart deletion and
// the created event are best effort.
func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := h.cartRepo.Get(ctx, cmd.BuyerID(), cmd.SupplierID())
	if err != nil {
		return err
	}
	if aggregate.IsEmpty() {
		return ErrCartIsEmpty
	}

	terms, err := h.catalogClient.GetDeliveryTerms(ctx, cmd.SupplierID())
	if err != nil {
		return err
	}

	now := time.Now()
	if err := validateDeliveryDate(cmd.DeliveryDate(), terms.EarliestDeliveryDate(now), terms); err != nil {
		return err
	}

	items := aggregate.Snapshot()
	pricing, err := h.calculator.Calculate(items, terms, cmd.Urgency())
	if err != nil {
		return err
	}

	delivery, err := order.NewDelivery(cmd.Address(), cmd.ContactName(), cmd.ContactPhone(),
		cmd.DeliveryDate(), cmd.TimeSlot(), cmd.Urgency(), cmd.Instructions())
	if err != nil {
		return err
	}

	payment, err := order.NewPayment(order.PaymentPending, cmd.PaymentMethod())
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.BuyerID(), cmd.SupplierID(),
		items, pricing, delivery, payment, now)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// The order is durable from here on. A cart left behind or a lost event
	// is an operational nuisance, not a checkout failure.
	if err := h.cartRepo.Delete(ctx, cmd.BuyerID(), cmd.SupplierID()); err != nil {
		h.logger.Error("clearing cart after checkout failed",
			"order_id", newOrder.ID(), "error", err)
	}

	if err := h.publisher.PublishOrderCreated(ctx, ports.OrderCreatedEvent{
		OrderID:    newOrder.ID(),
		BuyerID:    newOrder.BuyerID(),
		SupplierID: newOrder.SupplierID(),
		Total:      newOrder.Pricing().Total().Amount(),
		Currency:   newOrder.Pricing().Total().Currency().String(),
		OccurredAt: now,
	}); err != nil {
		h.logger.Error("publishing order created event failed",
			"order_id", newOrder.ID(), "error", err)
	}

	return nil
}

func validateDeliveryDate(requested, earliest time.Time, terms catalog.DeliveryTerms) error {
	if dateOnly(requested).Before(dateOnly(earliest)) {
		return fmt.Errorf("%w: earliest is %s", ErrDeliveryDateTooSoon,
			dateOnly(earliest).Format("2006-01-02"))
	}
	if !terms.DeliversOn(requested.Weekday()) {
		return fmt.Errorf("%w: %s", ErrDeliveryDayUnavailable, requested.Weekday())
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
