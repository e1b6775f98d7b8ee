package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// DispatchRequester triggers a courier request for an order. Implemented by
// the dispatch coordinator; the first attempt runs synchronously and retries
// continue in the background, so Handle never blocks on the network for long.
type DispatchRequester interface {
	RequestDispatch(ctx context.Context, orderID kernel.UUID) error
}

// ChangeOrderStatusCommandHandler performs one lifecycle transition and fires
// the transition hooks. Hooks run only after the commit and only when the
// state actually changed, so an idempotent replay of the same transition
// never triggers a second courier request or a duplicate event.
type ChangeOrderStatusCommandHandler struct {
	uowFactory    OrderUoWFactory
	publisher     ports.EventPublisher
	dispatcher    DispatchRequester
	catalogClient ports.CatalogClient
	logger        *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory,
	publisher ports.EventPublisher, dispatcher DispatchRequester,
	catalogClient ports.CatalogClient, logger *slog.Logger) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory:    uowFactory,
		publisher:     publisher,
		dispatcher:    dispatcher,
		catalogClient: catalogClient,
		logger:        logger.With("component", "change_order_status"),
	}
}

// Handle loads the order, applies the transition and persists it under the
// optimistic version guard. A concurrent writer surfaces as
// errs.ErrVersionIsInvalid from Update; callers retry against fresh state.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	from := aggregate.Status()
	changed, err := aggregate.TransitionTo(cmd.Target(), cmd.Actor(), cmd.Reason(), time.Now())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.fireHooks(ctx, aggregate, from)
	return nil
}

// fireHooks runs the post-commit side effects of a real status change. All
// of them are collaborator notifications: failures are logged, never
// propagated to the transition caller.
func (h *ChangeOrderStatusCommandHandler) fireHooks(ctx context.Context, aggregate *order.Order, from order.Status) {
	if err := h.publisher.PublishOrderStatusChanged(ctx, ports.OrderStatusChangedEvent{
		OrderID:    aggregate.ID(),
		From:       from,
		To:         aggregate.Status(),
		OccurredAt: aggregate.UpdatedAt(),
	}); err != nil {
		h.logger.Error("publishing status changed event failed",
			"order_id", aggregate.ID(), "error", err)
	}

	switch aggregate.Status() {
	case order.ReadyForPickup:
		if !aggregate.IsDispatchPending() {
			return
		}
		if err := h.dispatcher.RequestDispatch(ctx, aggregate.ID()); err != nil {
			h.logger.Error("triggering dispatch request failed",
				"order_id", aggregate.ID(), "error", err)
		}
	case order.Cancelled:
		if err := h.catalogClient.ReleaseReservation(ctx, aggregate.SupplierID(), aggregate.ID()); err != nil {
			h.logger.Error("releasing stock reservation failed",
				"order_id", aggregate.ID(), "error", err)
		}
	}
}
