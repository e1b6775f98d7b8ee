package commands

import (
	"context"
	"time"
)

// MarkPaymentCommandHandler records payment gateway outcomes on the order.
type MarkPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkPaymentCommandHandler creates a handler for payment updates.
func NewMarkPaymentCommandHandler(uowFactory OrderUoWFactory) MarkPaymentCommandHandler {
	return MarkPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, sets the payment status and persists it under the
// optimistic version guard.
func (h *MarkPaymentCommandHandler) Handle(ctx context.Context, cmd MarkPaymentCommand) error {
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

	if err = aggregate.SetPaymentStatus(cmd.Status(), time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
