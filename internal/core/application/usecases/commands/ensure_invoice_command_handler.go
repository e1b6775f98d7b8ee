package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// EnsureInvoiceCommandHandler generates an order's invoice exactly once.
// The sequence reservation, the invoice row and the order's invoice link all
// commit in one transaction, so a crash mid-way leaves no half-generated
// invoice and no burnt sequence number.
type EnsureInvoiceCommandHandler struct {
	uowFactory UoWFactory
}

// NewEnsureInvoiceCommandHandler creates a handler for invoice generation.
func NewEnsureInvoiceCommandHandler(uowFactory UoWFactory) EnsureInvoiceCommandHandler {
	return EnsureInvoiceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the order's invoice, generating it when none exists yet.
// Generation requires a completed payment; otherwise the call fails with
// invoice.ErrPaymentNotCompleted and nothing is written.
func (h *EnsureInvoiceCommandHandler) Handle(ctx context.Context, cmd EnsureInvoiceCommand) (*invoice.Invoice, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoiceRepo := uow.InvoiceRepository()
	existing, err := invoiceRepo.GetByOrder(ctx, cmd.OrderID())
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if aggregate.Payment().Status() != order.PaymentCompleted {
		return nil, invoice.ErrPaymentNotCompleted
	}

	number, err := invoiceRepo.NextNumber(ctx, aggregate.SupplierID())
	if err != nil {
		return nil, err
	}

	newInvoice, err := invoice.NewInvoice(kernel.NewUUID(), aggregate.ID(), aggregate.BuyerID(),
		aggregate.SupplierID(), number, aggregate.Items(), aggregate.Pricing(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = invoiceRepo.Add(ctx, newInvoice); err != nil {
		return nil, err
	}

	if err = aggregate.AttachInvoice(newInvoice.ID()); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newInvoice, nil
}
