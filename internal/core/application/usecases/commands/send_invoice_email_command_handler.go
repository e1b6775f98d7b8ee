package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
)

// SendInvoiceEmailCommandHandler emails an invoice through the mail relay and
// books the send on the aggregate. Only a confirmed relay acceptance counts:
// on relay failure the call degrades (alert logged, emailSent untouched) and
// still returns success, so the surrounding workflow never fails over a mail
// outage.
type SendInvoiceEmailCommandHandler struct {
	uowFactory UoWFactory
	mailer     ports.InvoiceMailer
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewSendInvoiceEmailCommandHandler creates a handler for invoice emailing.
func NewSendInvoiceEmailCommandHandler(uowFactory UoWFactory, mailer ports.InvoiceMailer,
	publisher ports.EventPublisher, logger *slog.Logger) SendInvoiceEmailCommandHandler {
	return SendInvoiceEmailCommandHandler{
		uowFactory: uowFactory,
		mailer:     mailer,
		publisher:  publisher,
		logger:     logger.With("component", "send_invoice_email"),
	}
}

// Handle renders the artifact from the stored snapshot, hands it to the
// relay, and on confirmation records the send and publishes InvoiceSent.
func (h *SendInvoiceEmailCommandHandler) Handle(ctx context.Context, cmd SendInvoiceEmailCommand) error {
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

	invoiceRepo := uow.InvoiceRepository()
	aggregate, err := invoiceRepo.Get(ctx, cmd.InvoiceID())
	if err != nil {
		return err
	}

	artifact, err := aggregate.RenderArtifact()
	if err != nil {
		return err
	}

	if err := h.mailer.Send(ctx, aggregate, cmd.Recipient(), artifact); err != nil {
		h.logger.Error("invoice email delivery failed, send not recorded",
			"invoice_id", aggregate.ID(), "order_id", aggregate.OrderID(), "error", err)
		return nil
	}

	if _, err = aggregate.RecordEmailSent(); err != nil {
		return err
	}

	if err = invoiceRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err := h.publisher.PublishInvoiceSent(ctx, ports.InvoiceSentEvent{
		InvoiceID:  aggregate.ID(),
		OrderID:    aggregate.OrderID(),
		SendCount:  aggregate.SendCount(),
		OccurredAt: time.Now(),
	}); err != nil {
		h.logger.Error("publishing invoice sent event failed",
			"invoice_id", aggregate.ID(), "error", err)
	}

	return nil
}
