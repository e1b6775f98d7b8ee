package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetInvoiceArtifactQueryIsNotConstructed = errors.New(
	"GetInvoiceArtifactQuery must be created via NewGetInvoiceArtifactQuery constructor",
)

// GetInvoiceArtifactQuery retrieves the rendered document of one invoice.
type GetInvoiceArtifactQuery struct {
	invoiceID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetInvoiceArtifactQuery creates a query for one invoice artifact.
func NewGetInvoiceArtifactQuery(invoiceID kernel.UUID) (GetInvoiceArtifactQuery, error) {
	if err := invoiceID.Validate(); err != nil {
		return GetInvoiceArtifactQuery{}, errs.NewValueIsInvalidErrorWithCause("invoiceID", err)
	}

	return GetInvoiceArtifactQuery{
		invoiceID: invoiceID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetInvoiceArtifactQuery) Validate() error {
	return q.guard.Validate(ErrGetInvoiceArtifactQueryIsNotConstructed)
}

// InvoiceID returns the invoice to render.
func (q GetInvoiceArtifactQuery) InvoiceID() kernel.UUID {
	return q.invoiceID
}

// GetInvoiceArtifactQueryResponse carries the rendered document and its
// display number.
type GetInvoiceArtifactQueryResponse struct {
	DisplayNumber string
	Artifact      string
}

// GetInvoiceArtifactQueryHandler renders the invoice document. Rendering is
// deterministic, so it goes through the aggregate instead of a read model.
type GetInvoiceArtifactQueryHandler struct {
	invoiceRepo ports.InvoiceRepository
}

// NewGetInvoiceArtifactQueryHandler creates a handler over the invoice
// repository.
func NewGetInvoiceArtifactQueryHandler(invoiceRepo ports.InvoiceRepository) (GetInvoiceArtifactQueryHandler, error) {
	if invoiceRepo == nil {
		return GetInvoiceArtifactQueryHandler{}, errs.NewValueIsRequiredError("invoiceRepo")
	}

	return GetInvoiceArtifactQueryHandler{invoiceRepo: invoiceRepo}, nil
}

// Handle loads the invoice and renders its artifact.
func (h GetInvoiceArtifactQueryHandler) Handle(ctx context.Context, query GetInvoiceArtifactQuery) (GetInvoiceArtifactQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetInvoiceArtifactQueryResponse{}, err
	}

	inv, err := h.invoiceRepo.Get(ctx, query.InvoiceID())
	if err != nil {
		return GetInvoiceArtifactQueryResponse{}, err
	}

	artifact, err := inv.RenderArtifact()
	if err != nil {
		return GetInvoiceArtifactQueryResponse{}, err
	}

	return GetInvoiceArtifactQueryResponse{
		DisplayNumber: inv.DisplayNumber(),
		Artifact:      artifact,
	}, nil
}
