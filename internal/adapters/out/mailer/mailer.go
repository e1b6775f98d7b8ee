// Package mailer delivers invoice documents through the HTTP mail relay.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var _ ports.InvoiceMailer = &RelayMailer{}

// RelayMailer implements ports.InvoiceMailer against the mail relay's HTTP
// API. A 2xx answer means the relay accepted the message; anything else is a
// failed send and the caller's bookkeeping stays untouched.
type RelayMailer struct {
	baseURL    string
	httpClient *http.Client
}

// NewRelayMailer creates a mailer for the given relay base URL.
func NewRelayMailer(baseURL string, timeout time.Duration) (*RelayMailer, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &RelayMailer{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type sendBody struct {
	Recipient     string `json:"recipient"`
	BuyerID       string `json:"buyer_id"`
	InvoiceNumber string `json:"invoice_number"`
	Subject       string `json:"subject"`
	Body          string `json:"body"`
}

// Send submits the rendered invoice to the relay, addressed to recipient.
func (m *RelayMailer) Send(ctx context.Context, aggregate *invoice.Invoice, recipient, artifact string) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if recipient == "" {
		return errs.NewValueIsRequiredError("recipient")
	}

	body, err := json.Marshal(sendBody{
		Recipient:     recipient,
		BuyerID:       aggregate.BuyerID().String(),
		InvoiceNumber: aggregate.DisplayNumber(),
		Subject:       fmt.Sprintf("Invoice %s", aggregate.DisplayNumber()),
		Body:          artifact,
	})
	if err != nil {
		return fmt.Errorf("encode invoice mail: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		m.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build invoice mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send invoice mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("send invoice mail: %s: %s", resp.Status, bytes.TrimSpace(payload))
	}

	return nil
}
