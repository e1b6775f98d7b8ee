// Package catalognet reads products and delivery terms from the supplier
// catalog service over HTTP. Responses are mapped straight into catalog value
// objects; the fulfillment core never sees the wire shapes.
package catalognet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"golang.org/x/text/currency"
)

var _ ports.CatalogClient = &Client{}

// Client implements ports.CatalogClient against the catalog's HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type productBody struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	UnitPrice        int64  `json:"unit_price"`
	Currency         string `json:"currency"`
	Stock            int    `json:"stock"`
	MinOrderQuantity int    `json:"min_order_quantity"`
}

type deliveryTermsBody struct {
	MinimumOrder          int64  `json:"minimum_order"`
	FreeDeliveryThreshold *int64 `json:"free_delivery_threshold"`
	BaseDeliveryFee       int64  `json:"base_delivery_fee"`
	Currency              string `json:"currency"`
	LeadTimeDays          int    `json:"lead_time_days"`
	DeliveryDays          []int  `json:"delivery_days"`
	UrgentSurcharge       int64  `json:"urgent_surcharge"`
	ExpressSurcharge      int64  `json:"express_surcharge"`
}

// GetProduct fetches one product of a supplier. An unknown product surfaces
// as errs.ErrObjectNotFound.
func (c *Client) GetProduct(ctx context.Context, supplierID, productID kernel.UUID) (catalog.Product, error) {
	url := fmt.Sprintf("%s/v1/suppliers/%s/products/%s", c.baseURL, supplierID, productID)

	var parsed productBody
	if err := c.getJSON(ctx, url, "product", productID.String(), &parsed); err != nil {
		return catalog.Product{}, err
	}

	unit, err := currency.ParseISO(parsed.Currency)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("parse product currency %q: %w", parsed.Currency, err)
	}
	unitPrice, err := kernel.NewMoney(parsed.UnitPrice, unit)
	if err != nil {
		return catalog.Product{}, err
	}
	id, err := kernel.UUIDFromString(parsed.ID)
	if err != nil {
		return catalog.Product{}, err
	}

	return catalog.NewProduct(id, parsed.Name, unitPrice, parsed.Stock, parsed.MinOrderQuantity)
}

// GetDeliveryTerms fetches the supplier's published delivery terms.
func (c *Client) GetDeliveryTerms(ctx context.Context, supplierID kernel.UUID) (catalog.DeliveryTerms, error) {
	url := fmt.Sprintf("%s/v1/suppliers/%s/delivery-terms", c.baseURL, supplierID)

	var parsed deliveryTermsBody
	if err := c.getJSON(ctx, url, "delivery terms", supplierID.String(), &parsed); err != nil {
		return catalog.DeliveryTerms{}, err
	}

	unit, err := currency.ParseISO(parsed.Currency)
	if err != nil {
		return catalog.DeliveryTerms{}, fmt.Errorf("parse terms currency %q: %w", parsed.Currency, err)
	}

	minimumOrder, err := kernel.NewMoney(parsed.MinimumOrder, unit)
	if err != nil {
		return catalog.DeliveryTerms{}, err
	}
	baseDeliveryFee, err := kernel.NewMoney(parsed.BaseDeliveryFee, unit)
	if err != nil {
		return catalog.DeliveryTerms{}, err
	}
	urgent, err := kernel.NewMoney(parsed.UrgentSurcharge, unit)
	if err != nil {
		return catalog.DeliveryTerms{}, err
	}
	express, err := kernel.NewMoney(parsed.ExpressSurcharge, unit)
	if err != nil {
		return catalog.DeliveryTerms{}, err
	}
	surcharges, err := catalog.NewSurchargePolicy(urgent, express)
	if err != nil {
		return catalog.DeliveryTerms{}, err
	}

	var threshold *kernel.Money
	if parsed.FreeDeliveryThreshold != nil {
		m, err := kernel.NewMoney(*parsed.FreeDeliveryThreshold, unit)
		if err != nil {
			return catalog.DeliveryTerms{}, err
		}
		threshold = &m
	}

	days := make([]time.Weekday, 0, len(parsed.DeliveryDays))
	for _, day := range parsed.DeliveryDays {
		days = append(days, time.Weekday(day))
	}

	return catalog.NewDeliveryTerms(minimumOrder, threshold, baseDeliveryFee,
		parsed.LeadTimeDays, days, surcharges)
}

// ReleaseReservation returns reserved stock to the catalog after a
// cancellation.
func (c *Client) ReleaseReservation(ctx context.Context, supplierID, orderID kernel.UUID) error {
	url := fmt.Sprintf("%s/v1/suppliers/%s/reservations/%s/release", c.baseURL, supplierID, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("build release request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("release reservation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("release reservation: %s: %s", resp.Status, bytes.TrimSpace(payload))
	}

	return nil
}

func (c *Client) getJSON(ctx context.Context, url, kind, id string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", kind, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errs.NewObjectNotFoundError(kind, id)
	}
	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("fetch %s: %s: %s", kind, resp.Status, bytes.TrimSpace(payload))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", kind, err)
	}

	return nil
}
