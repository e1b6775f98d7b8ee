// Package dispatchnet talks to the external delivery network's courier API.
// The network is the least reliable dependency in the system, so every call
// goes through a circuit breaker on top of the coordinator's own retries.
package dispatchnet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/sony/gobreaker/v2"
)

var _ ports.DispatchClient = &Client{}

// Client implements ports.DispatchClient against the delivery network's HTTP
// API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[ports.DispatchAssignment]
}

// NewClient creates a dispatch client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[ports.DispatchAssignment](gobreaker.Settings{
		Name: "dispatch-network",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		Timeout: 30 * time.Second,
	})

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    breaker,
	}, nil
}

type courierRequestBody struct {
	OrderID      string `json:"order_id"`
	SupplierID   string `json:"supplier_id"`
	Address      string `json:"address"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	DeliveryDate string `json:"delivery_date"`
	TimeSlot     string `json:"time_slot,omitempty"`
	Urgency      string `json:"urgency"`
}

type courierResponseBody struct {
	TrackingID string    `json:"tracking_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

// RequestCourier asks the delivery network for a courier assignment.
func (c *Client) RequestCourier(ctx context.Context, request ports.DispatchRequest) (ports.DispatchAssignment, error) {
	return c.breaker.Execute(func() (ports.DispatchAssignment, error) {
		return c.requestCourier(ctx, request)
	})
}

func (c *Client) requestCourier(ctx context.Context, request ports.DispatchRequest) (ports.DispatchAssignment, error) {
	body, err := json.Marshal(courierRequestBody{
		OrderID:      request.OrderID.String(),
		SupplierID:   request.SupplierID.String(),
		Address:      request.Address,
		ContactName:  request.ContactName,
		ContactPhone: request.ContactPhone,
		DeliveryDate: request.DeliveryDate.Format("2006-01-02"),
		TimeSlot:     request.TimeSlot,
		Urgency:      request.Urgency.String(),
	})
	if err != nil {
		return ports.DispatchAssignment{}, fmt.Errorf("encode courier request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/couriers", bytes.NewReader(body))
	if err != nil {
		return ports.DispatchAssignment{}, fmt.Errorf("build courier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.DispatchAssignment{}, fmt.Errorf("request courier: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return ports.DispatchAssignment{}, fmt.Errorf("request courier: %s: %s",
			resp.Status, bytes.TrimSpace(payload))
	}

	var parsed courierResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return ports.DispatchAssignment{}, fmt.Errorf("decode courier response: %w", err)
	}
	if parsed.TrackingID == "" {
		return ports.DispatchAssignment{}, fmt.Errorf("courier response has no tracking ID")
	}
	if parsed.AssignedAt.IsZero() {
		parsed.AssignedAt = time.Now()
	}

	return ports.DispatchAssignment{
		TrackingID: parsed.TrackingID,
		AssignedAt: parsed.AssignedAt,
	}, nil
}
