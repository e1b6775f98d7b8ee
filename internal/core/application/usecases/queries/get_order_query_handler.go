package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler serves the order read model straight from Postgres.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler backed by the given database.
func NewGetOrderQueryHandler(db *gorm.DB) (GetOrderQueryHandler, error) {
	if db == nil {
		return GetOrderQueryHandler{}, errs.NewValueIsRequiredError("db")
	}

	return GetOrderQueryHandler{db: db}, nil
}

type orderItemRow struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// Handle loads one order. Returns errs.ErrObjectNotFound when no order
// exists with the requested ID.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT id, buyer_id, supplier_id,
		       status, payment_status, payment_method,
		       items,
		       subtotal, delivery_fee, urgency_surcharge, total, currency,
		       delivery_address, contact_name, contact_phone,
		       delivery_date, time_slot, urgency, instructions,
		       invoice_id, tracking_id, dispatch_pending, dispatch_attempts,
		       cancel_reason, refund_eligible,
		       version, created_at, updated_at
		FROM orders
		WHERE id = ?`, query.OrderID().Bytes()).Row()

	var (
		id, buyerID, supplierID uuid.UUID
		status, paymentStatus   string
		paymentMethod           string
		itemsRaw                []byte
		subtotal, deliveryFee   int64
		surcharge, total        int64
		currencyCode            string
		address, contactName    string
		contactPhone            string
		deliveryDate            time.Time
		timeSlot, urgency       string
		instructions            string
		invoiceID               uuid.NullUUID
		trackingID              sql.NullString
		dispatchPending         bool
		dispatchAttempts        int
		cancelReason            string
		refundEligible          bool
		version                 int
		createdAt, updatedAt    time.Time
	)

	err := row.Scan(&id, &buyerID, &supplierID,
		&status, &paymentStatus, &paymentMethod,
		&itemsRaw,
		&subtotal, &deliveryFee, &surcharge, &total, &currencyCode,
		&address, &contactName, &contactPhone,
		&deliveryDate, &timeSlot, &urgency, &instructions,
		&invoiceID, &trackingID, &dispatchPending, &dispatchAttempts,
		&cancelReason, &refundEligible,
		&version, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, fmt.Errorf("scan order row: %w", err)
	}

	items, err := decodeItems(itemsRaw)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response := GetOrderQueryResponse{
		Status:           status,
		PaymentStatus:    paymentStatus,
		PaymentMethod:    paymentMethod,
		Items:            items,
		Subtotal:         subtotal,
		DeliveryFee:      deliveryFee,
		UrgencySurcharge: surcharge,
		Total:            total,
		Currency:         currencyCode,
		DeliveryAddress:  address,
		ContactName:      contactName,
		ContactPhone:     contactPhone,
		DeliveryDate:     deliveryDate,
		TimeSlot:         timeSlot,
		Urgency:          urgency,
		Instructions:     instructions,
		DispatchPending:  dispatchPending,
		DispatchAttempts: dispatchAttempts,
		CancelReason:     cancelReason,
		RefundEligible:   refundEligible,
		Version:          version,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.BuyerID, err = kernel.UUIDFromBytes(buyerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.SupplierID, err = kernel.UUIDFromBytes(supplierID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if invoiceID.Valid {
		parsed, err := kernel.UUIDFromBytes(invoiceID.UUID[:])
		if err != nil {
			return GetOrderQueryResponse{}, err
		}
		response.InvoiceID = &parsed
	}
	if trackingID.Valid {
		response.TrackingID = &trackingID.String
	}

	return response, nil
}

func decodeItems(raw []byte) ([]OrderItemResponse, error) {
	var rows []orderItemRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}

	items := make([]OrderItemResponse, 0, len(rows))
	for _, r := range rows {
		productID, err := kernel.UUIDFromString(r.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, OrderItemResponse{
			ProductID: productID,
			Name:      r.Name,
			UnitPrice: r.UnitPrice,
			Quantity:  r.Quantity,
			LineTotal: r.UnitPrice * int64(r.Quantity),
		})
	}

	return items, nil
}
