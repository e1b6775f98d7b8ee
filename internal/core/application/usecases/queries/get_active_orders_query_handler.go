package queries

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler lists non-terminal orders straight from
// Postgres.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler backed by the given
// database.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) (GetActiveOrdersQueryHandler, error) {
	if db == nil {
		return GetActiveOrdersQueryHandler{}, errs.NewValueIsRequiredError("db")
	}

	return GetActiveOrdersQueryHandler{db: db}, nil
}

// Handle lists every order whose status is neither delivered nor cancelled.
func (h GetActiveOrdersQueryHandler) Handle(ctx context.Context, query GetActiveOrdersQuery) (GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetActiveOrdersQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, buyer_id, supplier_id,
		       status, payment_status,
		       total, currency,
		       delivery_date, urgency, dispatch_pending,
		       created_at
		FROM orders
		WHERE status NOT IN ('delivered', 'cancelled')
		ORDER BY created_at DESC`).Rows()
	if err != nil {
		return GetActiveOrdersQueryResponse{}, fmt.Errorf("query active orders: %w", err)
	}
	defer rows.Close()

	var response GetActiveOrdersQueryResponse
	for rows.Next() {
		var (
			id, buyerID, supplierID uuid.UUID
			status, paymentStatus   string
			total                   int64
			currencyCode            string
			deliveryDate            time.Time
			urgency                 string
			dispatchPending         bool
			createdAt               time.Time
		)

		if err := rows.Scan(&id, &buyerID, &supplierID,
			&status, &paymentStatus,
			&total, &currencyCode,
			&deliveryDate, &urgency, &dispatchPending,
			&createdAt); err != nil {
			return GetActiveOrdersQueryResponse{}, fmt.Errorf("scan active order row: %w", err)
		}

		item := ActiveOrderResponse{
			Status:          status,
			PaymentStatus:   paymentStatus,
			Total:           total,
			Currency:        currencyCode,
			DeliveryDate:    deliveryDate,
			Urgency:         urgency,
			DispatchPending: dispatchPending,
			CreatedAt:       createdAt,
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return GetActiveOrdersQueryResponse{}, err
		}
		if item.BuyerID, err = kernel.UUIDFromBytes(buyerID[:]); err != nil {
			return GetActiveOrdersQueryResponse{}, err
		}
		if item.SupplierID, err = kernel.UUIDFromBytes(supplierID[:]); err != nil {
			return GetActiveOrdersQueryResponse{}, err
		}

		response.Orders = append(response.Orders, item)
	}
	if err := rows.Err(); err != nil {
		return GetActiveOrdersQueryResponse{}, fmt.Errorf("iterate active orders: %w", err)
	}

	return response, nil
}
