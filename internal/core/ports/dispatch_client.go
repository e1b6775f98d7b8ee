package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// DispatchRequest is the courier request sent to the delivery network when an
// order becomes ready for pickup.
type DispatchRequest struct {
	OrderID      kernel.UUID
	SupplierID   kernel.UUID
	Address      string
	ContactName  string
	ContactPhone string
	DeliveryDate time.Time
	TimeSlot     string
	Urgency      kernel.Urgency
}

// DispatchAssignment is the delivery network's answer to a successful
// courier request.
type DispatchAssignment struct {
	TrackingID string
	AssignedAt time.Time
}

// DispatchClient requests couriers from the external delivery network.
// Implementations bound every call with a timeout; transient failures are the
// caller's problem (the coordinator retries with backoff).
type DispatchClient interface {
	RequestCourier(ctx context.Context, request DispatchRequest) (DispatchAssignment, error)
}
