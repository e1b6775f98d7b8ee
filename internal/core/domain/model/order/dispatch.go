package order

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
)

// ErrDispatchRefIsNotConstructed is returned when a DispatchRef was not
// created through NewDispatchRef.
var ErrDispatchRefIsNotConstructed = errors.New("DispatchRef must be created via NewDispatchRef")

// DispatchRef records a successful courier assignment for an order: the
// tracking identifier issued by the delivery network and the moment the
// assignment was obtained.
type DispatchRef struct {
	trackingID    string
	requestedAt   time.Time
	isConstructed bool
}

// NewDispatchRef creates a dispatch reference. The tracking ID must not be
// empty and the request time must be set.
func NewDispatchRef(trackingID string, requestedAt time.Time) (DispatchRef, error) {
	if trackingID == "" {
		return DispatchRef{}, errs.NewValueIsRequiredError("trackingID")
	}
	if requestedAt.IsZero() {
		return DispatchRef{}, errs.NewValueIsRequiredError("requestedAt")
	}

	return DispatchRef{
		trackingID:    trackingID,
		requestedAt:   requestedAt,
		isConstructed: true,
	}, nil
}

// TrackingID returns the delivery-network tracking identifier.
func (d DispatchRef) TrackingID() string {
	return d.trackingID
}

// RequestedAt returns when the assignment was obtained.
func (d DispatchRef) RequestedAt() time.Time {
	return d.requestedAt
}

// Validate ensures the dispatch reference was created via NewDispatchRef.
func (d DispatchRef) Validate() error {
	if !d.isConstructed {
		return ErrDispatchRefIsNotConstructed
	}
	return nil
}
