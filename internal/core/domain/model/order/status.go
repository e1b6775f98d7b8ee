package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. The zero value Unknown
// is invalid and helps catch uninitialized statuses coming from persistence
// or the wire.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status assigned at checkout, awaiting supplier confirmation.
	Pending

	// Confirmed means the supplier has accepted the order.
	Confirmed

	// Preparing means the supplier is assembling the goods.
	Preparing

	// ReadyForPickup means the goods are packed and a courier is being requested.
	ReadyForPickup

	// InTransit means a courier has collected the goods. No cancellation from here on.
	InTransit

	// Delivered is the terminal happy-path status.
	Delivered

	// Cancelled is the terminal status for orders abandoned before transit.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Confirmed:      "confirmed",
		Preparing:      "preparing",
		ReadyForPickup: "ready_for_pickup",
		InTransit:      "in_transit",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// getTransitions returns the closed transition table. Any pair not listed
// here is an invalid transition.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {Confirmed, Cancelled},
		Confirmed:      {Preparing, Cancelled},
		Preparing:      {ReadyForPickup, Cancelled},
		ReadyForPickup: {InTransit, Cancelled},
		InTransit:      {Delivered},
		Delivered:      {},
		Cancelled:      {},
	}
}

// StatusFromString parses a status from its wire name (e.g. "ready_for_pickup").
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of the known lifecycle states.
func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the transition table allows moving from s
// to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllowedTargets returns the statuses reachable from s in one transition.
func (s Status) AllowedTargets() []Status {
	targets := getTransitions()[s]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}
