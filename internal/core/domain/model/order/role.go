package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Role identifies which party is requesting a lifecycle transition. The
// identity layer resolves it before the call reaches the core; the core
// trusts it as already verified.
type Role int

const (
	// RoleUnknown represents an unresolved or invalid role.
	RoleUnknown Role = iota

	// RoleBuyer is the customer who placed the order.
	RoleBuyer

	// RoleSupplier is the party preparing and confirming the order.
	RoleSupplier

	// RoleDispatch is the delivery-network integration acting on physical
	// hand-over events.
	RoleDispatch
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleBuyer:    "buyer",
		RoleSupplier: "supplier",
		RoleDispatch: "dispatch",
	}
}

// RoleFromString parses a role from its wire name.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if name == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks that the role is one of the known parties.
func (r Role) Validate() error {
	if r != RoleBuyer && r != RoleSupplier && r != RoleDispatch {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name of the role, or "unknown" for invalid values.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// MayDrive reports whether the role is authorized to perform the given
// transition edge. Forward preparation edges belong to the supplier, the
// physical hand-over edges to the dispatch integration, and either buyer or
// supplier may cancel before the goods are in transit.
func (r Role) MayDrive(from, target Status) bool {
	if target == Cancelled {
		return r == RoleBuyer || r == RoleSupplier
	}

	switch {
	case from == Pending && target == Confirmed,
		from == Confirmed && target == Preparing,
		from == Preparing && target == ReadyForPickup:
		return r == RoleSupplier
	case from == ReadyForPickup && target == InTransit,
		from == InTransit && target == Delivered:
		return r == RoleDispatch
	default:
		return false
	}
}
