package kernel

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Urgency is the delivery handling tier requested at checkout. Each tier
// above Normal adds a fixed, configuration-supplied surcharge to the
// delivery fee.
type Urgency int

const (
	// UrgencyUnknown represents an invalid or undefined urgency.
	UrgencyUnknown Urgency = iota

	// UrgencyNormal is standard handling with no surcharge.
	UrgencyNormal

	// UrgencyUrgent is expedited handling with a fixed surcharge.
	UrgencyUrgent

	// UrgencyExpress is the fastest handling tier with the highest surcharge.
	UrgencyExpress
)

func getUrgencyStrings() map[Urgency]string {
	return map[Urgency]string{
		UrgencyUnknown: "Unknown",
		UrgencyNormal:  "Normal",
		UrgencyUrgent:  "Urgent",
		UrgencyExpress: "Express",
	}
}

// UrgencyFromString parses an urgency tier from its case-insensitive name.
func UrgencyFromString(s string) (Urgency, error) {
	switch strings.ToLower(s) {
	case "normal":
		return UrgencyNormal, nil
	case "urgent":
		return UrgencyUrgent, nil
	case "express":
		return UrgencyExpress, nil
	default:
		return UrgencyUnknown, errs.NewValueIsInvalidErrorWithCause("urgency",
			fmt.Errorf("%q is not a valid urgency", s))
	}
}

// Validate checks that the urgency is one of the known tiers.
func (u Urgency) Validate() error {
	if u != UrgencyNormal && u != UrgencyUrgent && u != UrgencyExpress {
		return errs.NewValueIsInvalidErrorWithCause("urgency",
			fmt.Errorf("%d is not a valid urgency", u))
	}
	return nil
}

// String returns the human-readable tier name, or "Unknown" for invalid values.
func (u Urgency) String() string {
	if s, ok := getUrgencyStrings()[u]; ok {
		return s
	}
	return "Unknown"
}
