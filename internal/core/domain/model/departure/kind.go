package departure

import (
	"fmt"

	"tourops/internal/pkg/errs"
)

// Kind distinguishes the two kinds of sellable departures: fixed routes with
// a capacity-limited vehicle, and tours with no capacity limit.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// Route is a fixed-route departure bound to exactly one vehicle.
	// Admission control applies against the vehicle capacity.
	Route

	// Tour is a tour departure without a capacity limit.
	// Admission always succeeds regardless of passenger count.
	Tour
)

// Validate checks if the Kind value is valid.
func (k Kind) Validate() error {
	if k != Route && k != Tour {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%d is not a valid kind", k))
	}
	return nil
}

// String returns the human-readable name of the kind. Implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Route:
		return "Route"
	case Tour:
		return "Tour"
	default:
		return "Unknown"
	}
}
