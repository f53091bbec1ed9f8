package departure

import (
	"fmt"

	"tourops/internal/pkg/errs"
)

// CapacitySnapshot is a pure view over a route departure's capacity and its
// active occupancy at one committed point in time. Derived figures (available
// seats, occupancy percentage) are explicit functions over the snapshot, not
// implicit properties of a persisted record.
//
// The snapshot carries no liveness guarantee; admission decisions must be
// made against a snapshot read under the departure's row lock.
type CapacitySnapshot struct {
	capacity  int
	occupancy int
}

// NewCapacitySnapshot creates a snapshot of (capacity, occupancy).
// Capacity must be positive and occupancy non-negative.
func NewCapacitySnapshot(capacity, occupancy int) (CapacitySnapshot, error) {
	if capacity <= 0 {
		return CapacitySnapshot{}, errs.NewValueIsInvalidErrorWithCause(
			"capacity",
			fmt.Errorf("%d is not greater than 0", capacity),
		)
	}
	if occupancy < 0 {
		return CapacitySnapshot{}, errs.NewValueIsInvalidErrorWithCause(
			"occupancy",
			fmt.Errorf("%d is negative", occupancy),
		)
	}

	return CapacitySnapshot{capacity: capacity, occupancy: occupancy}, nil
}

// Capacity returns the vehicle's seat capacity.
func (s CapacitySnapshot) Capacity() int {
	return s.capacity
}

// Occupancy returns the sum of passengers across active reservations.
func (s CapacitySnapshot) Occupancy() int {
	return s.occupancy
}

// AvailableSeats returns the number of seats still free. Never negative:
// an (out-of-invariant) over-occupied snapshot reports zero.
func (s CapacitySnapshot) AvailableSeats() int {
	free := s.capacity - s.occupancy
	if free < 0 {
		return 0
	}
	return free
}

// OccupancyPercent returns the occupancy as a fraction of capacity in
// percent, e.g. 80.0 for 8 of 10 seats taken.
func (s CapacitySnapshot) OccupancyPercent() float64 {
	return float64(s.occupancy) / float64(s.capacity) * 100
}

// CanAdmit reports whether the given additional passenger count fits within
// the remaining capacity.
func (s CapacitySnapshot) CanAdmit(passengers int) bool {
	return s.occupancy+passengers <= s.capacity
}
