package services

import (
	"fmt"

	"tourops/internal/core/domain/model/departure"
	"tourops/internal/pkg/errs"
)

// capacityWarningThreshold is the occupancy fraction at which an
// informational capacity warning is raised. Warnings never reject.
const capacityWarningThreshold = 0.8

// CapacityExceededError is the recoverable admission failure: the requested
// passenger count does not fit the departure's remaining seats. The caller
// may reduce the headcount or pick another departure; RemainingSeats lets it
// do so without re-deriving state.
type CapacityExceededError struct {
	Requested      int
	RemainingSeats int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("capacity exceeded: requested %d passengers, %d seats remaining",
		e.Requested, e.RemainingSeats)
}

// AdmissionDecision is the outcome of a capacity admission check.
type AdmissionDecision struct {
	// Admitted reports whether the requested passengers fit.
	Admitted bool

	// Unlimited is set for tour departures, which have no capacity limit.
	// RemainingSeats is meaningless when Unlimited is true.
	Unlimited bool

	// RemainingSeats is the number of free seats after admission (or the
	// current free seats when the request was rejected).
	RemainingSeats int

	// CapacityWarning is set when the admission pushed occupancy across the
	// warning threshold. Informational only.
	CapacityWarning bool

	// OccupancyAfter is the active occupancy including the admitted
	// passengers.
	OccupancyAfter int
}

// CapacityAllocator decides whether a requested passenger count may be
// admitted against a departure, given a snapshot of its active occupancy.
//
// The decision itself is pure; the atomicity contract is the caller's:
// the occupancy snapshot must be read, the decision made, and the
// reservation persisted inside one unit of work holding the departure row
// lock, so that two concurrent admissions against the same departure are
// observed as if sequential.
type CapacityAllocator struct{}

// NewCapacityAllocator creates a new CapacityAllocator instance.
func NewCapacityAllocator() CapacityAllocator {
	return CapacityAllocator{}
}

// Admit checks the requested passenger count against the departure's
// remaining capacity.
//
// Parameters:
//   - dep: the departure being booked (must be bookable)
//   - occupancy: active occupancy read under the departure's row lock
//   - adults, children: requested counts, non-negative, totalling at least one
//
// Returns:
//   - AdmissionDecision: admitted with post-admission figures, or rejected
//     with the current free-seat count
//   - error: validation errors and ErrVehicleUnassigned are fatal for the
//     request; a capacity rejection is reported in the decision, not as an
//     error
//
// Tour departures always admit and report Unlimited.
func (CapacityAllocator) Admit(dep *departure.Departure, occupancy, adults, children int) (AdmissionDecision, error) {
	if err := dep.Validate(); err != nil {
		return AdmissionDecision{}, err
	}
	if err := dep.ValidateBookable(); err != nil {
		return AdmissionDecision{}, err
	}
	if adults < 0 || children < 0 || adults+children == 0 {
		return AdmissionDecision{}, errs.NewValueIsInvalidErrorWithCause(
			"passengerCount",
			fmt.Errorf("adults=%d children=%d", adults, children),
		)
	}

	requested := adults + children

	if dep.IsTour() {
		return AdmissionDecision{
			Admitted:       true,
			Unlimited:      true,
			OccupancyAfter: occupancy + requested,
		}, nil
	}

	snapshot, err := departure.NewCapacitySnapshot(dep.VehicleCapacity(), occupancy)
	if err != nil {
		return AdmissionDecision{}, err
	}

	if !snapshot.CanAdmit(requested) {
		return AdmissionDecision{
			Admitted:       false,
			RemainingSeats: snapshot.AvailableSeats(),
			OccupancyAfter: occupancy,
		}, nil
	}

	after, err := departure.NewCapacitySnapshot(dep.VehicleCapacity(), occupancy+requested)
	if err != nil {
		return AdmissionDecision{}, err
	}

	return AdmissionDecision{
		Admitted:       true,
		RemainingSeats: after.AvailableSeats(),
		OccupancyAfter: after.Occupancy(),
		CapacityWarning: snapshot.OccupancyPercent() < capacityWarningThreshold*100 &&
			after.OccupancyPercent() >= capacityWarningThreshold*100,
	}, nil
}
