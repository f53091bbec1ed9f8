package departure

import (
	"fmt"

	"tourops/internal/pkg/errs"
)

// Status represents the lifecycle state of a departure.
// It implements a state machine with defined transitions so departures follow
// the operational workflow of the fleet.
//
// State transitions:
//
//	Scheduled ──> Started ──> Finished
//	    │            │
//	    └────────────┴──> Cancelled
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Scheduled is the initial status when a departure is activated for a
	// date. Only scheduled departures accept new reservations.
	Scheduled

	// Started indicates the vehicle has left and the service is underway.
	Started

	// Finished indicates the service completed normally. Final state.
	Finished

	// Cancelled indicates the departure was called off before completion.
	// Final state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Scheduled:     "Scheduled",
		Started:       "Started",
		Finished:      "Finished",
		Cancelled:     "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Scheduled: "Scheduled",
		Started:   "Started",
		Finished:  "Finished",
		Cancelled: "Cancelled",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are: Scheduled, Started, Finished, Cancelled.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether the status admits no further transitions.
func (s Status) IsFinal() bool {
	return s == Finished || s == Cancelled
}

// Start transitions the status to Started.
//
// Valid transitions:
//   - Scheduled -> Started
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) Start() (Status, error) {
	if s != Scheduled {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to start", s.String()),
		)
	}
	return Started, nil
}

// Finish transitions the status to Finished.
//
// Valid transitions:
//   - Started -> Finished
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) Finish() (Status, error) {
	if s != Started {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to finish", s.String()),
		)
	}
	return Finished, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Scheduled -> Cancelled
//   - Started -> Cancelled
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) Cancel() (Status, error) {
	if s != Scheduled && s != Started {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}
	return Cancelled, nil
}
