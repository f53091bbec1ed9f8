// Package ports defines repository and outbound interfaces for the booking
// domain. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"tourops/internal/core/domain/model/departure"
	"tourops/internal/core/domain/model/kernel"
)

// DepartureRepository defines the persistence contract for departure
// aggregates.
type DepartureRepository interface {
	// Add persists a new departure aggregate to storage.
	// The departure must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *departure.Departure) error

	// Update persists changes to an existing departure aggregate.
	// The departure must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *departure.Departure) error

	// Get retrieves a departure aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*departure.Departure, error)

	// GetForAdmission retrieves a departure and locks its row for the
	// remainder of the transaction. Every admission check against a
	// departure must go through this method so that two concurrent
	// bookings on the same departure serialize on the row lock and
	// observe each other's occupancy.
	GetForAdmission(ctx context.Context, id kernel.UUID) (*departure.Departure, error)

	// GetScheduledDueBy retrieves all active departures still in Scheduled
	// status whose scheduled time is at or before the given instant.
	// Used by the background job that moves due departures to Started.
	GetScheduledDueBy(ctx context.Context, instant time.Time) ([]*departure.Departure, error)
}
