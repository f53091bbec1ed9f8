package ports

import (
	"context"

	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/core/domain/model/reservation"
)

// ReservationRepository defines the persistence contract for reservation
// aggregates.
type ReservationRepository interface {
	// Add persists a new reservation aggregate to storage.
	// The reservation must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *reservation.Reservation) error

	// Update persists changes to an existing reservation aggregate.
	// The reservation must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *reservation.Reservation) error

	// Get retrieves a reservation aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*reservation.Reservation, error)

	// SumActivePassengers returns the total passenger count across all
	// active reservations of the given departure. Occupancy is always
	// derived this way rather than kept as a counter, so cancelling a
	// reservation frees its seats in the same write that deactivates it.
	//
	// Call inside the transaction that holds the departure's admission
	// lock; outside it the figure is only a point-in-time report.
	SumActivePassengers(ctx context.Context, departureID kernel.UUID) (int, error)
}
