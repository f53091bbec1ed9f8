package queries

import (
	"context"
	"database/sql"
	"errors"

	"tourops/internal/core/domain/model/departure"
	"tourops/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDepartureOccupancyQueryHandler reports a departure's current load.
// The occupancy is summed from active reservations on read; the figure is a
// point-in-time report, not an admission guarantee.
type GetDepartureOccupancyQueryHandler struct {
	db *gorm.DB
}

// NewGetDepartureOccupancyQueryHandler creates a handler for occupancy lookups.
func NewGetDepartureOccupancyQueryHandler(db *gorm.DB) GetDepartureOccupancyQueryHandler {
	return GetDepartureOccupancyQueryHandler{db: db}
}

// Handle executes the occupancy lookup.
// Returns errs.ObjectNotFoundError when the departure does not exist.
func (h GetDepartureOccupancyQueryHandler) Handle(
	ctx context.Context,
	query GetDepartureOccupancyQuery,
) (DepartureOccupancyResponse, error) {
	if err := query.Validate(); err != nil {
		return DepartureOccupancyResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			d.kind,
			d.vehicle_capacity,
			COALESCE(SUM(r.adults + r.children), 0) AS occupancy
		FROM departures d
		LEFT JOIN reservations r
			ON r.departure_id = d.id AND r.active = true
		WHERE d.id = ?
		GROUP BY d.id, d.kind, d.vehicle_capacity
	`, query.DepartureID().Bytes()).Row()

	var kind, capacity, occupancy int
	if err := row.Scan(&kind, &capacity, &occupancy); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DepartureOccupancyResponse{}, errs.NewObjectNotFoundErrorWithCause(
				"departureID", query.DepartureID().String(), err,
			)
		}
		return DepartureOccupancyResponse{}, err
	}

	response := DepartureOccupancyResponse{
		DepartureID: query.DepartureID(),
		Occupancy:   occupancy,
	}

	if departure.Kind(kind) == departure.Tour {
		response.Unlimited = true
		return response, nil
	}

	snapshot, err := departure.NewCapacitySnapshot(capacity, occupancy)
	if err != nil {
		return DepartureOccupancyResponse{}, err
	}

	response.Capacity = snapshot.Capacity()
	response.AvailableSeats = snapshot.AvailableSeats()
	response.OccupancyPercent = snapshot.OccupancyPercent()

	return response, nil
}
