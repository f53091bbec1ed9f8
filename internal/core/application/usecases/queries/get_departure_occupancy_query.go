package queries

import (
	"errors"

	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/pkg/guard"
)

var (
	ErrGetDepartureOccupancyQueryIsNotConstructed = errors.New(
		"GetDepartureOccupancyQuery must be created via NewGetDepartureOccupancyQuery constructor",
	)
)

// GetDepartureOccupancyQuery requests the current seat occupancy of one
// departure.
type GetDepartureOccupancyQuery struct {
	departureID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDepartureOccupancyQuery creates a query for a departure's occupancy.
func NewGetDepartureOccupancyQuery(departureID kernel.UUID) (GetDepartureOccupancyQuery, error) {
	if err := departureID.Validate(); err != nil {
		return GetDepartureOccupancyQuery{}, err
	}

	return GetDepartureOccupancyQuery{
		departureID: departureID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDepartureOccupancyQuery) Validate() error {
	return q.guard.Validate(ErrGetDepartureOccupancyQueryIsNotConstructed)
}

// DepartureID returns the departure being inspected.
func (q GetDepartureOccupancyQuery) DepartureID() kernel.UUID {
	return q.departureID
}

// DepartureOccupancyResponse reports a departure's load. For tours,
// Unlimited is set and the seat figures are zero.
type DepartureOccupancyResponse struct {
	DepartureID      kernel.UUID
	Unlimited        bool
	Capacity         int
	Occupancy        int
	AvailableSeats   int
	OccupancyPercent float64
}
