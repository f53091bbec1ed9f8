// Package departurerepo provides data transfer objects and mapping functions
// for departure persistence. Implements the repository pattern for the
// departure aggregate, handling conversion between domain entities and
// database representations.
package departurerepo

import (
	"time"

	"tourops/internal/core/domain/model/departure"
	"tourops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DepartureDTO represents the database structure for persisting departure
// aggregates. Indexed by status and scheduled time for the due-departure
// sweep.
type DepartureDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind            int
	VehicleCapacity int
	ScheduledAt     time.Time `gorm:"index"`
	Status          int       `gorm:"index"`
	Active          bool
}

// TableName specifies the database table name for departure entities.
func (DepartureDTO) TableName() string {
	return "departures"
}

// fromDomain converts a departure domain aggregate to its database representation.
func fromDomain(aggregate *departure.Departure) DepartureDTO {
	return DepartureDTO{
		ID:              aggregate.ID().Bytes(),
		Kind:            int(aggregate.Kind()),
		VehicleCapacity: aggregate.VehicleCapacity(),
		ScheduledAt:     aggregate.ScheduledAt(),
		Status:          int(aggregate.Status()),
		Active:          aggregate.IsActive(),
	}
}

// toDomain converts a database DTO to a departure domain aggregate.
func toDomain(dto DepartureDTO) (*departure.Departure, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return departure.RestoreDeparture(
		id,
		departure.Kind(dto.Kind),
		dto.VehicleCapacity,
		dto.ScheduledAt,
		departure.Status(dto.Status),
		dto.Active,
	)
}
