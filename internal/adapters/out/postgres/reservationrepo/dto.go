// Package reservationrepo provides data transfer objects and mapping
// functions for reservation persistence.
package reservationrepo

import (
	"time"

	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/core/domain/model/reservation"

	"github.com/google/uuid"
)

// ReservationDTO represents the database structure for persisting
// reservation aggregates. Monetary amounts are stored as integer cents.
// The departure index serves the occupancy sum; the agency indexes and
// created_at serve the settlement aggregation.
type ReservationDTO struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DepartureID           uuid.UUID  `gorm:"type:uuid;index"`
	ServiceID             uuid.UUID  `gorm:"type:uuid"`
	Adults                int
	Children              int
	ClientName            string
	ClientDocument        string
	OriginAgencyID        *uuid.UUID `gorm:"type:uuid;index"`
	TransferredToAgencyID *uuid.UUID `gorm:"type:uuid;index"`
	Charge                int64
	ChargeOverridden      bool
	CostBasis             int64
	Collected             int64
	AgencyCollected       bool
	Active                bool      `gorm:"index"`
	CreatedAt             time.Time `gorm:"index"`
}

// TableName specifies the database table name for reservation entities.
func (ReservationDTO) TableName() string {
	return "reservations"
}

// fromDomain converts a reservation domain aggregate to its database representation.
func fromDomain(aggregate *reservation.Reservation) ReservationDTO {
	return ReservationDTO{
		ID:                    aggregate.ID().Bytes(),
		DepartureID:           aggregate.DepartureID().Bytes(),
		ServiceID:             aggregate.ServiceID().Bytes(),
		Adults:                aggregate.Adults(),
		Children:              aggregate.Children(),
		ClientName:            aggregate.ClientName(),
		ClientDocument:        aggregate.ClientDocument(),
		OriginAgencyID:        optionalUUID(aggregate.OriginAgency()),
		TransferredToAgencyID: optionalUUID(aggregate.TransferredToAgency()),
		Charge:                aggregate.Charge().Cents(),
		ChargeOverridden:      aggregate.ChargeOverridden(),
		CostBasis:             aggregate.CostBasis().Cents(),
		Collected:             aggregate.Collected().Cents(),
		AgencyCollected:       aggregate.AgencyCollected(),
		Active:                aggregate.IsActive(),
		CreatedAt:             aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a reservation domain aggregate.
func toDomain(dto ReservationDTO) (*reservation.Reservation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	departureID, err := kernel.UUIDFromBytes(dto.DepartureID[:])
	if err != nil {
		return nil, err
	}

	serviceID, err := kernel.UUIDFromBytes(dto.ServiceID[:])
	if err != nil {
		return nil, err
	}

	originAgency, err := optionalKernelUUID(dto.OriginAgencyID)
	if err != nil {
		return nil, err
	}

	transferredTo, err := optionalKernelUUID(dto.TransferredToAgencyID)
	if err != nil {
		return nil, err
	}

	return reservation.RestoreReservation(
		id, departureID, serviceID,
		dto.Adults, dto.Children,
		dto.ClientName, dto.ClientDocument,
		originAgency, transferredTo,
		kernel.MoneyFromCents(dto.Charge),
		dto.ChargeOverridden,
		kernel.MoneyFromCents(dto.CostBasis),
		kernel.MoneyFromCents(dto.Collected),
		dto.AgencyCollected,
		dto.Active,
		dto.CreatedAt,
	)
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalKernelUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}

	converted, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
