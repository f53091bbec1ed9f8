package reservationrepo

import (
	"context"
	"errors"

	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/core/domain/model/reservation"
	"tourops/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReservationRepository implements ReservationRepository using GORM.
type GormReservationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormReservationRepository creates a new GORM reservation repository.
func NewGormReservationRepository(db *gorm.DB, tracker aggregateTracker) *GormReservationRepository {
	return &GormReservationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new reservation to the database.
func (r *GormReservationRepository) Add(ctx context.Context, aggregate *reservation.Reservation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing reservation to the database.
// Selects the full column set explicitly so false booleans and zero amounts
// are written rather than skipped.
func (r *GormReservationRepository) Update(ctx context.Context, aggregate *reservation.Reservation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ReservationDTO{}).
		Where("id = ?", dto.ID).
		Select(
			"Adults", "Children", "ClientName", "ClientDocument",
			"OriginAgencyID", "TransferredToAgencyID",
			"Charge", "ChargeOverridden", "CostBasis",
			"Collected", "AgencyCollected", "Active",
		).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a reservation by ID.
func (r *GormReservationRepository) Get(ctx context.Context, id kernel.UUID) (*reservation.Reservation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ReservationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("reservation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// SumActivePassengers returns the total passenger count across all active
// reservations of the given departure. Inside a transaction holding the
// departure's admission lock this is the authoritative occupancy.
func (r *GormReservationRepository) SumActivePassengers(ctx context.Context, departureID kernel.UUID) (int, error) {
	if err := departureID.Validate(); err != nil {
		return 0, err
	}

	var total int64
	err := r.db.WithContext(ctx).Model(&ReservationDTO{}).
		Where("departure_id = ? AND active = ?", departureID.Bytes(), true).
		Select("COALESCE(SUM(adults + children), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return int(total), nil
}
