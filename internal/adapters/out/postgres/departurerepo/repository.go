package departurerepo

import (
	"context"
	"errors"
	"time"

	"tourops/internal/core/domain/model/departure"
	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDepartureRepository implements DepartureRepository using GORM.
type GormDepartureRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDepartureRepository creates a new GORM departure repository.
func NewGormDepartureRepository(db *gorm.DB, tracker aggregateTracker) *GormDepartureRepository {
	return &GormDepartureRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new departure to the database.
func (r *GormDepartureRepository) Add(ctx context.Context, aggregate *departure.Departure) error {
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

// Update saves an existing departure to the database.
func (r *GormDepartureRepository) Update(ctx context.Context, aggregate *departure.Departure) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DepartureDTO{}).
		Where("id = ?", dto.ID).
		Select("Kind", "VehicleCapacity", "ScheduledAt", "Status", "Active").
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

// Get retrieves a departure by ID.
func (r *GormDepartureRepository) Get(ctx context.Context, id kernel.UUID) (*departure.Departure, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DepartureDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("departure", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForAdmission retrieves a departure and takes its row lock for the
// remainder of the transaction. Concurrent admissions against the same
// departure block here and observe each other's committed reservations,
// which is what keeps the capacity invariant under contention.
func (r *GormDepartureRepository) GetForAdmission(ctx context.Context, id kernel.UUID) (*departure.Departure, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DepartureDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("departure", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetScheduledDueBy retrieves all active scheduled departures due at or
// before the given instant, oldest first.
func (r *GormDepartureRepository) GetScheduledDueBy(ctx context.Context, instant time.Time) ([]*departure.Departure, error) {
	var dtos []DepartureDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND active = ? AND scheduled_at <= ?", int(departure.Scheduled), true, instant).
		Order("scheduled_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	departures := make([]*departure.Departure, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		departures = append(departures, d)
	}

	return departures, nil
}
