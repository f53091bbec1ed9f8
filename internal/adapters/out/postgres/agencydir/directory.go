// Package agencydir provides the read-only database adapter for agency
// identity lookups.
package agencydir

import (
	"context"
	"errors"

	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AgencyDTO represents the database structure of a sales agency.
type AgencyDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name             string
	DiscountEligible bool
	IsSelf           bool
}

// TableName specifies the database table name for agencies.
func (AgencyDTO) TableName() string {
	return "agencies"
}

// GormAgencyDirectory implements the AgencyDirectory lookup using GORM.
type GormAgencyDirectory struct {
	db *gorm.DB
}

// NewGormAgencyDirectory creates a new GORM-backed agency directory.
func NewGormAgencyDirectory(db *gorm.DB) *GormAgencyDirectory {
	return &GormAgencyDirectory{db: db}
}

// IsDiscountEligible reports whether sales through the agency qualify for
// the discounted price. A nil agency is a direct sale and never qualifies.
func (r *GormAgencyDirectory) IsDiscountEligible(ctx context.Context, agencyID *kernel.UUID) (bool, error) {
	if agencyID == nil {
		return false, nil
	}

	dto, err := r.get(ctx, *agencyID)
	if err != nil {
		return false, err
	}

	return dto.DiscountEligible, nil
}

// IsSelf reports whether the agency is the operator's own identity.
func (r *GormAgencyDirectory) IsSelf(ctx context.Context, agencyID kernel.UUID) (bool, error) {
	dto, err := r.get(ctx, agencyID)
	if err != nil {
		return false, err
	}

	return dto.IsSelf, nil
}

func (r *GormAgencyDirectory) get(ctx context.Context, agencyID kernel.UUID) (AgencyDTO, error) {
	if err := agencyID.Validate(); err != nil {
		return AgencyDTO{}, err
	}

	var dto AgencyDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", agencyID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AgencyDTO{}, errs.NewObjectNotFoundError("agency", agencyID.String())
		}
		return AgencyDTO{}, err
	}

	return dto, nil
}
