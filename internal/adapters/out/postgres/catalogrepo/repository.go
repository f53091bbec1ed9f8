package catalogrepo

import (
	"context"
	"errors"

	"tourops/internal/core/domain/model/catalog"
	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormServiceCatalog implements the ServiceCatalog lookup using GORM.
type GormServiceCatalog struct {
	db *gorm.DB
}

// NewGormServiceCatalog creates a new GORM-backed service catalog.
func NewGormServiceCatalog(db *gorm.DB) *GormServiceCatalog {
	return &GormServiceCatalog{db: db}
}

// GetServiceEntry retrieves the catalog entry for a service.
func (r *GormServiceCatalog) GetServiceEntry(ctx context.Context, serviceID kernel.UUID) (catalog.ServiceEntry, error) {
	if err := serviceID.Validate(); err != nil {
		return catalog.ServiceEntry{}, err
	}

	var dto ServiceEntryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", serviceID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.ServiceEntry{}, errs.NewObjectNotFoundError("service", serviceID.String())
		}
		return catalog.ServiceEntry{}, err
	}

	return toDomain(dto)
}
