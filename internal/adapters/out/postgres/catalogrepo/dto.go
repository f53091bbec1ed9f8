// Package catalogrepo provides the read-only database adapter for the
// service catalog. Reservations consult the catalog; maintaining it is a
// separate back-office concern, so this adapter exposes no writes.
package catalogrepo

import (
	"tourops/internal/core/domain/model/catalog"
	"tourops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ServiceEntryDTO represents the database structure of a catalog entry.
// Prices are stored as integer cents.
type ServiceEntryDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string
	BasePrice         int64
	DiscountedPrice   int64
	Modality          int
	ChildDiscountRate float64
}

// TableName specifies the database table name for catalog entries.
func (ServiceEntryDTO) TableName() string {
	return "service_entries"
}

// toDomain converts a database DTO to a catalog service entry.
func toDomain(dto ServiceEntryDTO) (catalog.ServiceEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.ServiceEntry{}, err
	}

	return catalog.NewServiceEntry(
		id,
		dto.Name,
		kernel.MoneyFromCents(dto.BasePrice),
		kernel.MoneyFromCents(dto.DiscountedPrice),
		catalog.Modality(dto.Modality),
		dto.ChildDiscountRate,
	)
}
