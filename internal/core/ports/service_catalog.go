package ports

import (
	"context"

	"tourops/internal/core/domain/model/catalog"
	"tourops/internal/core/domain/model/kernel"
)

// ServiceCatalog is the read-only lookup of sellable services and their
// price configuration. Reservations never mutate the catalog; maintaining
// it is a separate back-office concern.
type ServiceCatalog interface {
	// GetServiceEntry retrieves the catalog entry for a service.
	// Returns errs.ObjectNotFoundError when the service does not exist.
	GetServiceEntry(ctx context.Context, serviceID kernel.UUID) (catalog.ServiceEntry, error)
}
