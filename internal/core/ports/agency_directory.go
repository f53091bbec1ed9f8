package ports

import (
	"context"

	"tourops/internal/core/domain/model/kernel"
)

// AgencyDirectory answers identity questions about sales agencies.
type AgencyDirectory interface {
	// IsDiscountEligible reports whether sales through the agency qualify
	// for the negotiated discounted price. A nil agency is a direct sale
	// and never qualifies.
	IsDiscountEligible(ctx context.Context, agencyID *kernel.UUID) (bool, error)

	// IsSelf reports whether the agency is the operator's own identity.
	// Reservations attributed to it are exempt from settlement.
	IsSelf(ctx context.Context, agencyID kernel.UUID) (bool, error)
}
