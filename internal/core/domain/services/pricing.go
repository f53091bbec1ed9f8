package services

import (
	"fmt"

	"tourops/internal/core/domain/model/catalog"
	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/pkg/errs"
)

// PricingService computes the charge for a reservation request.
// It is a pure function of its inputs: no hidden state, no side effects,
// identical inputs always produce identical totals.
//
// Pricing rules:
//   - Collective modality: every passenger pays the channel unit price;
//     children pay the adult unit price reduced by the entry's child
//     discount rate.
//   - Private modality: one flat channel price for the whole group,
//     independent of headcount (headcount is still validated).
//
// An entry with no price configured produces a zero total rather than an
// error. This mirrors the long-standing behavior of the catalog; it falls
// out of the arithmetic naturally (zero unit price times any headcount).
type PricingService struct{}

// NewPricingService creates a new PricingService instance.
func NewPricingService() PricingService {
	return PricingService{}
}

// Price computes the total charge for the given passenger mix and channel.
//
// Parameters:
//   - entry: the catalog entry of the booked service
//   - adults, children: non-negative counts totalling at least one passenger
//   - discountEligible: whether the sales channel qualifies for the
//     negotiated agency price
//
// Returns the total charge, or a validation error for an invalid entry or
// passenger mix.
func (PricingService) Price(entry catalog.ServiceEntry, adults, children int, discountEligible bool) (kernel.Money, error) {
	if err := entry.Validate(); err != nil {
		return kernel.Money{}, err
	}
	if adults < 0 || children < 0 || adults+children == 0 {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause(
			"passengerCount",
			fmt.Errorf("adults=%d children=%d", adults, children),
		)
	}

	unit := entry.UnitPrice(discountEligible)

	switch entry.Modality() {
	case catalog.Private:
		// Flat group price regardless of headcount.
		return unit, nil
	case catalog.Collective:
		childUnit := unit.ApplyRate(1 - entry.ChildDiscountRate())
		return unit.MulInt(adults).Add(childUnit.MulInt(children)), nil
	default:
		return kernel.Money{}, errs.NewValueIsInvalidError("modality")
	}
}
