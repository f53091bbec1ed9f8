package catalog

import (
	"errors"
	"fmt"

	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/pkg/errs"
	"tourops/internal/pkg/guard"
)

const (
	// DefaultChildDiscountRate is the policy default discount applied to the
	// applicable adult unit price for child passengers: 25% off.
	DefaultChildDiscountRate = 0.25

	// UseDefaultChildDiscountRate is the sentinel rate meaning "no rate
	// configured, apply the policy default". A rate of exactly 0 is a valid
	// configuration and means children pay the full adult unit price.
	UseDefaultChildDiscountRate = -1.0
)

// ErrServiceEntryIsNotConstructed is returned when a ServiceEntry was not
// created through NewServiceEntry.
var ErrServiceEntryIsNotConstructed = errors.New("ServiceEntry must be created via NewServiceEntry")

// ServiceEntry is a sellable product as seen by the booking core: its two
// price points (retail and negotiated agency price), its pricing modality,
// and its child discount policy. Entries are immutable for the duration of a
// pricing computation; reservations reference them but never own them.
//
// An entry may legitimately have no price configured (both price points
// zero). Pricing currently degrades such entries to a zero total rather than
// failing; HasPrice lets callers detect the situation.
type ServiceEntry struct {
	id                kernel.UUID
	name              string
	basePrice         kernel.Money
	discountedPrice   kernel.Money
	modality          Modality
	childDiscountRate float64

	guard guard.ConstructorGuard
}

// NewServiceEntry creates a catalog entry.
//
// Parameters:
//   - id: catalog identifier of the service
//   - name: display name (must be non-empty)
//   - basePrice: retail price charged on the direct channel
//   - discountedPrice: negotiated price for discount-eligible agencies
//   - modality: Collective or Private
//   - childDiscountRate: fraction taken off the adult unit price for
//     children, in [0, 1). Zero means children pay full adult price. Pass
//     UseDefaultChildDiscountRate (any negative value) to apply the policy
//     default of 25%.
//
// Prices must not be negative; zero prices are allowed and mean the entry is
// not configured for sale yet.
func NewServiceEntry(
	id kernel.UUID,
	name string,
	basePrice kernel.Money,
	discountedPrice kernel.Money,
	modality Modality,
	childDiscountRate float64,
) (ServiceEntry, error) {
	entry := ServiceEntry{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		entry.setID(id),
		entry.setName(name),
		entry.setPrices(basePrice, discountedPrice),
		entry.setModality(modality),
		entry.setChildDiscountRate(childDiscountRate),
	); err != nil {
		return ServiceEntry{}, err
	}

	return entry, nil
}

// Validate ensures the entry was created through NewServiceEntry.
func (e ServiceEntry) Validate() error {
	return e.guard.Validate(ErrServiceEntryIsNotConstructed)
}

// ID returns the catalog identifier of the service.
func (e ServiceEntry) ID() kernel.UUID {
	return e.id
}

// Name returns the display name of the service.
func (e ServiceEntry) Name() string {
	return e.name
}

// BasePrice returns the retail price for the direct channel.
func (e ServiceEntry) BasePrice() kernel.Money {
	return e.basePrice
}

// DiscountedPrice returns the negotiated agency price.
func (e ServiceEntry) DiscountedPrice() kernel.Money {
	return e.discountedPrice
}

// Modality returns the pricing mode of the service.
func (e ServiceEntry) Modality() Modality {
	return e.modality
}

// ChildDiscountRate returns the fraction taken off the adult unit price for
// child passengers.
func (e ServiceEntry) ChildDiscountRate() float64 {
	return e.childDiscountRate
}

// UnitPrice returns the price point applicable to the sales channel:
// the discounted price when the channel is discount-eligible, the base
// (retail) price otherwise.
func (e ServiceEntry) UnitPrice(discountEligible bool) kernel.Money {
	if discountEligible {
		return e.discountedPrice
	}
	return e.basePrice
}

// HasPrice reports whether the entry has any price configured.
func (e ServiceEntry) HasPrice() bool {
	return !e.basePrice.IsZero() || !e.discountedPrice.IsZero()
}

func (e *ServiceEntry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *ServiceEntry) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	e.name = name
	return nil
}

func (e *ServiceEntry) setPrices(basePrice, discountedPrice kernel.Money) error {
	if basePrice.IsNegative() {
		return errs.NewValueIsInvalidError("basePrice")
	}
	if discountedPrice.IsNegative() {
		return errs.NewValueIsInvalidError("discountedPrice")
	}
	e.basePrice = basePrice
	e.discountedPrice = discountedPrice
	return nil
}

func (e *ServiceEntry) setModality(modality Modality) error {
	if err := modality.Validate(); err != nil {
		return err
	}
	e.modality = modality
	return nil
}

func (e *ServiceEntry) setChildDiscountRate(rate float64) error {
	if rate < 0 {
		e.childDiscountRate = DefaultChildDiscountRate
		return nil
	}
	if rate >= 1 {
		return errs.NewValueIsOutOfRangeError("childDiscountRate", fmt.Sprintf("%g", rate), 0, 1)
	}
	e.childDiscountRate = rate
	return nil
}
