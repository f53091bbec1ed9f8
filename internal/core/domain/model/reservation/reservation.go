package reservation

import (
	"errors"
	"fmt"
	"time"

	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/pkg/errs"
	"tourops/internal/pkg/guard"
)

var (
	// ErrReservationIsNotConstructed is returned when a Reservation was not
	// created through NewReservation or RestoreReservation.
	ErrReservationIsNotConstructed = errors.New("Reservation must be created via NewReservation or RestoreReservation")

	// ErrInvalidPassengerCount is returned when passenger counts are negative
	// or the total headcount is zero. Detected before any side effect.
	ErrInvalidPassengerCount = errors.New("invalid passenger count")

	// ErrReservationCancelled is returned when mutating a reservation that
	// has already been cancelled.
	ErrReservationCancelled = errors.New("reservation is cancelled")

	// ErrChargeOverridden is returned when a computed charge is applied to a
	// reservation whose charge was explicitly overridden at creation.
	// Overrides are sticky.
	ErrChargeOverridden = errors.New("charge was explicitly overridden and cannot be recomputed")
)

// Reservation is the aggregate root for a booking against one departure.
//
// Invariants:
//   - Belongs to exactly one departure and one catalog service
//   - Passenger counts are non-negative and total at least one
//   - Counted toward occupancy only while active
//   - An overridden charge is never replaced by a recomputed one
type Reservation struct {
	id          kernel.UUID
	departureID kernel.UUID
	serviceID   kernel.UUID

	adults   int
	children int

	clientName     string
	clientDocument string

	// originAgencyID is the selling agency; nil means a direct sale.
	originAgencyID *kernel.UUID
	// transferredToAgencyID is set when the operator hands the service off
	// to a partner agency.
	transferredToAgencyID *kernel.UUID

	// charge is the amount owed by the passenger.
	charge kernel.Money
	// chargeOverridden marks an explicit amount supplied at creation.
	chargeOverridden bool

	// costBasis is the operator's cost of the service used by settlement.
	costBasis kernel.Money
	// collected is the amount actually collected from the client. Zero is
	// meaningful: it marks the commission-only scenario in settlement.
	collected kernel.Money
	// agencyCollected reports that the partner agency, not the operator,
	// charged the client directly.
	agencyCollected bool

	active    bool
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewReservation creates an active reservation. The charge starts at zero
// and is applied afterwards by the lifecycle coordinator, either computed
// (ApplyComputedCharge) or overridden (OverrideCharge).
//
// Parameters:
//   - id, departureID, serviceID: identities (must be valid UUIDs)
//   - adults, children: non-negative counts totalling at least one passenger
//   - clientName: contact name for the booking (required)
//   - clientDocument: identity document of the client (optional)
//   - originAgencyID: selling agency, nil for a direct sale
//   - transferredToAgencyID: partner the service is handed off to, nil if none
//   - createdAt: creation instant from the injected clock
func NewReservation(
	id kernel.UUID,
	departureID kernel.UUID,
	serviceID kernel.UUID,
	adults, children int,
	clientName string,
	clientDocument string,
	originAgencyID *kernel.UUID,
	transferredToAgencyID *kernel.UUID,
	createdAt time.Time,
) (*Reservation, error) {
	r := &Reservation{
		clientDocument: clientDocument,
		active:         true,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setDepartureID(departureID),
		r.setServiceID(serviceID),
		r.setPassengerCounts(adults, children),
		r.setClientName(clientName),
		r.setOriginAgency(originAgencyID),
		r.setTransferredToAgency(transferredToAgencyID),
		r.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreReservation reconstructs a Reservation aggregate from persistent
// storage, preserving charges, collection state, and the active flag.
func RestoreReservation(
	id kernel.UUID,
	departureID kernel.UUID,
	serviceID kernel.UUID,
	adults, children int,
	clientName string,
	clientDocument string,
	originAgencyID *kernel.UUID,
	transferredToAgencyID *kernel.UUID,
	charge kernel.Money,
	chargeOverridden bool,
	costBasis kernel.Money,
	collected kernel.Money,
	agencyCollected bool,
	active bool,
	createdAt time.Time,
) (*Reservation, error) {
	r, err := NewReservation(
		id, departureID, serviceID,
		adults, children,
		clientName, clientDocument,
		originAgencyID, transferredToAgencyID,
		createdAt,
	)
	if err != nil {
		return nil, err
	}

	r.charge = charge
	r.chargeOverridden = chargeOverridden
	r.costBasis = costBasis
	r.collected = collected
	r.agencyCollected = agencyCollected
	r.active = active
	return r, nil
}

// Validate ensures the Reservation was properly constructed.
func (r *Reservation) Validate() error {
	if r == nil {
		return ErrReservationIsNotConstructed
	}
	return r.guard.Validate(ErrReservationIsNotConstructed)
}

// ID returns the reservation's unique identifier.
func (r *Reservation) ID() kernel.UUID {
	return r.id
}

// DepartureID returns the identifier of the booked departure.
func (r *Reservation) DepartureID() kernel.UUID {
	return r.departureID
}

// ServiceID returns the catalog identifier of the booked service.
func (r *Reservation) ServiceID() kernel.UUID {
	return r.serviceID
}

// Adults returns the adult passenger count.
func (r *Reservation) Adults() int {
	return r.adults
}

// Children returns the child passenger count.
func (r *Reservation) Children() int {
	return r.children
}

// PassengerCount returns the total seats the reservation occupies.
func (r *Reservation) PassengerCount() int {
	return r.adults + r.children
}

// ClientName returns the contact name for the booking.
func (r *Reservation) ClientName() string {
	return r.clientName
}

// ClientDocument returns the identity document of the client, if recorded.
func (r *Reservation) ClientDocument() string {
	return r.clientDocument
}

// OriginAgency returns the selling agency, or nil for a direct sale.
func (r *Reservation) OriginAgency() *kernel.UUID {
	return r.originAgencyID
}

// TransferredToAgency returns the partner agency the service was handed off
// to, or nil if the operator runs the service itself.
func (r *Reservation) TransferredToAgency() *kernel.UUID {
	return r.transferredToAgencyID
}

// IsTransferred reports whether the service was handed off to a partner.
func (r *Reservation) IsTransferred() bool {
	return r.transferredToAgencyID != nil
}

// IsAgencySale reports whether the reservation originated from an agency
// channel rather than a direct sale.
func (r *Reservation) IsAgencySale() bool {
	return r.originAgencyID != nil
}

// Charge returns the amount owed by the passenger.
func (r *Reservation) Charge() kernel.Money {
	return r.charge
}

// ChargeOverridden reports whether the charge was explicitly supplied at
// creation instead of computed.
func (r *Reservation) ChargeOverridden() bool {
	return r.chargeOverridden
}

// CostBasis returns the operator's cost of the service for settlement.
func (r *Reservation) CostBasis() kernel.Money {
	return r.costBasis
}

// Collected returns the amount actually collected from the client.
func (r *Reservation) Collected() kernel.Money {
	return r.collected
}

// AgencyCollected reports whether the partner agency charged the client
// directly.
func (r *Reservation) AgencyCollected() bool {
	return r.agencyCollected
}

// IsActive reports whether the reservation still counts toward occupancy and
// settlement.
func (r *Reservation) IsActive() bool {
	return r.active
}

// CreatedAt returns the creation instant.
func (r *Reservation) CreatedAt() time.Time {
	return r.createdAt
}

// IsEqual compares two reservations by their unique identifiers.
func (r *Reservation) IsEqual(other *Reservation) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ApplyComputedCharge stores a charge produced by the pricing engine.
// Fails with ErrChargeOverridden when an explicit override is in place:
// recomputation must never silently replace an override.
func (r *Reservation) ApplyComputedCharge(charge kernel.Money) error {
	if r.chargeOverridden {
		return ErrChargeOverridden
	}
	if charge.IsNegative() {
		return errs.NewValueIsInvalidError("charge")
	}
	r.charge = charge
	return nil
}

// OverrideCharge stores an explicit charge supplied by the caller at
// creation time and marks it sticky.
func (r *Reservation) OverrideCharge(charge kernel.Money) error {
	if charge.IsNegative() {
		return errs.NewValueIsInvalidError("charge")
	}
	r.charge = charge
	r.chargeOverridden = true
	return nil
}

// SetCostBasis stores the operator's cost of the service for settlement.
func (r *Reservation) SetCostBasis(costBasis kernel.Money) error {
	if costBasis.IsNegative() {
		return errs.NewValueIsInvalidError("costBasis")
	}
	r.costBasis = costBasis
	return nil
}

// RecordCollection stores the amount collected from the client and who
// collected it. A zero amount is valid and marks the commission-only
// scenario for settlement.
func (r *Reservation) RecordCollection(amount kernel.Money, byAgency bool) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidError("collected")
	}
	r.collected = amount
	r.agencyCollected = byAgency
	return nil
}

// ChangePassengerCounts updates the passenger mix of an active reservation.
// The caller re-checks capacity for any increase and triggers recomputation
// of the charge unless an override is in place.
func (r *Reservation) ChangePassengerCounts(adults, children int) error {
	if !r.active {
		return ErrReservationCancelled
	}
	return r.setPassengerCounts(adults, children)
}

// Cancel marks the reservation inactive. A cancelled reservation vanishes
// from occupancy and settlement aggregation simultaneously, because both are
// computed over active reservations only.
func (r *Reservation) Cancel() error {
	if !r.active {
		return ErrReservationCancelled
	}
	r.active = false
	return nil
}

func (r *Reservation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Reservation) setDepartureID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("departureID", err)
	}
	r.departureID = id
	return nil
}

func (r *Reservation) setServiceID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("serviceID", err)
	}
	r.serviceID = id
	return nil
}

func (r *Reservation) setPassengerCounts(adults, children int) error {
	if adults < 0 || children < 0 {
		return fmt.Errorf("%w: counts must be non-negative (adults=%d, children=%d)",
			ErrInvalidPassengerCount, adults, children)
	}
	if adults+children == 0 {
		return fmt.Errorf("%w: at least one passenger is required", ErrInvalidPassengerCount)
	}
	r.adults = adults
	r.children = children
	return nil
}

func (r *Reservation) setClientName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("clientName")
	}
	r.clientName = name
	return nil
}

func (r *Reservation) setOriginAgency(id *kernel.UUID) error {
	if id != nil {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("originAgencyID", err)
		}
	}
	r.originAgencyID = id
	return nil
}

func (r *Reservation) setTransferredToAgency(id *kernel.UUID) error {
	if id != nil {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("transferredToAgencyID", err)
		}
	}
	r.transferredToAgencyID = id
	return nil
}

func (r *Reservation) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	r.createdAt = createdAt
	return nil
}
