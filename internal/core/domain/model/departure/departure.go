package departure

import (
	"errors"
	"fmt"
	"time"

	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/pkg/errs"
	"tourops/internal/pkg/guard"
)

var (
	// ErrDepartureIsNotConstructed is returned when a Departure instance was
	// not created through one of the constructor functions.
	ErrDepartureIsNotConstructed = errors.New("Departure must be created via NewRouteDeparture, NewTourDeparture, or RestoreDeparture")

	// ErrDepartureNotBookable is returned when a reservation is attempted
	// against a departure that is deactivated or past the Scheduled state.
	ErrDepartureNotBookable = errors.New("departure does not accept reservations")

	// ErrVehicleUnassigned is returned when a route departure has no usable
	// vehicle capacity. Fatal for the admission request.
	ErrVehicleUnassigned = errors.New("route departure has no vehicle capacity assigned")
)

// Departure is the aggregate root for one scheduled occurrence of a route or
// tour. It owns the lifecycle state machine and the capacity attributes used
// by admission control.
//
// Invariants:
//   - Must have a valid unique identifier and a valid scheduled time
//   - Route departures carry a positive vehicle capacity; tours carry none
//   - Status transitions follow the Status state machine
//   - Departures are soft-deactivated, never deleted
type Departure struct {
	id              kernel.UUID
	kind            Kind
	vehicleCapacity int
	scheduledAt     time.Time
	status          Status
	active          bool

	guard guard.ConstructorGuard
}

// NewRouteDeparture creates a route departure bound to a vehicle with the
// given seat capacity. The capacity must be positive; a route without a
// usable vehicle cannot be activated.
func NewRouteDeparture(id kernel.UUID, vehicleCapacity int, scheduledAt time.Time) (*Departure, error) {
	d := &Departure{
		kind:   Route,
		status: Scheduled,
		active: true,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setVehicleCapacity(vehicleCapacity),
		d.setScheduledAt(scheduledAt),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// NewTourDeparture creates a tour departure. Tours have no vehicle and no
// capacity limit; admission always succeeds.
func NewTourDeparture(id kernel.UUID, scheduledAt time.Time) (*Departure, error) {
	d := &Departure{
		kind:   Tour,
		status: Scheduled,
		active: true,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setScheduledAt(scheduledAt),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDeparture reconstructs a Departure aggregate from persistent
// storage, preserving its lifecycle state and active flag. The restored
// aggregate behaves identically to one built through normal domain
// operations.
func RestoreDeparture(
	id kernel.UUID,
	kind Kind,
	vehicleCapacity int,
	scheduledAt time.Time,
	status Status,
	active bool,
) (*Departure, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	d := &Departure{
		kind:   kind,
		status: status,
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	// Capacity is restored as-is: a legacy route row whose vehicle was
	// unassigned must still load, and ValidateBookable rejects it at
	// admission time with ErrVehicleUnassigned.
	d.vehicleCapacity = vehicleCapacity

	if err := errors.Join(
		d.setID(id),
		d.setScheduledAt(scheduledAt),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the Departure was properly constructed.
func (d *Departure) Validate() error {
	if d == nil {
		return ErrDepartureIsNotConstructed
	}
	return d.guard.Validate(ErrDepartureIsNotConstructed)
}

// ID returns the departure's unique identifier.
func (d *Departure) ID() kernel.UUID {
	return d.id
}

// Kind returns whether the departure is a route or a tour.
func (d *Departure) Kind() Kind {
	return d.kind
}

// IsTour reports whether the departure is capacity-unbounded.
func (d *Departure) IsTour() bool {
	return d.kind == Tour
}

// VehicleCapacity returns the seat capacity of the assigned vehicle.
// Zero for tours.
func (d *Departure) VehicleCapacity() int {
	return d.vehicleCapacity
}

// ScheduledAt returns the scheduled date and time.
func (d *Departure) ScheduledAt() time.Time {
	return d.scheduledAt
}

// Status returns the current lifecycle state.
func (d *Departure) Status() Status {
	return d.status
}

// IsActive reports whether the departure has not been soft-deactivated.
func (d *Departure) IsActive() bool {
	return d.active
}

// IsEqual compares two departures by their unique identifiers.
func (d *Departure) IsEqual(other *Departure) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ValidateBookable checks that the departure currently accepts reservations:
// it must be active and in Scheduled status, and a route departure must have
// a vehicle capacity assigned.
//
// Returns:
//   - ErrDepartureNotBookable if deactivated or past Scheduled
//   - ErrVehicleUnassigned if a route departure has no capacity
func (d *Departure) ValidateBookable() error {
	if !d.active || d.status != Scheduled {
		return ErrDepartureNotBookable
	}
	if d.kind == Route && d.vehicleCapacity <= 0 {
		return ErrVehicleUnassigned
	}
	return nil
}

// Start marks the departure as underway.
func (d *Departure) Start() error {
	newStatus, err := d.status.Start()
	if err != nil {
		return err
	}
	d.status = newStatus
	return nil
}

// Finish marks the departure as completed.
func (d *Departure) Finish() error {
	newStatus, err := d.status.Finish()
	if err != nil {
		return err
	}
	d.status = newStatus
	return nil
}

// Cancel calls the departure off. Cancelled departures stop accepting
// reservations but remain on record.
func (d *Departure) Cancel() error {
	newStatus, err := d.status.Cancel()
	if err != nil {
		return err
	}
	d.status = newStatus
	return nil
}

// Deactivate soft-deletes the departure. The row is kept for history and
// settlement recomputation; queries must filter on the active flag.
func (d *Departure) Deactivate() {
	d.active = false
}

func (d *Departure) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Departure) setVehicleCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"vehicleCapacity",
			fmt.Errorf("%d is not greater than 0", capacity),
		)
	}
	d.vehicleCapacity = capacity
	return nil
}

func (d *Departure) setScheduledAt(scheduledAt time.Time) error {
	if scheduledAt.IsZero() {
		return errs.NewValueIsRequiredError("scheduledAt")
	}
	d.scheduledAt = scheduledAt
	return nil
}
