package commands

import (
	"errors"
	"time"

	"tourops/internal/core/domain/model/departure"
	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/pkg/guard"
)

var (
	ErrScheduleDepartureCommandIsNotConstructed = errors.New(
		"ScheduleDepartureCommand must be created via NewScheduleDepartureCommand constructor",
	)
	ErrScheduledAtIsRequired = errors.New("scheduled time is required")
	ErrCapacityIsInvalid     = errors.New("route departures require a positive vehicle capacity")
)

// ScheduleDepartureCommand represents a request to activate a departure for
// a date. Route departures carry the assigned vehicle's seat capacity; tour
// departures carry none.
type ScheduleDepartureCommand struct { //nolint:recvcheck //using for validation
	departureID     kernel.UUID
	kind            departure.Kind
	vehicleCapacity int
	scheduledAt     time.Time
	actorID         string

	guard guard.ConstructorGuard
}

// NewScheduleDepartureCommand creates a command to schedule a departure.
// vehicleCapacity must be positive for routes and is ignored for tours.
func NewScheduleDepartureCommand(
	departureID kernel.UUID,
	kind departure.Kind,
	vehicleCapacity int,
	scheduledAt time.Time,
	actorID string,
) (ScheduleDepartureCommand, error) {
	cmd := ScheduleDepartureCommand{
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDepartureID(departureID),
		cmd.setKindAndCapacity(kind, vehicleCapacity),
		cmd.setScheduledAt(scheduledAt),
	); err != nil {
		return ScheduleDepartureCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ScheduleDepartureCommand) Validate() error {
	return c.guard.Validate(ErrScheduleDepartureCommandIsNotConstructed)
}

// DepartureID returns the identifier assigned to the new departure.
func (c ScheduleDepartureCommand) DepartureID() kernel.UUID {
	return c.departureID
}

// Kind returns whether a route or tour departure is being scheduled.
func (c ScheduleDepartureCommand) Kind() departure.Kind {
	return c.kind
}

// VehicleCapacity returns the assigned vehicle's seat capacity. Zero for tours.
func (c ScheduleDepartureCommand) VehicleCapacity() int {
	return c.vehicleCapacity
}

// ScheduledAt returns the scheduled date and time.
func (c ScheduleDepartureCommand) ScheduledAt() time.Time {
	return c.scheduledAt
}

// ActorID returns the user the change is attributed to.
func (c ScheduleDepartureCommand) ActorID() string {
	return c.actorID
}

func (c *ScheduleDepartureCommand) setDepartureID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.departureID = id
	return nil
}

func (c *ScheduleDepartureCommand) setKindAndCapacity(kind departure.Kind, capacity int) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	if kind == departure.Route && capacity <= 0 {
		return ErrCapacityIsInvalid
	}

	c.kind = kind
	if kind == departure.Route {
		c.vehicleCapacity = capacity
	}
	return nil
}

func (c *ScheduleDepartureCommand) setScheduledAt(scheduledAt time.Time) error {
	if scheduledAt.IsZero() {
		return ErrScheduledAtIsRequired
	}

	c.scheduledAt = scheduledAt
	return nil
}
