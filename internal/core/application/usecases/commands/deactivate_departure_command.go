package commands

import (
	"errors"

	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/pkg/guard"
)

var ErrDeactivateDepartureCommandIsNotConstructed = errors.New(
	"DeactivateDepartureCommand must be created via NewDeactivateDepartureCommand constructor",
)

// DeactivateDepartureCommand represents a request to soft-delete a
// departure. The row stays on record for history and settlement
// recomputation; it just stops accepting reservations and disappears from
// active listings.
type DeactivateDepartureCommand struct { //nolint:recvcheck //using for validation
	departureID kernel.UUID
	actorID     string

	guard guard.ConstructorGuard
}

// NewDeactivateDepartureCommand creates a command to deactivate a departure.
func NewDeactivateDepartureCommand(departureID kernel.UUID, actorID string) (DeactivateDepartureCommand, error) {
	cmd := DeactivateDepartureCommand{
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}

	if err := cmd.setDepartureID(departureID); err != nil {
		return DeactivateDepartureCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeactivateDepartureCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateDepartureCommandIsNotConstructed)
}

// DepartureID returns the departure to deactivate.
func (c DeactivateDepartureCommand) DepartureID() kernel.UUID {
	return c.departureID
}

// ActorID returns the user the change is attributed to.
func (c DeactivateDepartureCommand) ActorID() string {
	return c.actorID
}

func (c *DeactivateDepartureCommand) setDepartureID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.departureID = id
	return nil
}
