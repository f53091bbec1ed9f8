package commands

import (
	"errors"

	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/pkg/guard"
)

var ErrChangePassengerCountsCommandIsNotConstructed = errors.New(
	"ChangePassengerCountsCommand must be created via NewChangePassengerCountsCommand constructor",
)

// ChangePassengerCountsCommand represents a request to change the passenger
// mix of an existing reservation.
type ChangePassengerCountsCommand struct { //nolint:recvcheck //using for validation
	reservationID kernel.UUID
	adults        int
	children      int
	actorID       string

	guard guard.ConstructorGuard
}

// NewChangePassengerCountsCommand creates a command to modify passenger counts.
// Validates the reservation identifier and the new passenger mix.
func NewChangePassengerCountsCommand(
	reservationID kernel.UUID,
	adults, children int,
	actorID string,
) (ChangePassengerCountsCommand, error) {
	cmd := ChangePassengerCountsCommand{
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setReservationID(reservationID),
		cmd.setPassengerCounts(adults, children),
	); err != nil {
		return ChangePassengerCountsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangePassengerCountsCommand) Validate() error {
	return c.guard.Validate(ErrChangePassengerCountsCommandIsNotConstructed)
}

// ReservationID returns the reservation to modify.
func (c ChangePassengerCountsCommand) ReservationID() kernel.UUID {
	return c.reservationID
}

// Adults returns the new adult count.
func (c ChangePassengerCountsCommand) Adults() int {
	return c.adults
}

// Children returns the new child count.
func (c ChangePassengerCountsCommand) Children() int {
	return c.children
}

// ActorID returns the user the change is attributed to.
func (c ChangePassengerCountsCommand) ActorID() string {
	return c.actorID
}

func (c *ChangePassengerCountsCommand) setReservationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.reservationID = id
	return nil
}

func (c *ChangePassengerCountsCommand) setPassengerCounts(adults, children int) error {
	if adults < 0 || children < 0 || adults+children == 0 {
		return ErrPassengerMixIsInvalid
	}

	c.adults = adults
	c.children = children
	return nil
}
