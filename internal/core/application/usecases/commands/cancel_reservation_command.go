package commands

import (
	"errors"

	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/pkg/guard"
)

var ErrCancelReservationCommandIsNotConstructed = errors.New(
	"CancelReservationCommand must be created via NewCancelReservationCommand constructor",
)

// CancelReservationCommand represents a request to cancel a reservation,
// freeing its seats and removing it from future settlement.
type CancelReservationCommand struct { //nolint:recvcheck //using for validation
	reservationID kernel.UUID
	actorID       string

	guard guard.ConstructorGuard
}

// NewCancelReservationCommand creates a command to cancel a reservation.
func NewCancelReservationCommand(reservationID kernel.UUID, actorID string) (CancelReservationCommand, error) {
	cmd := CancelReservationCommand{
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}

	if err := cmd.setReservationID(reservationID); err != nil {
		return CancelReservationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelReservationCommand) Validate() error {
	return c.guard.Validate(ErrCancelReservationCommandIsNotConstructed)
}

// ReservationID returns the reservation to cancel.
func (c CancelReservationCommand) ReservationID() kernel.UUID {
	return c.reservationID
}

// ActorID returns the user the change is attributed to.
func (c CancelReservationCommand) ActorID() string {
	return c.actorID
}

func (c *CancelReservationCommand) setReservationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.reservationID = id
	return nil
}
