package commands

import (
	"errors"

	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/pkg/guard"
)

var (
	ErrRecordCollectionCommandIsNotConstructed = errors.New(
		"RecordCollectionCommand must be created via NewRecordCollectionCommand constructor",
	)
	ErrCollectedAmountIsInvalid = errors.New("collected amount must not be negative")
)

// RecordCollectionCommand represents a request to record how much was
// collected from the client for a reservation, and by whom. A zero amount is
// a valid record: it marks the commission-only arrangement where the partner
// settles the full cost basis instead.
type RecordCollectionCommand struct { //nolint:recvcheck //using for validation
	reservationID kernel.UUID
	amount        kernel.Money
	byAgency      bool
	actorID       string

	guard guard.ConstructorGuard
}

// NewRecordCollectionCommand creates a command to record a client payment.
// byAgency marks that the partner agency charged the client directly.
func NewRecordCollectionCommand(
	reservationID kernel.UUID,
	amount kernel.Money,
	byAgency bool,
	actorID string,
) (RecordCollectionCommand, error) {
	cmd := RecordCollectionCommand{
		byAgency: byAgency,
		actorID:  actorID,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setReservationID(reservationID),
		cmd.setAmount(amount),
	); err != nil {
		return RecordCollectionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordCollectionCommand) Validate() error {
	return c.guard.Validate(ErrRecordCollectionCommandIsNotConstructed)
}

// ReservationID returns the reservation the payment belongs to.
func (c RecordCollectionCommand) ReservationID() kernel.UUID {
	return c.reservationID
}

// Amount returns the collected amount.
func (c RecordCollectionCommand) Amount() kernel.Money {
	return c.amount
}

// ByAgency reports whether the partner agency charged the client directly.
func (c RecordCollectionCommand) ByAgency() bool {
	return c.byAgency
}

// ActorID returns the user the change is attributed to.
func (c RecordCollectionCommand) ActorID() string {
	return c.actorID
}

func (c *RecordCollectionCommand) setReservationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.reservationID = id
	return nil
}

func (c *RecordCollectionCommand) setAmount(amount kernel.Money) error {
	if amount.IsNegative() {
		return ErrCollectedAmountIsInvalid
	}

	c.amount = amount
	return nil
}
