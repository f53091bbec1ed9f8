package commands

import (
	"errors"

	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/pkg/guard"
)

var (
	ErrCreateReservationCommandIsNotConstructed = errors.New(
		"CreateReservationCommand must be created via NewCreateReservationCommand constructor",
	)
	ErrClientNameIsRequired  = errors.New("client name is required")
	ErrPassengerMixIsInvalid = errors.New("passenger counts must be non-negative and total at least one")
	ErrPriceOverrideInvalid  = errors.New("price override must not be negative")
)

// CreateReservationCommand represents a request to book passengers onto a
// departure. Encapsulates the passenger mix, the client identity, the sales
// channel, and an optional explicit price override that suppresses the
// computed charge.
//
// Example:
//
//	cmd, err := NewCreateReservationCommand(
//	    kernel.NewUUID(), departureID, serviceID,
//	    2, 1, "Jane Roe", "X1234567",
//	    &agencyID, nil, nil, "desk-operator-7",
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid booking request: %w", err)
//	}
//
//	handler := NewCreateReservationCommandHandler(uowFactory, catalog, agencies, publisher, notifier, clk)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("booking failed: %w", err)
//	}
type CreateReservationCommand struct { //nolint:recvcheck //using for validation
	reservationID  kernel.UUID
	departureID    kernel.UUID
	serviceID      kernel.UUID
	adults         int
	children       int
	clientName     string
	clientDocument string
	originAgency   *kernel.UUID
	transferredTo  *kernel.UUID
	priceOverride  *kernel.Money
	actorID        string

	guard guard.ConstructorGuard
}

// NewCreateReservationCommand creates a command to book a new reservation.
// Validates identifiers, the passenger mix, and the override amount.
// The client document and actor may be empty; agency references are optional.
func NewCreateReservationCommand(
	reservationID kernel.UUID,
	departureID kernel.UUID,
	serviceID kernel.UUID,
	adults int,
	children int,
	clientName string,
	clientDocument string,
	originAgency *kernel.UUID,
	transferredTo *kernel.UUID,
	priceOverride *kernel.Money,
	actorID string,
) (CreateReservationCommand, error) {
	cmd := CreateReservationCommand{
		clientDocument: clientDocument,
		actorID:        actorID,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setReservationID(reservationID),
		cmd.setDepartureID(departureID),
		cmd.setServiceID(serviceID),
		cmd.setPassengerCounts(adults, children),
		cmd.setClientName(clientName),
		cmd.setOriginAgency(originAgency),
		cmd.setTransferredTo(transferredTo),
		cmd.setPriceOverride(priceOverride),
	); err != nil {
		return CreateReservationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateReservationCommandIsNotConstructed if validation fails.
func (c CreateReservationCommand) Validate() error {
	return c.guard.Validate(ErrCreateReservationCommandIsNotConstructed)
}

// ReservationID returns the identifier assigned to the new reservation.
func (c CreateReservationCommand) ReservationID() kernel.UUID {
	return c.reservationID
}

// DepartureID returns the departure being booked.
func (c CreateReservationCommand) DepartureID() kernel.UUID {
	return c.departureID
}

// ServiceID returns the catalog service being sold.
func (c CreateReservationCommand) ServiceID() kernel.UUID {
	return c.serviceID
}

// Adults returns the requested adult count.
func (c CreateReservationCommand) Adults() int {
	return c.adults
}

// Children returns the requested child count.
func (c CreateReservationCommand) Children() int {
	return c.children
}

// ClientName returns the booking client's name.
func (c CreateReservationCommand) ClientName() string {
	return c.clientName
}

// ClientDocument returns the client's identity document, possibly empty.
func (c CreateReservationCommand) ClientDocument() string {
	return c.clientDocument
}

// OriginAgency returns the selling agency, nil for direct sales.
func (c CreateReservationCommand) OriginAgency() *kernel.UUID {
	return c.originAgency
}

// TransferredTo returns the partner the service was handed off to, nil when
// the operator runs it.
func (c CreateReservationCommand) TransferredTo() *kernel.UUID {
	return c.transferredTo
}

// PriceOverride returns the explicit charge, nil when the price is computed.
func (c CreateReservationCommand) PriceOverride() *kernel.Money {
	return c.priceOverride
}

// ActorID returns the user the change is attributed to.
func (c CreateReservationCommand) ActorID() string {
	return c.actorID
}

func (c *CreateReservationCommand) setReservationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.reservationID = id
	return nil
}

func (c *CreateReservationCommand) setDepartureID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.departureID = id
	return nil
}

func (c *CreateReservationCommand) setServiceID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.serviceID = id
	return nil
}

func (c *CreateReservationCommand) setPassengerCounts(adults, children int) error {
	if adults < 0 || children < 0 || adults+children == 0 {
		return ErrPassengerMixIsInvalid
	}

	c.adults = adults
	c.children = children
	return nil
}

func (c *CreateReservationCommand) setClientName(name string) error {
	if name == "" {
		return ErrClientNameIsRequired
	}

	c.clientName = name
	return nil
}

func (c *CreateReservationCommand) setOriginAgency(id *kernel.UUID) error {
	if id != nil {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.originAgency = id
	return nil
}

func (c *CreateReservationCommand) setTransferredTo(id *kernel.UUID) error {
	if id != nil {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.transferredTo = id
	return nil
}

func (c *CreateReservationCommand) setPriceOverride(override *kernel.Money) error {
	if override != nil && override.IsNegative() {
		return ErrPriceOverrideInvalid
	}

	c.priceOverride = override
	return nil
}
