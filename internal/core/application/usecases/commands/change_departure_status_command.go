package commands

import (
	"errors"

	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/pkg/guard"
)

// StatusTransition names the lifecycle transition requested for a departure.
type StatusTransition int

const (
	// TransitionUnknown represents an invalid or undefined transition.
	TransitionUnknown StatusTransition = iota

	// TransitionStart moves a scheduled departure to Started.
	TransitionStart

	// TransitionFinish moves a started departure to Finished.
	TransitionFinish

	// TransitionCancel moves a scheduled or started departure to Cancelled.
	TransitionCancel
)

var (
	ErrChangeDepartureStatusCommandIsNotConstructed = errors.New(
		"ChangeDepartureStatusCommand must be created via NewChangeDepartureStatusCommand constructor",
	)
	ErrTransitionIsInvalid = errors.New("transition must be start, finish, or cancel")
)

// ChangeDepartureStatusCommand represents a request to move a departure
// through its lifecycle.
type ChangeDepartureStatusCommand struct { //nolint:recvcheck //using for validation
	departureID kernel.UUID
	transition  StatusTransition
	actorID     string

	guard guard.ConstructorGuard
}

// NewChangeDepartureStatusCommand creates a command for a lifecycle transition.
func NewChangeDepartureStatusCommand(
	departureID kernel.UUID,
	transition StatusTransition,
	actorID string,
) (ChangeDepartureStatusCommand, error) {
	cmd := ChangeDepartureStatusCommand{
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDepartureID(departureID),
		cmd.setTransition(transition),
	); err != nil {
		return ChangeDepartureStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeDepartureStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeDepartureStatusCommandIsNotConstructed)
}

// DepartureID returns the departure to transition.
func (c ChangeDepartureStatusCommand) DepartureID() kernel.UUID {
	return c.departureID
}

// Transition returns the requested lifecycle transition.
func (c ChangeDepartureStatusCommand) Transition() StatusTransition {
	return c.transition
}

// ActorID returns the user the change is attributed to.
func (c ChangeDepartureStatusCommand) ActorID() string {
	return c.actorID
}

func (c *ChangeDepartureStatusCommand) setDepartureID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.departureID = id
	return nil
}

func (c *ChangeDepartureStatusCommand) setTransition(transition StatusTransition) error {
	switch transition {
	case TransitionStart, TransitionFinish, TransitionCancel:
		c.transition = transition
		return nil
	default:
		return ErrTransitionIsInvalid
	}
}
