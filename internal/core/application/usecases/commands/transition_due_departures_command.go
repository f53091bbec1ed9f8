package commands

import (
	"errors"

	"tourops/internal/pkg/guard"
)

// TransitionDueDeparturesCommand triggers the batch transition of scheduled
// departures whose departure time has passed into Started status.
//
// Example:
//
//	cmd := NewTransitionDueDeparturesCommand()
//	handler := NewTransitionDueDeparturesCommandHandler(uowFactory, clk)
//
//	// Run periodically from the job scheduler
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Departure transition failed: %v", err)
//	}
type TransitionDueDeparturesCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrTransitionDueDeparturesCommandIsNotConstructed = errors.New(
		"TransitionDueDeparturesCommand must be created via NewTransitionDueDeparturesCommand constructor",
	)
)

// NewTransitionDueDeparturesCommand creates a command to start all due departures.
// This is a parameterless command that processes every overdue scheduled departure.
func NewTransitionDueDeparturesCommand() TransitionDueDeparturesCommand {
	command := TransitionDueDeparturesCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrTransitionDueDeparturesCommandIsNotConstructed if validation fails.
func (c *TransitionDueDeparturesCommand) Validate() error {
	return c.guard.Validate(ErrTransitionDueDeparturesCommandIsNotConstructed)
}
