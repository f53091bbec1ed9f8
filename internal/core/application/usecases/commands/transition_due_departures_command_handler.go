package commands

import (
	"context"

	"tourops/internal/pkg/clock"
)

// TransitionDueDeparturesCommandHandler starts every active scheduled
// departure whose time has passed. Run periodically by the job scheduler so
// overdue departures stop accepting reservations.
type TransitionDueDeparturesCommandHandler struct {
	uowFactory DepartureUoWFactory
	clock      clock.Clock
}

// NewTransitionDueDeparturesCommandHandler creates a handler for the periodic departure sweep.
func NewTransitionDueDeparturesCommandHandler(
	uowFactory DepartureUoWFactory,
	clk clock.Clock,
) TransitionDueDeparturesCommandHandler {
	return TransitionDueDeparturesCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

// Handle processes the batch transition.
// All due departures move to Started in one transaction; a failure rolls the
// whole sweep back and the next run retries it.
func (h TransitionDueDeparturesCommandHandler) Handle(ctx context.Context, cmd TransitionDueDeparturesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	departureRepo := uow.DepartureRepository()

	due, err := departureRepo.GetScheduledDueBy(ctx, h.clock.Now())
	if err != nil {
		return err
	}

	for _, dep := range due {
		if err = dep.Start(); err != nil {
			return err
		}
		if err = departureRepo.Update(ctx, dep); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
