package commands

import (
	"context"

	"tourops/internal/core/ports"
	"tourops/internal/pkg/clock"
)

// DeactivateDepartureCommandHandler soft-deletes a departure.
type DeactivateDepartureCommandHandler struct {
	uowFactory DepartureUoWFactory
	publisher  ports.ChangePublisher
	clock      clock.Clock
}

// NewDeactivateDepartureCommandHandler creates a handler for departure deactivation.
func NewDeactivateDepartureCommandHandler(
	uowFactory DepartureUoWFactory,
	publisher ports.ChangePublisher,
	clk clock.Clock,
) DeactivateDepartureCommandHandler {
	return DeactivateDepartureCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
	}
}

// Handle processes the deactivation command.
func (h DeactivateDepartureCommandHandler) Handle(ctx context.Context, cmd DeactivateDepartureCommand) error {
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

	dep, err := departureRepo.Get(ctx, cmd.DepartureID())
	if err != nil {
		return err
	}

	wasActive := dep.IsActive()
	dep.Deactivate()

	if err = departureRepo.Update(ctx, dep); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.ChangeEvent{
		EntityType: "departure",
		EntityID:   dep.ID(),
		Action:     "deactivated",
		OldValues:  map[string]any{"active": wasActive},
		NewValues:  map[string]any{"active": false},
		ActorID:    cmd.ActorID(),
		OccurredAt: h.clock.Now(),
	})

	return nil
}
