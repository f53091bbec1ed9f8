package commands

import (
	"context"

	"tourops/internal/core/domain/model/departure"
	"tourops/internal/core/ports"
	"tourops/internal/pkg/clock"
)

// ChangeDepartureStatusCommandHandler moves a departure through its
// lifecycle. Invalid transitions are rejected by the aggregate's state
// machine and nothing is persisted.
type ChangeDepartureStatusCommandHandler struct {
	uowFactory DepartureUoWFactory
	publisher  ports.ChangePublisher
	clock      clock.Clock
}

// NewChangeDepartureStatusCommandHandler creates a handler for departure lifecycle transitions.
func NewChangeDepartureStatusCommandHandler(
	uowFactory DepartureUoWFactory,
	publisher ports.ChangePublisher,
	clk clock.Clock,
) ChangeDepartureStatusCommandHandler {
	return ChangeDepartureStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
	}
}

// Handle processes the status transition command.
func (h ChangeDepartureStatusCommandHandler) Handle(ctx context.Context, cmd ChangeDepartureStatusCommand) error {
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

	oldStatus := dep.Status()

	if err = applyTransition(dep, cmd.Transition()); err != nil {
		return err
	}

	if err = departureRepo.Update(ctx, dep); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.ChangeEvent{
		EntityType: "departure",
		EntityID:   dep.ID(),
		Action:     "status_changed",
		OldValues:  map[string]any{"status": oldStatus.String()},
		NewValues:  map[string]any{"status": dep.Status().String()},
		ActorID:    cmd.ActorID(),
		OccurredAt: h.clock.Now(),
	})

	return nil
}

func applyTransition(dep *departure.Departure, transition StatusTransition) error {
	switch transition {
	case TransitionStart:
		return dep.Start()
	case TransitionFinish:
		return dep.Finish()
	case TransitionCancel:
		return dep.Cancel()
	default:
		return ErrTransitionIsInvalid
	}
}
