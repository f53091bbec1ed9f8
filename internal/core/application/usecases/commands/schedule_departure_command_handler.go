package commands

import (
	"context"

	"tourops/internal/core/domain/model/departure"
	"tourops/internal/core/ports"
	"tourops/internal/pkg/clock"
)

// ScheduleDepartureCommandHandler activates a departure for a date in
// Scheduled status, making it bookable.
type ScheduleDepartureCommandHandler struct {
	uowFactory DepartureUoWFactory
	publisher  ports.ChangePublisher
	clock      clock.Clock
}

// NewScheduleDepartureCommandHandler creates a handler for departure scheduling.
func NewScheduleDepartureCommandHandler(
	uowFactory DepartureUoWFactory,
	publisher ports.ChangePublisher,
	clk clock.Clock,
) ScheduleDepartureCommandHandler {
	return ScheduleDepartureCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
	}
}

// Handle processes the scheduling command.
func (h ScheduleDepartureCommandHandler) Handle(ctx context.Context, cmd ScheduleDepartureCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var (
		dep *departure.Departure
		err error
	)
	if cmd.Kind() == departure.Tour {
		dep, err = departure.NewTourDeparture(cmd.DepartureID(), cmd.ScheduledAt())
	} else {
		dep, err = departure.NewRouteDeparture(cmd.DepartureID(), cmd.VehicleCapacity(), cmd.ScheduledAt())
	}
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DepartureRepository().Add(ctx, dep); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.ChangeEvent{
		EntityType: "departure",
		EntityID:   dep.ID(),
		Action:     "scheduled",
		NewValues: map[string]any{
			"kind":        dep.Kind().String(),
			"capacity":    dep.VehicleCapacity(),
			"scheduledAt": dep.ScheduledAt(),
		},
		ActorID:    cmd.ActorID(),
		OccurredAt: h.clock.Now(),
	})

	return nil
}
