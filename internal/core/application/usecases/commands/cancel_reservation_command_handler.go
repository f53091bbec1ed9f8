package commands

import (
	"context"

	"tourops/internal/core/ports"
	"tourops/internal/pkg/clock"
)

// CancelReservationCommandHandler marks a reservation inactive.
//
// Occupancy is derived from active reservations, so the single update that
// deactivates the row atomically frees its seats and drops it from every
// future settlement aggregation. No counter is decremented anywhere.
type CancelReservationCommandHandler struct {
	uowFactory ReservationUoWFactory
	publisher  ports.ChangePublisher
	clock      clock.Clock
}

// NewCancelReservationCommandHandler creates a handler for cancellation operations.
func NewCancelReservationCommandHandler(
	uowFactory ReservationUoWFactory,
	publisher ports.ChangePublisher,
	clk clock.Clock,
) CancelReservationCommandHandler {
	return CancelReservationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
	}
}

// Handle processes the cancellation command.
// Cancelling an already cancelled reservation returns
// reservation.ErrReservationCancelled and changes nothing.
func (h CancelReservationCommandHandler) Handle(ctx context.Context, cmd CancelReservationCommand) error {
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

	reservationRepo := uow.ReservationRepository()

	booking, err := reservationRepo.Get(ctx, cmd.ReservationID())
	if err != nil {
		return err
	}

	if err = booking.Cancel(); err != nil {
		return err
	}

	if err = reservationRepo.Update(ctx, booking); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.ChangeEvent{
		EntityType: "reservation",
		EntityID:   booking.ID(),
		Action:     "cancelled",
		OldValues:  map[string]any{"active": true},
		NewValues:  map[string]any{"active": false},
		ActorID:    cmd.ActorID(),
		OccurredAt: h.clock.Now(),
	})

	return nil
}
