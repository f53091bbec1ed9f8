package commands

import (
	"context"

	"tourops/internal/core/ports"
	"tourops/internal/pkg/clock"
)

// RecordCollectionCommandHandler records a client payment against a
// reservation. The collected amount and the collecting party drive the
// settlement scenario classification later on.
type RecordCollectionCommandHandler struct {
	uowFactory ReservationUoWFactory
	publisher  ports.ChangePublisher
	clock      clock.Clock
}

// NewRecordCollectionCommandHandler creates a handler for payment recording.
func NewRecordCollectionCommandHandler(
	uowFactory ReservationUoWFactory,
	publisher ports.ChangePublisher,
	clk clock.Clock,
) RecordCollectionCommandHandler {
	return RecordCollectionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
	}
}

// Handle processes the payment record.
// Fails with reservation.ErrReservationCancelled when the reservation is no
// longer active.
func (h RecordCollectionCommandHandler) Handle(ctx context.Context, cmd RecordCollectionCommand) error {
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

	oldCollected := booking.Collected()

	if err = booking.RecordCollection(cmd.Amount(), cmd.ByAgency()); err != nil {
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
		Action:     "collection_recorded",
		OldValues:  map[string]any{"collected": oldCollected.String()},
		NewValues: map[string]any{
			"collected":       booking.Collected().String(),
			"agencyCollected": booking.AgencyCollected(),
		},
		ActorID:    cmd.ActorID(),
		OccurredAt: h.clock.Now(),
	})

	return nil
}
