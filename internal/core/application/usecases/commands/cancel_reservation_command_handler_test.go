package commands_test

import (
	"testing"
	"time"

	"tourops/internal/core/application/usecases/commands"
	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/core/domain/model/reservation"
	"tourops/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func activeBooking(t *testing.T) *reservation.Reservation {
	t.Helper()
	booking, err := reservation.NewReservation(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		2, 1, "Jane Roe", "",
		nil, nil,
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return booking
}

func TestCancelReservationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	booking := activeBooking(t)
	cmd, err := commands.NewCancelReservationCommand(booking.ID(), "desk-7")
	require.NoError(t, err)

	resRepo := new(MockReservationRepository)
	uow := new(MockReservationUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReservationRepository").Return(resRepo).Once(),
		resRepo.On("Get", mock.Anything, booking.ID()).Return(booking, nil).Once(),
		resRepo.On("Update", mock.Anything, booking).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReservationUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &RecordingPublisher{}

	h := commands.NewCancelReservationCommandHandler(factory, publisher, clock.NewFixed(bookingInstant))
	require.NoError(t, h.Handle(ctx, cmd))

	assert.False(t, booking.IsActive())
	require.Len(t, publisher.Events, 1)
	assert.Equal(t, "cancelled", publisher.Events[0].Action)

	resRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCancelReservationCommandHandler_Handle_AlreadyCancelled(t *testing.T) {
	ctx := t.Context()
	booking := activeBooking(t)
	require.NoError(t, booking.Cancel())

	cmd, err := commands.NewCancelReservationCommand(booking.ID(), "desk-7")
	require.NoError(t, err)

	resRepo := new(MockReservationRepository)
	uow := new(MockReservationUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReservationRepository").Return(resRepo).Once(),
		resRepo.On("Get", mock.Anything, booking.ID()).Return(booking, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReservationUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &RecordingPublisher{}

	h := commands.NewCancelReservationCommandHandler(factory, publisher, clock.NewFixed(bookingInstant))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, reservation.ErrReservationCancelled)
	assert.Empty(t, publisher.Events)

	resRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCancelReservationCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CancelReservationCommand{} // not constructed properly

	factory := new(MockReservationUoWFactory)
	h := commands.NewCancelReservationCommandHandler(factory, &RecordingPublisher{}, clock.NewFixed(bookingInstant))
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrCancelReservationCommandIsNotConstructed)
}
