package commands_test

import (
	"testing"

	"tourops/internal/core/application/usecases/commands"
	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecordCollectionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	booking := activeBooking(t)

	cmd, err := commands.NewRecordCollectionCommand(
		booking.ID(), kernel.MoneyFromFloat(412.50), false, "desk-7",
	)
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

	h := commands.NewRecordCollectionCommandHandler(factory, publisher, clock.NewFixed(bookingInstant))
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, int64(41250), booking.Collected().Cents())
	assert.False(t, booking.AgencyCollected())
	require.Len(t, publisher.Events, 1)
	assert.Equal(t, "collection_recorded", publisher.Events[0].Action)
}

func TestRecordCollectionCommandHandler_Handle_ZeroAmountIsValid(t *testing.T) {
	ctx := t.Context()
	booking := activeBooking(t)

	// Zero marks the commission-only arrangement, not a missing payment.
	cmd, err := commands.NewRecordCollectionCommand(
		booking.ID(), kernel.ZeroMoney(), true, "desk-7",
	)
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

	h := commands.NewRecordCollectionCommandHandler(factory, &RecordingPublisher{}, clock.NewFixed(bookingInstant))
	require.NoError(t, h.Handle(ctx, cmd))

	assert.True(t, booking.Collected().IsZero())
	assert.True(t, booking.AgencyCollected())
}

func TestRecordCollectionCommand_NegativeAmount(t *testing.T) {
	_, err := commands.NewRecordCollectionCommand(
		kernel.NewUUID(), kernel.MoneyFromFloat(-1), false, "desk-7",
	)
	require.ErrorIs(t, err, commands.ErrCollectedAmountIsInvalid)
}
