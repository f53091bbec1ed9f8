package commands_test

import (
	"testing"
	"time"

	"tourops/internal/core/application/usecases/commands"
	"tourops/internal/core/domain/model/departure"
	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTransitionDueDeparturesCommandHandler_Handle_StartsDue(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

	first, err := departure.NewRouteDeparture(kernel.NewUUID(), 10, now.Add(-time.Hour))
	require.NoError(t, err)
	second, err := departure.NewTourDeparture(kernel.NewUUID(), now.Add(-10*time.Minute))
	require.NoError(t, err)

	depRepo := new(MockDepartureRepository)
	uow := new(MockDepartureUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DepartureRepository").Return(depRepo).Once(),
		depRepo.On("GetScheduledDueBy", mock.Anything, now).
			Return([]*departure.Departure{first, second}, nil).Once(),
		depRepo.On("Update", mock.Anything, first).Return(nil).Once(),
		depRepo.On("Update", mock.Anything, second).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDepartureUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionDueDeparturesCommandHandler(factory, clock.NewFixed(now))
	require.NoError(t, h.Handle(ctx, commands.NewTransitionDueDeparturesCommand()))

	assert.Equal(t, departure.Started, first.Status())
	assert.Equal(t, departure.Started, second.Status())

	depRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionDueDeparturesCommandHandler_Handle_NothingDue(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

	depRepo := new(MockDepartureRepository)
	uow := new(MockDepartureUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DepartureRepository").Return(depRepo).Once(),
		depRepo.On("GetScheduledDueBy", mock.Anything, now).
			Return([]*departure.Departure{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDepartureUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionDueDeparturesCommandHandler(factory, clock.NewFixed(now))
	require.NoError(t, h.Handle(ctx, commands.NewTransitionDueDeparturesCommand()))
}
