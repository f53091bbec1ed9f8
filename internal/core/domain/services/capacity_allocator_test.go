package services_test

import (
	"testing"
	"time"

	"tourops/internal/core/domain/model/departure"
	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func routeDeparture(t *testing.T, capacity int) *departure.Departure {
	t.Helper()
	dep, err := departure.NewRouteDeparture(kernel.NewUUID(), capacity, time.Now().Add(24*time.Hour))
	require.NoError(t, err)
	return dep
}

func tourDeparture(t *testing.T) *departure.Departure {
	t.Helper()
	dep, err := departure.NewTourDeparture(kernel.NewUUID(), time.Now().Add(24*time.Hour))
	require.NoError(t, err)
	return dep
}

func TestCapacityAllocator_Route(t *testing.T) {
	allocator := services.NewCapacityAllocator()

	t.Run("admits_within_capacity", func(t *testing.T) {
		dep := routeDeparture(t, 10)

		decision, err := allocator.Admit(dep, 4, 2, 1)
		require.NoError(t, err)
		assert.True(t, decision.Admitted)
		assert.False(t, decision.Unlimited)
		assert.Equal(t, 3, decision.RemainingSeats)
		assert.Equal(t, 7, decision.OccupancyAfter)
	})

	t.Run("admits_exactly_to_the_last_seat", func(t *testing.T) {
		dep := routeDeparture(t, 10)

		decision, err := allocator.Admit(dep, 7, 3, 0)
		require.NoError(t, err)
		assert.True(t, decision.Admitted)
		assert.Equal(t, 0, decision.RemainingSeats)
	})

	t.Run("rejects_one_past_the_last_seat", func(t *testing.T) {
		dep := routeDeparture(t, 10)

		decision, err := allocator.Admit(dep, 7, 4, 0)
		require.NoError(t, err)
		assert.False(t, decision.Admitted)
		assert.Equal(t, 3, decision.RemainingSeats)
		assert.Equal(t, 7, decision.OccupancyAfter)
	})

	t.Run("children_count_toward_seats", func(t *testing.T) {
		dep := routeDeparture(t, 4)

		decision, err := allocator.Admit(dep, 0, 1, 4)
		require.NoError(t, err)
		assert.False(t, decision.Admitted)
	})
}

func TestCapacityAllocator_Tour(t *testing.T) {
	allocator := services.NewCapacityAllocator()
	dep := tourDeparture(t)

	decision, err := allocator.Admit(dep, 500, 40, 10)
	require.NoError(t, err)
	assert.True(t, decision.Admitted)
	assert.True(t, decision.Unlimited)
	assert.False(t, decision.CapacityWarning)
	assert.Equal(t, 550, decision.OccupancyAfter)
}

func TestCapacityAllocator_Warning(t *testing.T) {
	allocator := services.NewCapacityAllocator()

	t.Run("raised_when_crossing_the_threshold", func(t *testing.T) {
		dep := routeDeparture(t, 10)

		decision, err := allocator.Admit(dep, 7, 1, 0)
		require.NoError(t, err)
		assert.True(t, decision.Admitted)
		assert.True(t, decision.CapacityWarning)
	})

	t.Run("not_raised_below_the_threshold", func(t *testing.T) {
		dep := routeDeparture(t, 10)

		decision, err := allocator.Admit(dep, 5, 2, 0)
		require.NoError(t, err)
		assert.True(t, decision.Admitted)
		assert.False(t, decision.CapacityWarning)
	})

	t.Run("not_repeated_once_already_crossed", func(t *testing.T) {
		dep := routeDeparture(t, 10)

		decision, err := allocator.Admit(dep, 8, 1, 0)
		require.NoError(t, err)
		assert.True(t, decision.Admitted)
		assert.False(t, decision.CapacityWarning)
	})
}

func TestCapacityAllocator_Validation(t *testing.T) {
	allocator := services.NewCapacityAllocator()

	t.Run("rejects_invalid_passenger_mix", func(t *testing.T) {
		dep := routeDeparture(t, 10)

		_, err := allocator.Admit(dep, 0, 0, 0)
		require.Error(t, err)

		_, err = allocator.Admit(dep, 0, -1, 2)
		require.Error(t, err)
	})

	t.Run("rejects_non_bookable_departure", func(t *testing.T) {
		dep := routeDeparture(t, 10)
		require.NoError(t, dep.Cancel())

		_, err := allocator.Admit(dep, 0, 1, 0)
		require.ErrorIs(t, err, departure.ErrDepartureNotBookable)
	})

	t.Run("rejects_route_with_unassigned_vehicle", func(t *testing.T) {
		dep, err := departure.RestoreDeparture(
			kernel.NewUUID(), departure.Route, 0,
			time.Now().Add(24*time.Hour), departure.Scheduled, true,
		)
		require.NoError(t, err)

		_, err = allocator.Admit(dep, 0, 1, 0)
		require.ErrorIs(t, err, departure.ErrVehicleUnassigned)
	})

	t.Run("rejects_unconstructed_departure", func(t *testing.T) {
		_, err := allocator.Admit(&departure.Departure{}, 0, 1, 0)
		require.ErrorIs(t, err, departure.ErrDepartureIsNotConstructed)
	})
}
