package reservation_test

import (
	"testing"
	"time"

	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/core/domain/model/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreatedAt = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestReservation(t *testing.T, adults, children int) *reservation.Reservation {
	t.Helper()
	r, err := reservation.NewReservation(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		adults, children,
		"Maria Lopez", "A1234567",
		nil, nil,
		testCreatedAt,
	)
	require.NoError(t, err)
	return r
}

func TestNewReservation(t *testing.T) {
	t.Run("valid_direct_sale", func(t *testing.T) {
		r := newTestReservation(t, 2, 1)

		require.NoError(t, r.Validate())
		assert.Equal(t, 2, r.Adults())
		assert.Equal(t, 1, r.Children())
		assert.Equal(t, 3, r.PassengerCount())
		assert.Equal(t, "Maria Lopez", r.ClientName())
		assert.Nil(t, r.OriginAgency())
		assert.Nil(t, r.TransferredToAgency())
		assert.False(t, r.IsAgencySale())
		assert.False(t, r.IsTransferred())
		assert.True(t, r.IsActive())
		assert.False(t, r.ChargeOverridden())
		assert.True(t, r.Charge().IsZero())
		assert.Equal(t, testCreatedAt, r.CreatedAt())
	})

	t.Run("agency_sale_with_transfer", func(t *testing.T) {
		origin := kernel.NewUUID()
		partner := kernel.NewUUID()
		r, err := reservation.NewReservation(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			1, 0,
			"Jan Kowalski", "",
			&origin, &partner,
			testCreatedAt,
		)
		require.NoError(t, err)
		assert.True(t, r.IsAgencySale())
		assert.True(t, r.IsTransferred())
		assert.True(t, r.OriginAgency().IsEqual(origin))
		assert.True(t, r.TransferredToAgency().IsEqual(partner))
	})

	t.Run("passenger_count_validation", func(t *testing.T) {
		cases := []struct {
			name     string
			adults   int
			children int
		}{
			{"negative_adults", -1, 2},
			{"negative_children", 2, -1},
			{"zero_total", 0, 0},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := reservation.NewReservation(
					kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
					tc.adults, tc.children,
					"Client", "",
					nil, nil,
					testCreatedAt,
				)
				assert.ErrorIs(t, err, reservation.ErrInvalidPassengerCount)
			})
		}
	})

	t.Run("children_only_booking_is_valid", func(t *testing.T) {
		r := newTestReservation(t, 0, 2)
		assert.Equal(t, 2, r.PassengerCount())
	})

	t.Run("required_fields", func(t *testing.T) {
		_, err := reservation.NewReservation(
			kernel.NewUUID(), kernel.UUID{}, kernel.NewUUID(),
			1, 0, "Client", "", nil, nil, testCreatedAt,
		)
		require.Error(t, err, "missing departure")

		_, err = reservation.NewReservation(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			1, 0, "", "", nil, nil, testCreatedAt,
		)
		require.Error(t, err, "missing client name")

		_, err = reservation.NewReservation(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			1, 0, "Client", "", nil, nil, time.Time{},
		)
		require.Error(t, err, "missing creation time")
	})
}

func TestReservation_Charges(t *testing.T) {
	t.Run("computed_charge_applies", func(t *testing.T) {
		r := newTestReservation(t, 2, 1)
		require.NoError(t, r.ApplyComputedCharge(kernel.MoneyFromFloat(412.50)))
		assert.Equal(t, int64(41250), r.Charge().Cents())
		assert.False(t, r.ChargeOverridden())
	})

	t.Run("override_is_sticky", func(t *testing.T) {
		r := newTestReservation(t, 2, 1)
		require.NoError(t, r.OverrideCharge(kernel.MoneyFromFloat(300)))
		assert.True(t, r.ChargeOverridden())

		err := r.ApplyComputedCharge(kernel.MoneyFromFloat(412.50))
		assert.ErrorIs(t, err, reservation.ErrChargeOverridden)
		assert.Equal(t, int64(30000), r.Charge().Cents(), "override must survive recompute attempts")
	})

	t.Run("negative_amounts_rejected", func(t *testing.T) {
		r := newTestReservation(t, 1, 0)
		require.Error(t, r.ApplyComputedCharge(kernel.MoneyFromFloat(-1)))
		require.Error(t, r.OverrideCharge(kernel.MoneyFromFloat(-1)))
		require.Error(t, r.SetCostBasis(kernel.MoneyFromFloat(-1)))
		require.Error(t, r.RecordCollection(kernel.MoneyFromFloat(-1), false))
	})

	t.Run("zero_collection_is_recorded", func(t *testing.T) {
		r := newTestReservation(t, 1, 0)
		require.NoError(t, r.RecordCollection(kernel.ZeroMoney(), true))
		assert.True(t, r.Collected().IsZero())
		assert.True(t, r.AgencyCollected())
	})
}

func TestReservation_Cancel(t *testing.T) {
	r := newTestReservation(t, 2, 0)

	require.NoError(t, r.Cancel())
	assert.False(t, r.IsActive())

	assert.ErrorIs(t, r.Cancel(), reservation.ErrReservationCancelled)
	assert.ErrorIs(t, r.ChangePassengerCounts(3, 0), reservation.ErrReservationCancelled)
}

func TestReservation_ChangePassengerCounts(t *testing.T) {
	r := newTestReservation(t, 2, 1)

	require.NoError(t, r.ChangePassengerCounts(4, 2))
	assert.Equal(t, 4, r.Adults())
	assert.Equal(t, 2, r.Children())

	assert.ErrorIs(t, r.ChangePassengerCounts(0, 0), reservation.ErrInvalidPassengerCount)
	assert.Equal(t, 4, r.Adults(), "failed change must not mutate counts")
}

func TestRestoreReservation(t *testing.T) {
	origin := kernel.NewUUID()
	r, err := reservation.RestoreReservation(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		2, 1,
		"Maria Lopez", "A1234567",
		&origin, nil,
		kernel.MoneyFromFloat(412.50), true,
		kernel.MoneyFromFloat(330), kernel.MoneyFromFloat(412.50), false,
		false,
		testCreatedAt,
	)
	require.NoError(t, err)
	assert.True(t, r.ChargeOverridden())
	assert.False(t, r.IsActive())
	assert.Equal(t, int64(33000), r.CostBasis().Cents())
	assert.Equal(t, int64(41250), r.Collected().Cents())
}

func TestReservation_Validate(t *testing.T) {
	var nilRes *reservation.Reservation
	require.ErrorIs(t, nilRes.Validate(), reservation.ErrReservationIsNotConstructed)

	zero := &reservation.Reservation{}
	require.ErrorIs(t, zero.Validate(), reservation.ErrReservationIsNotConstructed)
}
