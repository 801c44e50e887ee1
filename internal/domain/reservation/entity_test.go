//go:build unit

package reservation_test

import (
	"strings"
	"testing"
	"time"

	"parkdesk/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWindow(t *testing.T) reservation.TimeWindow {
	t.Helper()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	w, err := reservation.NewTimeWindow(base, base.Add(2*time.Hour))
	require.NoError(t, err)
	return w
}

func TestNewReservation(t *testing.T) {
	window := newTestWindow(t)
	userID := uuid.New()
	locationID := uuid.New()
	spotID := uuid.New()

	t.Run("basic success case", func(t *testing.T) {
		res, err := reservation.NewReservation(userID, &spotID, locationID, "B 1234 XYZ", window, decimal.NewFromInt(20000))
		require.NoError(t, err)
		require.NotNil(t, res)

		assert.NotEqual(t, uuid.Nil, res.ID())
		assert.Equal(t, userID, res.UserID())
		assert.Equal(t, &spotID, res.SpotID())
		assert.Equal(t, reservation.StatusPending, res.Status())
		assert.True(t, res.TotalAmount().Equal(decimal.NewFromInt(20000)))
	})

	t.Run("nil spot before allocation", func(t *testing.T) {
		res, err := reservation.NewReservation(userID, nil, locationID, "B 1234 XYZ", window, decimal.NewFromInt(20000))
		require.NoError(t, err)
		assert.Nil(t, res.SpotID())
	})

	t.Run("plate is trimmed", func(t *testing.T) {
		res, err := reservation.NewReservation(userID, nil, locationID, "  B 1 A  ", window, decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, "B 1 A", res.VehiclePlate())
	})

	t.Run("empty plate is rejected", func(t *testing.T) {
		_, err := reservation.NewReservation(userID, nil, locationID, "   ", window, decimal.Zero)
		require.ErrorIs(t, err, reservation.ErrEmptyVehiclePlate)
	})

	t.Run("too long plate is rejected", func(t *testing.T) {
		plate := strings.Repeat("X", reservation.MaxVehiclePlateLength+1)
		_, err := reservation.NewReservation(userID, nil, locationID, plate, window, decimal.Zero)
		require.ErrorIs(t, err, reservation.ErrVehiclePlateTooLong)
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		_, err := reservation.NewReservation(userID, nil, locationID, "B 1 A", window, decimal.NewFromInt(-1))
		require.ErrorIs(t, err, reservation.ErrNegativeAmount)
	})
}

func TestReservationTransitionTo(t *testing.T) {
	window := newTestWindow(t)

	newPending := func(t *testing.T) *reservation.Reservation {
		t.Helper()
		res, err := reservation.NewReservation(uuid.New(), nil, uuid.New(), "B 1 A", window, decimal.Zero)
		require.NoError(t, err)
		return res
	}

	t.Run("pending through active to completed", func(t *testing.T) {
		res := newPending(t)
		require.NoError(t, res.TransitionTo(reservation.StatusActive))
		require.NoError(t, res.TransitionTo(reservation.StatusCompleted))
		assert.Equal(t, reservation.StatusCompleted, res.Status())
	})

	t.Run("pending to completed is rejected", func(t *testing.T) {
		res := newPending(t)
		err := res.TransitionTo(reservation.StatusCompleted)
		require.ErrorIs(t, err, reservation.ErrInvalidTransition)
		assert.Equal(t, reservation.StatusPending, res.Status())
	})

	t.Run("completed is terminal", func(t *testing.T) {
		res := newPending(t)
		require.NoError(t, res.TransitionTo(reservation.StatusActive))
		require.NoError(t, res.TransitionTo(reservation.StatusCompleted))

		err := res.TransitionTo(reservation.StatusActive)
		require.ErrorIs(t, err, reservation.ErrInvalidTransition)
	})

	t.Run("invalid status value is rejected", func(t *testing.T) {
		res := newPending(t)
		err := res.TransitionTo(reservation.Status("parked"))
		require.ErrorIs(t, err, reservation.ErrInvalidStatus)
	})
}

func TestReservationHasEnded(t *testing.T) {
	window := newTestWindow(t)
	res, err := reservation.NewReservation(uuid.New(), nil, uuid.New(), "B 1 A", window, decimal.Zero)
	require.NoError(t, err)

	assert.False(t, res.HasEnded(window.End().Add(-time.Second)))
	assert.True(t, res.HasEnded(window.End()))
	assert.True(t, res.HasEnded(window.End().Add(time.Hour)))
}
