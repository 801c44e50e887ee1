//go:build unit

package spot_test

import (
	"strings"
	"testing"
	"time"

	"parkdesk/internal/domain/spot"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpot(t *testing.T) {
	locationID := uuid.New()

	t.Run("basic success case", func(t *testing.T) {
		s, err := spot.NewSpot(locationID, "A-01", spot.ZoneRegular)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, s.ID())
		assert.Equal(t, "A-01", s.Code())
		assert.Equal(t, spot.StatusAvailable, s.Status())
		assert.True(t, s.IsBookable())
	})

	t.Run("code is trimmed", func(t *testing.T) {
		s, err := spot.NewSpot(locationID, "  A-01  ", spot.ZoneVIP)
		require.NoError(t, err)
		assert.Equal(t, "A-01", s.Code())
	})

	t.Run("empty code is rejected", func(t *testing.T) {
		_, err := spot.NewSpot(locationID, "   ", spot.ZoneRegular)
		require.ErrorIs(t, err, spot.ErrEmptySpotCode)
	})

	t.Run("too long code is rejected", func(t *testing.T) {
		_, err := spot.NewSpot(locationID, strings.Repeat("A", spot.MaxSpotCodeLength+1), spot.ZoneRegular)
		require.ErrorIs(t, err, spot.ErrSpotCodeTooLong)
	})

	t.Run("invalid zone is rejected", func(t *testing.T) {
		_, err := spot.NewSpot(locationID, "A-01", spot.Zone("premium"))
		require.ErrorIs(t, err, spot.ErrInvalidZone)
	})
}

func TestStatusForWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		startsAt time.Time
		expected spot.Status
	}{
		{name: "future window reserves the spot", startsAt: now.Add(time.Hour), expected: spot.StatusReserved},
		{name: "window starting now occupies the spot", startsAt: now, expected: spot.StatusOccupied},
		{name: "window already underway occupies the spot", startsAt: now.Add(-time.Hour), expected: spot.StatusOccupied},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, spot.StatusForWindow(c.startsAt, now))
		})
	}
}

func TestIsBookable(t *testing.T) {
	now := time.Now()
	for _, c := range []struct {
		status   spot.Status
		bookable bool
	}{
		{status: spot.StatusAvailable, bookable: true},
		{status: spot.StatusOccupied, bookable: false},
		{status: spot.StatusReserved, bookable: false},
	} {
		s := spot.ReconstructSpot(uuid.New(), uuid.New(), "A-01", spot.ZoneRegular, c.status, now, now)
		assert.Equal(t, c.bookable, s.IsBookable(), "status %s", c.status)
	}
}
