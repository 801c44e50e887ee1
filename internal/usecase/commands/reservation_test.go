//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"parkdesk/internal/domain/reservation"
	"parkdesk/internal/domain/spot"
	"parkdesk/internal/infra"
	"parkdesk/internal/pkg/clock"
	"parkdesk/internal/usecase/commands"
	"parkdesk/internal/usecase/queries"
	"parkdesk/internal/usecase/shared"
	queriesmock "parkdesk/tests/mock/queries"
	sharedmock "parkdesk/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type reservationMocks struct {
	uow          *sharedmock.MockUnitOfWork
	tx           *sharedmock.MockTx
	commandReads *sharedmock.MockCommandReads
	spots        *sharedmock.MockSpotRepository
	reservations *sharedmock.MockReservationRepository
	payments     *sharedmock.MockPaymentRepository
	queries      *queriesmock.MockReservationQueries
	clock        *clock.MockClock
}

func newReservationMocks(t *testing.T) (*reservationMocks, commands.ReservationCommands) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &reservationMocks{
		uow:          sharedmock.NewMockUnitOfWork(ctrl),
		tx:           sharedmock.NewMockTx(ctrl),
		commandReads: sharedmock.NewMockCommandReads(ctrl),
		spots:        sharedmock.NewMockSpotRepository(ctrl),
		reservations: sharedmock.NewMockReservationRepository(ctrl),
		payments:     sharedmock.NewMockPaymentRepository(ctrl),
		queries:      queriesmock.NewMockReservationQueries(ctrl),
		clock:        clock.NewMockClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)),
	}

	m.uow.EXPECT().CommandReads().Return(m.commandReads).AnyTimes()
	m.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, m.tx)
		},
	).AnyTimes()
	m.tx.EXPECT().Spots().Return(m.spots).AnyTimes()
	m.tx.EXPECT().Reservations().Return(m.reservations).AnyTimes()
	m.tx.EXPECT().Payments().Return(m.payments).AnyTimes()

	uc := commands.NewReservationUseCase(m.uow, reservation.NewDefaultRateTable(), m.queries, m.clock)
	return m, uc
}

func TestCreateReservation(t *testing.T) {
	userID := uuid.New()
	locationID := uuid.New()
	startsAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	endsAt := startsAt.Add(2 * time.Hour)

	baseParams := commands.CreateReservationParams{
		UserID:       userID,
		LocationID:   locationID,
		Zone:         "regular",
		VehiclePlate: "B 1234 XYZ",
		StartsAt:     startsAt,
		EndsAt:       endsAt,
	}

	spotA := &shared.SpotSnapshot{ID: uuid.New(), Code: "A-01", Zone: spot.ZoneRegular, Status: spot.StatusAvailable}
	spotB := &shared.SpotSnapshot{ID: uuid.New(), Code: "A-02", Zone: spot.ZoneRegular, Status: spot.StatusAvailable}

	t.Run("allocates the lowest-code spot and reserves it for a future window", func(t *testing.T) {
		m, uc := newReservationMocks(t)
		reservationID := uuid.New()

		m.commandReads.EXPECT().LocationExists(gomock.Any(), locationID).Return(true, nil)
		m.spots.EXPECT().FindAvailableForUpdate(gomock.Any(), locationID, spot.ZoneRegular, gomock.Any()).
			Return([]*shared.SpotSnapshot{spotA, spotB}, nil)
		m.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, res *reservation.Reservation) (uuid.UUID, error) {
				require.Equal(t, spotA.ID, *res.SpotID())
				assert.True(t, res.TotalAmount().IntPart() == 20000)
				return reservationID, nil
			})
		m.spots.EXPECT().UpdateStatus(gomock.Any(), spotA.ID, spot.StatusReserved).Return(nil)
		m.queries.EXPECT().GetByID(gomock.Any(), reservationID).
			Return(&queries.ReservationView{ID: reservationID, Status: "pending"}, nil)

		view, err := uc.Create(context.Background(), baseParams)
		require.NoError(t, err)
		assert.Equal(t, reservationID, view.ID)
	})

	t.Run("occupies the spot when the window has already started", func(t *testing.T) {
		m, uc := newReservationMocks(t)
		m.clock.Set(startsAt.Add(10 * time.Minute))
		reservationID := uuid.New()

		m.commandReads.EXPECT().LocationExists(gomock.Any(), locationID).Return(true, nil)
		m.spots.EXPECT().FindAvailableForUpdate(gomock.Any(), locationID, spot.ZoneRegular, gomock.Any()).
			Return([]*shared.SpotSnapshot{spotA}, nil)
		m.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).Return(reservationID, nil)
		m.spots.EXPECT().UpdateStatus(gomock.Any(), spotA.ID, spot.StatusOccupied).Return(nil)
		m.queries.EXPECT().GetByID(gomock.Any(), reservationID).
			Return(&queries.ReservationView{ID: reservationID}, nil)

		_, err := uc.Create(context.Background(), baseParams)
		require.NoError(t, err)
	})

	t.Run("prepaid creates the pending payment in the same transaction", func(t *testing.T) {
		m, uc := newReservationMocks(t)
		reservationID := uuid.New()
		params := baseParams
		params.Prepaid = true

		m.commandReads.EXPECT().LocationExists(gomock.Any(), locationID).Return(true, nil)
		m.spots.EXPECT().FindAvailableForUpdate(gomock.Any(), locationID, spot.ZoneRegular, gomock.Any()).
			Return([]*shared.SpotSnapshot{spotA}, nil)
		m.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).Return(reservationID, nil)
		m.spots.EXPECT().UpdateStatus(gomock.Any(), spotA.ID, spot.StatusReserved).Return(nil)
		m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.New(), nil)
		m.queries.EXPECT().GetByID(gomock.Any(), reservationID).
			Return(&queries.ReservationView{ID: reservationID}, nil)

		_, err := uc.Create(context.Background(), params)
		require.NoError(t, err)
	})

	t.Run("pinned spot is honored when bookable", func(t *testing.T) {
		m, uc := newReservationMocks(t)
		reservationID := uuid.New()
		params := baseParams
		params.SpotID = &spotB.ID

		m.commandReads.EXPECT().LocationExists(gomock.Any(), locationID).Return(true, nil)
		m.spots.EXPECT().FindAvailableForUpdate(gomock.Any(), locationID, spot.ZoneRegular, gomock.Any()).
			Return([]*shared.SpotSnapshot{spotA, spotB}, nil)
		m.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, res *reservation.Reservation) (uuid.UUID, error) {
				require.Equal(t, spotB.ID, *res.SpotID())
				return reservationID, nil
			})
		m.spots.EXPECT().UpdateStatus(gomock.Any(), spotB.ID, spot.StatusReserved).Return(nil)
		m.queries.EXPECT().GetByID(gomock.Any(), reservationID).
			Return(&queries.ReservationView{ID: reservationID}, nil)

		_, err := uc.Create(context.Background(), params)
		require.NoError(t, err)
	})

	t.Run("pinned spot not bookable reports a conflict", func(t *testing.T) {
		m, uc := newReservationMocks(t)
		pinned := uuid.New()
		params := baseParams
		params.SpotID = &pinned

		m.commandReads.EXPECT().LocationExists(gomock.Any(), locationID).Return(true, nil)
		m.spots.EXPECT().FindAvailableForUpdate(gomock.Any(), locationID, spot.ZoneRegular, gomock.Any()).
			Return([]*shared.SpotSnapshot{spotA}, nil)

		_, err := uc.Create(context.Background(), params)
		require.ErrorIs(t, err, commands.ErrSpotConflict)
	})

	t.Run("no bookable spot", func(t *testing.T) {
		m, uc := newReservationMocks(t)

		m.commandReads.EXPECT().LocationExists(gomock.Any(), locationID).Return(true, nil)
		m.spots.EXPECT().FindAvailableForUpdate(gomock.Any(), locationID, spot.ZoneRegular, gomock.Any()).
			Return(nil, nil)

		_, err := uc.Create(context.Background(), baseParams)
		require.ErrorIs(t, err, commands.ErrNoSpotAvailable)
	})

	t.Run("exclusion violation on insert reports a conflict", func(t *testing.T) {
		m, uc := newReservationMocks(t)

		m.commandReads.EXPECT().LocationExists(gomock.Any(), locationID).Return(true, nil)
		m.spots.EXPECT().FindAvailableForUpdate(gomock.Any(), locationID, spot.ZoneRegular, gomock.Any()).
			Return([]*shared.SpotSnapshot{spotA}, nil)
		m.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("insert reservation", nil, infra.KindConflict))

		_, err := uc.Create(context.Background(), baseParams)
		require.ErrorIs(t, err, commands.ErrSpotConflict)
	})

	t.Run("inverted window is a validation error", func(t *testing.T) {
		_, uc := newReservationMocks(t)
		params := baseParams
		params.StartsAt, params.EndsAt = params.EndsAt, params.StartsAt

		_, err := uc.Create(context.Background(), params)
		require.ErrorIs(t, err, commands.ErrValidation)
	})

	t.Run("unknown zone is a validation error", func(t *testing.T) {
		_, uc := newReservationMocks(t)
		params := baseParams
		params.Zone = "premium"

		_, err := uc.Create(context.Background(), params)
		require.ErrorIs(t, err, commands.ErrValidation)
	})

	t.Run("unknown location is a validation error", func(t *testing.T) {
		m, uc := newReservationMocks(t)
		m.commandReads.EXPECT().LocationExists(gomock.Any(), locationID).Return(false, nil)

		_, err := uc.Create(context.Background(), baseParams)
		require.ErrorIs(t, err, commands.ErrValidation)
	})
}

func TestTransitionReservation(t *testing.T) {
	reservationID := uuid.New()
	spotID := uuid.New()

	snapshot := func(status reservation.Status, withSpot bool) *shared.ReservationSnapshot {
		snap := &shared.ReservationSnapshot{ID: reservationID, Status: status}
		if withSpot {
			snap.SpotID = &spotID
		}
		return snap
	}

	t.Run("pending to active", func(t *testing.T) {
		m, uc := newReservationMocks(t)
		m.reservations.EXPECT().FindByIDForUpdate(gomock.Any(), reservationID).
			Return(snapshot(reservation.StatusPending, true), nil)
		m.reservations.EXPECT().UpdateStatus(gomock.Any(), reservationID, reservation.StatusActive).Return(nil)

		require.NoError(t, uc.Transition(context.Background(), reservationID, reservation.StatusActive))
	})

	t.Run("completing releases the spot when nothing else holds it", func(t *testing.T) {
		m, uc := newReservationMocks(t)
		m.reservations.EXPECT().FindByIDForUpdate(gomock.Any(), reservationID).
			Return(snapshot(reservation.StatusActive, true), nil)
		m.reservations.EXPECT().UpdateStatus(gomock.Any(), reservationID, reservation.StatusCompleted).Return(nil)
		m.reservations.EXPECT().CountBlockingOnSpot(gomock.Any(), spotID, reservationID).Return(int64(0), nil)
		m.spots.EXPECT().UpdateStatus(gomock.Any(), spotID, spot.StatusAvailable).Return(nil)

		require.NoError(t, uc.Transition(context.Background(), reservationID, reservation.StatusCompleted))
	})

	t.Run("completing keeps the spot when another reservation holds it", func(t *testing.T) {
		m, uc := newReservationMocks(t)
		m.reservations.EXPECT().FindByIDForUpdate(gomock.Any(), reservationID).
			Return(snapshot(reservation.StatusActive, true), nil)
		m.reservations.EXPECT().UpdateStatus(gomock.Any(), reservationID, reservation.StatusCompleted).Return(nil)
		m.reservations.EXPECT().CountBlockingOnSpot(gomock.Any(), spotID, reservationID).Return(int64(1), nil)

		require.NoError(t, uc.Transition(context.Background(), reservationID, reservation.StatusCompleted))
	})

	t.Run("cancelling a reservation without a spot skips the release", func(t *testing.T) {
		m, uc := newReservationMocks(t)
		m.reservations.EXPECT().FindByIDForUpdate(gomock.Any(), reservationID).
			Return(snapshot(reservation.StatusPending, false), nil)
		m.reservations.EXPECT().UpdateStatus(gomock.Any(), reservationID, reservation.StatusCancelled).Return(nil)

		require.NoError(t, uc.Cancel(context.Background(), reservationID))
	})

	t.Run("terminal state rejects further transitions", func(t *testing.T) {
		m, uc := newReservationMocks(t)
		m.reservations.EXPECT().FindByIDForUpdate(gomock.Any(), reservationID).
			Return(snapshot(reservation.StatusCompleted, true), nil)

		err := uc.Transition(context.Background(), reservationID, reservation.StatusActive)
		require.ErrorIs(t, err, commands.ErrInvalidTransition)
	})

	t.Run("missing reservation", func(t *testing.T) {
		m, uc := newReservationMocks(t)
		m.reservations.EXPECT().FindByIDForUpdate(gomock.Any(), reservationID).
			Return(nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound))

		err := uc.Transition(context.Background(), reservationID, reservation.StatusActive)
		require.ErrorIs(t, err, commands.ErrReservationNotFound)
	})

	t.Run("invalid target status", func(t *testing.T) {
		_, uc := newReservationMocks(t)
		err := uc.Transition(context.Background(), reservationID, reservation.Status("parked"))
		require.ErrorIs(t, err, commands.ErrValidation)
	})
}
