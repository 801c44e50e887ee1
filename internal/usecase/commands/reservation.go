package commands

import (
	"context"
	"time"

	"parkdesk/internal/domain/payment"
	"parkdesk/internal/domain/reservation"
	"parkdesk/internal/domain/spot"
	"parkdesk/internal/infra"
	"parkdesk/internal/pkg/clock"
	"parkdesk/internal/pkg/errs"
	"parkdesk/internal/usecase/queries"
	"parkdesk/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrValidation              = errs.New("validation error")
	ErrNoSpotAvailable         = errs.New("no spot available")
	ErrSpotConflict            = errs.New("spot conflict")
	ErrInvalidTransition       = errs.New("invalid status transition")
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateReservationParams struct {
	UserID       uuid.UUID
	LocationID   uuid.UUID
	SpotID       *uuid.UUID
	Zone         string
	VehiclePlate string
	StartsAt     time.Time
	EndsAt       time.Time
	// Prepaid creates the pending payment row in the same transaction.
	Prepaid bool
}

type ReservationCommands interface {
	Create(ctx context.Context, params CreateReservationParams) (*queries.ReservationView, error)
	Transition(ctx context.Context, reservationID uuid.UUID, next reservation.Status) error
	Cancel(ctx context.Context, reservationID uuid.UUID) error
}

type reservationUseCaseImpl struct {
	uow                shared.UnitOfWork
	priceCalc          reservation.PriceCalculator
	reservationQueries queries.ReservationQueries
	clock              clock.Clock
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	priceCalc reservation.PriceCalculator,
	reservationQueries queries.ReservationQueries,
	clock clock.Clock,
) ReservationCommands {
	return &reservationUseCaseImpl{
		uow:                uow,
		priceCalc:          priceCalc,
		reservationQueries: reservationQueries,
		clock:              clock,
	}
}

func (r *reservationUseCaseImpl) Create(ctx context.Context, params CreateReservationParams) (*queries.ReservationView, error) {
	window, err := reservation.NewTimeWindow(params.StartsAt, params.EndsAt)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	zone, err := spot.NewZone(params.Zone)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	exists, err := r.uow.CommandReads().LocationExists(ctx, params.LocationID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !exists {
		return nil, errs.Mark(errs.New("unknown location"), ErrValidation)
	}

	var reservationID uuid.UUID
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		chosen, err := r.allocateSpot(ctx, tx, params, zone, window)
		if err != nil {
			return err
		}

		total := r.priceCalc.TotalAmount(chosen.Zone, window)
		res, err := reservation.NewReservation(
			params.UserID, &chosen.ID, params.LocationID,
			params.VehiclePlate, window, total,
		)
		if err != nil {
			return errs.Mark(err, ErrValidation)
		}

		reservationID, err = tx.Reservations().Create(ctx, res)
		if err != nil {
			// The exclusion constraint is the backstop for two transactions
			// racing past the row lock.
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrSpotConflict)
			}
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.Mark(err, ErrValidation)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		nextStatus := spot.StatusForWindow(window.Start(), r.clock.Now())
		if err := tx.Spots().UpdateStatus(ctx, chosen.ID, nextStatus); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if params.Prepaid {
			pay, err := payment.NewPendingPayment(reservationID, total)
			if err != nil {
				return errs.Mark(err, ErrValidation)
			}
			if _, err := tx.Payments().Create(ctx, pay); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := r.reservationQueries.GetByID(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// allocateSpot picks the lowest-code bookable spot for the window, or the
// requested spot when the caller pinned one.
func (r *reservationUseCaseImpl) allocateSpot(
	ctx context.Context,
	tx shared.Tx,
	params CreateReservationParams,
	zone spot.Zone,
	window reservation.TimeWindow,
) (*shared.SpotSnapshot, error) {
	available, err := tx.Spots().FindAvailableForUpdate(ctx, params.LocationID, zone, window)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if len(available) == 0 {
		return nil, ErrNoSpotAvailable
	}

	if params.SpotID == nil {
		return available[0], nil
	}
	for _, s := range available {
		if s.ID == *params.SpotID {
			return s, nil
		}
	}
	return nil, ErrSpotConflict
}

func (r *reservationUseCaseImpl) Transition(ctx context.Context, reservationID uuid.UUID, next reservation.Status) error {
	if !next.IsValid() {
		return errs.Mark(reservation.ErrInvalidStatus, ErrValidation)
	}

	return r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reservations().FindByIDForUpdate(ctx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrReservationNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if !snap.Status.CanTransitionTo(next) {
			return ErrInvalidTransition
		}

		if err := tx.Reservations().UpdateStatus(ctx, reservationID, next); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if next.IsTerminal() && snap.SpotID != nil {
			if err := r.releaseSpotIfFree(ctx, tx, *snap.SpotID, reservationID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *reservationUseCaseImpl) Cancel(ctx context.Context, reservationID uuid.UUID) error {
	return r.Transition(ctx, reservationID, reservation.StatusCancelled)
}

// releaseSpotIfFree reverts the spot to available unless another
// pending/active reservation still holds it.
func (r *reservationUseCaseImpl) releaseSpotIfFree(ctx context.Context, tx shared.Tx, spotID, excludeID uuid.UUID) error {
	blocking, err := tx.Reservations().CountBlockingOnSpot(ctx, spotID, excludeID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if blocking > 0 {
		return nil
	}
	if err := tx.Spots().UpdateStatus(ctx, spotID, spot.StatusAvailable); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
