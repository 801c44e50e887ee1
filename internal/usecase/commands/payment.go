package commands

import (
	"context"

	"parkdesk/internal/domain/payment"
	"parkdesk/internal/infra"
	"parkdesk/internal/pkg/errs"
	"parkdesk/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrAmountMismatch = errs.New("payment amount mismatch")

type PaymentCommands interface {
	// EnsurePayment is idempotent: it creates the missing pending payment
	// with the amount copied from the reservation, and reports a mismatch
	// between an existing payment and the reservation total without
	// correcting it.
	EnsurePayment(ctx context.Context, reservationID uuid.UUID) error
	MarkCompleted(ctx context.Context, reservationID uuid.UUID, method payment.Method) error
}

type paymentUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewPaymentUseCase(uow shared.UnitOfWork) PaymentCommands {
	return &paymentUseCaseImpl{uow: uow}
}

func (p *paymentUseCaseImpl) EnsurePayment(ctx context.Context, reservationID uuid.UUID) error {
	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByIDForUpdate(ctx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrReservationNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		existing, err := tx.Payments().FindByReservationIDForUpdate(ctx, reservationID)
		if err != nil {
			if !infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			pay, err := payment.NewPendingPayment(reservationID, res.TotalAmount)
			if err != nil {
				return errs.Mark(err, ErrValidation)
			}
			if _, err := tx.Payments().Create(ctx, pay); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			return nil
		}

		if !existing.Amount.Equal(res.TotalAmount) {
			return ErrAmountMismatch
		}
		return nil
	})
}

func (p *paymentUseCaseImpl) MarkCompleted(ctx context.Context, reservationID uuid.UUID, method payment.Method) error {
	if !method.IsValid() {
		return errs.Mark(payment.ErrInvalidMethod, ErrValidation)
	}

	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByIDForUpdate(ctx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrReservationNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		existing, err := tx.Payments().FindByReservationIDForUpdate(ctx, reservationID)
		if err != nil {
			if !infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			// No payment row yet. Create it completed in one go.
			pay, err := payment.NewPendingPayment(reservationID, res.TotalAmount)
			if err != nil {
				return errs.Mark(err, ErrValidation)
			}
			if err := pay.MarkCompleted(method); err != nil {
				return errs.Mark(err, ErrValidation)
			}
			if _, err := tx.Payments().Create(ctx, pay); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			return nil
		}

		if existing.Status == payment.StatusCompleted {
			return nil
		}
		if !existing.Amount.Equal(res.TotalAmount) {
			return ErrAmountMismatch
		}
		if err := tx.Payments().MarkCompleted(ctx, existing.ID, method); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}
