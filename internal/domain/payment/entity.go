package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount   = errors.New("payment amount cannot be negative")
	ErrAlreadyCompleted = errors.New("payment already completed")
	ErrNotPending       = errors.New("payment is not pending")
)

// Payment is the one-to-one billing record of a reservation. Its amount is
// copied from the reservation's total at creation and must stay equal to it.
type Payment struct {
	id            uuid.UUID
	reservationID uuid.UUID
	amount        decimal.Decimal
	status        Status
	method        *Method
	createdAt     time.Time
	updatedAt     time.Time
}

func NewPendingPayment(reservationID uuid.UUID, amount decimal.Decimal) (*Payment, error) {
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	return &Payment{
		id:            uuid.New(),
		reservationID: reservationID,
		amount:        amount,
		status:        StatusPending,
	}, nil
}

func ReconstructPayment(
	id, reservationID uuid.UUID,
	amount decimal.Decimal,
	status Status,
	method *Method,
	createdAt, updatedAt time.Time,
) *Payment {
	return &Payment{
		id:            id,
		reservationID: reservationID,
		amount:        amount,
		status:        status,
		method:        method,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// MarkCompleted is idempotent: completing a completed payment reports
// ErrAlreadyCompleted so callers can treat it as a no-op.
func (p *Payment) MarkCompleted(method Method) error {
	if p.status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	if !method.IsValid() {
		return ErrInvalidMethod
	}
	p.status = StatusCompleted
	p.method = &method
	return nil
}

func (p *Payment) MarkFailed() error {
	if p.status != StatusPending {
		return ErrNotPending
	}
	p.status = StatusFailed
	return nil
}

// MatchesAmount reports whether the payment is consistent with the owning
// reservation's total.
func (p *Payment) MatchesAmount(reservationTotal decimal.Decimal) bool {
	return p.amount.Equal(reservationTotal)
}

func (p *Payment) ID() uuid.UUID            { return p.id }
func (p *Payment) ReservationID() uuid.UUID { return p.reservationID }
func (p *Payment) Amount() decimal.Decimal  { return p.amount }
func (p *Payment) Status() Status           { return p.status }
func (p *Payment) Method() *Method          { return p.method }
func (p *Payment) CreatedAt() time.Time     { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time     { return p.updatedAt }
