package shared

import (
	"context"
	"time"

	"parkdesk/internal/domain/payment"
	"parkdesk/internal/domain/reservation"
	"parkdesk/internal/domain/spot"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitOfWork scopes every mutating operation to one transaction so that
// allocation checks and the writes they guard commit or roll back together.
type UnitOfWork interface {
	// Within: Full transaction for write operations with retry on
	// serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside
	// transactions
	CommandReads() CommandReads
}

type Tx interface {
	Spots() SpotRepository
	Reservations() ReservationRepository
	Payments() PaymentRepository
}

type CommandReads interface {
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
	LocationExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Write-side snapshots keep commands independent of read-side view types.
type SpotSnapshot struct {
	ID     uuid.UUID
	Code   string
	Zone   spot.Zone
	Status spot.Status
}

type ReservationSnapshot struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SpotID      *uuid.UUID
	LocationID  uuid.UUID
	Status      reservation.Status
	StartsAt    time.Time
	EndsAt      time.Time
	TotalAmount decimal.Decimal
}

type PaymentSnapshot struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	Status        payment.Status
	Method        *payment.Method
	Amount        decimal.Decimal
}

type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
}

type SpotRepository interface {
	// FindAvailableForUpdate returns the bookable spots for the window with
	// their rows locked, ordered by code.
	FindAvailableForUpdate(ctx context.Context, locationID uuid.UUID, zone spot.Zone, window reservation.TimeWindow) ([]*SpotSnapshot, error)
	UpdateStatus(ctx context.Context, spotID uuid.UUID, status spot.Status) error
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status) error
	// CountBlockingOnSpot counts pending/active reservations holding the spot,
	// excluding the given reservation.
	CountBlockingOnSpot(ctx context.Context, spotID, excludeID uuid.UUID) (int64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *payment.Payment) (uuid.UUID, error)
	FindByReservationIDForUpdate(ctx context.Context, reservationID uuid.UUID) (*PaymentSnapshot, error)
	MarkCompleted(ctx context.Context, paymentID uuid.UUID, method payment.Method) error
}
