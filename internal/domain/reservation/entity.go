package reservation

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount      = errors.New("total amount cannot be negative")
	ErrEmptyVehiclePlate   = errors.New("vehicle plate cannot be empty")
	ErrVehiclePlateTooLong = errors.New("vehicle plate is too long (max 16 characters)")
	ErrInvalidTransition   = errors.New("invalid status transition")
)

const MaxVehiclePlateLength = 16

type Reservation struct {
	id           uuid.UUID
	userID       uuid.UUID
	spotID       *uuid.UUID
	locationID   uuid.UUID
	vehiclePlate string
	window       TimeWindow
	totalAmount  decimal.Decimal
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
}

// NewReservation builds a pending reservation with its total amount fixed at
// creation time. spotID may be nil before allocation assigns one.
func NewReservation(
	userID uuid.UUID,
	spotID *uuid.UUID,
	locationID uuid.UUID,
	vehiclePlate string,
	window TimeWindow,
	totalAmount decimal.Decimal,
) (*Reservation, error) {
	vehiclePlate = strings.TrimSpace(vehiclePlate)
	if err := validateVehiclePlate(vehiclePlate); err != nil {
		return nil, err
	}
	if totalAmount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	return &Reservation{
		id:           uuid.New(),
		userID:       userID,
		spotID:       spotID,
		locationID:   locationID,
		vehiclePlate: vehiclePlate,
		window:       window,
		totalAmount:  totalAmount,
		status:       StatusPending,
	}, nil
}

func ReconstructReservation(
	id, userID uuid.UUID,
	spotID *uuid.UUID,
	locationID uuid.UUID,
	vehiclePlate string,
	window TimeWindow,
	totalAmount decimal.Decimal,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:           id,
		userID:       userID,
		spotID:       spotID,
		locationID:   locationID,
		vehiclePlate: vehiclePlate,
		window:       window,
		totalAmount:  totalAmount,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// TransitionTo enforces the permitted edges of the status machine.
func (r *Reservation) TransitionTo(next Status) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !r.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	r.status = next
	return nil
}

func (r *Reservation) IsBlocking() bool {
	return r.status.Blocks()
}

func (r *Reservation) HasEnded(now time.Time) bool {
	return !now.Before(r.window.End())
}

func validateVehiclePlate(plate string) error {
	if plate == "" {
		return ErrEmptyVehiclePlate
	}
	if len(plate) > MaxVehiclePlateLength {
		return ErrVehiclePlateTooLong
	}
	return nil
}

func (r *Reservation) ID() uuid.UUID                { return r.id }
func (r *Reservation) UserID() uuid.UUID            { return r.userID }
func (r *Reservation) SpotID() *uuid.UUID           { return r.spotID }
func (r *Reservation) LocationID() uuid.UUID        { return r.locationID }
func (r *Reservation) VehiclePlate() string         { return r.vehiclePlate }
func (r *Reservation) Window() TimeWindow           { return r.window }
func (r *Reservation) TotalAmount() decimal.Decimal { return r.totalAmount }
func (r *Reservation) Status() Status               { return r.status }
func (r *Reservation) CreatedAt() time.Time         { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time         { return r.updatedAt }
