package spot

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptySpotCode   = errors.New("spot code cannot be empty")
	ErrSpotCodeTooLong = errors.New("spot code is too long (max 16 characters)")
)

const MaxSpotCodeLength = 16

type Spot struct {
	id         uuid.UUID
	locationID uuid.UUID
	code       string
	zone       Zone
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

func NewSpot(locationID uuid.UUID, code string, zone Zone) (*Spot, error) {
	code = strings.TrimSpace(code)
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if !zone.IsValid() {
		return nil, ErrInvalidZone
	}

	return &Spot{
		id:         uuid.New(),
		locationID: locationID,
		code:       code,
		zone:       zone,
		status:     StatusAvailable,
	}, nil
}

func ReconstructSpot(
	id, locationID uuid.UUID,
	code string,
	zone Zone,
	status Status,
	createdAt, updatedAt time.Time,
) *Spot {
	return &Spot{
		id:         id,
		locationID: locationID,
		code:       code,
		zone:       zone,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (s *Spot) IsBookable() bool {
	return s.status == StatusAvailable
}

// StatusForWindow decides the status a spot takes when a reservation claims
// it: windows already underway occupy the spot, future-dated windows reserve
// it.
func StatusForWindow(startsAt, now time.Time) Status {
	if startsAt.After(now) {
		return StatusReserved
	}
	return StatusOccupied
}

func validateCode(code string) error {
	if code == "" {
		return ErrEmptySpotCode
	}
	if len(code) > MaxSpotCodeLength {
		return ErrSpotCodeTooLong
	}
	return nil
}

func (s *Spot) ID() uuid.UUID         { return s.id }
func (s *Spot) LocationID() uuid.UUID { return s.locationID }
func (s *Spot) Code() string          { return s.code }
func (s *Spot) Zone() Zone            { return s.zone }
func (s *Spot) Status() Status        { return s.status }
func (s *Spot) CreatedAt() time.Time  { return s.createdAt }
func (s *Spot) UpdatedAt() time.Time  { return s.updatedAt }
