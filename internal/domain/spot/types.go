package spot

import "errors"

var (
	ErrInvalidStatus = errors.New("invalid spot status")
	ErrInvalidZone   = errors.New("invalid zone type")
)

// Status is the physical availability of a spot. A spot referenced by a
// pending or active reservation is never StatusAvailable.
type Status string

const (
	StatusAvailable Status = "available"
	StatusOccupied  Status = "occupied"
	StatusReserved  Status = "reserved"
)

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusReserved:
		return true
	default:
		return false
	}
}

// Zone is the pricing classification of a spot.
type Zone string

const (
	ZoneRegular Zone = "regular"
	ZoneVIP     Zone = "vip"
)

func NewZone(s string) (Zone, error) {
	z := Zone(s)
	if !z.IsValid() {
		return "", ErrInvalidZone
	}
	return z, nil
}

func (z Zone) String() string {
	return string(z)
}

func (z Zone) IsValid() bool {
	switch z {
	case ZoneRegular, ZoneVIP:
		return true
	default:
		return false
	}
}
