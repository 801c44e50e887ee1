package request

import (
	"time"

	"parkdesk/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	UserID       uuid.UUID  `json:"user_id" binding:"required"`
	LocationID   uuid.UUID  `json:"location_id" binding:"required"`
	SpotID       *uuid.UUID `json:"spot_id,omitempty"`
	Zone         string     `json:"zone" binding:"required,oneof=regular vip"`
	VehiclePlate string     `json:"vehicle_plate" binding:"required,max=16"`
	StartsAt     time.Time  `json:"starts_at" binding:"required"`
	EndsAt       time.Time  `json:"ends_at" binding:"required"`
	Prepaid      bool       `json:"prepaid"`
}

func (r CreateReservationRequest) ToParams() commands.CreateReservationParams {
	return commands.CreateReservationParams{
		UserID:       r.UserID,
		LocationID:   r.LocationID,
		SpotID:       r.SpotID,
		Zone:         r.Zone,
		VehiclePlate: r.VehiclePlate,
		StartsAt:     r.StartsAt,
		EndsAt:       r.EndsAt,
		Prepaid:      r.Prepaid,
	}
}

type TransitionReservationRequest struct {
	Status string `json:"status" binding:"required,oneof=pending active completed cancelled"`
}

type ListReservationsRequest struct {
	UserID uuid.UUID `form:"user_id" binding:"required"`
	Limit  int32     `form:"limit"`
	Offset int32     `form:"offset"`
}
