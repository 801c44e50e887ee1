package response

import (
	"time"

	"parkdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReservationResponse struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"userId"`
	UserEmail    string          `json:"userEmail"`
	SpotID       *uuid.UUID      `json:"spotId,omitempty"`
	SpotCode     *string         `json:"spotCode,omitempty"`
	LocationID   uuid.UUID       `json:"locationId"`
	LocationName string          `json:"locationName"`
	VehiclePlate string          `json:"vehiclePlate"`
	StartsAt     time.Time       `json:"startsAt"`
	EndsAt       time.Time       `json:"endsAt"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type ReservationListResponse struct {
	Items []*ReservationResponse `json:"items"`
}

func FromReservationViews(views []*queries.ReservationView) *ReservationListResponse {
	items := make([]*ReservationResponse, len(views))
	for i, view := range views {
		items[i] = FromReservationView(view)
	}
	return &ReservationListResponse{Items: items}
}

func FromReservationView(view *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:           view.ID,
		UserID:       view.UserID,
		UserEmail:    view.UserEmail,
		SpotID:       view.SpotID,
		SpotCode:     view.SpotCode,
		LocationID:   view.LocationID,
		LocationName: view.LocationName,
		VehiclePlate: view.VehiclePlate,
		StartsAt:     view.StartsAt,
		EndsAt:       view.EndsAt,
		TotalAmount:  view.TotalAmount,
		Status:       view.Status,
		CreatedAt:    view.CreatedAt,
		UpdatedAt:    view.UpdatedAt,
	}
}
