package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	UserEmail    string          `json:"user_email"`
	SpotID       *uuid.UUID      `json:"spot_id,omitempty"`
	SpotCode     *string         `json:"spot_code,omitempty"`
	LocationID   uuid.UUID       `json:"location_id"`
	LocationName string          `json:"location_name"`
	VehiclePlate string          `json:"vehicle_plate"`
	StartsAt     time.Time       `json:"starts_at"`
	EndsAt       time.Time       `json:"ends_at"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type TransactionRow struct {
	PaymentID     uuid.UUID       `json:"payment_id"`
	ReservationID uuid.UUID       `json:"reservation_id"`
	UserEmail     string          `json:"user_email"`
	LocationName  string          `json:"location_name"`
	LocationCity  string          `json:"location_city"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	Method        *string         `json:"method,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type TransactionFilter struct {
	From       *time.Time
	To         *time.Time
	LocationID *uuid.UUID
	Status     *string
}

type TransactionList struct {
	Items []*TransactionRow `json:"items"`
	Total int64             `json:"total"`
}

type MetricsOverview struct {
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	RevenueGrowthPct     float64         `json:"revenue_growth_pct"`
	ReservationCount     int64           `json:"reservation_count"`
	ReservationGrowthPct float64         `json:"reservation_growth_pct"`
	ActiveReservations   int64           `json:"active_reservations"`
	OccupiedSpots        int64           `json:"occupied_spots"`
	TotalSpots           int64           `json:"total_spots"`
	OccupancyPct         float64         `json:"occupancy_pct"`
}

type ChartPoint struct {
	Day          time.Time       `json:"day"`
	Revenue      decimal.Decimal `json:"revenue"`
	Reservations int64           `json:"reservations"`
}

// OrphanReservation is a billable reservation in a terminal state with no
// completed payment.
type OrphanReservation struct {
	ReservationID uuid.UUID       `json:"reservation_id"`
	UserEmail     string          `json:"user_email"`
	LocationName  string          `json:"location_name"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	EndsAt        time.Time       `json:"ends_at"`
}

// Period is a half-open reporting interval [From, To).
type Period struct {
	From time.Time
	To   time.Time
}

// Previous returns the interval of equal length immediately before.
func (p Period) Previous() Period {
	length := p.To.Sub(p.From)
	return Period{From: p.From.Add(-length), To: p.From}
}
