package response

import (
	"time"

	"parkdesk/internal/usecase/queries"

	"github.com/shopspring/decimal"
)

type MetricsResponse struct {
	TotalRevenue         decimal.Decimal `json:"totalRevenue"`
	RevenueGrowthPct     float64         `json:"revenueGrowthPct"`
	ReservationCount     int64           `json:"reservationCount"`
	ReservationGrowthPct float64         `json:"reservationGrowthPct"`
	ActiveReservations   int64           `json:"activeReservations"`
	OccupiedSpots        int64           `json:"occupiedSpots"`
	TotalSpots           int64           `json:"totalSpots"`
	OccupancyPct         float64         `json:"occupancyPct"`
}

func FromMetricsOverview(m *queries.MetricsOverview) *MetricsResponse {
	return &MetricsResponse{
		TotalRevenue:         m.TotalRevenue,
		RevenueGrowthPct:     m.RevenueGrowthPct,
		ReservationCount:     m.ReservationCount,
		ReservationGrowthPct: m.ReservationGrowthPct,
		ActiveReservations:   m.ActiveReservations,
		OccupiedSpots:        m.OccupiedSpots,
		TotalSpots:           m.TotalSpots,
		OccupancyPct:         m.OccupancyPct,
	}
}

type ChartPointResponse struct {
	Day          time.Time       `json:"day"`
	Revenue      decimal.Decimal `json:"revenue"`
	Reservations int64           `json:"reservations"`
}

func FromChartPoints(points []*queries.ChartPoint) []*ChartPointResponse {
	result := make([]*ChartPointResponse, len(points))
	for i, p := range points {
		result[i] = &ChartPointResponse{
			Day:          p.Day,
			Revenue:      p.Revenue,
			Reservations: p.Reservations,
		}
	}
	return result
}
