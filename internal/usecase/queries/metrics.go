package queries

import (
	"context"

	"github.com/shopspring/decimal"
)

// MetricsReadStore is the read-side persistence port for dashboard figures.
// Dashboard numbers are point-in-time, so implementations run plain
// read-committed queries without locking.
type MetricsReadStore interface {
	RevenueBetween(ctx context.Context, p Period) (decimal.Decimal, error)
	ReservationsBetween(ctx context.Context, p Period) (int64, error)
	ActiveReservationCount(ctx context.Context) (int64, error)
	SpotCounts(ctx context.Context) (occupied, total int64, err error)
	RevenueByDay(ctx context.Context, p Period) ([]*ChartPoint, error)
}

type MetricsQueries interface {
	Overview(ctx context.Context, p Period) (*MetricsOverview, error)
	Chart(ctx context.Context, p Period) ([]*ChartPoint, error)
}

type metricsQueriesImpl struct {
	store MetricsReadStore
}

func NewMetricsQueries(store MetricsReadStore) MetricsQueries {
	return &metricsQueriesImpl{store: store}
}

func (q *metricsQueriesImpl) Overview(ctx context.Context, p Period) (*MetricsOverview, error) {
	prev := p.Previous()

	revenue, err := q.store.RevenueBetween(ctx, p)
	if err != nil {
		return nil, err
	}
	prevRevenue, err := q.store.RevenueBetween(ctx, prev)
	if err != nil {
		return nil, err
	}

	reservations, err := q.store.ReservationsBetween(ctx, p)
	if err != nil {
		return nil, err
	}
	prevReservations, err := q.store.ReservationsBetween(ctx, prev)
	if err != nil {
		return nil, err
	}

	active, err := q.store.ActiveReservationCount(ctx)
	if err != nil {
		return nil, err
	}

	occupied, total, err := q.store.SpotCounts(ctx)
	if err != nil {
		return nil, err
	}

	occupancyPct := 0.0
	if total > 0 {
		occupancyPct = float64(occupied) / float64(total) * 100
	}

	return &MetricsOverview{
		TotalRevenue:         revenue,
		RevenueGrowthPct:     GrowthPct(revenue, prevRevenue),
		ReservationCount:     reservations,
		ReservationGrowthPct: GrowthPct(decimal.NewFromInt(reservations), decimal.NewFromInt(prevReservations)),
		ActiveReservations:   active,
		OccupiedSpots:        occupied,
		TotalSpots:           total,
		OccupancyPct:         occupancyPct,
	}, nil
}

func (q *metricsQueriesImpl) Chart(ctx context.Context, p Period) ([]*ChartPoint, error) {
	return q.store.RevenueByDay(ctx, p)
}

// GrowthPct computes (current - previous) / previous * 100, defined as 0 when
// the previous value is 0 to avoid division by zero.
func GrowthPct(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	pct, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}
