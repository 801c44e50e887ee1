package readstore

import (
	"context"

	"parkdesk/internal/infra"
	"parkdesk/internal/infra/db"
	"parkdesk/internal/pkg/pgconv"
	"parkdesk/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// MetricsReadStore aggregates dashboard figures with plain read-committed
// queries.
type MetricsReadStore struct {
	q db.DBTX
}

func NewMetricsReadStore(q db.DBTX) *MetricsReadStore {
	return &MetricsReadStore{q: q}
}

func (m *MetricsReadStore) RevenueBetween(ctx context.Context, p queries.Period) (decimal.Decimal, error) {
	var amount pgtype.Numeric
	err := m.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)
		 FROM payments
		 WHERE status = 'completed' AND created_at >= $1 AND created_at < $2`,
		p.From, p.To,
	).Scan(&amount)
	if err != nil {
		return decimal.Zero, infra.WrapRepoErr("failed to sum revenue", err)
	}
	return pgconv.DecimalFromNumeric(amount), nil
}

func (m *MetricsReadStore) ReservationsBetween(ctx context.Context, p queries.Period) (int64, error) {
	var count int64
	err := m.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM reservations WHERE created_at >= $1 AND created_at < $2`,
		p.From, p.To,
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count reservations", err)
	}
	return count, nil
}

func (m *MetricsReadStore) ActiveReservationCount(ctx context.Context) (int64, error) {
	var count int64
	err := m.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM reservations WHERE status = 'active'`,
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count active reservations", err)
	}
	return count, nil
}

// SpotCounts counts reserved spots as occupied: both states make the spot
// unavailable to new windows.
func (m *MetricsReadStore) SpotCounts(ctx context.Context) (occupied, total int64, err error) {
	err = m.q.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE status IN ('occupied', 'reserved')), COUNT(*)
		 FROM parking_spots`,
	).Scan(&occupied, &total)
	if err != nil {
		return 0, 0, infra.WrapRepoErr("failed to count spots", err)
	}
	return occupied, total, nil
}

func (m *MetricsReadStore) RevenueByDay(ctx context.Context, p queries.Period) ([]*queries.ChartPoint, error) {
	rows, err := m.q.Query(ctx,
		`SELECT date_trunc('day', p.created_at) AS day,
		        COALESCE(SUM(p.amount), 0),
		        COUNT(DISTINCT p.reservation_id)
		 FROM payments p
		 WHERE p.status = 'completed' AND p.created_at >= $1 AND p.created_at < $2
		 GROUP BY day
		 ORDER BY day`,
		p.From, p.To)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query revenue by day", err)
	}
	defer rows.Close()

	var result []*queries.ChartPoint
	for rows.Next() {
		var (
			point  queries.ChartPoint
			day    pgtype.Timestamptz
			amount pgtype.Numeric
		)
		if err := rows.Scan(&day, &amount, &point.Reservations); err != nil {
			return nil, infra.WrapRepoErr("failed to scan chart row", err)
		}
		point.Day = pgconv.TimeFromPgtype(day)
		point.Revenue = pgconv.DecimalFromNumeric(amount)
		result = append(result, &point)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read chart rows", err)
	}
	return result, nil
}
