package readstore

import (
	"context"

	"parkdesk/internal/infra"
	"parkdesk/internal/infra/db"
	"parkdesk/internal/pkg/pgconv"
	"parkdesk/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type ReconciliationReadStore struct {
	q db.DBTX
}

func NewReconciliationReadStore(q db.DBTX) *ReconciliationReadStore {
	return &ReconciliationReadStore{q: q}
}

// FindOrphans returns completed reservations without a completed payment,
// newest first.
func (s *ReconciliationReadStore) FindOrphans(ctx context.Context) ([]*queries.OrphanReservation, error) {
	rows, err := s.q.Query(ctx,
		`SELECT r.id, u.email, l.name, r.total_amount, r.ends_at
		 FROM reservations r
		 JOIN users u ON u.id = r.user_id
		 JOIN parking_locations l ON l.id = r.location_id
		 WHERE r.status = 'completed'
		   AND NOT EXISTS (
		         SELECT 1 FROM payments p
		         WHERE p.reservation_id = r.id AND p.status = 'completed')
		 ORDER BY r.ends_at DESC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find orphan reservations", err)
	}
	defer rows.Close()

	var result []*queries.OrphanReservation
	for rows.Next() {
		var (
			orphan queries.OrphanReservation
			amount pgtype.Numeric
			endsAt pgtype.Timestamptz
		)
		err := rows.Scan(&orphan.ReservationID, &orphan.UserEmail, &orphan.LocationName, &amount, &endsAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan orphan row", err)
		}
		orphan.TotalAmount = pgconv.DecimalFromNumeric(amount)
		orphan.EndsAt = pgconv.TimeFromPgtype(endsAt)
		result = append(result, &orphan)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read orphan rows", err)
	}
	return result, nil
}
