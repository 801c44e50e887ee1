package repository

import (
	"context"

	"parkdesk/internal/domain/reservation"
	"parkdesk/internal/domain/spot"
	"parkdesk/internal/infra"
	"parkdesk/internal/infra/db"
	"parkdesk/internal/usecase/shared"

	"github.com/google/uuid"
)

type SpotRepository struct {
	q db.DBTX
}

func NewSpotRepository(q db.DBTX) *SpotRepository {
	return &SpotRepository{q: q}
}

// Locks the candidate rows so a concurrent create on the same window blocks
// until this transaction decides.
const findAvailableSQL = `
SELECT s.id, s.code, s.zone, s.status
FROM parking_spots s
WHERE s.location_id = $1
  AND s.zone = $2
  AND s.status = 'available'
  AND NOT EXISTS (
      SELECT 1
      FROM reservations r
      WHERE r.spot_id = s.id
        AND r.status IN ('pending', 'active')
        AND r.starts_at < $4
        AND r.ends_at > $3
  )
ORDER BY s.code
FOR UPDATE OF s`

func (r *SpotRepository) FindAvailableForUpdate(
	ctx context.Context,
	locationID uuid.UUID,
	zone spot.Zone,
	window reservation.TimeWindow,
) ([]*shared.SpotSnapshot, error) {
	rows, err := r.q.Query(ctx, findAvailableSQL, locationID, zone.String(), window.Start(), window.End())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find available spots", err)
	}
	defer rows.Close()

	var spots []*shared.SpotSnapshot
	for rows.Next() {
		var (
			snap      shared.SpotSnapshot
			zoneStr   string
			statusStr string
		)
		if err := rows.Scan(&snap.ID, &snap.Code, &zoneStr, &statusStr); err != nil {
			return nil, infra.WrapRepoErr("failed to scan spot row", err)
		}
		snap.Zone = spot.Zone(zoneStr)
		snap.Status = spot.Status(statusStr)
		spots = append(spots, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read spot rows", err)
	}

	return spots, nil
}

func (r *SpotRepository) UpdateStatus(ctx context.Context, spotID uuid.UUID, status spot.Status) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE parking_spots SET status = $2, updated_at = now() WHERE id = $1`,
		spotID, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update spot status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("spot not found", nil, infra.KindNotFound)
	}
	return nil
}
