package readstore

import (
	"context"

	"parkdesk/internal/infra"
	"parkdesk/internal/infra/db"
	"parkdesk/internal/pkg/pgconv"
	"parkdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadStore struct {
	q db.DBTX
}

func NewReservationReadStore(q db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{q: q}
}

const reservationViewSQL = `
	SELECT r.id, r.user_id, u.email, r.spot_id, s.code, r.location_id,
	       l.name, r.vehicle_plate, r.starts_at, r.ends_at, r.total_amount,
	       r.status, r.created_at, r.updated_at
	FROM reservations r
	JOIN users u ON u.id = r.user_id
	JOIN parking_locations l ON l.id = r.location_id
	LEFT JOIN parking_spots s ON s.id = r.spot_id`

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.q.QueryRow(ctx, reservationViewSQL+` WHERE r.id = $1`, id)
	view, err := scanReservationView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return view, nil
}

func (r *ReservationReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*queries.ReservationView, error) {
	rows, err := r.q.Query(ctx,
		reservationViewSQL+` WHERE r.user_id = $1 ORDER BY r.created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by user", err)
	}
	defer rows.Close()

	var result []*queries.ReservationView
	for rows.Next() {
		view, err := scanReservationView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rows", err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservationView(row rowScanner) (*queries.ReservationView, error) {
	var (
		view      queries.ReservationView
		spotID    pgtype.UUID
		spotCode  pgtype.Text
		amount    pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID, &view.UserID, &view.UserEmail, &spotID, &spotCode,
		&view.LocationID, &view.LocationName, &view.VehiclePlate,
		&view.StartsAt, &view.EndsAt, &amount, &view.Status,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.SpotID = pgconv.UUIDPtrFromPgtype(spotID)
	view.SpotCode = pgconv.StringPtrFromPgtype(spotCode)
	view.TotalAmount = pgconv.DecimalFromNumeric(amount)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}
