package repository

import (
	"context"

	"parkdesk/internal/domain/reservation"
	"parkdesk/internal/infra"
	"parkdesk/internal/infra/db"
	"parkdesk/internal/pkg/pgconv"
	"parkdesk/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationRepository struct {
	q db.DBTX
}

func NewReservationRepository(q db.DBTX) *ReservationRepository {
	return &ReservationRepository{q: q}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.q.QueryRow(ctx,
		`INSERT INTO reservations (id, user_id, spot_id, location_id, vehicle_plate, starts_at, ends_at, total_amount, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		res.ID(),
		res.UserID(),
		pgconv.UUIDPtrToPgtype(res.SpotID()),
		res.LocationID(),
		res.VehiclePlate(),
		res.Window().Start(),
		res.Window().End(),
		pgconv.DecimalToNumeric(res.TotalAmount()),
		res.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}

	return id, nil
}

func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	var (
		snap      shared.ReservationSnapshot
		spotID    pgtype.UUID
		statusStr string
		amount    pgtype.Numeric
	)
	err := r.q.QueryRow(ctx,
		`SELECT id, user_id, spot_id, location_id, status, starts_at, ends_at, total_amount
		 FROM reservations
		 WHERE id = $1
		 FOR UPDATE`,
		id,
	).Scan(&snap.ID, &snap.UserID, &spotID, &snap.LocationID, &statusStr, &snap.StartsAt, &snap.EndsAt, &amount)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation for update", err)
	}

	snap.SpotID = pgconv.UUIDPtrFromPgtype(spotID)
	snap.Status = reservation.Status(statusStr)
	snap.TotalAmount = pgconv.DecimalFromNumeric(amount)

	return &snap, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE reservations SET status = $2, updated_at = now() WHERE id = $1`,
		id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) CountBlockingOnSpot(ctx context.Context, spotID, excludeID uuid.UUID) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM reservations
		 WHERE spot_id = $1
		   AND id <> $2
		   AND status IN ('pending', 'active')`,
		spotID, excludeID,
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count blocking reservations", err)
	}

	return count, nil
}
