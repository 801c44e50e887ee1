package repository

import (
	"context"

	"parkdesk/internal/domain/payment"
	"parkdesk/internal/infra"
	"parkdesk/internal/infra/db"
	"parkdesk/internal/pkg/pgconv"
	"parkdesk/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PaymentRepository struct {
	q db.DBTX
}

func NewPaymentRepository(q db.DBTX) *PaymentRepository {
	return &PaymentRepository{q: q}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) (uuid.UUID, error) {
	var methodStr *string
	if p.Method() != nil {
		s := p.Method().String()
		methodStr = &s
	}

	var id uuid.UUID
	err := r.q.QueryRow(ctx,
		`INSERT INTO payments (id, reservation_id, amount, status, method)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		p.ID(),
		p.ReservationID(),
		pgconv.DecimalToNumeric(p.Amount()),
		p.Status().String(),
		pgconv.StringPtrToPgtype(methodStr),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create payment", err)
	}

	return id, nil
}

func (r *PaymentRepository) FindByReservationIDForUpdate(ctx context.Context, reservationID uuid.UUID) (*shared.PaymentSnapshot, error) {
	var (
		snap      shared.PaymentSnapshot
		statusStr string
		methodStr pgtype.Text
		amount    pgtype.Numeric
	)
	err := r.q.QueryRow(ctx,
		`SELECT id, reservation_id, status, method, amount
		 FROM payments
		 WHERE reservation_id = $1
		 FOR UPDATE`,
		reservationID,
	).Scan(&snap.ID, &snap.ReservationID, &statusStr, &methodStr, &amount)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment for update", err)
	}

	snap.Status = payment.Status(statusStr)
	snap.Amount = pgconv.DecimalFromNumeric(amount)
	if methodStr.Valid {
		m := payment.Method(methodStr.String)
		snap.Method = &m
	}

	return &snap, nil
}

func (r *PaymentRepository) MarkCompleted(ctx context.Context, paymentID uuid.UUID, method payment.Method) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE payments SET status = 'completed', method = $2, updated_at = now() WHERE id = $1`,
		paymentID, method.String())
	if err != nil {
		return infra.WrapRepoErr("failed to mark payment completed", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("payment not found", nil, infra.KindNotFound)
	}
	return nil
}
