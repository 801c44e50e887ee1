package readstore

import (
	"context"
	"fmt"
	"strings"

	"parkdesk/internal/infra"
	"parkdesk/internal/infra/db"
	"parkdesk/internal/pkg/pgconv"
	"parkdesk/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type TransactionReadStore struct {
	q db.DBTX
}

func NewTransactionReadStore(q db.DBTX) *TransactionReadStore {
	return &TransactionReadStore{q: q}
}

// buildFilter renders the optional filters as an AND chain with positional
// placeholders, returning the clause and its arguments.
func buildFilter(filter queries.TransactionFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.From != nil {
		add("p.created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("p.created_at < $%d", *filter.To)
	}
	if filter.LocationID != nil {
		add("r.location_id = $%d", *filter.LocationID)
	}
	if filter.Status != nil {
		add("p.status = $%d", *filter.Status)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

const transactionRowSQL = `
	SELECT p.id, p.reservation_id, u.email, l.name, l.city,
	       p.amount, p.status, p.method, p.created_at
	FROM payments p
	JOIN reservations r ON r.id = p.reservation_id
	JOIN users u ON u.id = r.user_id
	JOIN parking_locations l ON l.id = r.location_id`

func (t *TransactionReadStore) List(ctx context.Context, filter queries.TransactionFilter, limit, offset int32) ([]*queries.TransactionRow, error) {
	where, args := buildFilter(filter)
	sql := transactionRowSQL + where +
		fmt.Sprintf(" ORDER BY p.created_at DESC, p.id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := t.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list transactions", err)
	}
	defer rows.Close()

	var result []*queries.TransactionRow
	for rows.Next() {
		var (
			row       queries.TransactionRow
			amount    pgtype.Numeric
			method    pgtype.Text
			createdAt pgtype.Timestamptz
		)
		err := rows.Scan(
			&row.PaymentID, &row.ReservationID, &row.UserEmail,
			&row.LocationName, &row.LocationCity, &amount, &row.Status,
			&method, &createdAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan transaction row", err)
		}
		row.Amount = pgconv.DecimalFromNumeric(amount)
		row.Method = pgconv.StringPtrFromPgtype(method)
		row.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read transaction rows", err)
	}
	return result, nil
}

func (t *TransactionReadStore) Count(ctx context.Context, filter queries.TransactionFilter) (int64, error) {
	where, args := buildFilter(filter)
	sql := `SELECT COUNT(*)
	 FROM payments p
	 JOIN reservations r ON r.id = p.reservation_id` + where

	var count int64
	if err := t.q.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count transactions", err)
	}
	return count, nil
}
