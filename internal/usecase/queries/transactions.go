package queries

import (
	"context"
	"encoding/csv"
	"io"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type TransactionReadStore interface {
	List(ctx context.Context, filter TransactionFilter, limit, offset int32) ([]*TransactionRow, error)
	Count(ctx context.Context, filter TransactionFilter) (int64, error)
}

type TransactionQueries interface {
	List(ctx context.Context, filter TransactionFilter, limit, offset int32) (*TransactionList, error)
	// ExportCSV streams the filtered transactions as RFC 4180 CSV with a
	// header row.
	ExportCSV(ctx context.Context, filter TransactionFilter, w io.Writer) error
}

type transactionQueriesImpl struct {
	store TransactionReadStore
}

func NewTransactionQueries(store TransactionReadStore) TransactionQueries {
	return &transactionQueriesImpl{store: store}
}

func (q *transactionQueriesImpl) List(ctx context.Context, filter TransactionFilter, limit, offset int32) (*TransactionList, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	items, err := q.store.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := q.store.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &TransactionList{Items: items, Total: total}, nil
}

var exportHeader = []string{
	"payment_id", "reservation_id", "user_email", "location_name",
	"location_city", "amount", "status", "method", "created_at",
}

func (q *transactionQueriesImpl) ExportCSV(ctx context.Context, filter TransactionFilter, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return err
	}

	// Export pages through the same read store to keep memory bounded on
	// large ranges.
	const pageSize = int32(500)
	for offset := int32(0); ; offset += pageSize {
		rows, err := q.store.List(ctx, filter, pageSize, offset)
		if err != nil {
			return err
		}
		for _, row := range rows {
			method := ""
			if row.Method != nil {
				method = *row.Method
			}
			record := []string{
				row.PaymentID.String(),
				row.ReservationID.String(),
				row.UserEmail,
				row.LocationName,
				row.LocationCity,
				row.Amount.String(),
				row.Status,
				method,
				row.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		if int32(len(rows)) < pageSize {
			break
		}
	}

	cw.Flush()
	return cw.Error()
}
