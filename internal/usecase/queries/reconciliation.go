package queries

import "context"

type ReconciliationReadStore interface {
	// FindOrphans returns completed reservations that lack a completed
	// payment row.
	FindOrphans(ctx context.Context) ([]*OrphanReservation, error)
}

type ReconciliationQueries interface {
	FindOrphans(ctx context.Context) ([]*OrphanReservation, error)
}

type reconciliationQueriesImpl struct {
	store ReconciliationReadStore
}

func NewReconciliationQueries(store ReconciliationReadStore) ReconciliationQueries {
	return &reconciliationQueriesImpl{store: store}
}

func (q *reconciliationQueriesImpl) FindOrphans(ctx context.Context) ([]*OrphanReservation, error) {
	return q.store.FindOrphans(ctx)
}
