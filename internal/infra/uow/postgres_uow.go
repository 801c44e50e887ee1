package uow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parkdesk/internal/infra"
	"parkdesk/internal/infra/db"
	"parkdesk/internal/infra/repository"
	"parkdesk/internal/pkg/errs"
	"parkdesk/internal/pkg/pgconv"
	"parkdesk/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while row locks taken by the allocation
// query serialize writers contending for the same spot.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; ; attempt++ {
		err := u.runInTx(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryableError(err) {
			return err
		}
		if attempt == maxRetries {
			slog.Error("transaction failed after max retries", "attempts", attempt+1, "error", err)
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		waitTime := time.Duration(attempt+1) * base
		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_time", waitTime,
			"error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{q: u.pool}
}

func (u *PostgresUoW) runInTx(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			// Rollback after commit reports ErrTxClosed; anything else is worth a log
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback transaction", "error", rollbackErr)
			}
		}
	}()

	if err := fn(ctx, newPgxTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}

	return nil
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgxTx struct {
	spots        *repository.SpotRepository
	reservations *repository.ReservationRepository
	payments     *repository.PaymentRepository
}

func newPgxTx(tx pgx.Tx) *pgxTx {
	return &pgxTx{
		spots:        repository.NewSpotRepository(tx),
		reservations: repository.NewReservationRepository(tx),
		payments:     repository.NewPaymentRepository(tx),
	}
}

func (t *pgxTx) Spots() shared.SpotRepository               { return t.spots }
func (t *pgxTx) Reservations() shared.ReservationRepository { return t.reservations }
func (t *pgxTx) Payments() shared.PaymentRepository         { return t.payments }

type commandReads struct {
	q db.DBTX
}

func (r *commandReads) UserByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	var snap shared.UserSnapshot
	err := r.q.QueryRow(ctx,
		`SELECT id, email, password_hash, role, is_active FROM users WHERE email = $1`,
		email,
	).Scan(&snap.ID, &snap.Email, &snap.PasswordHash, &snap.Role, &snap.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}

	return &snap, nil
}

func (r *commandReads) LocationExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM parking_locations WHERE id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check location existence", err)
	}

	return exists, nil
}
