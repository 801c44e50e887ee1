package worker

import (
	"context"
	"errors"
	"log/slog"

	"parkdesk/internal/pkg/config"
	"parkdesk/internal/usecase/commands"
	"parkdesk/internal/usecase/queries"

	"github.com/robfig/cron/v3"
)

// Reconciler periodically backfills missing payment rows for completed
// reservations and logs amount mismatches. Mismatches are reported only,
// never corrected.
type Reconciler struct {
	cfg                   config.WorkerConfig
	paymentCommands       commands.PaymentCommands
	reconciliationQueries queries.ReconciliationQueries
	cron                  *cron.Cron
}

func NewReconciler(
	cfg config.WorkerConfig,
	paymentCommands commands.PaymentCommands,
	reconciliationQueries queries.ReconciliationQueries,
) *Reconciler {
	return &Reconciler{
		cfg:                   cfg,
		paymentCommands:       paymentCommands,
		reconciliationQueries: reconciliationQueries,
		cron:                  cron.New(),
	}
}

func (r *Reconciler) Start(ctx context.Context) error {
	if !r.cfg.ReconcileEnabled {
		slog.Info("payment reconciliation disabled")
		return nil
	}

	_, err := r.cron.AddFunc(r.cfg.ReconcileSchedule, func() {
		r.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	r.cron.Start()
	slog.Info("payment reconciliation started", "schedule", r.cfg.ReconcileSchedule)
	return nil
}

func (r *Reconciler) Stop(ctx context.Context) error {
	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	slog.Info("payment reconciliation stopped")
	return nil
}

// RunOnce executes a single sweep. Exposed for tests and manual runs.
func (r *Reconciler) RunOnce(ctx context.Context) {
	orphans, err := r.reconciliationQueries.FindOrphans(ctx)
	if err != nil {
		slog.Error("reconciliation sweep failed", "error", err.Error())
		return
	}
	if len(orphans) == 0 {
		return
	}

	slog.Info("reconciliation sweep found orphans", "count", len(orphans))

	for _, orphan := range orphans {
		err := r.paymentCommands.EnsurePayment(ctx, orphan.ReservationID)
		switch {
		case err == nil:
			slog.Info("backfilled pending payment",
				"reservation_id", orphan.ReservationID,
				"amount", orphan.TotalAmount.String())
		case errors.Is(err, commands.ErrAmountMismatch):
			slog.Warn("payment amount mismatch",
				"reservation_id", orphan.ReservationID,
				"expected_amount", orphan.TotalAmount.String())
		default:
			slog.Error("failed to ensure payment",
				"reservation_id", orphan.ReservationID,
				"error", err.Error())
		}
	}
}
