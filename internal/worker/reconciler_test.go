//go:build unit

package worker_test

import (
	"context"
	"errors"
	"testing"

	"parkdesk/internal/pkg/config"
	"parkdesk/internal/usecase/commands"
	"parkdesk/internal/usecase/queries"
	"parkdesk/internal/worker"
	commandsmock "parkdesk/tests/mock/commands"
	queriesmock "parkdesk/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newReconciler(t *testing.T, cfg config.WorkerConfig) (*worker.Reconciler, *commandsmock.MockPaymentCommands, *queriesmock.MockReconciliationQueries) {
	t.Helper()
	ctrl := gomock.NewController(t)
	payments := commandsmock.NewMockPaymentCommands(ctrl)
	recon := queriesmock.NewMockReconciliationQueries(ctrl)
	return worker.NewReconciler(cfg, payments, recon), payments, recon
}

func TestRunOnce(t *testing.T) {
	orphanA := &queries.OrphanReservation{ReservationID: uuid.New(), TotalAmount: decimal.NewFromInt(20000)}
	orphanB := &queries.OrphanReservation{ReservationID: uuid.New(), TotalAmount: decimal.NewFromInt(25000)}

	t.Run("ensures a payment for every orphan", func(t *testing.T) {
		r, payments, recon := newReconciler(t, config.WorkerConfig{})
		recon.EXPECT().FindOrphans(gomock.Any()).Return([]*queries.OrphanReservation{orphanA, orphanB}, nil)
		payments.EXPECT().EnsurePayment(gomock.Any(), orphanA.ReservationID).Return(nil)
		payments.EXPECT().EnsurePayment(gomock.Any(), orphanB.ReservationID).Return(nil)

		r.RunOnce(context.Background())
	})

	t.Run("a mismatch on one orphan does not stop the sweep", func(t *testing.T) {
		r, payments, recon := newReconciler(t, config.WorkerConfig{})
		recon.EXPECT().FindOrphans(gomock.Any()).Return([]*queries.OrphanReservation{orphanA, orphanB}, nil)
		payments.EXPECT().EnsurePayment(gomock.Any(), orphanA.ReservationID).Return(commands.ErrAmountMismatch)
		payments.EXPECT().EnsurePayment(gomock.Any(), orphanB.ReservationID).Return(nil)

		r.RunOnce(context.Background())
	})

	t.Run("no orphans means no commands", func(t *testing.T) {
		r, _, recon := newReconciler(t, config.WorkerConfig{})
		recon.EXPECT().FindOrphans(gomock.Any()).Return(nil, nil)

		r.RunOnce(context.Background())
	})

	t.Run("sweep failure is swallowed", func(t *testing.T) {
		r, _, recon := newReconciler(t, config.WorkerConfig{})
		recon.EXPECT().FindOrphans(gomock.Any()).Return(nil, errors.New("database error"))

		r.RunOnce(context.Background())
	})
}

func TestStartDisabled(t *testing.T) {
	r, _, _ := newReconciler(t, config.WorkerConfig{ReconcileEnabled: false})
	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Stop(context.Background()))
}

func TestStartStop(t *testing.T) {
	r, _, _ := newReconciler(t, config.WorkerConfig{
		ReconcileEnabled:  true,
		ReconcileSchedule: "@every 1h",
	})
	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Stop(context.Background()))
}

func TestStartInvalidSchedule(t *testing.T) {
	r, _, _ := newReconciler(t, config.WorkerConfig{
		ReconcileEnabled:  true,
		ReconcileSchedule: "not a schedule",
	})
	require.Error(t, r.Start(context.Background()))
}
