package components

import (
	"context"

	"parkdesk/internal/pkg/config"
	"parkdesk/internal/usecase/commands"
	"parkdesk/internal/usecase/queries"
	"parkdesk/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewReconciler,
	),
	fx.Invoke(registerReconciler),
)

func NewReconciler(
	cfg config.Config,
	paymentCommands commands.PaymentCommands,
	reconciliationQueries queries.ReconciliationQueries,
) *worker.Reconciler {
	return worker.NewReconciler(cfg.Worker, paymentCommands, reconciliationQueries)
}

func registerReconciler(lc fx.Lifecycle, r *worker.Reconciler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return r.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return r.Stop(ctx)
		},
	})
}
