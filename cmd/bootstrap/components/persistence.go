package components

import (
	"parkdesk/internal/infra/db"
	"parkdesk/internal/infra/readstore"
	"parkdesk/internal/infra/uow"
	"parkdesk/internal/usecase/queries"
	"parkdesk/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			readstore.NewMetricsReadStore,
			fx.As(new(queries.MetricsReadStore)),
		),
		fx.Annotate(
			readstore.NewTransactionReadStore,
			fx.As(new(queries.TransactionReadStore)),
		),
		fx.Annotate(
			readstore.NewReconciliationReadStore,
			fx.As(new(queries.ReconciliationReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
