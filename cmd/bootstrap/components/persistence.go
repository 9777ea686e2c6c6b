package components

import (
	"roombook/internal/infra/db"
	"roombook/internal/infra/readstore"
	"roombook/internal/infra/uow"
	"roombook/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	uowModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Reservation
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		// History
		fx.Annotate(
			readstore.NewHistoryReadStore,
			fx.As(new(queries.HistoryReadStore)),
		),
	),
)

// Write-side repositories are created per transaction by the unit of work,
// so only the UoW itself is wired here.
var uowModule = fx.Module("persistence/uow",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
