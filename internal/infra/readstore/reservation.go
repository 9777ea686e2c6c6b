package readstore

import (
	"context"

	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

const reservationColumns = `id, building, start_at, end_at, user_id, user_name, owner_name, title, created_at, updated_at`

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.db.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)

	view, err := scanReservationView(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return view, nil
}

func (r *ReservationReadStore) FindByBuilding(ctx context.Context, building string) ([]*queries.ReservationView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE building = $1 ORDER BY start_at`, building)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations by building", err)
	}
	defer rows.Close()

	result := make([]*queries.ReservationView, 0)
	for rows.Next() {
		view, scanErr := scanReservationView(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", scanErr)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation rows", err)
	}
	return result, nil
}

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var view queries.ReservationView
	err := row.Scan(
		&view.ID,
		&view.Building,
		&view.StartAt,
		&view.EndAt,
		&view.UserID,
		&view.UserName,
		&view.OwnerName,
		&view.Title,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
