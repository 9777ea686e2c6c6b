package readstore

import (
	"context"
	"encoding/json"

	"roombook/internal/domain/history"
	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

type HistoryReadStore struct {
	db db.DBTX
}

func NewHistoryReadStore(dbtx db.DBTX) *HistoryReadStore {
	return &HistoryReadStore{db: dbtx}
}

const historyColumns = `id, action, reservation_id, details, user_name, owner_name, recorded_at`

func (r *HistoryReadStore) FindAll(ctx context.Context) ([]*queries.HistoryEntryView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+historyColumns+` FROM history ORDER BY recorded_at DESC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find history entries", err)
	}
	defer rows.Close()

	return collectHistoryViews(rows)
}

// FindByBuilding filters on the building recorded inside the details
// snapshot, so entries survive the deletion of the reservation they
// describe.
func (r *HistoryReadStore) FindByBuilding(ctx context.Context, building string) ([]*queries.HistoryEntryView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+historyColumns+` FROM history WHERE details ->> 'building' = $1 ORDER BY recorded_at DESC`, building)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find history entries by building", err)
	}
	defer rows.Close()

	return collectHistoryViews(rows)
}

func collectHistoryViews(rows pgx.Rows) ([]*queries.HistoryEntryView, error) {
	result := make([]*queries.HistoryEntryView, 0)
	for rows.Next() {
		var (
			view       queries.HistoryEntryView
			rawDetails []byte
		)
		err := rows.Scan(
			&view.ID,
			&view.Action,
			&view.ReservationID,
			&rawDetails,
			&view.ActingUserName,
			&view.OwnerName,
			&view.RecordedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan history row", err)
		}

		var details history.Snapshot
		if err := json.Unmarshal(rawDetails, &details); err != nil {
			return nil, infra.WrapRepoErr("failed to decode history details", err)
		}
		view.Details = details

		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate history rows", err)
	}
	return result, nil
}
