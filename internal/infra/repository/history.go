package repository

import (
	"context"
	"encoding/json"

	"roombook/internal/domain/history"
	"roombook/internal/infra"
	"roombook/internal/infra/db"
)

type HistoryRepository struct {
	db db.DBTX
}

func NewHistoryRepository(dbtx db.DBTX) *HistoryRepository {
	return &HistoryRepository{db: dbtx}
}

const appendQuery = `
INSERT INTO history (id, action, reservation_id, details, user_name, owner_name, recorded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// Append writes one audit entry. There is no update or delete counterpart:
// the table is append-only by construction.
func (r *HistoryRepository) Append(ctx context.Context, entry *history.Entry) error {
	details, err := json.Marshal(entry.Details())
	if err != nil {
		return infra.WrapRepoErr("failed to encode history details", err)
	}

	_, err = r.db.Exec(ctx, appendQuery,
		entry.ID(),
		entry.Action().String(),
		entry.ReservationID(),
		details,
		entry.ActingUserName(),
		entry.OwnerName(),
		entry.RecordedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to append history entry", err)
	}
	return nil
}
