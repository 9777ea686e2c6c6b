package queries

import (
	"context"
	"time"

	"roombook/internal/domain/history"

	"github.com/google/uuid"
)

type HistoryEntryView struct {
	ID             uuid.UUID        `json:"id"`
	Action         string           `json:"action"`
	ReservationID  uuid.UUID        `json:"reservation_id"`
	Details        history.Snapshot `json:"details"`
	ActingUserName string           `json:"acting_user_name"`
	OwnerName      string           `json:"owner_name"`
	RecordedAt     time.Time        `json:"recorded_at"`
}

type HistoryQueries interface {
	// List returns entries most recent first. A non-nil building restricts
	// to entries whose details snapshot references that building.
	List(ctx context.Context, building *string) ([]*HistoryEntryView, error)
}

type HistoryReadStore interface {
	FindAll(ctx context.Context) ([]*HistoryEntryView, error)
	FindByBuilding(ctx context.Context, building string) ([]*HistoryEntryView, error)
}

type historyQueriesImpl struct {
	store HistoryReadStore
}

func NewHistoryQueries(store HistoryReadStore) HistoryQueries {
	return &historyQueriesImpl{store: store}
}

func (q *historyQueriesImpl) List(ctx context.Context, building *string) ([]*HistoryEntryView, error) {
	if building == nil || *building == "" {
		return q.store.FindAll(ctx)
	}
	return q.store.FindByBuilding(ctx, *building)
}
