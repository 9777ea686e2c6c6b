//go:build unit || e2e

package builder

import (
	"time"

	"roombook/internal/domain/history"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
)

type HistoryBuilder struct {
	Action         history.Action
	ReservationID  uuid.UUID
	Building       string
	Start          time.Time
	End            time.Time
	ActingUserName string
	OwnerName      string
	RecordedAt     time.Time
}

func NewHistoryBuilder() *HistoryBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	return &HistoryBuilder{
		Action:         history.ActionCreate,
		ReservationID:  uuid.New(),
		Building:       "north-hall",
		Start:          now.Add(24 * time.Hour),
		End:            now.Add(26 * time.Hour),
		ActingUserName: "Booking Agent",
		OwnerName:      "Alice Carter",
		RecordedAt:     now,
	}
}

func (h *HistoryBuilder) With(mutate func(*HistoryBuilder)) *HistoryBuilder {
	mutate(h)
	return h
}

func (h *HistoryBuilder) BuildView() *queries.HistoryEntryView {
	return &queries.HistoryEntryView{
		ID:     uuid.New(),
		Action: h.Action.String(),
		Details: history.Snapshot{
			Start:     h.Start,
			End:       h.End,
			Building:  h.Building,
			OwnerName: h.OwnerName,
		},
		ReservationID:  h.ReservationID,
		ActingUserName: h.ActingUserName,
		OwnerName:      h.OwnerName,
		RecordedAt:     h.RecordedAt,
	}
}

func (h *HistoryBuilder) WithAction(action history.Action) *HistoryBuilder {
	h.Action = action
	return h
}

func (h *HistoryBuilder) WithBuilding(building string) *HistoryBuilder {
	h.Building = building
	return h
}
