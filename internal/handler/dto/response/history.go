package response

import (
	"time"

	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
)

type HistoryDetails struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Building  string    `json:"building"`
	OwnerName string    `json:"ownerName"`
}

type HistoryEntryResponse struct {
	ID             uuid.UUID      `json:"id"`
	Action         string         `json:"action"`
	ReservationID  uuid.UUID      `json:"reservationId"`
	Details        HistoryDetails `json:"details"`
	ActingUserName string         `json:"actingUserName"`
	OwnerName      string         `json:"ownerName"`
	RecordedAt     time.Time      `json:"recordedAt"`
}

func FromHistoryEntryView(view *queries.HistoryEntryView) *HistoryEntryResponse {
	return &HistoryEntryResponse{
		ID:            view.ID,
		Action:        view.Action,
		ReservationID: view.ReservationID,
		Details: HistoryDetails{
			Start:     view.Details.Start,
			End:       view.Details.End,
			Building:  view.Details.Building,
			OwnerName: view.Details.OwnerName,
		},
		ActingUserName: view.ActingUserName,
		OwnerName:      view.OwnerName,
		RecordedAt:     view.RecordedAt,
	}
}

func FromHistoryEntryViews(views []*queries.HistoryEntryView) []*HistoryEntryResponse {
	result := make([]*HistoryEntryResponse, len(views))
	for i, view := range views {
		result[i] = FromHistoryEntryView(view)
	}
	return result
}
