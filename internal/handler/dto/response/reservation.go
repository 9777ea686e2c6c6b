package response

import (
	"time"

	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID        uuid.UUID `json:"id"`
	Building  string    `json:"building"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	UserID    uuid.UUID `json:"userId"`
	UserName  string    `json:"userName"`
	OwnerName string    `json:"ownerName"`
	Title     *string   `json:"title,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromReservationView(view *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:        view.ID,
		Building:  view.Building,
		Start:     view.StartAt,
		End:       view.EndAt,
		UserID:    view.UserID,
		UserName:  view.UserName,
		OwnerName: view.OwnerName,
		Title:     view.Title,
		CreatedAt: view.CreatedAt,
		UpdatedAt: view.UpdatedAt,
	}
}

func FromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	result := make([]*ReservationResponse, len(views))
	for i, view := range views {
		result[i] = FromReservationView(view)
	}
	return result
}
