package request

import (
	"strings"
	"time"

	"roombook/internal/domain/reservation"
)

type CreateReservationRequest struct {
	Building  string    `json:"building" binding:"required"`
	Start     time.Time `json:"start" binding:"required"`
	End       time.Time `json:"end" binding:"required"`
	OwnerName string    `json:"ownerName" binding:"required"`
	Title     *string   `json:"title,omitempty"`
}

type UpdateReservationRequest struct {
	Building  string    `json:"building" binding:"required"`
	Start     time.Time `json:"start" binding:"required"`
	End       time.Time `json:"end" binding:"required"`
	OwnerName string    `json:"ownerName" binding:"required"`
	Title     *string   `json:"title,omitempty"`
}

func TitleFromRequest(raw *string) reservation.Title {
	if raw == nil {
		return reservation.NewTitle("")
	}
	return reservation.NewTitle(strings.TrimSpace(*raw))
}
