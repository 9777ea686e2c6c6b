package response

import "github.com/google/uuid"

type LoginResponse struct {
	UserID      uuid.UUID `json:"userId"`
	Name        string    `json:"name"`
	AccessToken string    `json:"accessToken"`
}

type MeResponse struct {
	UserID uuid.UUID `json:"userId"`
	Name   string    `json:"name"`
}
