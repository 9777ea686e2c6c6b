//go:build unit || e2e

package builder

import (
	"time"

	domreservation "roombook/internal/domain/reservation"
	"roombook/internal/domain/user"
	reqdto "roombook/internal/handler/dto/request"
	"roombook/internal/usecase/queries"
	"roombook/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID        uuid.UUID
	Building  string
	Start     time.Time
	End       time.Time
	UserID    uuid.UUID
	UserName  string
	OwnerName string
	Title     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	title := "Team meeting"
	return &ReservationBuilder{
		ID:        uuid.New(),
		Building:  "north-hall",
		Start:     now.Add(24 * time.Hour),
		End:       now.Add(26 * time.Hour),
		UserID:    uuid.New(),
		UserName:  "Booking Agent",
		OwnerName: "Alice Carter",
		Title:     &title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *ReservationBuilder) BuildDomain() (*domreservation.Reservation, error) {
	slot, err := domreservation.NewTimeSlot(r.Start, r.End)
	if err != nil {
		return nil, err
	}

	requester, err := r.buildRequester()
	if err != nil {
		return nil, err
	}

	return domreservation.NewReservation(r.Building, slot, requester, r.OwnerName, r.buildTitle())
}

func (r *ReservationBuilder) BuildRequester() user.Identity {
	requester, _ := r.buildRequester()
	return requester
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		Building:  r.Building,
		Start:     r.Start,
		End:       r.End,
		OwnerName: r.OwnerName,
		Title:     r.Title,
	}
}

func (r *ReservationBuilder) BuildUpdateRequestDTO() reqdto.UpdateReservationRequest {
	return reqdto.UpdateReservationRequest{
		Building:  r.Building,
		Start:     r.Start,
		End:       r.End,
		OwnerName: r.OwnerName,
		Title:     r.Title,
	}
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:        r.ID,
		Building:  r.Building,
		StartAt:   r.Start,
		EndAt:     r.End,
		UserID:    r.UserID,
		UserName:  r.UserName,
		OwnerName: r.OwnerName,
		Title:     r.Title,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r *ReservationBuilder) BuildSnapshot() *shared.ReservationSnapshot {
	return &shared.ReservationSnapshot{
		ID:        r.ID,
		Building:  r.Building,
		StartAt:   r.Start,
		EndAt:     r.End,
		UserID:    r.UserID,
		UserName:  r.UserName,
		OwnerName: r.OwnerName,
		Title:     r.Title,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Fluent builder methods
func (r *ReservationBuilder) WithBuilding(building string) *ReservationBuilder {
	r.Building = building
	return r
}

func (r *ReservationBuilder) WithSlot(start, end time.Time) *ReservationBuilder {
	r.Start = start
	r.End = end
	return r
}

func (r *ReservationBuilder) WithOwnerName(ownerName string) *ReservationBuilder {
	r.OwnerName = ownerName
	return r
}

func (r *ReservationBuilder) WithTitle(title string) *ReservationBuilder {
	r.Title = &title
	return r
}

func (r *ReservationBuilder) WithoutTitle() *ReservationBuilder {
	r.Title = nil
	return r
}

func (r *ReservationBuilder) buildRequester() (user.Identity, error) {
	return user.NewIdentity(r.UserID, r.UserName)
}

func (r *ReservationBuilder) buildTitle() domreservation.Title {
	if r.Title == nil {
		return domreservation.NewTitle("")
	}
	return domreservation.NewTitle(*r.Title)
}
