package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID        uuid.UUID `json:"id"`
	Building  string    `json:"building"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	OwnerName string    `json:"owner_name"`
	Title     *string   `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByBuilding(ctx context.Context, building string) ([]*ReservationView, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByBuilding(ctx context.Context, building string) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	return q.store.FindByID(ctx, id)
}

// ListByBuilding returns the building's reservations ordered by start time;
// the ordering is presentation-stable, not a correctness requirement.
func (q *reservationQueriesImpl) ListByBuilding(ctx context.Context, building string) ([]*ReservationView, error) {
	return q.store.FindByBuilding(ctx, building)
}
