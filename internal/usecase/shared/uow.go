package shared

import (
	"context"
	"time"

	"roombook/internal/domain/history"
	"roombook/internal/domain/reservation"

	"github.com/google/uuid"
)

// UnitOfWork scopes every ledger mutation: the conflict scan, the entity
// write and the audit append run inside one Within call and commit or roll
// back together.
type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command-side reads outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	History() HistoryRepository
	Reads() CommandReads
}

type CommandReads interface {
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
}

// Minimal snapshots for command-side reads (write path never depends on the
// read-model views).
type ReservationSnapshot struct {
	ID        uuid.UUID
	Building  string
	StartAt   time.Time
	EndAt     time.Time
	UserID    uuid.UUID
	UserName  string
	OwnerName string
	Title     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
}

type ReservationRepository interface {
	// LockBuilding serializes same-building writers for the rest of the
	// transaction; the check-then-act window between HasOverlap and the
	// write is closed by taking it first.
	LockBuilding(ctx context.Context, building string) error
	// HasOverlap is the only conflict scan in the system. excludeID skips
	// one reservation by identity, for the update-against-others case.
	HasOverlap(ctx context.Context, building string, start, end time.Time, excludeID *uuid.UUID) (bool, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	Create(ctx context.Context, res *reservation.Reservation) error
	Update(ctx context.Context, res *reservation.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type HistoryRepository interface {
	Append(ctx context.Context, entry *history.Entry) error
}
