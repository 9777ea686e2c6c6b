package repository

import (
	"context"
	"time"

	"roombook/internal/domain/reservation"
	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

// LockBuilding takes a transaction-scoped advisory lock on the building so
// concurrent writers for the same building serialize before the overlap
// scan; the lock releases on commit or rollback.
func (r *ReservationRepository) LockBuilding(ctx context.Context, building string) error {
	_, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, building)
	if err != nil {
		return infra.WrapRepoErr("failed to lock building", err)
	}
	return nil
}

const overlapQuery = `
SELECT EXISTS (
    SELECT 1
    FROM reservations
    WHERE building = $1
      AND start_at < $3
      AND end_at > $2
      AND ($4::uuid IS NULL OR id <> $4)
)`

// HasOverlap reports whether any reservation of the building overlaps
// [start, end). This is the only overlap clause in the system; both create
// and update go through it.
func (r *ReservationRepository) HasOverlap(ctx context.Context, building string, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, overlapQuery, building, start, end, excludeID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to scan for overlapping reservations", err)
	}
	return exists, nil
}

const findForUpdateQuery = `
SELECT id, building, start_at, end_at, user_id, user_name, owner_name, title, created_at, updated_at
FROM reservations
WHERE id = $1
FOR UPDATE`

func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	var snap shared.ReservationSnapshot
	err := r.db.QueryRow(ctx, findForUpdateQuery, id).Scan(
		&snap.ID,
		&snap.Building,
		&snap.StartAt,
		&snap.EndAt,
		&snap.UserID,
		&snap.UserName,
		&snap.OwnerName,
		&snap.Title,
		&snap.CreatedAt,
		&snap.UpdatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation for update", err)
	}
	return &snap, nil
}

const insertQuery = `
INSERT INTO reservations (id, building, start_at, end_at, user_id, user_name, owner_name, title)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.db.Exec(ctx, insertQuery,
		res.ID(),
		res.Building(),
		res.Slot().Start(),
		res.Slot().End(),
		res.Requester().ID(),
		res.Requester().Name(),
		res.OwnerName(),
		titleOrNil(res.Title()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

const updateQuery = `
UPDATE reservations
SET building = $2, start_at = $3, end_at = $4, user_id = $5, user_name = $6,
    owner_name = $7, title = $8, updated_at = now()
WHERE id = $1`

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	tag, err := r.db.Exec(ctx, updateQuery,
		res.ID(),
		res.Building(),
		res.Slot().Start(),
		res.Slot().End(),
		res.Requester().ID(),
		res.Requester().Name(),
		res.OwnerName(),
		titleOrNil(res.Title()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func titleOrNil(t reservation.Title) *string {
	if t.IsEmpty() {
		return nil
	}
	s := t.String()
	return &s
}
