// Package history is the append-only audit trail. Entries are created
// exactly once per accepted mutation and never changed afterwards; the
// reservation id is retained even after the reservation itself is gone.
package history

import (
	"errors"
	"time"

	"roombook/internal/domain/reservation"

	"github.com/google/uuid"
)

var ErrInvalidAction = errors.New("invalid history action")

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

func (a Action) String() string {
	return string(a)
}

func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	default:
		return false
	}
}

// Snapshot captures the reservation fields relevant to an action. For
// create/update these are the new values; for delete, the last-known values
// before removal. The JSON keys match the persisted details document.
type Snapshot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Building  string    `json:"building"`
	OwnerName string    `json:"ownerName"`
}

type Entry struct {
	id             uuid.UUID
	action         Action
	reservationID  uuid.UUID
	details        Snapshot
	actingUserName string
	ownerName      string
	recordedAt     time.Time
}

// NewEntry snapshots res as of the moment of the action. recordedAt is
// assigned by the ledger's clock at write time, never by the caller.
func NewEntry(action Action, res *reservation.Reservation, actingUserName string, recordedAt time.Time) (*Entry, error) {
	if !action.IsValid() {
		return nil, ErrInvalidAction
	}

	return &Entry{
		id:     uuid.New(),
		action: action,
		details: Snapshot{
			Start:     res.Slot().Start(),
			End:       res.Slot().End(),
			Building:  res.Building(),
			OwnerName: res.OwnerName(),
		},
		reservationID:  res.ID(),
		actingUserName: actingUserName,
		ownerName:      res.OwnerName(),
		recordedAt:     recordedAt,
	}, nil
}

func ReconstructEntry(
	id uuid.UUID,
	action Action,
	reservationID uuid.UUID,
	details Snapshot,
	actingUserName, ownerName string,
	recordedAt time.Time,
) *Entry {
	return &Entry{
		id:             id,
		action:         action,
		reservationID:  reservationID,
		details:        details,
		actingUserName: actingUserName,
		ownerName:      ownerName,
		recordedAt:     recordedAt,
	}
}

func (e *Entry) ID() uuid.UUID           { return e.id }
func (e *Entry) Action() Action          { return e.action }
func (e *Entry) ReservationID() uuid.UUID { return e.reservationID }
func (e *Entry) Details() Snapshot       { return e.details }
func (e *Entry) ActingUserName() string  { return e.actingUserName }
func (e *Entry) OwnerName() string       { return e.ownerName }
func (e *Entry) RecordedAt() time.Time   { return e.recordedAt }
