package reservation

import (
	"errors"
	"time"

	"roombook/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrMissingBuilding  = errors.New("building is required")
	ErrMissingOwner     = errors.New("owner name is required")
	ErrMissingRequester = errors.New("requesting user is required")
)

// Reservation is an exclusive booking of one building for one time slot.
// Instances are only created through NewReservation (after field validation)
// or ReconstructReservation (from storage); the no-overlap invariant across
// a building's reservations is enforced by the ledger, not here.
type Reservation struct {
	id        uuid.UUID
	building  string
	slot      TimeSlot
	requester user.Identity
	ownerName string
	title     Title
	createdAt time.Time
	updatedAt time.Time
}

func NewReservation(
	building string,
	slot TimeSlot,
	requester user.Identity,
	ownerName string,
	title Title,
) (*Reservation, error) {
	if building == "" {
		return nil, ErrMissingBuilding
	}
	if requester.IsZero() {
		return nil, ErrMissingRequester
	}
	if ownerName == "" {
		return nil, ErrMissingOwner
	}

	return &Reservation{
		id:        uuid.New(),
		building:  building,
		slot:      slot,
		requester: requester,
		ownerName: ownerName,
		title:     title,
	}, nil
}

func ReconstructReservation(
	id uuid.UUID,
	building string,
	slot TimeSlot,
	requester user.Identity,
	ownerName string,
	title Title,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		building:  building,
		slot:      slot,
		requester: requester,
		ownerName: ownerName,
		title:     title,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Amend overwrites the mutable fields in place; the id never changes. The
// same field validation as NewReservation applies.
func (r *Reservation) Amend(
	building string,
	slot TimeSlot,
	requester user.Identity,
	ownerName string,
	title Title,
) error {
	if building == "" {
		return ErrMissingBuilding
	}
	if requester.IsZero() {
		return ErrMissingRequester
	}
	if ownerName == "" {
		return ErrMissingOwner
	}

	r.building = building
	r.slot = slot
	r.requester = requester
	r.ownerName = ownerName
	r.title = title
	return nil
}

func (r *Reservation) ConflictsWith(other *Reservation) bool {
	if r.building != other.building || r.id == other.id {
		return false
	}
	return r.slot.Overlaps(other.slot)
}

func (r *Reservation) ID() uuid.UUID            { return r.id }
func (r *Reservation) Building() string         { return r.building }
func (r *Reservation) Slot() TimeSlot           { return r.slot }
func (r *Reservation) Requester() user.Identity { return r.requester }
func (r *Reservation) OwnerName() string        { return r.ownerName }
func (r *Reservation) Title() Title             { return r.title }
func (r *Reservation) CreatedAt() time.Time     { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time     { return r.updatedAt }
