package commands

import (
	"context"

	"roombook/internal/domain/history"
	"roombook/internal/domain/reservation"
	"roombook/internal/domain/user"
	reqdto "roombook/internal/handler/dto/request"
	"roombook/internal/infra"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/errs"
	"roombook/internal/usecase/queries"
	"roombook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeSlot         = errs.New("invalid time slot")
	ErrMissingField            = errs.New("missing required field")
	ErrSlotTaken               = errs.New("time slot already reserved")
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type ReservationCommands interface {
	Create(ctx context.Context, req reqdto.CreateReservationRequest, actor user.Identity) (*queries.ReservationView, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateReservationRequest, actor user.Identity) (*queries.ReservationView, error)
	Delete(ctx context.Context, id uuid.UUID, actor user.Identity) error
}

type reservationCommandsImpl struct {
	uow                shared.UnitOfWork
	reservationQueries queries.ReservationQueries
	clock              clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	reservationQueries queries.ReservationQueries,
	clock clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:                uow,
		reservationQueries: reservationQueries,
		clock:              clock,
	}
}

// Create books a new slot. The conflict scan, the reservation insert and the
// audit append run inside one transaction: a refused or failed attempt
// leaves both the reservation set and the history log untouched.
func (r *reservationCommandsImpl) Create(
	ctx context.Context,
	req reqdto.CreateReservationRequest,
	actor user.Identity,
) (*queries.ReservationView, error) {
	slot, err := reservation.NewTimeSlot(req.Start, req.End)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeSlot)
	}

	res, err := reservation.NewReservation(req.Building, slot, actor, req.OwnerName, reqdto.TitleFromRequest(req.Title))
	if err != nil {
		return nil, errs.Mark(err, ErrMissingField)
	}

	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if lockErr := tx.Reservations().LockBuilding(ctx, res.Building()); lockErr != nil {
			return errs.Mark(lockErr, ErrDatabaseOperationFailed)
		}

		taken, scanErr := tx.Reservations().HasOverlap(ctx, res.Building(), slot.Start(), slot.End(), nil)
		if scanErr != nil {
			return errs.Mark(scanErr, ErrDatabaseOperationFailed)
		}
		if taken {
			return ErrSlotTaken
		}

		if createErr := tx.Reservations().Create(ctx, res); createErr != nil {
			if infra.IsKind(createErr, infra.KindConflict) {
				return ErrSlotTaken
			}
			return errs.Mark(createErr, ErrDatabaseOperationFailed)
		}

		return r.appendHistory(ctx, tx, history.ActionCreate, res, actor)
	})
	if err != nil {
		return nil, err
	}

	view, err := r.reservationQueries.GetByID(ctx, res.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// Update overwrites the mutable fields of an existing reservation after
// checking the new slot against all other reservations of the target
// building; the reservation itself is excluded so re-saving the same slot
// never self-conflicts.
func (r *reservationCommandsImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	req reqdto.UpdateReservationRequest,
	actor user.Identity,
) (*queries.ReservationView, error) {
	slot, err := reservation.NewTimeSlot(req.Start, req.End)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeSlot)
	}

	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if lockErr := tx.Reservations().LockBuilding(ctx, req.Building); lockErr != nil {
			return errs.Mark(lockErr, ErrDatabaseOperationFailed)
		}

		existing, findErr := r.loadForMutation(ctx, tx, id)
		if findErr != nil {
			return findErr
		}

		if amendErr := existing.Amend(req.Building, slot, actor, req.OwnerName, reqdto.TitleFromRequest(req.Title)); amendErr != nil {
			return errs.Mark(amendErr, ErrMissingField)
		}

		excludeID := existing.ID()
		taken, scanErr := tx.Reservations().HasOverlap(ctx, existing.Building(), slot.Start(), slot.End(), &excludeID)
		if scanErr != nil {
			return errs.Mark(scanErr, ErrDatabaseOperationFailed)
		}
		if taken {
			return ErrSlotTaken
		}

		if updateErr := tx.Reservations().Update(ctx, existing); updateErr != nil {
			if infra.IsKind(updateErr, infra.KindConflict) {
				return ErrSlotTaken
			}
			return errs.Mark(updateErr, ErrDatabaseOperationFailed)
		}

		return r.appendHistory(ctx, tx, history.ActionUpdate, existing, actor)
	})
	if err != nil {
		return nil, err
	}

	view, err := r.reservationQueries.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// Delete removes the reservation and appends an audit entry whose snapshot
// is taken from the row before removal, so the trail retains what was
// deleted.
func (r *reservationCommandsImpl) Delete(ctx context.Context, id uuid.UUID, actor user.Identity) error {
	return r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, findErr := r.loadForMutation(ctx, tx, id)
		if findErr != nil {
			return findErr
		}

		if deleteErr := tx.Reservations().Delete(ctx, existing.ID()); deleteErr != nil {
			return errs.Mark(deleteErr, ErrDatabaseOperationFailed)
		}

		return r.appendHistory(ctx, tx, history.ActionDelete, existing, actor)
	})
}

func (r *reservationCommandsImpl) loadForMutation(ctx context.Context, tx shared.Tx, id uuid.UUID) (*reservation.Reservation, error) {
	snap, err := tx.Reservations().FindByIDForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return snapshotToEntity(snap)
}

func (r *reservationCommandsImpl) appendHistory(
	ctx context.Context,
	tx shared.Tx,
	action history.Action,
	res *reservation.Reservation,
	actor user.Identity,
) error {
	entry, err := history.NewEntry(action, res, actor.Name(), r.clock.Now())
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if appendErr := tx.History().Append(ctx, entry); appendErr != nil {
		return errs.Mark(appendErr, ErrDatabaseOperationFailed)
	}
	return nil
}

func snapshotToEntity(snap *shared.ReservationSnapshot) (*reservation.Reservation, error) {
	slot, err := reservation.NewTimeSlot(snap.StartAt, snap.EndAt)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	requester, err := user.NewIdentity(snap.UserID, snap.UserName)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	title := reservation.NewTitle("")
	if snap.Title != nil {
		title = reservation.NewTitle(*snap.Title)
	}

	return reservation.ReconstructReservation(
		snap.ID,
		snap.Building,
		slot,
		requester,
		snap.OwnerName,
		title,
		snap.CreatedAt,
		snap.UpdatedAt,
	), nil
}
