//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"roombook/internal/domain/history"
	"roombook/internal/domain/reservation"
	"roombook/internal/infra"
	"roombook/internal/pkg/clock"
	"roombook/internal/usecase/commands"
	"roombook/internal/usecase/queries"
	"roombook/internal/usecase/shared"
	"roombook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// ledgerState is the committed state shared across fake transactions.
type ledgerState struct {
	reservations map[uuid.UUID]*shared.ReservationSnapshot
	history      []*history.Entry
}

func newLedgerState() *ledgerState {
	return &ledgerState{reservations: make(map[uuid.UUID]*shared.ReservationSnapshot)}
}

// fakeUoW mimics the transactional contract: mutations land in a staged
// copy and only reach the committed state when fn returns nil.
type fakeUoW struct {
	state *ledgerState
	now   time.Time

	// injectable faults
	historyAppendErr error
	createErr        error
}

func (u *fakeUoW) Within(_ context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	staged := newLedgerState()
	for id, snap := range u.state.reservations {
		cp := *snap
		staged.reservations[id] = &cp
	}
	staged.history = append(staged.history, u.state.history...)

	tx := &fakeTx{uow: u, staged: staged}
	if err := fn(context.Background(), tx); err != nil {
		return err
	}

	u.state = staged
	return nil
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{state: u.state}
}

type fakeTx struct {
	uow    *fakeUoW
	staged *ledgerState
}

func (t *fakeTx) Reservations() shared.ReservationRepository {
	return &fakeReservationRepo{uow: t.uow, staged: t.staged}
}

func (t *fakeTx) History() shared.HistoryRepository {
	return &fakeHistoryRepo{uow: t.uow, staged: t.staged}
}

func (t *fakeTx) Reads() shared.CommandReads {
	return &fakeReads{state: t.staged}
}

type fakeReservationRepo struct {
	uow    *fakeUoW
	staged *ledgerState
}

func (r *fakeReservationRepo) LockBuilding(context.Context, string) error { return nil }

func (r *fakeReservationRepo) HasOverlap(_ context.Context, building string, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	for id, snap := range r.staged.reservations {
		if snap.Building != building {
			continue
		}
		if excludeID != nil && id == *excludeID {
			continue
		}
		if snap.StartAt.Before(end) && start.Before(snap.EndAt) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReservationRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	snap, ok := r.staged.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", errors.New("no rows"), infra.KindNotFound)
	}
	cp := *snap
	return &cp, nil
}

func (r *fakeReservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	if r.uow.createErr != nil {
		return r.uow.createErr
	}
	r.staged.reservations[res.ID()] = snapshotOf(res, r.uow.now)
	return nil
}

func (r *fakeReservationRepo) Update(_ context.Context, res *reservation.Reservation) error {
	if _, ok := r.staged.reservations[res.ID()]; !ok {
		return infra.WrapRepoErr("reservation not found", errors.New("no rows"), infra.KindNotFound)
	}
	r.staged.reservations[res.ID()] = snapshotOf(res, r.uow.now)
	return nil
}

func (r *fakeReservationRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.staged.reservations[id]; !ok {
		return infra.WrapRepoErr("reservation not found", errors.New("no rows"), infra.KindNotFound)
	}
	delete(r.staged.reservations, id)
	return nil
}

type fakeHistoryRepo struct {
	uow    *fakeUoW
	staged *ledgerState
}

func (h *fakeHistoryRepo) Append(_ context.Context, entry *history.Entry) error {
	if h.uow.historyAppendErr != nil {
		return h.uow.historyAppendErr
	}
	h.staged.history = append(h.staged.history, entry)
	return nil
}

type fakeReads struct {
	state *ledgerState
}

func (f *fakeReads) ReservationByID(_ context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	snap, ok := f.state.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", errors.New("no rows"), infra.KindNotFound)
	}
	cp := *snap
	return &cp, nil
}

func (f *fakeReads) UserByEmail(context.Context, string) (*shared.UserSnapshot, error) {
	return nil, infra.WrapRepoErr("user not found", errors.New("no rows"), infra.KindNotFound)
}

// fakeQueries serves the read-after-write lookup from the committed state.
type fakeQueries struct {
	uow *fakeUoW
}

func (q *fakeQueries) GetByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	snap, ok := q.uow.state.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", errors.New("no rows"), infra.KindNotFound)
	}
	return &queries.ReservationView{
		ID:        snap.ID,
		Building:  snap.Building,
		StartAt:   snap.StartAt,
		EndAt:     snap.EndAt,
		UserID:    snap.UserID,
		UserName:  snap.UserName,
		OwnerName: snap.OwnerName,
		Title:     snap.Title,
		CreatedAt: snap.CreatedAt,
		UpdatedAt: snap.UpdatedAt,
	}, nil
}

func (q *fakeQueries) ListByBuilding(_ context.Context, building string) ([]*queries.ReservationView, error) {
	var views []*queries.ReservationView
	for id := range q.uow.state.reservations {
		if q.uow.state.reservations[id].Building == building {
			view, _ := q.GetByID(context.Background(), id)
			views = append(views, view)
		}
	}
	return views, nil
}

func snapshotOf(res *reservation.Reservation, now time.Time) *shared.ReservationSnapshot {
	var title *string
	if !res.Title().IsEmpty() {
		v := res.Title().String()
		title = &v
	}
	return &shared.ReservationSnapshot{
		ID:        res.ID(),
		Building:  res.Building(),
		StartAt:   res.Slot().Start(),
		EndAt:     res.Slot().End(),
		UserID:    res.Requester().ID(),
		UserName:  res.Requester().Name(),
		OwnerName: res.OwnerName(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ================================================================================

type ReservationCommandsTestSuite struct {
	suite.Suite
	uow      *fakeUoW
	clock    *clock.MockClock
	commands commands.ReservationCommands
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s.uow = &fakeUoW{state: newLedgerState(), now: now}
	s.clock = clock.NewMockClock(now)
	s.commands = commands.NewReservationCommands(s.uow, &fakeQueries{uow: s.uow}, s.clock)
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) TestCreate() {
	ctx := context.Background()

	s.Run("accepts a free slot and records history", func() {
		b := builder.NewReservationBuilder()
		view, err := s.commands.Create(ctx, b.BuildCreateRequestDTO(), b.BuildRequester())

		s.Require().NoError(err)
		s.Require().NotNil(view)
		s.Equal(b.Building, view.Building)
		s.Equal(b.OwnerName, view.OwnerName)

		s.Require().Len(s.uow.state.history, 1)
		entry := s.uow.state.history[0]
		s.Equal(history.ActionCreate, entry.Action())
		s.Equal(view.ID, entry.ReservationID())
		s.Equal(b.UserName, entry.ActingUserName())
		s.Equal(s.clock.Now(), entry.RecordedAt())
	})

	s.Run("refuses an overlapping slot in the same building", func() {
		b := builder.NewReservationBuilder().WithBuilding("overlap-hall")
		_, err := s.commands.Create(ctx, b.BuildCreateRequestDTO(), b.BuildRequester())
		s.Require().NoError(err)

		historyBefore := len(s.uow.state.history)
		overlapping := builder.NewReservationBuilder().
			WithBuilding("overlap-hall").
			WithSlot(b.Start.Add(30*time.Minute), b.End.Add(30*time.Minute))

		view, err := s.commands.Create(ctx, overlapping.BuildCreateRequestDTO(), overlapping.BuildRequester())

		s.Require().ErrorIs(err, commands.ErrSlotTaken)
		s.Nil(view)
		// a refused attempt leaves no trace in the audit log
		s.Len(s.uow.state.history, historyBefore)
	})

	s.Run("allows the same slot in a different building", func() {
		b := builder.NewReservationBuilder().WithBuilding("hall-a")
		_, err := s.commands.Create(ctx, b.BuildCreateRequestDTO(), b.BuildRequester())
		s.Require().NoError(err)

		other := builder.NewReservationBuilder().
			WithBuilding("hall-b").
			WithSlot(b.Start, b.End)
		_, err = s.commands.Create(ctx, other.BuildCreateRequestDTO(), other.BuildRequester())
		s.Require().NoError(err)
	})

	s.Run("allows back to back slots", func() {
		b := builder.NewReservationBuilder().WithBuilding("adjacent-hall")
		_, err := s.commands.Create(ctx, b.BuildCreateRequestDTO(), b.BuildRequester())
		s.Require().NoError(err)

		next := builder.NewReservationBuilder().
			WithBuilding("adjacent-hall").
			WithSlot(b.End, b.End.Add(time.Hour))
		_, err = s.commands.Create(ctx, next.BuildCreateRequestDTO(), next.BuildRequester())
		s.Require().NoError(err)
	})

	s.Run("rejects an inverted slot", func() {
		b := builder.NewReservationBuilder()
		req := b.BuildCreateRequestDTO()
		req.Start, req.End = req.End, req.Start

		view, err := s.commands.Create(ctx, req, b.BuildRequester())
		s.Require().ErrorIs(err, commands.ErrInvalidTimeSlot)
		s.Nil(view)
	})

	s.Run("rejects missing owner name", func() {
		b := builder.NewReservationBuilder().WithOwnerName("")
		view, err := s.commands.Create(ctx, b.BuildCreateRequestDTO(), b.BuildRequester())
		s.Require().ErrorIs(err, commands.ErrMissingField)
		s.Nil(view)
	})

	s.Run("maps a storage conflict to slot taken", func() {
		s.uow.createErr = infra.WrapRepoErr("exclusion violation", errors.New("23P01"), infra.KindConflict)
		defer func() { s.uow.createErr = nil }()

		b := builder.NewReservationBuilder().WithBuilding("racy-hall")
		view, err := s.commands.Create(ctx, b.BuildCreateRequestDTO(), b.BuildRequester())
		s.Require().ErrorIs(err, commands.ErrSlotTaken)
		s.Nil(view)
	})

	s.Run("failed history append rolls back the reservation", func() {
		s.uow.historyAppendErr = errors.New("audit store down")
		defer func() { s.uow.historyAppendErr = nil }()

		b := builder.NewReservationBuilder().WithBuilding("atomic-hall")
		view, err := s.commands.Create(ctx, b.BuildCreateRequestDTO(), b.BuildRequester())

		s.Require().ErrorIs(err, commands.ErrDatabaseOperationFailed)
		s.Nil(view)

		taken, scanErr := (&fakeReservationRepo{uow: s.uow, staged: s.uow.state}).
			HasOverlap(ctx, "atomic-hall", b.Start, b.End, nil)
		s.Require().NoError(scanErr)
		s.False(taken, "reservation must not survive a failed audit append")
	})
}

func (s *ReservationCommandsTestSuite) TestUpdate() {
	ctx := context.Background()

	s.Run("moves a reservation to a free slot", func() {
		b := builder.NewReservationBuilder().WithBuilding("move-hall")
		created, err := s.commands.Create(ctx, b.BuildCreateRequestDTO(), b.BuildRequester())
		s.Require().NoError(err)

		moved := builder.NewReservationBuilder().
			WithBuilding("move-hall").
			WithSlot(b.End.Add(time.Hour), b.End.Add(2*time.Hour)).
			WithOwnerName("Carol Deene")

		view, err := s.commands.Update(ctx, created.ID, moved.BuildUpdateRequestDTO(), b.BuildRequester())
		s.Require().NoError(err)
		s.Equal(created.ID, view.ID)
		s.Equal("Carol Deene", view.OwnerName)

		last := s.uow.state.history[len(s.uow.state.history)-1]
		s.Equal(history.ActionUpdate, last.Action())
		s.Equal(created.ID, last.ReservationID())
	})

	s.Run("re-saving the same slot does not self-conflict", func() {
		b := builder.NewReservationBuilder().WithBuilding("self-hall")
		created, err := s.commands.Create(ctx, b.BuildCreateRequestDTO(), b.BuildRequester())
		s.Require().NoError(err)

		view, err := s.commands.Update(ctx, created.ID, b.BuildUpdateRequestDTO(), b.BuildRequester())
		s.Require().NoError(err)
		s.Equal(created.ID, view.ID)
	})

	s.Run("refuses to move onto another reservation", func() {
		first := builder.NewReservationBuilder().WithBuilding("double-hall")
		_, err := s.commands.Create(ctx, first.BuildCreateRequestDTO(), first.BuildRequester())
		s.Require().NoError(err)

		second := builder.NewReservationBuilder().
			WithBuilding("double-hall").
			WithSlot(first.End, first.End.Add(time.Hour))
		created, err := s.commands.Create(ctx, second.BuildCreateRequestDTO(), second.BuildRequester())
		s.Require().NoError(err)

		historyBefore := len(s.uow.state.history)
		collide := builder.NewReservationBuilder().
			WithBuilding("double-hall").
			WithSlot(first.Start.Add(15*time.Minute), first.End.Add(-15*time.Minute))

		view, err := s.commands.Update(ctx, created.ID, collide.BuildUpdateRequestDTO(), second.BuildRequester())
		s.Require().ErrorIs(err, commands.ErrSlotTaken)
		s.Nil(view)
		s.Len(s.uow.state.history, historyBefore)
	})

	s.Run("unknown id", func() {
		b := builder.NewReservationBuilder()
		view, err := s.commands.Update(ctx, uuid.New(), b.BuildUpdateRequestDTO(), b.BuildRequester())
		s.Require().ErrorIs(err, commands.ErrReservationNotFound)
		s.Nil(view)
	})
}

func (s *ReservationCommandsTestSuite) TestDelete() {
	ctx := context.Background()

	s.Run("frees the slot and snapshots the removed reservation", func() {
		b := builder.NewReservationBuilder().WithBuilding("free-hall")
		created, err := s.commands.Create(ctx, b.BuildCreateRequestDTO(), b.BuildRequester())
		s.Require().NoError(err)

		err = s.commands.Delete(ctx, created.ID, b.BuildRequester())
		s.Require().NoError(err)

		last := s.uow.state.history[len(s.uow.state.history)-1]
		s.Equal(history.ActionDelete, last.Action())
		s.Equal(created.ID, last.ReservationID())
		// the delete entry carries the last-known values, not blanks
		s.Equal(b.Building, last.Details().Building)
		s.Equal(b.OwnerName, last.Details().OwnerName)

		// the slot is reusable immediately
		again := builder.NewReservationBuilder().
			WithBuilding("free-hall").
			WithSlot(b.Start, b.End)
		_, err = s.commands.Create(ctx, again.BuildCreateRequestDTO(), again.BuildRequester())
		s.Require().NoError(err)
	})

	s.Run("unknown id", func() {
		err := s.commands.Delete(ctx, uuid.New(), builder.NewReservationBuilder().BuildRequester())
		s.Require().ErrorIs(err, commands.ErrReservationNotFound)
	})

	s.Run("deleting twice reports not found", func() {
		b := builder.NewReservationBuilder().WithBuilding("twice-hall")
		created, err := s.commands.Create(ctx, b.BuildCreateRequestDTO(), b.BuildRequester())
		s.Require().NoError(err)

		s.Require().NoError(s.commands.Delete(ctx, created.ID, b.BuildRequester()))
		err = s.commands.Delete(ctx, created.ID, b.BuildRequester())
		s.Require().ErrorIs(err, commands.ErrReservationNotFound)
	})
}

func (s *ReservationCommandsTestSuite) TestAuditTrailCompleteness() {
	ctx := context.Background()

	b := builder.NewReservationBuilder().WithBuilding("trail-hall")
	created, err := s.commands.Create(ctx, b.BuildCreateRequestDTO(), b.BuildRequester())
	s.Require().NoError(err)

	moved := builder.NewReservationBuilder().
		WithBuilding("trail-hall").
		WithSlot(b.End.Add(time.Hour), b.End.Add(2*time.Hour))
	_, err = s.commands.Update(ctx, created.ID, moved.BuildUpdateRequestDTO(), b.BuildRequester())
	s.Require().NoError(err)

	s.Require().NoError(s.commands.Delete(ctx, created.ID, b.BuildRequester()))

	s.Require().Len(s.uow.state.history, 3)
	actions := []history.Action{
		s.uow.state.history[0].Action(),
		s.uow.state.history[1].Action(),
		s.uow.state.history[2].Action(),
	}
	s.Equal([]history.Action{history.ActionCreate, history.ActionUpdate, history.ActionDelete}, actions)
	for _, entry := range s.uow.state.history {
		s.Equal(created.ID, entry.ReservationID())
	}
}
