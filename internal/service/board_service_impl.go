package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/haulboard/internal/contract"
	"github.com/alexanderramin/haulboard/internal/db"
	"github.com/alexanderramin/haulboard/internal/domain"
	"github.com/alexanderramin/haulboard/internal/repository"
)

type boardService struct {
	orders   repository.OrderRepo
	trucks   repository.TruckRepo
	runs     repository.RunRepo
	notes    repository.NoteRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewBoardService(
	orders repository.OrderRepo,
	trucks repository.TruckRepo,
	runs repository.RunRepo,
	notes repository.NoteRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) BoardService {
	return &boardService{
		orders:   orders,
		trucks:   trucks,
		runs:     runs,
		notes:    notes,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *boardService) Snapshot(ctx context.Context, win contract.Window) (*contract.BoardSnapshot, error) {
	orders, err := s.orders.ListWindow(ctx, win.From, win.To)
	if err != nil {
		return nil, fmt.Errorf("loading orders: %w", err)
	}
	trucks, err := s.trucks.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("loading trucks: %w", err)
	}
	runs, err := s.runs.ListWindow(ctx, win.From, win.To)
	if err != nil {
		return nil, fmt.Errorf("loading runs: %w", err)
	}
	notes, err := s.notes.ListWindow(ctx, win.From, win.To)
	if err != nil {
		return nil, fmt.Errorf("loading notes: %w", err)
	}
	return &contract.BoardSnapshot{
		Orders: orders,
		Trucks: trucks,
		Runs:   runs,
		Notes:  notes,
	}, nil
}

func (s *boardService) Apply(ctx context.Context, m contract.Mutation) error {
	started := time.Now()
	err := s.apply(ctx, m)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "board_apply",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    map[string]any{"op": string(m.Op)},
		StartedAt: started,
	})
	return err
}

func (s *boardService) apply(ctx context.Context, m contract.Mutation) error {
	switch m.Op {
	case contract.OpReschedule:
		if m.Reschedule == nil {
			return fmt.Errorf("reschedule mutation missing payload")
		}
		return s.applyReschedules(ctx, []contract.Reschedule{*m.Reschedule})
	case contract.OpBatchReschedule:
		return s.applyReschedules(ctx, m.Batch)
	case contract.OpCreateRun:
		return s.createRun(ctx, m.CreateRun)
	case contract.OpUpdateRun:
		return s.updateRun(ctx, m.UpdateRun)
	case contract.OpDeleteRun:
		if m.DeleteRun == nil {
			return fmt.Errorf("delete_run mutation missing payload")
		}
		return s.runs.Delete(ctx, m.DeleteRun.ID)
	case contract.OpCreateNote:
		return s.createNote(ctx, m.CreateNote)
	case contract.OpUpdateNote:
		if m.UpdateNote == nil {
			return fmt.Errorf("update_note mutation missing payload")
		}
		m.UpdateNote.UpdatedAt = time.Now().UTC()
		return s.notes.Update(ctx, m.UpdateNote)
	case contract.OpDeleteNote:
		if m.DeleteNote == nil {
			return fmt.Errorf("delete_note mutation missing payload")
		}
		return s.notes.Delete(ctx, m.DeleteNote.ID)
	default:
		return fmt.Errorf("unsupported board mutation %q", m.Op)
	}
}

// applyReschedules writes a set of placement changes atomically. A drop that
// reorders a slot touches every occupant, so either all of them land or the
// board stays as it was.
func (s *boardService) applyReschedules(ctx context.Context, entries []contract.Reschedule) error {
	if len(entries) == 0 {
		return nil
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txOrders := repository.NewSQLiteOrderRepo(tx)
		now := time.Now().UTC()
		for _, e := range entries {
			o, err := txOrders.GetByRef(ctx, e.Ref)
			if err != nil {
				return err
			}
			o.Date = e.Date
			o.TruckID = e.TruckID
			o.RunID = e.RunID
			if e.Seq != nil {
				o.Seq = *e.Seq
			}
			o.UpdatedAt = now
			if err := txOrders.Update(ctx, o); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *boardService) createRun(ctx context.Context, cr *contract.CreateRun) error {
	if cr == nil {
		return fmt.Errorf("create_run mutation missing payload")
	}
	now := time.Now().UTC()
	run := &domain.Run{
		ID:        cr.ID,
		Name:      cr.Name,
		Date:      cr.Date,
		TruckID:   cr.TruckID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.runs.Create(ctx, run)
}

// updateRun relocates a run and carries its members to the new placement in
// the same transaction, so member placements never diverge from the run's.
func (s *boardService) updateRun(ctx context.Context, ur *contract.UpdateRun) error {
	if ur == nil {
		return fmt.Errorf("update_run mutation missing payload")
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRuns := repository.NewSQLiteRunRepo(tx)
		txOrders := repository.NewSQLiteOrderRepo(tx)

		run, err := txRuns.GetByID(ctx, ur.ID)
		if err != nil {
			return err
		}
		// An empty name means unchanged, matching the optimistic store.
		if ur.Name != "" {
			run.Name = ur.Name
		}
		run.Date = ur.Date
		run.TruckID = ur.TruckID
		run.UpdatedAt = time.Now().UTC()
		if err := txRuns.Update(ctx, run); err != nil {
			return err
		}

		members, err := txOrders.ListByRun(ctx, ur.ID)
		if err != nil {
			return err
		}
		for _, o := range members {
			d := ur.Date
			tid := ur.TruckID
			o.Date = &d
			o.TruckID = &tid
			o.UpdatedAt = run.UpdatedAt
			if err := txOrders.Update(ctx, o); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *boardService) createNote(ctx context.Context, n *domain.Note) error {
	if n == nil {
		return fmt.Errorf("create_note mutation missing payload")
	}
	now := time.Now().UTC()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = now
	return s.notes.Create(ctx, n)
}

func (s *boardService) CreateOrder(ctx context.Context, o *domain.Order) error {
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
	return s.orders.Create(ctx, o)
}

func (s *boardService) ListOrders(ctx context.Context, win contract.Window) ([]*domain.Order, error) {
	return s.orders.ListWindow(ctx, win.From, win.To)
}

func (s *boardService) CreateTruck(ctx context.Context, t *domain.Truck) error {
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	return s.trucks.Create(ctx, t)
}

func (s *boardService) ListTrucks(ctx context.Context, includeInactive bool) ([]*domain.Truck, error) {
	return s.trucks.List(ctx, includeInactive)
}
