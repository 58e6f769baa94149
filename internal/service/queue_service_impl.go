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

type queueService struct {
	vendors  repository.VendorRepo
	queue    repository.QueueRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewQueueService(
	vendors repository.VendorRepo,
	queue repository.QueueRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) QueueService {
	return &queueService{
		vendors:  vendors,
		queue:    queue,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *queueService) Snapshot(ctx context.Context, win contract.Window) (*contract.QueueSnapshot, error) {
	vendors, err := s.vendors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading vendors: %w", err)
	}
	allotments, err := s.vendors.ListAllotments(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading allotments: %w", err)
	}
	lines, err := s.queue.ListLinesWindow(ctx, win.From, win.To)
	if err != nil {
		return nil, fmt.Errorf("loading queue lines: %w", err)
	}
	overrides, err := s.queue.ListOverridesWindow(ctx, win.From, win.To)
	if err != nil {
		return nil, fmt.Errorf("loading overrides: %w", err)
	}
	return &contract.QueueSnapshot{
		Vendors:    vendors,
		Allotments: allotments,
		Lines:      lines,
		Overrides:  overrides,
	}, nil
}

func (s *queueService) Apply(ctx context.Context, m contract.Mutation) error {
	started := time.Now()
	err := s.apply(ctx, m)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "queue_apply",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    map[string]any{"op": string(m.Op)},
		StartedAt: started,
	})
	return err
}

func (s *queueService) apply(ctx context.Context, m contract.Mutation) error {
	switch m.Op {
	case contract.OpMoveLines:
		if m.MoveLines == nil {
			return fmt.Errorf("move_lines mutation missing payload")
		}
		return s.moveLines(ctx, m.MoveLines.Lines)
	case contract.OpSetOverride:
		if m.SetOverride == nil {
			return fmt.Errorf("set_override mutation missing payload")
		}
		return s.queue.SetOverride(ctx, m.SetOverride)
	case contract.OpClearOverride:
		if m.ClearOverride == nil {
			return fmt.Errorf("clear_override mutation missing payload")
		}
		c := m.ClearOverride
		return s.queue.ClearOverride(ctx, c.VendorID, c.Category, c.Date)
	default:
		return fmt.Errorf("unsupported queue mutation %q", m.Op)
	}
}

// moveLines rewrites bin membership and ordinals for the whole affected set
// in one transaction. A cross-bin drag touches lines in both bins, so a
// partial write would leave one bin misordered.
func (s *queueService) moveLines(ctx context.Context, lines []contract.LineSeq) error {
	if len(lines) == 0 {
		return nil
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txQueue := repository.NewSQLiteQueueRepo(tx)
		now := time.Now().UTC()
		for _, ls := range lines {
			l, err := txQueue.GetLine(ctx, ls.ID)
			if err != nil {
				return err
			}
			l.VendorID = ls.VendorID
			l.Category = ls.Category
			l.Date = ls.Date
			l.Seq = ls.Seq
			l.UpdatedAt = now
			if err := txQueue.UpdateLine(ctx, l); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *queueService) CreateVendor(ctx context.Context, v *domain.Vendor) error {
	now := time.Now().UTC()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	v.UpdatedAt = now
	return s.vendors.Create(ctx, v)
}

func (s *queueService) SetAllotment(ctx context.Context, a *domain.VendorAllotment) error {
	return s.vendors.SetAllotment(ctx, a)
}

func (s *queueService) CreateLine(ctx context.Context, l *domain.QueueLine) error {
	now := time.Now().UTC()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
	return s.queue.CreateLine(ctx, l)
}
