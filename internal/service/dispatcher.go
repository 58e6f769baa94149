package service

import (
	"context"

	"github.com/alexanderramin/haulboard/internal/contract"
)

// MutationDispatcher routes mutations to the service owning the op and
// publishes a change signal after each successful write. It is the single
// remote collaborator the drag engine talks to.
type MutationDispatcher struct {
	board    BoardService
	queue    QueueService
	notifier *Notifier
}

func NewMutationDispatcher(board BoardService, queue QueueService, notifier *Notifier) *MutationDispatcher {
	return &MutationDispatcher{board: board, queue: queue, notifier: notifier}
}

func (d *MutationDispatcher) Apply(ctx context.Context, m contract.Mutation) error {
	var err error
	switch m.Op {
	case contract.OpMoveLines, contract.OpSetOverride, contract.OpClearOverride:
		err = d.queue.Apply(ctx, m)
	default:
		err = d.board.Apply(ctx, m)
	}
	if err != nil {
		return err
	}
	if d.notifier != nil {
		d.notifier.Publish()
	}
	return nil
}
