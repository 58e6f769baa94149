package board

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/haulboard/internal/contract"
)

// Remote is the mutation surface of the system of record. Each call is an
// independent request; the engine sequences multi-step plans itself and the
// collaborator is not assumed to support multi-entity transactions beyond
// the batch reschedule.
type Remote interface {
	Apply(ctx context.Context, m contract.Mutation) error
}

// Engine binds the drag session, planner, and optimistic store, and owns
// execution of plans against the remote. Every plan is applied to the store
// synchronously before the remote sees it, so the UI reflects the result
// ahead of confirmation; remote failures are logged and left for the next
// hydrate to reconcile, never rolled back.
type Engine struct {
	store   *Store
	session *Session
	planner *Planner
	remote  Remote
	logger  *slog.Logger
}

func NewEngine(store *Store, remote Remote, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:   store,
		session: NewSession(),
		planner: NewPlanner(store),
		remote:  remote,
		logger:  logger,
	}
}

func (e *Engine) Store() *Store     { return e.store }
func (e *Engine) Session() *Session { return e.session }
func (e *Engine) Planner() *Planner { return e.planner }

// CompleteDrop finishes the active drag. A nil target cancels with no
// mutation; otherwise the drop is planned and applied optimistically, and
// the plan is returned for asynchronous remote execution.
func (e *Engine) CompleteDrop(target *DropTarget, now time.Time) Plan {
	if !e.session.Active() {
		return noop()
	}
	if target == nil {
		e.session.Cancel()
		return noop()
	}
	payload := e.session.Drop(now)
	return e.Dispatch(e.planner.PlanDrop(payload, target))
}

// Dispatch applies a plan's mutations to the optimistic store in order and
// returns the plan unchanged for remote execution.
func (e *Engine) Dispatch(plan Plan) Plan {
	for _, m := range plan.Mutations {
		e.store.Apply(m)
	}
	return plan
}

// ExecutePlan runs the plan's mutations against the remote sequentially.
// The first failure abandons the remainder: a partially applied multi-step
// plan (run created, one order attached) is a recoverable inconsistency
// surfaced by the next refresh, not something to compensate for here.
func (e *Engine) ExecutePlan(ctx context.Context, plan Plan) error {
	for i, m := range plan.Mutations {
		if err := e.remote.Apply(ctx, m); err != nil {
			e.logger.Error("remote mutation failed",
				"plan", string(plan.Kind),
				"op", string(m.Op),
				"step", i,
				"steps", len(plan.Mutations),
				"error", err,
			)
			return fmt.Errorf("executing %s step %d (%s): %w", plan.Kind, i, m.Op, err)
		}
	}
	return nil
}
