package board

import (
	"fmt"
	"time"

	"github.com/alexanderramin/haulboard/internal/contract"
	"github.com/alexanderramin/haulboard/internal/domain"
	"github.com/google/uuid"
)

// PlanKind names the domain operation a gesture resolved to.
type PlanKind string

const (
	PlanNoop        PlanKind = "noop"
	PlanReschedule  PlanKind = "reschedule"
	PlanRunCreate   PlanKind = "run_create"
	PlanRunMerge    PlanKind = "run_merge"
	PlanRunMove     PlanKind = "run_move"
	PlanRunRename   PlanKind = "run_rename"
	PlanRunDissolve PlanKind = "run_dissolve"
	PlanUnschedule  PlanKind = "unschedule"
	PlanClusterMove PlanKind = "cluster_move"
	PlanAnnotate    PlanKind = "annotate"
	PlanInstantiate PlanKind = "instantiate"
	PlanQueueMove   PlanKind = "queue_move"
	PlanOverride    PlanKind = "override"
)

// Plan is an ordered list of mutations implementing one gesture. Mutations
// are applied to the optimistic store in order, then executed against the
// remote in the same order, sequentially, so a multi-step grouping cannot
// race itself.
type Plan struct {
	Kind      PlanKind
	Mutations []contract.Mutation
}

func noop() Plan { return Plan{Kind: PlanNoop} }

// Planner turns (payload, resolved target) pairs into mutation plans. It
// reads current entity state from the store; every returned plan is valid
// against that state or is a no-op.
type Planner struct {
	store *Store
}

func NewPlanner(store *Store) *Planner {
	return &Planner{store: store}
}

// PlanDrop is the drop decision table. Semantically forbidden combinations
// (wrong kind/lane pairing, self-drops, ineligible grouping) resolve to a
// no-op: imprecise gestures are a normal outcome, not an error.
func (p *Planner) PlanDrop(payload DragPayload, target *DropTarget) Plan {
	if target == nil {
		return noop()
	}
	switch payload.Kind {
	case PayloadOrder:
		return p.planOrderDrop(payload, target)
	case PayloadRun:
		return p.planRunDrop(payload, target)
	case PayloadCluster:
		return p.planClusterDrop(payload, target)
	case PayloadNote:
		return p.planNoteDrop(payload, target)
	case PayloadTemplate:
		return p.planTemplateDrop(payload, target)
	}
	return noop()
}

// ── single order ─────────────────────────────────────────────────────────────

func (p *Planner) planOrderDrop(payload DragPayload, target *DropTarget) Plan {
	if payload.Order == nil {
		return noop()
	}
	o := p.store.Order(payload.Order.Ref())
	if o == nil {
		return noop()
	}

	switch target.Kind {
	case TargetUnscheduleArea:
		if o.Date == nil {
			return noop()
		}
		return Plan{Kind: PlanUnschedule, Mutations: []contract.Mutation{{
			Op:         contract.OpReschedule,
			Reschedule: &contract.Reschedule{Ref: o.Ref()},
		}}}

	case TargetOrderCard:
		if target.OrderRef == nil || *target.OrderRef == o.Ref() {
			return noop()
		}
		other := p.store.Order(*target.OrderRef)
		if other == nil {
			return noop()
		}
		if other.RunID != nil {
			if run := p.store.Run(*other.RunID); run != nil {
				return p.mergeOrderIntoRun(o, run)
			}
			return noop()
		}
		return p.createRunFromPair(o, other)

	case TargetRunCard:
		run := p.store.Run(target.RunID)
		if run == nil {
			return noop()
		}
		return p.mergeOrderIntoRun(o, run)

	case TargetCell, TargetCellEdge:
		if target.Placement == nil {
			return noop()
		}
		placement := *target.Placement
		if !laneMatches(o.Kind, placement) {
			return noop()
		}
		pos := InsertBottom
		if target.Kind == TargetCellEdge && target.Edge == EdgeTop {
			pos = InsertTop
		}
		batch := ResequenceSlot(p.store.OrdersAt(placement), []domain.Ref{o.Ref()}, pos)
		p.completeBatch(batch, map[domain.Ref]contract.Reschedule{
			o.Ref(): placed(placement, nil),
		})
		return Plan{Kind: PlanReschedule, Mutations: []contract.Mutation{batchMutation(batch)}}
	}
	return noop()
}

// createRunFromPair is the two-ungrouped-orders collision: a new run is
// created at the target's placement, then both orders attach to it. The
// steps stay sequential so the two attaches cannot each try to create a
// run of their own; if a later step fails remotely the partial state is
// left for the next hydrate.
func (p *Planner) createRunFromPair(dragged, target *domain.Order) Plan {
	if dragged.Kind != domain.OrderOutbound || target.Kind != domain.OrderOutbound {
		return noop()
	}
	if target.Date == nil || target.TruckID == nil {
		return noop()
	}

	runID := uuid.New().String()
	placement := domain.NewPlacement(*target.Date, target.TruckID)
	return Plan{Kind: PlanRunCreate, Mutations: []contract.Mutation{
		{Op: contract.OpCreateRun, CreateRun: &contract.CreateRun{
			ID:      runID,
			Name:    fmt.Sprintf("%s run", target.Customer),
			Date:    placement.Date,
			TruckID: *target.TruckID,
		}},
		{Op: contract.OpReschedule, Reschedule: refReschedule(target.Ref(), placement, &runID, SeqStep)},
		{Op: contract.OpReschedule, Reschedule: refReschedule(dragged.Ref(), placement, &runID, 2*SeqStep)},
	}}
}

func (p *Planner) mergeOrderIntoRun(o *domain.Order, run *domain.Run) Plan {
	if o.Kind != domain.OrderOutbound {
		return noop()
	}
	if o.RunID != nil && *o.RunID == run.ID {
		return noop()
	}
	placement := run.Placement()
	batch := ResequenceSlot(p.store.Members(run.ID), []domain.Ref{o.Ref()}, InsertBottom)
	p.completeBatch(batch, map[domain.Ref]contract.Reschedule{
		o.Ref(): placed(placement, &run.ID),
	})
	return Plan{Kind: PlanRunMerge, Mutations: []contract.Mutation{batchMutation(batch)}}
}

// ── run ──────────────────────────────────────────────────────────────────────

func (p *Planner) planRunDrop(payload DragPayload, target *DropTarget) Plan {
	if payload.Run == nil {
		return noop()
	}
	run := p.store.Run(payload.Run.ID)
	if run == nil {
		return noop()
	}

	switch target.Kind {
	case TargetCell, TargetCellEdge:
		if target.Placement == nil || target.Placement.TruckID == nil {
			return noop()
		}
		return p.moveRun(run, *target.Placement)

	case TargetRunCard:
		other := p.store.Run(target.RunID)
		if other == nil || other.ID == run.ID {
			return noop()
		}
		return p.mergeRuns(run, other)

	case TargetOrderCard:
		if target.OrderRef == nil {
			return noop()
		}
		other := p.store.Order(*target.OrderRef)
		if other == nil || other.RunID == nil {
			return noop()
		}
		dest := p.store.Run(*other.RunID)
		if dest == nil || dest.ID == run.ID {
			return noop()
		}
		return p.mergeRuns(run, dest)
	}
	return noop()
}

// moveRun relocates the run and carries every member atomically.
func (p *Planner) moveRun(run *domain.Run, placement domain.Placement) Plan {
	if run.Placement().Equal(placement) {
		return noop()
	}
	members := p.store.Members(run.ID)
	moved := make([]domain.Ref, len(members))
	fills := make(map[domain.Ref]contract.Reschedule, len(members))
	for i, m := range members {
		moved[i] = m.Ref()
		fills[m.Ref()] = placed(placement, &run.ID)
	}
	batch := ResequenceSlot(p.store.OrdersAt(placement), moved, InsertBottom)
	p.completeBatch(batch, fills)

	return Plan{Kind: PlanRunMove, Mutations: []contract.Mutation{
		{Op: contract.OpUpdateRun, UpdateRun: &contract.UpdateRun{
			ID:      run.ID,
			Name:    run.Name,
			Date:    placement.Date,
			TruckID: *placement.TruckID,
		}},
		batchMutation(batch),
	}}
}

// mergeRuns moves every member of src into dest, then dissolves src.
func (p *Planner) mergeRuns(src, dest *domain.Run) Plan {
	placement := dest.Placement()
	members := p.store.Members(src.ID)
	moved := make([]domain.Ref, len(members))
	fills := make(map[domain.Ref]contract.Reschedule, len(members))
	for i, m := range members {
		moved[i] = m.Ref()
		fills[m.Ref()] = placed(placement, &dest.ID)
	}
	batch := ResequenceSlot(p.store.Members(dest.ID), moved, InsertBottom)
	p.completeBatch(batch, fills)

	return Plan{Kind: PlanRunMerge, Mutations: []contract.Mutation{
		batchMutation(batch),
		{Op: contract.OpDeleteRun, DeleteRun: &contract.DeleteRun{ID: src.ID}},
	}}
}

// PlanDissolve detaches all members from a run without moving them. This is
// an explicit action, not a drop.
func (p *Planner) PlanDissolve(runID string) Plan {
	if p.store.Run(runID) == nil {
		return noop()
	}
	return Plan{Kind: PlanRunDissolve, Mutations: []contract.Mutation{
		{Op: contract.OpDeleteRun, DeleteRun: &contract.DeleteRun{ID: runID}},
	}}
}

// ── owner cluster ────────────────────────────────────────────────────────────

func (p *Planner) planClusterDrop(payload DragPayload, target *DropTarget) Plan {
	if target.Kind != TargetCell && target.Kind != TargetCellEdge {
		return noop()
	}
	if target.Placement == nil {
		return noop()
	}
	placement := *target.Placement

	var members []*domain.Order
	for _, m := range payload.Members {
		if o := p.store.Order(m.Ref()); o != nil {
			members = append(members, o)
		}
	}
	if len(members) == 0 {
		return noop()
	}
	for _, m := range members {
		if !laneMatches(m.Kind, placement) {
			return noop()
		}
	}

	pos := InsertBottom
	if target.Kind == TargetCellEdge && target.Edge == EdgeTop {
		pos = InsertTop
	}
	moved := make([]domain.Ref, len(members))
	fills := make(map[domain.Ref]contract.Reschedule, len(members))
	for i, m := range members {
		moved[i] = m.Ref()
		fills[m.Ref()] = placed(placement, nil)
	}
	batch := ResequenceSlot(p.store.OrdersAt(placement), moved, pos)
	p.completeBatch(batch, fills)
	return Plan{Kind: PlanClusterMove, Mutations: []contract.Mutation{batchMutation(batch)}}
}

// ── notes ────────────────────────────────────────────────────────────────────

func (p *Planner) planNoteDrop(payload DragPayload, target *DropTarget) Plan {
	if payload.Note == nil {
		return noop()
	}
	n := p.store.Note(payload.Note.ID)
	if n == nil {
		return noop()
	}

	var newTarget domain.NoteTarget
	switch target.Kind {
	case TargetCell:
		if target.Placement == nil {
			return noop()
		}
		newTarget = domain.CellTarget(*target.Placement)
	case TargetOrderCard:
		if target.OrderRef == nil {
			return noop()
		}
		newTarget = domain.OrderTarget(*target.OrderRef)
	case TargetRunCard:
		newTarget = domain.RunTarget(target.RunID)
	default:
		return noop()
	}

	moved := *n
	moved.Target = newTarget
	return Plan{Kind: PlanAnnotate, Mutations: []contract.Mutation{
		{Op: contract.OpUpdateNote, UpdateNote: &moved},
	}}
}

// PlanNewNote creates a note from the floating composer.
func (p *Planner) PlanNewNote(target domain.NoteTarget, content string, color domain.NoteColor) Plan {
	n := &domain.Note{
		ID:      uuid.New().String(),
		Content: content,
		Color:   color,
		Target:  target,
	}
	return Plan{Kind: PlanAnnotate, Mutations: []contract.Mutation{
		{Op: contract.OpCreateNote, CreateNote: n},
	}}
}

// PlanEditNote rewrites a note's content and color in place.
func (p *Planner) PlanEditNote(id, content string, color domain.NoteColor) Plan {
	n := p.store.Note(id)
	if n == nil {
		return noop()
	}
	edited := *n
	edited.Content = content
	edited.Color = color
	return Plan{Kind: PlanAnnotate, Mutations: []contract.Mutation{
		{Op: contract.OpUpdateNote, UpdateNote: &edited},
	}}
}

// PlanDeleteNote removes a note explicitly.
func (p *Planner) PlanDeleteNote(id string) Plan {
	if p.store.Note(id) == nil {
		return noop()
	}
	return Plan{Kind: PlanAnnotate, Mutations: []contract.Mutation{
		{Op: contract.OpDeleteNote, DeleteNote: &contract.DeleteNote{ID: id}},
	}}
}

// ── palette templates ────────────────────────────────────────────────────────

func (p *Planner) planTemplateDrop(payload DragPayload, target *DropTarget) Plan {
	if target.Kind != TargetCell || target.Placement == nil {
		return noop()
	}
	placement := *target.Placement

	switch payload.Template {
	case TemplateRun:
		if placement.TruckID == nil {
			return noop()
		}
		return Plan{Kind: PlanInstantiate, Mutations: []contract.Mutation{
			{Op: contract.OpCreateRun, CreateRun: &contract.CreateRun{
				ID:      uuid.New().String(),
				Name:    "New run",
				Date:    placement.Date,
				TruckID: *placement.TruckID,
			}},
		}}
	case TemplateNote:
		n := &domain.Note{
			ID:     uuid.New().String(),
			Color:  domain.NoteYellow,
			Target: domain.CellTarget(placement),
		}
		return Plan{Kind: PlanInstantiate, Mutations: []contract.Mutation{
			{Op: contract.OpCreateNote, CreateNote: n},
		}}
	}
	return noop()
}

// PlanRenameRun retitles a run in place. Placement is restated unchanged
// because UpdateRun carries the full run state.
func (p *Planner) PlanRenameRun(id, name string) Plan {
	run := p.store.Run(id)
	if run == nil || name == "" || name == run.Name {
		return noop()
	}
	return Plan{Kind: PlanRunRename, Mutations: []contract.Mutation{{
		Op: contract.OpUpdateRun,
		UpdateRun: &contract.UpdateRun{
			ID:      id,
			Name:    name,
			Date:    run.Date,
			TruckID: run.TruckID,
		},
	}}}
}

// ── production queue ─────────────────────────────────────────────────────────

// PlanQueueMove reorders a line within a bin or moves it to another bin,
// landing at index idx among the destination lines.
func (p *Planner) PlanQueueMove(lineID int64, vendorID int64, cat domain.BoxCategory, date time.Time, idx int) Plan {
	line := p.store.Line(lineID)
	if line == nil {
		return noop()
	}
	dest := contract.LineSeq{VendorID: vendorID, Category: cat, Date: date}
	bin := p.store.Bin(vendorID, cat, date)
	batch := resequenceLines(bin.Lines, line, idx, dest)
	return Plan{Kind: PlanQueueMove, Mutations: []contract.Mutation{
		{Op: contract.OpMoveLines, MoveLines: &contract.MoveLines{Lines: batch}},
	}}
}

// PlanSetOverride replaces a bin's default allotment for one date.
func (p *Planner) PlanSetOverride(vendorID int64, cat domain.BoxCategory, date time.Time, qty int) Plan {
	return Plan{Kind: PlanOverride, Mutations: []contract.Mutation{
		{Op: contract.OpSetOverride, SetOverride: &domain.AllotmentOverride{
			VendorID: vendorID,
			Category: cat,
			Date:     date,
			Quantity: qty,
		}},
	}}
}

// PlanClearOverride restores the vendor default for one date.
func (p *Planner) PlanClearOverride(vendorID int64, cat domain.BoxCategory, date time.Time) Plan {
	return Plan{Kind: PlanOverride, Mutations: []contract.Mutation{
		{Op: contract.OpClearOverride, ClearOverride: &contract.ClearOverride{
			VendorID: vendorID,
			Category: cat,
			Date:     date,
		}},
	}}
}

// ── helpers ──────────────────────────────────────────────────────────────────

// laneMatches enforces kind/resource pairing: inbound orders live in the
// dock lane, outbound orders on a truck row.
func laneMatches(kind domain.OrderKind, p domain.Placement) bool {
	if kind == domain.OrderInbound {
		return p.TruckID == nil
	}
	return p.TruckID != nil
}

// placed builds the placement fill for a moved ref.
func placed(p domain.Placement, runID *string) contract.Reschedule {
	d := p.Date
	return contract.Reschedule{Date: &d, TruckID: p.TruckID, RunID: runID}
}

// completeBatch fills placement fields for every resequenced entry: moved
// refs take their destination, staying occupants keep their current state.
// Reschedule values are absolute, so leaving a stay entry's placement nil
// would unschedule it.
func (p *Planner) completeBatch(batch []contract.Reschedule, moved map[domain.Ref]contract.Reschedule) {
	for i := range batch {
		if fill, ok := moved[batch[i].Ref]; ok {
			batch[i].Date = fill.Date
			batch[i].TruckID = fill.TruckID
			batch[i].RunID = fill.RunID
			continue
		}
		if o := p.store.Order(batch[i].Ref); o != nil {
			batch[i].Date = o.Date
			batch[i].TruckID = o.TruckID
			batch[i].RunID = o.RunID
		}
	}
}

func refReschedule(ref domain.Ref, p domain.Placement, runID *string, seq int) *contract.Reschedule {
	r := placed(p, runID)
	r.Ref = ref
	r.Seq = &seq
	return &r
}

func batchMutation(batch []contract.Reschedule) contract.Mutation {
	if len(batch) == 1 {
		r := batch[0]
		return contract.Mutation{Op: contract.OpReschedule, Reschedule: &r}
	}
	return contract.Mutation{Op: contract.OpBatchReschedule, Batch: batch}
}
