package board

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/haulboard/internal/contract"
	"github.com/alexanderramin/haulboard/internal/domain"
)

// Store is the normalized optimistic client state for the board and the
// production queue. Entity maps are rebuilt wholesale by Hydrate and patched
// in place by Apply; derived indices are recomputed after every write, never
// independently mutated.
//
// Apply never fails: an intent referencing a since-deleted entity is a
// silent no-op. After any write every invariant holds immediately: run
// members share the run's placement, bin scheduled quantities equal the sum
// of their lines, without waiting for server confirmation.
type Store struct {
	orders map[string]*domain.Order // keyed by Ref.String()
	trucks map[int64]*domain.Truck
	runs   map[string]*domain.Run
	notes  map[string]*domain.Note

	vendors    map[int64]*domain.Vendor
	allotments map[string]int // "vendor|category" -> default quantity
	lines      map[int64]*domain.QueueLine
	overrides  map[string]*domain.AllotmentOverride // bin key

	// Derived indices.
	runMembers map[string][]domain.Ref // run id -> member refs by seq
	slots      map[string][]domain.Ref // placement key -> refs by seq
	bins       map[string]*CapacityBin // bin key
}

func NewStore() *Store {
	s := &Store{}
	s.Hydrate(contract.BoardSnapshot{})
	s.HydrateQueue(contract.QueueSnapshot{})
	return s
}

// Hydrate replaces all board entity state from an authoritative snapshot.
func (s *Store) Hydrate(snap contract.BoardSnapshot) {
	s.orders = make(map[string]*domain.Order, len(snap.Orders))
	for _, o := range snap.Orders {
		c := *o
		s.orders[c.Ref().String()] = &c
	}
	s.trucks = make(map[int64]*domain.Truck, len(snap.Trucks))
	for _, t := range snap.Trucks {
		c := *t
		s.trucks[c.ID] = &c
	}
	s.runs = make(map[string]*domain.Run, len(snap.Runs))
	for _, r := range snap.Runs {
		c := *r
		s.runs[c.ID] = &c
	}
	s.notes = make(map[string]*domain.Note, len(snap.Notes))
	for _, n := range snap.Notes {
		c := *n
		s.notes[c.ID] = &c
	}
	s.reindex()
}

// HydrateQueue replaces all queue entity state from an authoritative snapshot.
func (s *Store) HydrateQueue(snap contract.QueueSnapshot) {
	s.vendors = make(map[int64]*domain.Vendor, len(snap.Vendors))
	for _, v := range snap.Vendors {
		c := *v
		s.vendors[c.ID] = &c
	}
	s.allotments = make(map[string]int, len(snap.Allotments))
	for _, a := range snap.Allotments {
		s.allotments[allotmentKey(a.VendorID, a.Category)] = a.Quantity
	}
	s.lines = make(map[int64]*domain.QueueLine, len(snap.Lines))
	for _, l := range snap.Lines {
		c := *l
		s.lines[c.ID] = &c
	}
	s.overrides = make(map[string]*domain.AllotmentOverride, len(snap.Overrides))
	for _, o := range snap.Overrides {
		c := *o
		s.overrides[domain.BinKey(c.VendorID, c.Category, c.Date)] = &c
	}
	s.reindexBins()
}

// ── accessors ────────────────────────────────────────────────────────────────

func (s *Store) Order(ref domain.Ref) *domain.Order {
	return s.orders[ref.String()]
}

func (s *Store) Run(id string) *domain.Run {
	return s.runs[id]
}

func (s *Store) Note(id string) *domain.Note {
	return s.notes[id]
}

func (s *Store) Truck(id int64) *domain.Truck {
	return s.trucks[id]
}

// Trucks returns active trucks sorted by name.
func (s *Store) Trucks() []*domain.Truck {
	var out []*domain.Truck
	for _, t := range s.trucks {
		if t.Active {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// OrdersAt returns the slot occupants in ordinal order.
func (s *Store) OrdersAt(p domain.Placement) []*domain.Order {
	refs := s.slots[p.Key()]
	out := make([]*domain.Order, 0, len(refs))
	for _, ref := range refs {
		if o := s.orders[ref.String()]; o != nil {
			out = append(out, o)
		}
	}
	return out
}

// Unscheduled returns all orders without a placement, stable by ref.
func (s *Store) Unscheduled() []*domain.Order {
	var out []*domain.Order
	for _, o := range s.orders {
		if o.Date == nil {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ref().String() < out[j].Ref().String() })
	return out
}

// Members returns a run's member orders in ordinal order.
func (s *Store) Members(runID string) []*domain.Order {
	refs := s.runMembers[runID]
	out := make([]*domain.Order, 0, len(refs))
	for _, ref := range refs {
		if o := s.orders[ref.String()]; o != nil {
			out = append(out, o)
		}
	}
	return out
}

// Cluster returns all orders sharing the customer, in ordinal order within
// each date, used for owner-cluster drags.
func (s *Store) Cluster(customer string) []*domain.Order {
	var out []*domain.Order
	for _, o := range s.orders {
		if o.Customer == customer {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Seq != out[j].Seq {
			return out[i].Seq < out[j].Seq
		}
		return out[i].Ref().String() < out[j].Ref().String()
	})
	return out
}

// RunAt returns the run occupying a placement, or nil.
func (s *Store) RunAt(p domain.Placement) *domain.Run {
	for _, r := range s.runs {
		if r.Placement().Equal(p) {
			return r
		}
	}
	return nil
}

// NotesFor returns notes anchored to the given target.
func (s *Store) NotesFor(target domain.NoteTarget) []*domain.Note {
	var out []*domain.Note
	for _, n := range s.notes {
		if sameTarget(n.Target, target) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func sameTarget(a, b domain.NoteTarget) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case domain.NoteOnCell:
		return a.Cell != nil && b.Cell != nil && a.Cell.Equal(*b.Cell)
	case domain.NoteOnOrder:
		return a.Order != nil && b.Order != nil && *a.Order == *b.Order
	case domain.NoteOnRun:
		return a.RunID == b.RunID
	}
	return false
}

// ── optimistic writes ────────────────────────────────────────────────────────

// Apply patches the store with one mutation. It never fails; intents that
// reference missing entities are ignored and leave the state unchanged.
func (s *Store) Apply(m contract.Mutation) {
	switch m.Op {
	case contract.OpReschedule:
		if m.Reschedule != nil {
			s.applyReschedule(*m.Reschedule)
		}
	case contract.OpBatchReschedule:
		for _, r := range m.Batch {
			s.applyReschedule(r)
		}
	case contract.OpCreateRun:
		if m.CreateRun != nil {
			c := m.CreateRun
			s.runs[c.ID] = &domain.Run{ID: c.ID, Name: c.Name, Date: c.Date, TruckID: c.TruckID}
		}
	case contract.OpUpdateRun:
		if m.UpdateRun != nil {
			s.applyUpdateRun(*m.UpdateRun)
		}
	case contract.OpDeleteRun:
		if m.DeleteRun != nil {
			s.applyDeleteRun(m.DeleteRun.ID)
		}
	case contract.OpCreateNote, contract.OpUpdateNote:
		if n := noteArg(m); n != nil {
			c := *n
			s.notes[c.ID] = &c
		}
	case contract.OpDeleteNote:
		if m.DeleteNote != nil {
			delete(s.notes, m.DeleteNote.ID)
		}
	case contract.OpMoveLines:
		if m.MoveLines != nil {
			for _, ls := range m.MoveLines.Lines {
				if l := s.lines[ls.ID]; l != nil {
					l.VendorID = ls.VendorID
					l.Category = ls.Category
					l.Date = ls.Date
					l.Seq = ls.Seq
				}
			}
		}
	case contract.OpSetOverride:
		if m.SetOverride != nil {
			c := *m.SetOverride
			s.overrides[domain.BinKey(c.VendorID, c.Category, c.Date)] = &c
		}
	case contract.OpClearOverride:
		if m.ClearOverride != nil {
			c := m.ClearOverride
			delete(s.overrides, domain.BinKey(c.VendorID, c.Category, c.Date))
		}
	}
	s.reindex()
	s.reindexBins()
}

func noteArg(m contract.Mutation) *domain.Note {
	if m.Op == contract.OpCreateNote {
		return m.CreateNote
	}
	return m.UpdateNote
}

func (s *Store) applyReschedule(r contract.Reschedule) {
	o := s.orders[r.Ref.String()]
	if o == nil {
		return
	}
	o.Date = r.Date
	o.TruckID = r.TruckID
	o.RunID = r.RunID
	if r.Seq != nil {
		o.Seq = *r.Seq
	}
}

func (s *Store) applyUpdateRun(u contract.UpdateRun) {
	r := s.runs[u.ID]
	if r == nil {
		return
	}
	r.Date = u.Date
	r.TruckID = u.TruckID
	if u.Name != "" {
		r.Name = u.Name
	}
	// Enforce the group-consistency invariant: members follow the run even
	// if the accompanying batch reschedule is applied later or not at all.
	for _, ref := range s.runMembers[u.ID] {
		if o := s.orders[ref.String()]; o != nil {
			d := r.Date
			tid := r.TruckID
			o.Date = &d
			o.TruckID = &tid
		}
	}
}

func (s *Store) applyDeleteRun(id string) {
	if _, ok := s.runs[id]; !ok {
		return
	}
	// Dissolve: clear membership without moving members.
	for _, ref := range s.runMembers[id] {
		if o := s.orders[ref.String()]; o != nil {
			o.RunID = nil
		}
	}
	delete(s.runs, id)
}

// ── derived indices ──────────────────────────────────────────────────────────

func (s *Store) reindex() {
	s.runMembers = make(map[string][]domain.Ref)
	s.slots = make(map[string][]domain.Ref)

	refs := make([]*domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		refs = append(refs, o)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Seq != refs[j].Seq {
			return refs[i].Seq < refs[j].Seq
		}
		return refs[i].Ref().String() < refs[j].Ref().String()
	})

	for _, o := range refs {
		if o.RunID != nil {
			s.runMembers[*o.RunID] = append(s.runMembers[*o.RunID], o.Ref())
		}
		if p := o.Placement(); p != nil {
			s.slots[p.Key()] = append(s.slots[p.Key()], o.Ref())
		}
	}
}

func allotmentKey(vendorID int64, cat domain.BoxCategory) string {
	return fmt.Sprintf("%d|%s", vendorID, cat)
}
