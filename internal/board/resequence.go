package board

import (
	"sort"

	"github.com/alexanderramin/haulboard/internal/contract"
	"github.com/alexanderramin/haulboard/internal/domain"
)

// SeqStep is the ordinal spacing between slot siblings. Assigning multiples
// of a step instead of dense integers leaves room for future insertions
// without renumbering the whole slot.
const SeqStep = 1000

// InsertPos says where moved records land among the staying occupants.
// Drop gestures only ever insert at the top or bottom of a slot.
type InsertPos string

const (
	InsertTop    InsertPos = "top"
	InsertBottom InsertPos = "bottom"
)

// ResequenceSlot rewrites ordinals for a destination slot: the staying
// occupants keep their relative order, the moved refs are spliced at pos,
// and every resulting occupant gets a fresh ordinal as a strict multiple of
// SeqStep. occupants are the slot's current orders in any order; moved refs
// may or may not already be occupants.
//
// Placement fields of the returned entries are nil; the planner fills them
// for the refs it is moving. The whole batch is meant to be submitted as
// one unit so the visual order is never observed half-updated.
func ResequenceSlot(occupants []*domain.Order, moved []domain.Ref, pos InsertPos) []contract.Reschedule {
	movedSet := make(map[domain.Ref]bool, len(moved))
	for _, ref := range moved {
		movedSet[ref] = true
	}

	var stay []*domain.Order
	for _, o := range occupants {
		if !movedSet[o.Ref()] {
			stay = append(stay, o)
		}
	}
	sort.SliceStable(stay, func(i, j int) bool { return stay[i].Seq < stay[j].Seq })

	ordered := make([]domain.Ref, 0, len(stay)+len(moved))
	if pos == InsertTop {
		ordered = append(ordered, moved...)
	}
	for _, o := range stay {
		ordered = append(ordered, o.Ref())
	}
	if pos != InsertTop {
		ordered = append(ordered, moved...)
	}

	out := make([]contract.Reschedule, len(ordered))
	for i, ref := range ordered {
		seq := (i + 1) * SeqStep
		out[i] = contract.Reschedule{Ref: ref, Seq: intPtr(seq)}
	}
	return out
}

// resequenceLines is the queue-side counterpart: splice movedID into lines
// at index idx (clamped) and return fresh step-multiple ordinals for every
// line of the destination bin.
func resequenceLines(lines []*domain.QueueLine, moved *domain.QueueLine, idx int, dest contract.LineSeq) []contract.LineSeq {
	var stay []*domain.QueueLine
	for _, l := range lines {
		if l.ID != moved.ID {
			stay = append(stay, l)
		}
	}
	sort.SliceStable(stay, func(i, j int) bool { return stay[i].Seq < stay[j].Seq })

	if idx < 0 {
		idx = 0
	}
	if idx > len(stay) {
		idx = len(stay)
	}

	ordered := make([]*domain.QueueLine, 0, len(stay)+1)
	ordered = append(ordered, stay[:idx]...)
	ordered = append(ordered, moved)
	ordered = append(ordered, stay[idx:]...)

	out := make([]contract.LineSeq, len(ordered))
	for i, l := range ordered {
		out[i] = contract.LineSeq{
			ID:       l.ID,
			VendorID: dest.VendorID,
			Category: dest.Category,
			Date:     dest.Date,
			Seq:      (i + 1) * SeqStep,
		}
		if l.ID != moved.ID {
			// Staying lines keep their own bin; only the ordinal changes.
			out[i].VendorID = l.VendorID
			out[i].Category = l.Category
			out[i].Date = l.Date
		}
	}
	return out
}

func intPtr(v int) *int { return &v }
