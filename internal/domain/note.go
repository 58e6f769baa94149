package domain

import "time"

type NoteColor string

const (
	NoteYellow NoteColor = "yellow"
	NotePink   NoteColor = "pink"
	NoteBlue   NoteColor = "blue"
	NoteGreen  NoteColor = "green"
)

// ValidNoteColors is the canonical set of accepted note color strings.
var ValidNoteColors = map[string]bool{
	"yellow": true, "pink": true, "blue": true, "green": true,
}

type NoteTargetKind string

const (
	NoteOnCell  NoteTargetKind = "cell"
	NoteOnOrder NoteTargetKind = "order"
	NoteOnRun   NoteTargetKind = "run"
)

// NoteTarget references exactly one anchor: a board cell, a single order,
// or a run. Only the field matching Kind is set.
type NoteTarget struct {
	Kind  NoteTargetKind
	Cell  *Placement
	Order *Ref
	RunID string
}

// CellTarget builds a cell-anchored note target.
func CellTarget(p Placement) NoteTarget {
	return NoteTarget{Kind: NoteOnCell, Cell: &p}
}

// OrderTarget builds an order-anchored note target.
func OrderTarget(r Ref) NoteTarget {
	return NoteTarget{Kind: NoteOnOrder, Order: &r}
}

// RunTarget builds a run-anchored note target.
func RunTarget(runID string) NoteTarget {
	return NoteTarget{Kind: NoteOnRun, RunID: runID}
}

// Note is a sticky annotation pinned to a cell, order, or run.
type Note struct {
	ID      string
	Content string
	Color   NoteColor
	Target  NoteTarget

	CreatedAt time.Time
	UpdatedAt time.Time
}
