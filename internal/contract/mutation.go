package contract

import (
	"time"

	"github.com/alexanderramin/haulboard/internal/domain"
)

// MutationOp discriminates the Mutation union.
type MutationOp string

const (
	OpReschedule      MutationOp = "reschedule"
	OpBatchReschedule MutationOp = "batch_reschedule"
	OpCreateRun       MutationOp = "create_run"
	OpUpdateRun       MutationOp = "update_run"
	OpDeleteRun       MutationOp = "delete_run"
	OpCreateNote      MutationOp = "create_note"
	OpUpdateNote      MutationOp = "update_note"
	OpDeleteNote      MutationOp = "delete_note"
	OpMoveLines       MutationOp = "move_lines"
	OpSetOverride     MutationOp = "set_override"
	OpClearOverride   MutationOp = "clear_override"
)

// Reschedule assigns an order a complete new placement state. Date, TruckID,
// and RunID are absolute values (nil means null, not "keep"); Seq nil keeps
// the current ordinal.
type Reschedule struct {
	Ref     domain.Ref
	Date    *time.Time
	TruckID *int64
	RunID   *string
	Seq     *int
}

// CreateRun creates an empty run. The id is generated client-side so the
// optimistic store can reference the run before the server confirms it.
type CreateRun struct {
	ID      string
	Name    string
	Date    time.Time
	TruckID int64
}

// UpdateRun relocates or renames a run. Members are moved by accompanying
// Reschedule entries; the store additionally enforces member placement to
// keep the group-consistency invariant during the optimistic window.
type UpdateRun struct {
	ID      string
	Name    string
	Date    time.Time
	TruckID int64
}

// DeleteRun dissolves a run: membership is cleared, members keep their
// placement.
type DeleteRun struct {
	ID string
}

type DeleteNote struct {
	ID string
}

// LineSeq assigns one queue line a new bin and ordinal.
type LineSeq struct {
	ID       int64
	VendorID int64
	Category domain.BoxCategory
	Date     time.Time
	Seq      int
}

// MoveLines rewrites bin membership and ordinals for a set of queue lines
// as one unit.
type MoveLines struct {
	Lines []LineSeq
}

type ClearOverride struct {
	VendorID int64
	Category domain.BoxCategory
	Date     time.Time
}

// Mutation is the declarative unit shared by the optimistic store and the
// remote collaborator: plans are lists of mutations, applied locally in
// order and then executed remotely in the same order. Exactly one payload
// field matching Op is set.
type Mutation struct {
	Op MutationOp

	Reschedule    *Reschedule
	Batch         []Reschedule
	CreateRun     *CreateRun
	UpdateRun     *UpdateRun
	DeleteRun     *DeleteRun
	CreateNote    *domain.Note
	UpdateNote    *domain.Note
	DeleteNote    *DeleteNote
	MoveLines     *MoveLines
	SetOverride   *domain.AllotmentOverride
	ClearOverride *ClearOverride
}
