package board

import "github.com/alexanderramin/haulboard/internal/domain"

// TargetKind classifies a registered drop zone.
type TargetKind string

const (
	TargetUnscheduleArea TargetKind = "unschedule_area"
	TargetOrderCard      TargetKind = "order_card"
	TargetRunCard        TargetKind = "run_card"
	TargetCell           TargetKind = "cell"
	TargetCellEdge       TargetKind = "cell_edge"
)

// EdgePos marks which end of a cell an edge zone covers.
type EdgePos string

const (
	EdgeTop    EdgePos = "top"
	EdgeBottom EdgePos = "bottom"
)

// DropTarget is one drop zone on the rendered board. The view registers a
// fresh set each layout pass; the collision resolver picks among them.
// Placement is set for cell and cell-edge targets, OrderRef for order cards,
// RunID for run cards.
type DropTarget struct {
	ID        string
	Kind      TargetKind
	Rect      Rect
	Placement *domain.Placement
	OrderRef  *domain.Ref
	RunID     string
	Edge      EdgePos
}

// Target id constructors keep the renderer and the resolver in agreement.

func OrderTargetID(ref domain.Ref) string {
	return "order:" + ref.String()
}

func RunTargetID(runID string) string {
	return "run:" + runID
}

func CellTargetID(p domain.Placement) string {
	return "cell:" + p.Key()
}

func EdgeTargetID(p domain.Placement, e EdgePos) string {
	return "edge:" + p.Key() + ":" + string(e)
}

// UnscheduleTargetID is the single unscheduling area at the board sidebar.
const UnscheduleTargetID = "unschedule"

// PayloadKind discriminates the DragPayload union.
type PayloadKind string

const (
	PayloadOrder    PayloadKind = "order"
	PayloadRun      PayloadKind = "run"
	PayloadCluster  PayloadKind = "cluster"
	PayloadNote     PayloadKind = "note"
	PayloadTemplate PayloadKind = "template"
)

// TemplateKind names the palette templates that can be dragged onto the grid.
type TemplateKind string

const (
	TemplateRun  TemplateKind = "run"
	TemplateNote TemplateKind = "note"
)

// DragPayload describes what is being dragged. Exactly the fields matching
// Kind are set: Order for a single order; Run plus Members for a run;
// Members alone for an owner-cluster; Note for an annotation; Template for
// a palette element not yet instantiated.
type DragPayload struct {
	Kind     PayloadKind
	Order    *domain.Order
	Run      *domain.Run
	Members  []*domain.Order
	Note     *domain.Note
	Template TemplateKind
}

// OrderPayload wraps a single order for dragging.
func OrderPayload(o *domain.Order) DragPayload {
	return DragPayload{Kind: PayloadOrder, Order: o}
}

// RunPayload wraps a run and its members; members ride along so the overlay
// can render them and the resolver can exclude their drop targets.
func RunPayload(r *domain.Run, members []*domain.Order) DragPayload {
	return DragPayload{Kind: PayloadRun, Run: r, Members: members}
}

// ClusterPayload wraps an owner-cluster: orders sharing one customer,
// dragged together but not yet a persisted run.
func ClusterPayload(members []*domain.Order) DragPayload {
	return DragPayload{Kind: PayloadCluster, Members: members}
}

// NotePayload wraps an annotation being relocated.
func NotePayload(n *domain.Note) DragPayload {
	return DragPayload{Kind: PayloadNote, Note: n}
}

// TemplatePayload wraps a palette template.
func TemplatePayload(k TemplateKind) DragPayload {
	return DragPayload{Kind: PayloadTemplate, Template: k}
}
