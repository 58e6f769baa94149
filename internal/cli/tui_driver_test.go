package cli

import (
	"testing"

	"github.com/alexanderramin/haulboard/internal/board"
	"github.com/alexanderramin/haulboard/internal/domain"
	"github.com/alexanderramin/haulboard/internal/teatest"
)

// TestDriver wraps teatest.Driver with board-specific inspection methods:
// view stack access and layout lookups for scripting mouse drags.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver constructs the appModel over the board view, sets terminal
// size, and drains Init() (which snapshots synchronously via in-memory
// SQLite).
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app, newBoardView(app.state()))
	d := teatest.New(t, m, teatest.WithSize(140, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// NewQueueTestDriver starts the TUI on the queue view instead.
func NewQueueTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app, newQueueView(app.state()))
	d := teatest.New(t, m, teatest.WithSize(140, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// ── Mouse scripting ──────────────────────────────────────────────────────────

// Drag presses at from, moves to to, and releases.
func (d *TestDriver) Drag(from, to board.Point) {
	d.T.Helper()
	d.PressMouse(from.X, from.Y)
	d.MotionMouse(to.X, to.Y)
	d.ReleaseMouse(to.X, to.Y)
}

// OrderSourcePos returns the press position for an order's card.
func (d *TestDriver) OrderSourcePos(ref domain.Ref) board.Point {
	d.T.Helper()
	for _, s := range d.board().layout.sources {
		if s.src.kind == board.PayloadOrder && s.src.orderRef != nil && *s.src.orderRef == ref {
			return s.rect.Center()
		}
	}
	d.T.Fatalf("no drag source for order %s", ref)
	return board.Point{}
}

// RunSourcePos returns the press position for a run's header card.
func (d *TestDriver) RunSourcePos(runID string) board.Point {
	d.T.Helper()
	for _, s := range d.board().layout.sources {
		if s.src.kind == board.PayloadRun && s.src.runID == runID {
			return s.rect.Center()
		}
	}
	d.T.Fatalf("no drag source for run %s", runID)
	return board.Point{}
}

// TemplateSourcePos returns the press position for a palette template.
func (d *TestDriver) TemplateSourcePos(kind board.TemplateKind) board.Point {
	d.T.Helper()
	for _, s := range d.board().layout.sources {
		if s.src.kind == board.PayloadTemplate && s.src.template == kind {
			return s.rect.Center()
		}
	}
	d.T.Fatalf("no palette source for template %s", kind)
	return board.Point{}
}

// NoteSourcePos returns the press position for a note tag.
func (d *TestDriver) NoteSourcePos(noteID string) board.Point {
	d.T.Helper()
	for _, s := range d.board().layout.sources {
		if s.src.kind == board.PayloadNote && s.src.noteID == noteID {
			return s.rect.Center()
		}
	}
	d.T.Fatalf("no drag source for note %s", noteID)
	return board.Point{}
}

// CellPos returns the drop position at the center of a cell target.
func (d *TestDriver) CellPos(p domain.Placement) board.Point {
	d.T.Helper()
	id := board.CellTargetID(p)
	for _, t := range d.board().layout.targets {
		if t.ID == id {
			return t.Rect.Center()
		}
	}
	d.T.Fatalf("no cell target %s", id)
	return board.Point{}
}

// SidebarPos returns a drop position inside the unschedule area.
func (d *TestDriver) SidebarPos() board.Point {
	d.T.Helper()
	for _, t := range d.board().layout.targets {
		if t.Kind == board.TargetUnscheduleArea {
			c := t.Rect.Center()
			// Aim below the listed orders so the drop does not land on a card.
			c.Y = t.Rect.Y + t.Rect.H - 4
			return c
		}
	}
	d.T.Fatal("no unschedule area registered")
	return board.Point{}
}

// ── Inspection ───────────────────────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveView returns the top view on the stack.
func (d *TestDriver) ActiveView() View {
	m := d.appModel()
	return m.activeView()
}

func (d *TestDriver) board() *boardView {
	d.T.Helper()
	v, ok := d.ActiveView().(*boardView)
	if !ok {
		d.T.Fatalf("active view is %T, not *boardView", d.ActiveView())
	}
	if v.layout == nil {
		d.T.Fatal("board layout not built")
	}
	return v
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	v := d.ActiveView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// Engine returns the shared drag engine.
func (d *TestDriver) Engine() *board.Engine {
	return d.appModel().state.Engine
}

// IsQuitting reports whether the model saw a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.Quitting
}
