package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/haulboard/internal/board"
	"github.com/alexanderramin/haulboard/internal/cli/formatter"
	"github.com/alexanderramin/haulboard/internal/contract"
)

// tickEvery drives drag timers: settle grace expiry and edge auto-scroll.
const tickEvery = 60 * time.Millisecond

type boardSnapshotMsg struct {
	snap *contract.BoardSnapshot
	err  error
}

type boardTickMsg time.Time

type storeChangedMsg struct{}

type planDoneMsg struct {
	err error
}

// boardView renders the dispatch grid and owns the mouse drag loop. All drag
// state lives in the shared engine; the view translates terminal events into
// engine calls and re-renders from the optimistic store.
type boardView struct {
	state  *SharedState
	window contract.Window
	layout *boardLayout

	scrollLane int
	dragging   bool
	ticking    bool

	status string
	err    error
}

func newBoardView(state *SharedState) *boardView {
	return &boardView{
		state:  state,
		window: contract.WeekWindow(time.Now()),
	}
}

func (v *boardView) ID() ViewID { return ViewBoard }
func (v *boardView) Title() string {
	return fmt.Sprintf("board %s", v.window.From.Format("01-02"))
}

func (v *boardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "page week")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("drag"), key.WithHelp("drag", "move orders")),
		key.NewBinding(key.WithKeys("shift"), key.WithHelp("shift+drag", "move cluster")),
	}
}

func (v *boardView) Init() tea.Cmd {
	return v.loadCmd()
}

func (v *boardView) loadCmd() tea.Cmd {
	app := v.state.App
	win := v.window
	return func() tea.Msg {
		snap, err := app.Board.Snapshot(context.Background(), win)
		return boardSnapshotMsg{snap: snap, err: err}
	}
}

func (v *boardView) tickCmd() tea.Cmd {
	return tea.Tick(tickEvery, func(t time.Time) tea.Msg { return boardTickMsg(t) })
}

func (v *boardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		v.relayout()
		return v, nil

	case boardSnapshotMsg:
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.state.Engine.Store().Hydrate(*msg.snap)
		v.relayout()
		return v, nil

	case storeChangedMsg:
		return v, v.loadCmd()

	case refreshViewMsg:
		return v, v.loadCmd()

	case boardTickMsg:
		return v.handleTick(time.Time(msg))

	case planDoneMsg:
		if msg.err != nil {
			v.status = "sync failed, refresh to reconcile"
		}
		return v, nil

	case tea.MouseMsg:
		return v.handleMouse(msg)

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *boardView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "[":
		v.window = v.window.Shift(-1)
		v.scrollLane = 0
		return v, v.loadCmd()
	case "right", "]":
		v.window = v.window.Shift(1)
		v.scrollLane = 0
		return v, v.loadCmd()
	case "r":
		return v, v.loadCmd()
	case "up", "k":
		if v.scrollLane > 0 {
			v.scrollLane--
			v.relayout()
		}
	case "down", "j":
		if v.layout != nil && v.scrollLane < v.layout.lanes-1 {
			v.scrollLane++
			v.relayout()
		}
	case "esc":
		if v.state.Engine.Session().Active() {
			v.state.Engine.Session().Cancel()
			v.relayout()
		}
	}
	return v, nil
}

func (v *boardView) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if v.layout == nil {
		return v, nil
	}
	p := board.Point{X: msg.X, Y: msg.Y}
	session := v.state.Engine.Session()

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		if v.scrollLane > 0 {
			v.scrollLane--
			v.relayout()
		}
	case msg.Button == tea.MouseButtonWheelDown:
		if v.scrollLane < v.layout.lanes-1 {
			v.scrollLane++
			v.relayout()
		}

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		// Right-click opens the editor for what is under the pointer.
		src := v.layout.sourceAt(p)
		switch {
		case src != nil && src.kind == board.PayloadRun:
			form := newRunFormView(v.state, src.runID)
			return v, func() tea.Msg { return pushViewMsg{view: form} }
		case src != nil && src.kind == board.PayloadNote:
			form := newNoteFormView(v.state, src.noteID)
			return v, func() tea.Msg { return pushViewMsg{view: form} }
		}

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		src := v.layout.sourceAt(p)
		if src == nil {
			return v, nil
		}
		payload, ok := v.payloadFor(src, msg.Shift)
		if !ok {
			return v, nil
		}
		session.Start(payload, p)
		v.dragging = true
		v.status = ""
		if !v.ticking {
			v.ticking = true
			return v, v.tickCmd()
		}

	case msg.Action == tea.MouseActionMotion:
		if !session.Active() {
			return v, nil
		}
		session.Move(p, v.dragRect(p), v.layout.targets, v.layout.bounds, time.Now())
		v.relayout()

	case msg.Action == tea.MouseActionRelease:
		if !session.Active() {
			return v, nil
		}
		v.dragging = false
		target := session.Move(p, v.dragRect(p), v.layout.targets, v.layout.bounds, time.Now())
		plan := v.state.Engine.CompleteDrop(target, time.Now())
		v.relayout()
		return v, v.executeCmd(plan)
	}
	return v, nil
}

func (v *boardView) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	session := v.state.Engine.Session()
	rows := session.Tick(now)
	if rows != 0 && v.layout != nil {
		v.scrollLane += rows
		if v.scrollLane < 0 {
			v.scrollLane = 0
		}
		if v.scrollLane > v.layout.lanes-1 {
			v.scrollLane = v.layout.lanes - 1
		}
		v.relayout()
	}
	if session.OverlayVisible() {
		return v, v.tickCmd()
	}
	v.ticking = false
	v.relayout()
	return v, nil
}

// payloadFor classifies the press into a drag payload. Shift promotes an
// order press into its owner cluster.
func (v *boardView) payloadFor(src *dragSource, shift bool) (board.DragPayload, bool) {
	store := v.state.Engine.Store()
	switch src.kind {
	case board.PayloadOrder:
		o := store.Order(*src.orderRef)
		if o == nil {
			return board.DragPayload{}, false
		}
		if shift {
			if members := store.Cluster(o.Customer); len(members) > 1 {
				return board.ClusterPayload(members), true
			}
		}
		if o.RunID != nil {
			// Dragging a member moves just the member; the run header is
			// the handle for the whole run.
			return board.OrderPayload(o), true
		}
		return board.OrderPayload(o), true
	case board.PayloadRun:
		run := store.Run(src.runID)
		if run == nil {
			return board.DragPayload{}, false
		}
		return board.RunPayload(run, store.Members(run.ID)), true
	case board.PayloadNote:
		n := store.Note(src.noteID)
		if n == nil {
			return board.DragPayload{}, false
		}
		return board.NotePayload(n), true
	case board.PayloadTemplate:
		return board.TemplatePayload(src.template), true
	}
	return board.DragPayload{}, false
}

// executeCmd runs the plan against the remote off the update loop. The store
// already reflects it; failure is surfaced in the status line and healed by
// the next snapshot.
func (v *boardView) executeCmd(plan board.Plan) tea.Cmd {
	if plan.Kind == board.PlanNoop || len(plan.Mutations) == 0 {
		return nil
	}
	engine := v.state.Engine
	cmd := func() tea.Msg {
		return planDoneMsg{err: engine.ExecutePlan(context.Background(), plan)}
	}
	// A template note drop opens the composer over the fresh note.
	if noteID := newNoteID(plan); noteID != "" {
		composer := newNoteFormView(v.state, noteID)
		return tea.Batch(cmd, func() tea.Msg { return pushViewMsg{view: composer} })
	}
	return cmd
}

func newNoteID(plan board.Plan) string {
	if plan.Kind != board.PlanInstantiate {
		return ""
	}
	for _, m := range plan.Mutations {
		if m.Op == contract.OpCreateNote && m.CreateNote != nil {
			return m.CreateNote.ID
		}
	}
	return ""
}

func (v *boardView) dragRect(p board.Point) board.Rect {
	return board.Rect{X: p.X - 1, Y: p.Y, W: 3, H: 1}
}

func (v *boardView) relayout() {
	if v.state.Width == 0 || v.state.Height == 0 {
		return
	}
	session := v.state.Engine.Session()
	v.layout = buildBoardLayout(
		v.state.Engine.Store(),
		v.window,
		v.state.Width,
		v.state.Height,
		v.scrollLane,
		session.Hovered(),
	)
}

func (v *boardView) View() string {
	if v.err != nil {
		return formatter.StyleRed.Render(fmt.Sprintf("board load failed: %v", v.err))
	}
	if v.layout == nil {
		return formatter.Dim("loading…")
	}
	lines := v.layout.lines

	session := v.state.Engine.Session()
	if session.OverlayVisible() || v.status != "" {
		// The top grid line doubles as a status strip while dragging.
		note := v.status
		if session.OverlayVisible() {
			note = "dragging " + payloadLabel(session.Payload())
		}
		lines = append([]string{}, lines...)
		lines[0] = lines[0] + " " + formatter.StyleYellow.Render(note)
	}
	return strings.Join(lines, "\n")
}

func payloadLabel(p board.DragPayload) string {
	switch p.Kind {
	case board.PayloadOrder:
		if p.Order != nil {
			return p.Order.Customer
		}
	case board.PayloadRun:
		if p.Run != nil {
			return p.Run.Name
		}
	case board.PayloadCluster:
		return fmt.Sprintf("%d orders", len(p.Members))
	case board.PayloadNote:
		return "note"
	case board.PayloadTemplate:
		return "new " + string(p.Template)
	}
	return ""
}
