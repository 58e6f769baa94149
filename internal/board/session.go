package board

import "time"

// SessionState is the drag session's lifecycle state.
type SessionState string

const (
	StateIdle     SessionState = "idle"
	StateDragging SessionState = "dragging"
	// StateSettling keeps the drag overlay visible for a short grace period
	// after a drop, so the optimistic store update renders before the
	// overlay disappears.
	StateSettling SessionState = "settling"
)

// settleDelay is the overlay grace period after a completed drop.
const settleDelay = 200 * time.Millisecond

// Session is the drag-session state machine: idle → dragging → settling →
// idle. It owns the active payload, the hovered placement (for cell
// highlighting), and the auto-scroll timers. All state is client-only and
// single-threaded; callers pass time in explicitly.
type Session struct {
	state    SessionState
	payload  DragPayload
	pointer  Point
	hovered  string
	settleAt time.Time
	scroll   autoScroll
}

func NewSession() *Session {
	return &Session{state: StateIdle}
}

func (s *Session) State() SessionState { return s.state }

// Active reports whether a drag is in progress (overlay visible includes
// the settling grace period).
func (s *Session) Active() bool { return s.state == StateDragging }

// OverlayVisible reports whether the drag overlay should render.
func (s *Session) OverlayVisible() bool {
	return s.state == StateDragging || s.state == StateSettling
}

func (s *Session) Payload() DragPayload { return s.payload }

func (s *Session) Pointer() Point { return s.pointer }

// Hovered is the placement key under the pointer, empty when none.
func (s *Session) Hovered() string { return s.hovered }

// Start begins a drag with the classified payload.
func (s *Session) Start(p DragPayload, pointer Point) {
	s.state = StateDragging
	s.payload = p
	s.pointer = pointer
	s.hovered = ""
	s.scroll.Stop()
}

// Move records the pointer, resolves the current collision for highlighting,
// and feeds the edge auto-scroll. Returns the resolved target (possibly nil)
// so the caller can preview drop semantics.
func (s *Session) Move(pointer Point, dragRect Rect, targets []DropTarget, bounds ScrollBounds, now time.Time) *DropTarget {
	if s.state != StateDragging {
		return nil
	}
	s.pointer = pointer
	target := Resolve(s.payload, pointer, dragRect, targets)
	s.hovered = ""
	if target != nil && target.Placement != nil {
		s.hovered = target.Placement.Key()
	}
	s.scroll.Observe(pointer.Y, bounds, now)
	return target
}

// Drop ends the drag and returns the payload for planning. The session
// enters the settling grace period, except for palette templates, which
// clear immediately because the template becomes the new grid element.
func (s *Session) Drop(now time.Time) DragPayload {
	p := s.payload
	if s.state != StateDragging {
		return DragPayload{}
	}
	s.scroll.Stop()
	s.hovered = ""
	if p.Kind == PayloadTemplate {
		s.state = StateIdle
		s.payload = DragPayload{}
		return p
	}
	s.state = StateSettling
	s.settleAt = now.Add(settleDelay)
	return p
}

// Cancel aborts the drag with no mutation: state clears synchronously, no
// grace period.
func (s *Session) Cancel() {
	s.state = StateIdle
	s.payload = DragPayload{}
	s.hovered = ""
	s.scroll.Stop()
}

// Tick advances timers: expires the settling grace period and reports the
// auto-scroll rows due at now (negative up, positive down).
func (s *Session) Tick(now time.Time) int {
	if s.state == StateSettling && !now.Before(s.settleAt) {
		s.state = StateIdle
		s.payload = DragPayload{}
	}
	if s.state != StateDragging {
		return 0
	}
	return s.scroll.Step(now)
}
