package board

import "time"

// Edge-proximity auto-scroll tuning. The pointer must sit within
// scrollEdgeRows of the viewport edge for scrollArmDelay before scrolling
// begins; scrolling then steps every scrollInterval until the pointer
// leaves the edge zone.
const (
	scrollEdgeRows = 2
	scrollArmDelay = 400 * time.Millisecond
	scrollInterval = 120 * time.Millisecond
	scrollStepRows = 1
)

// ScrollBounds is the vertical extent of the scrollable grid viewport.
type ScrollBounds struct {
	Top    int
	Bottom int
}

// autoScroll tracks the arm/run state for edge scrolling. Time is passed in
// by the caller (session Move/Tick) so the logic is deterministic in tests.
type autoScroll struct {
	dir      int // -1 up, +1 down, 0 outside edge zones
	armedAt  time.Time
	running  bool
	lastStep time.Time
}

// Observe updates the edge state from the current pointer row. Entering an
// edge zone arms the delay; leaving it, or switching edges, cancels the
// pending delay or the running scroll immediately.
func (a *autoScroll) Observe(pointerY int, b ScrollBounds, now time.Time) {
	dir := 0
	switch {
	case b.Bottom <= b.Top:
		// Degenerate viewport, nothing to scroll.
	case pointerY <= b.Top+scrollEdgeRows-1:
		dir = -1
	case pointerY >= b.Bottom-scrollEdgeRows+1:
		dir = 1
	}

	if dir == a.dir {
		return
	}
	a.dir = dir
	a.running = false
	if dir != 0 {
		a.armedAt = now
	}
}

// Step reports how many rows to scroll at now: negative up, positive down,
// zero when idle, still arming, or between intervals.
func (a *autoScroll) Step(now time.Time) int {
	if a.dir == 0 {
		return 0
	}
	if !a.running {
		if now.Sub(a.armedAt) < scrollArmDelay {
			return 0
		}
		a.running = true
		a.lastStep = now
		return a.dir * scrollStepRows
	}
	if now.Sub(a.lastStep) < scrollInterval {
		return 0
	}
	a.lastStep = now
	return a.dir * scrollStepRows
}

// Stop cancels any pending delay or running scroll.
func (a *autoScroll) Stop() {
	a.dir = 0
	a.running = false
}
