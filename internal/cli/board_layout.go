package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/haulboard/internal/board"
	"github.com/alexanderramin/haulboard/internal/cli/formatter"
	"github.com/alexanderramin/haulboard/internal/contract"
	"github.com/alexanderramin/haulboard/internal/domain"
)

// Board layout constants. Rects are registered in terminal-global
// coordinates, so everything here accounts for the root model's header.
const (
	laneLabelW = 12
	sidebarW   = 26
	minCellW   = 8
	maxLaneH   = 9
)

var hoverStyle = lipgloss.NewStyle().Reverse(true)

// dragSource describes what a mouse press at a position picks up.
type dragSource struct {
	kind     board.PayloadKind
	orderRef *domain.Ref
	runID    string
	noteID   string
	template board.TemplateKind
}

type sourceRegion struct {
	rect board.Rect
	src  dragSource
}

// boardLayout is one rendered pass over the board: the grid lines and the
// drop targets and drag sources they imply. Rebuilt whenever the store,
// window, scroll position, or terminal size changes.
type boardLayout struct {
	lines   []string
	targets []board.DropTarget
	sources []sourceRegion
	bounds  board.ScrollBounds
	lanes   int // total lanes including the dock lane
}

// sourceAt resolves a press position to a drag source, innermost first.
func (l *boardLayout) sourceAt(p board.Point) *dragSource {
	for i := range l.sources {
		if l.sources[i].rect.Contains(p) {
			return &l.sources[i].src
		}
	}
	return nil
}

type laneSpec struct {
	name    string
	truckID *int64
}

type cellEntry struct {
	text   string
	target *board.DropTarget
	src    *dragSource
}

// buildBoardLayout renders the grid for the window and registers every drop
// target in one pass, so hit rects always agree with the pixels.
func buildBoardLayout(store *board.Store, win contract.Window, width, height, scrollLane int, hovered string) *boardLayout {
	l := &boardLayout{}
	days := win.Days()

	gridW := width - laneLabelW - sidebarW - 1
	cellW := gridW / len(days)
	if cellW < minCellW {
		cellW = minCellW
	}

	gridTop := headerRows + 1 // one line of day headers above the grid
	gridH := height - headerRows - statusRows - 1
	if gridH < 1 {
		gridH = 1
	}
	l.bounds = board.ScrollBounds{Top: gridTop, Bottom: gridTop + gridH - 1}

	// Day header row.
	var head strings.Builder
	head.WriteString(formatter.Fit("", laneLabelW))
	for _, d := range days {
		head.WriteString(formatter.Bold(formatter.Fit(d.Format("Mon 01-02"), cellW)))
	}
	head.WriteString(" " + formatter.StyleHeader.Render(formatter.Fit("UNSCHEDULED", sidebarW)))
	l.lines = append(l.lines, head.String())

	lanes := []laneSpec{{name: "dock"}}
	for _, t := range store.Trucks() {
		id := t.ID
		lanes = append(lanes, laneSpec{name: t.Name, truckID: &id})
	}
	l.lanes = len(lanes)
	if scrollLane >= len(lanes) {
		scrollLane = len(lanes) - 1
	}
	if scrollLane < 0 {
		scrollLane = 0
	}

	sidebar := buildSidebar(store, l, width-sidebarW, gridTop, gridH)

	row := gridTop // next terminal row to fill
	for li := scrollLane; li < len(lanes) && row <= l.bounds.Bottom; li++ {
		lane := lanes[li]

		// Collect entries per day first; the lane is as tall as its
		// fullest cell plus the two edge rows.
		entries := make([][]cellEntry, len(days))
		laneH := 3
		for di, d := range days {
			p := domain.NewPlacement(d, lane.truckID)
			entries[di] = cellEntries(store, p, cellW)
			if h := len(entries[di]) + 2; h > laneH {
				laneH = h
			}
		}
		if laneH > maxLaneH {
			laneH = maxLaneH
		}
		if row+laneH-1 > l.bounds.Bottom {
			laneH = l.bounds.Bottom - row + 1
		}

		for di, d := range days {
			p := domain.NewPlacement(d, lane.truckID)
			x := laneLabelW + di*cellW
			registerCell(l, p, x, row, cellW, laneH, entries[di])
		}

		for r := 0; r < laneH; r++ {
			var b strings.Builder
			if r == 0 {
				b.WriteString(formatter.Dim(formatter.Fit(lane.name, laneLabelW)))
			} else {
				b.WriteString(formatter.Fit("", laneLabelW))
			}
			for di := range days {
				p := domain.NewPlacement(days[di], lane.truckID)
				text := cellRow(entries[di], r, laneH, cellW)
				if p.Key() == hovered {
					text = hoverStyle.Render(text)
				}
				b.WriteString(text)
			}
			b.WriteString(" " + sidebarLine(sidebar, row-gridTop))
			l.lines = append(l.lines, b.String())
			row++
		}
	}

	// Pad remaining grid rows so the sidebar renders full height.
	for row <= l.bounds.Bottom {
		pad := formatter.Fit("", laneLabelW+cellW*len(days))
		l.lines = append(l.lines, pad+" "+sidebarLine(sidebar, row-gridTop))
		row++
	}

	return l
}

// noteEntry renders a note row; anchored notes sit directly under their card.
func noteEntry(n *domain.Note, w int) cellEntry {
	return cellEntry{
		text: formatter.NoteTag(n, w),
		src:  &dragSource{kind: board.PayloadNote, noteID: n.ID},
	}
}

// cellEntries lists what a cell stacks: run headers with their notes, then
// orders with theirs, then cell notes.
func cellEntries(store *board.Store, p domain.Placement, cellW int) []cellEntry {
	var entries []cellEntry
	seenRun := map[string]bool{}

	for _, o := range store.OrdersAt(p) {
		if o.RunID != nil && !seenRun[*o.RunID] {
			runID := *o.RunID
			seenRun[runID] = true
			if run := store.Run(runID); run != nil {
				entries = append(entries, cellEntry{
					text: formatter.StyleBlue.Render(formatter.RunHeader(run.Name, len(store.Members(runID)), cellW)),
					target: &board.DropTarget{
						ID:        board.RunTargetID(runID),
						Kind:      board.TargetRunCard,
						Placement: &p,
						RunID:     runID,
					},
					src: &dragSource{kind: board.PayloadRun, runID: runID},
				})
				for _, n := range store.NotesFor(domain.RunTarget(runID)) {
					entries = append(entries, noteEntry(n, cellW))
				}
			}
		}
		ref := o.Ref()
		entries = append(entries, cellEntry{
			text: formatter.OrderCard(o, cellW),
			target: &board.DropTarget{
				ID:        board.OrderTargetID(ref),
				Kind:      board.TargetOrderCard,
				Placement: &p,
				OrderRef:  &ref,
			},
			src: &dragSource{kind: board.PayloadOrder, orderRef: &ref},
		})
		for _, n := range store.NotesFor(domain.OrderTarget(ref)) {
			entries = append(entries, noteEntry(n, cellW))
		}
	}

	for _, n := range store.NotesFor(domain.CellTarget(p)) {
		entries = append(entries, noteEntry(n, cellW))
	}
	return entries
}

// registerCell registers the cell target, its edge zones, and the rects of
// every entry row.
func registerCell(l *boardLayout, p domain.Placement, x, top, w, h int, entries []cellEntry) {
	if h < 1 {
		return
	}
	placement := p
	l.targets = append(l.targets, board.DropTarget{
		ID:        board.CellTargetID(p),
		Kind:      board.TargetCell,
		Rect:      board.Rect{X: x, Y: top, W: w, H: h},
		Placement: &placement,
	})
	if h >= 3 {
		l.targets = append(l.targets,
			board.DropTarget{
				ID:        board.EdgeTargetID(p, board.EdgeTop),
				Kind:      board.TargetCellEdge,
				Rect:      board.Rect{X: x, Y: top, W: w, H: 1},
				Placement: &placement,
				Edge:      board.EdgeTop,
			},
			board.DropTarget{
				ID:        board.EdgeTargetID(p, board.EdgeBottom),
				Kind:      board.TargetCellEdge,
				Rect:      board.Rect{X: x, Y: top + h - 1, W: w, H: 1},
				Placement: &placement,
				Edge:      board.EdgeBottom,
			},
		)
	}
	for i := range entries {
		y := top + 1 + i
		if y >= top+h-1 {
			break // clipped by the lane height cap
		}
		rect := board.Rect{X: x, Y: y, W: w, H: 1}
		if entries[i].target != nil {
			t := *entries[i].target
			t.Rect = rect
			l.targets = append(l.targets, t)
		}
		if entries[i].src != nil {
			l.sources = append(l.sources, sourceRegion{rect: rect, src: *entries[i].src})
		}
	}
}

// cellRow renders one row of a cell: edge rows are blank, entry rows show
// their card, overflow is marked on the last body row.
func cellRow(entries []cellEntry, r, h, w int) string {
	if r == 0 || r == h-1 {
		return formatter.Fit("", w)
	}
	i := r - 1
	body := h - 2
	if i == body-1 && len(entries) > body {
		return formatter.Dim(formatter.Fit(fmt.Sprintf("… %d more", len(entries)-body+1), w))
	}
	if i < len(entries) {
		return entries[i].text
	}
	return formatter.Fit("", w)
}

// ── sidebar ──────────────────────────────────────────────────────────────────

type sidebarPane struct {
	lines []string
}

func sidebarLine(s *sidebarPane, i int) string {
	if i >= 0 && i < len(s.lines) {
		return s.lines[i]
	}
	return formatter.Fit("", sidebarW)
}

// buildSidebar renders the unscheduled list and the palette, and registers
// the sidebar as the unschedule drop area.
func buildSidebar(store *board.Store, l *boardLayout, x, top, h int) *sidebarPane {
	s := &sidebarPane{}

	l.targets = append(l.targets, board.DropTarget{
		ID:   board.UnscheduleTargetID,
		Kind: board.TargetUnscheduleArea,
		Rect: board.Rect{X: x, Y: top, W: sidebarW, H: h},
	})

	for _, o := range store.Unscheduled() {
		y := top + len(s.lines)
		if len(s.lines) >= h-3 {
			s.lines = append(s.lines, formatter.Dim(formatter.Fit("…", sidebarW)))
			break
		}
		ref := o.Ref()
		rect := board.Rect{X: x, Y: y, W: sidebarW, H: 1}
		l.targets = append(l.targets, board.DropTarget{
			ID:       board.OrderTargetID(ref),
			Kind:     board.TargetOrderCard,
			Rect:     rect,
			OrderRef: &ref,
		})
		l.sources = append(l.sources, sourceRegion{
			rect: rect,
			src:  dragSource{kind: board.PayloadOrder, orderRef: &ref},
		})
		s.lines = append(s.lines, formatter.OrderCard(o, sidebarW))

		for _, n := range store.NotesFor(domain.OrderTarget(ref)) {
			if len(s.lines) >= h-3 {
				break
			}
			ny := top + len(s.lines)
			l.sources = append(l.sources, sourceRegion{
				rect: board.Rect{X: x, Y: ny, W: sidebarW, H: 1},
				src:  dragSource{kind: board.PayloadNote, noteID: n.ID},
			})
			s.lines = append(s.lines, formatter.NoteTag(n, sidebarW))
		}
	}

	// Palette pinned to the bottom of the sidebar.
	for len(s.lines) < h-2 {
		s.lines = append(s.lines, formatter.Fit("", sidebarW))
	}
	palette := []struct {
		label string
		kind  board.TemplateKind
	}{
		{"+ run", board.TemplateRun},
		{"+ note", board.TemplateNote},
	}
	for _, p := range palette {
		y := top + len(s.lines)
		l.sources = append(l.sources, sourceRegion{
			rect: board.Rect{X: x, Y: y, W: sidebarW, H: 1},
			src:  dragSource{kind: board.PayloadTemplate, template: p.kind},
		})
		s.lines = append(s.lines, formatter.StyleGreen.Render(formatter.Fit(p.label, sidebarW)))
	}
	return s
}
