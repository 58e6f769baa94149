package cli

import "github.com/alexanderramin/haulboard/internal/board"

// headerRows is the vertical space the root model renders above the active
// view: title line plus separator. Views registering mouse drop targets must
// offset their rects by this, because mouse coordinates are terminal-global.
const headerRows = 2

// statusRows is the space below the view: separator plus key hints.
const statusRows = 2

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App    *App
	Engine *board.Engine

	// Changes signals committed mutations; views re-snapshot on receipt.
	Changes <-chan struct{}

	// Terminal dimensions
	Width  int
	Height int
}

// ContentHeight returns the available height for view content.
func (s *SharedState) ContentHeight() int {
	h := s.Height - headerRows - statusRows
	if h < 1 {
		return 1
	}
	return h
}
