package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/haulboard/internal/domain"
)

// Fit pads or truncates s to exactly width cells.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) > width {
		if width <= 1 {
			return string(r[:width])
		}
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}

// OrderCard renders one order as a single grid row: customer and pallet
// count, inbound orders marked with an arrow.
func OrderCard(o *domain.Order, width int) string {
	marker := "▸"
	if o.Kind == domain.OrderInbound {
		marker = "▾"
	}
	return Fit(fmt.Sprintf("%s %s %d", marker, o.Customer, o.Quantity), width)
}

// RunHeader renders a run's header row: name and member count.
func RunHeader(name string, members int, width int) string {
	return Fit(fmt.Sprintf("⊟ %s (%d)", name, members), width)
}

// NoteTag renders a sticky note marker with a content preview.
func NoteTag(n *domain.Note, width int) string {
	return NoteStyle(n.Color).Render(Fit("■ "+n.Content, width))
}

// CapacityBar renders "scheduled/allotment" with a proportional fill, colored
// by fill level, e.g. "▓▓▓░░ 380/500".
func CapacityBar(scheduled, allotment, width int) string {
	label := fmt.Sprintf("%d/%d", scheduled, allotment)
	barW := width - len(label) - 1
	if barW < 3 {
		return CapacityStyle(scheduled, allotment).Render(Fit(label, width))
	}
	filled := 0
	if allotment > 0 {
		filled = scheduled * barW / allotment
	}
	if filled > barW {
		filled = barW
	}
	bar := strings.Repeat("▓", filled) + strings.Repeat("░", barW-filled)
	return CapacityStyle(scheduled, allotment).Render(bar + " " + label)
}
