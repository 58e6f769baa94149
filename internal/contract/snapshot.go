package contract

import (
	"time"

	"github.com/alexanderramin/haulboard/internal/domain"
)

// Window selects the date range loaded onto the board. Both bounds are
// inclusive, date-only.
type Window struct {
	From time.Time
	To   time.Time
}

// WeekWindow returns the Monday..Sunday window containing day.
func WeekWindow(day time.Time) Window {
	y, m, d := day.UTC().Date()
	day = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	from := day.AddDate(0, 0, -offset)
	return Window{From: from, To: from.AddDate(0, 0, 6)}
}

// Shift moves the window by n of its own lengths (n = -1 for the previous
// page, +1 for the next).
func (w Window) Shift(n int) Window {
	days := int(w.To.Sub(w.From).Hours()/24) + 1
	return Window{
		From: w.From.AddDate(0, 0, n*days),
		To:   w.To.AddDate(0, 0, n*days),
	}
}

// Days enumerates the window's dates in order.
func (w Window) Days() []time.Time {
	var days []time.Time
	for d := w.From; !d.After(w.To); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// BoardSnapshot is one authoritative read of the board for a window:
// every scheduled order in the window plus all unscheduled orders, and the
// runs, notes, and trucks they reference.
type BoardSnapshot struct {
	Orders []*domain.Order
	Trucks []*domain.Truck
	Runs   []*domain.Run
	Notes  []*domain.Note
}

// QueueSnapshot is one authoritative read of the production queue for a
// window: vendors, their default allotments, lines, and date overrides.
type QueueSnapshot struct {
	Vendors    []*domain.Vendor
	Allotments []*domain.VendorAllotment
	Lines      []*domain.QueueLine
	Overrides  []*domain.AllotmentOverride
}
