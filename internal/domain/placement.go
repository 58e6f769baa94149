package domain

import (
	"fmt"
	"time"
)

// DateLayout is the canonical date-only format used for placement keys and
// SQLite date columns.
const DateLayout = "2006-01-02"

// Placement is the addressable slot on the board: a (date, truck-or-nil)
// pair. TruckID nil addresses the dock lane where inbound orders live.
// Placement is derived, never persisted on its own.
type Placement struct {
	Date    time.Time
	TruckID *int64
}

// NewPlacement normalizes the date to midnight UTC so that placements built
// from different time-of-day values compare equal.
func NewPlacement(date time.Time, truckID *int64) Placement {
	y, m, d := date.UTC().Date()
	return Placement{
		Date:    time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		TruckID: truckID,
	}
}

// Key returns the stable string key used by slot indices and drop targets,
// e.g. "2024-06-03|7" or "2024-06-03|dock".
func (p Placement) Key() string {
	if p.TruckID == nil {
		return p.Date.Format(DateLayout) + "|dock"
	}
	return fmt.Sprintf("%s|%d", p.Date.Format(DateLayout), *p.TruckID)
}

func (p Placement) Equal(o Placement) bool {
	if !p.Date.Equal(o.Date) {
		return false
	}
	if (p.TruckID == nil) != (o.TruckID == nil) {
		return false
	}
	return p.TruckID == nil || *p.TruckID == *o.TruckID
}
