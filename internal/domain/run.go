package domain

import "time"

// Run is a delivery run: an ordered cluster of outbound orders sharing one
// placement and moved atomically. Membership lives on the orders (RunID);
// the run itself carries only identity and placement.
//
// Invariant: every member order's placement equals the run's placement.
// Dissolving a run clears membership without moving the members.
type Run struct {
	ID      string
	Name    string
	Date    time.Time
	TruckID int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Run) Placement() Placement {
	id := r.TruckID
	return NewPlacement(r.Date, &id)
}
