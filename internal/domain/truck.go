package domain

import "time"

// Truck is a delivery resource: one row on the board per active truck, plus
// the synthetic dock lane for inbound orders.
type Truck struct {
	ID     int64
	Name   string
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
