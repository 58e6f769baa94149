package domain

import (
	"fmt"
	"time"
)

type OrderKind string

const (
	OrderInbound  OrderKind = "inbound"
	OrderOutbound OrderKind = "outbound"
)

// ValidOrderKinds is the canonical set of accepted order kind strings.
var ValidOrderKinds = map[string]bool{
	"inbound": true, "outbound": true,
}

// Ref is the composite identity of an order on the board. Orders of both
// kinds share the numeric id space with the upstream ERP, so the kind is
// part of the key everywhere the board indexes orders.
type Ref struct {
	Kind OrderKind
	ID   int64
}

func (r Ref) String() string {
	return fmt.Sprintf("%s-%d", r.Kind, r.ID)
}

// Order is a purchase (inbound) or sales (outbound) order exposed to the
// dispatch board.
//
// Placement invariant: an inbound order's TruckID is always nil (inbound
// orders occupy the dock lane); a scheduled outbound order's TruckID is
// always non-nil. Date nil means unscheduled.
type Order struct {
	ID       int64
	Kind     OrderKind
	Customer string // owner/party identity, used for cluster drags
	Quantity int    // pallet count shown on the card

	Date    *time.Time
	TruckID *int64
	RunID   *string
	Seq     int // ordinal among siblings sharing the same placement

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o *Order) Ref() Ref {
	return Ref{Kind: o.Kind, ID: o.ID}
}

func (o *Order) Scheduled() bool {
	return o.Date != nil
}

// Placement returns the order's board slot, or nil when unscheduled.
func (o *Order) Placement() *Placement {
	if o.Date == nil {
		return nil
	}
	p := NewPlacement(*o.Date, o.TruckID)
	return &p
}
