package board

import (
	"time"

	"github.com/alexanderramin/haulboard/internal/contract"
	"github.com/alexanderramin/haulboard/internal/domain"
)

var (
	testDate = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	truck1   = int64(1)
	truck2   = int64(2)
	truck3   = int64(3)
)

func outbound(id int64, customer string) *domain.Order {
	return &domain.Order{ID: id, Kind: domain.OrderOutbound, Customer: customer, Quantity: 10}
}

func inbound(id int64, customer string) *domain.Order {
	return &domain.Order{ID: id, Kind: domain.OrderInbound, Customer: customer, Quantity: 10}
}

func at(o *domain.Order, date time.Time, truckID *int64, seq int) *domain.Order {
	d := date
	o.Date = &d
	o.TruckID = truckID
	o.Seq = seq
	return o
}

func inRun(o *domain.Order, runID string) *domain.Order {
	o.RunID = &runID
	return o
}

func run(id string, date time.Time, truckID int64) *domain.Run {
	return &domain.Run{ID: id, Name: id, Date: date, TruckID: truckID}
}

func hydrated(orders []*domain.Order, runs []*domain.Run, notes []*domain.Note) *Store {
	s := NewStore()
	s.Hydrate(contract.BoardSnapshot{
		Orders: orders,
		Runs:   runs,
		Notes:  notes,
		Trucks: []*domain.Truck{
			{ID: truck1, Name: "Truck-1", Active: true},
			{ID: truck2, Name: "Truck-2", Active: true},
			{ID: truck3, Name: "Truck-3", Active: true},
		},
	})
	return s
}

func cellTarget(p domain.Placement, r Rect) DropTarget {
	return DropTarget{ID: CellTargetID(p), Kind: TargetCell, Rect: r, Placement: &p}
}

func edgeTarget(p domain.Placement, e EdgePos, r Rect) DropTarget {
	return DropTarget{ID: EdgeTargetID(p, e), Kind: TargetCellEdge, Rect: r, Placement: &p, Edge: e}
}

func orderTarget(ref domain.Ref, r Rect) DropTarget {
	return DropTarget{ID: OrderTargetID(ref), Kind: TargetOrderCard, Rect: r, OrderRef: &ref}
}

func runTarget(id string, r Rect) DropTarget {
	return DropTarget{ID: RunTargetID(id), Kind: TargetRunCard, Rect: r, RunID: id}
}

func unscheduleTarget(r Rect) DropTarget {
	return DropTarget{ID: UnscheduleTargetID, Kind: TargetUnscheduleArea, Rect: r}
}

func contractLineSeq(vendorID int64, cat domain.BoxCategory, date time.Time) contract.LineSeq {
	return contract.LineSeq{VendorID: vendorID, Category: cat, Date: date}
}
