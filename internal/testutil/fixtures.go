package testutil

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/haulboard/internal/domain"
)

var testIDCounter atomic.Int64

// NextID hands out process-unique numeric ids so fixtures never collide
// within a test binary.
func NextID() int64 {
	return testIDCounter.Add(1)
}

// Truck options
type TruckOption func(*domain.Truck)

func WithInactive() TruckOption {
	return func(t *domain.Truck) {
		t.Active = false
	}
}

func NewTestTruck(name string, opts ...TruckOption) *domain.Truck {
	now := time.Now().UTC()
	t := &domain.Truck{
		ID:        NextID(),
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Order options
type OrderOption func(*domain.Order)

func WithKind(k domain.OrderKind) OrderOption {
	return func(o *domain.Order) {
		o.Kind = k
	}
}

func WithPlacement(date time.Time, truckID *int64) OrderOption {
	return func(o *domain.Order) {
		d := date.UTC()
		o.Date = &d
		o.TruckID = truckID
	}
}

func WithRun(runID string) OrderOption {
	return func(o *domain.Order) {
		o.RunID = &runID
	}
}

func WithSeq(seq int) OrderOption {
	return func(o *domain.Order) {
		o.Seq = seq
	}
}

func WithQuantity(q int) OrderOption {
	return func(o *domain.Order) {
		o.Quantity = q
	}
}

// NewTestOrder builds an unscheduled outbound order by default.
func NewTestOrder(customer string, opts ...OrderOption) *domain.Order {
	now := time.Now().UTC()
	o := &domain.Order{
		ID:        NextID(),
		Kind:      domain.OrderOutbound,
		Customer:  customer,
		Quantity:  10,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func NewTestRun(name string, date time.Time, truckID int64) *domain.Run {
	now := time.Now().UTC()
	return &domain.Run{
		ID:        uuid.New().String(),
		Name:      name,
		Date:      date.UTC(),
		TruckID:   truckID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Note options
type NoteOption func(*domain.Note)

func WithColor(c domain.NoteColor) NoteOption {
	return func(n *domain.Note) {
		n.Color = c
	}
}

func NewTestNote(content string, target domain.NoteTarget, opts ...NoteOption) *domain.Note {
	now := time.Now().UTC()
	n := &domain.Note{
		ID:        uuid.New().String(),
		Content:   content,
		Color:     domain.NoteYellow,
		Target:    target,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func NewTestVendor(name string) *domain.Vendor {
	now := time.Now().UTC()
	return &domain.Vendor{
		ID:        NextID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// QueueLine options
type LineOption func(*domain.QueueLine)

func WithLineSeq(seq int) LineOption {
	return func(l *domain.QueueLine) {
		l.Seq = seq
	}
}

func WithLineQuantity(q int) LineOption {
	return func(l *domain.QueueLine) {
		l.Quantity = q
	}
}

func NewTestLine(vendorID int64, cat domain.BoxCategory, date time.Time, opts ...LineOption) *domain.QueueLine {
	now := time.Now().UTC()
	l := &domain.QueueLine{
		ID:          NextID(),
		VendorID:    vendorID,
		Category:    cat,
		Date:        date.UTC(),
		Seq:         1000,
		Quantity:    100,
		Description: "test line",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}
