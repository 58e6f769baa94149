package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/haulboard/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type OrderRepo interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByRef(ctx context.Context, ref domain.Ref) (*domain.Order, error)
	// ListWindow returns orders scheduled inside [from, to] plus all
	// unscheduled orders, which always ride along so the sidebar can
	// render them.
	ListWindow(ctx context.Context, from, to time.Time) ([]*domain.Order, error)
	ListByRun(ctx context.Context, runID string) ([]*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	Delete(ctx context.Context, ref domain.Ref) error
}

type TruckRepo interface {
	Create(ctx context.Context, t *domain.Truck) error
	GetByID(ctx context.Context, id int64) (*domain.Truck, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Truck, error)
	Update(ctx context.Context, t *domain.Truck) error
}

type RunRepo interface {
	Create(ctx context.Context, r *domain.Run) error
	GetByID(ctx context.Context, id string) (*domain.Run, error)
	ListWindow(ctx context.Context, from, to time.Time) ([]*domain.Run, error)
	Update(ctx context.Context, r *domain.Run) error
	// Delete dissolves the run; member orders survive with run_id cleared.
	Delete(ctx context.Context, id string) error
}

type NoteRepo interface {
	Create(ctx context.Context, n *domain.Note) error
	GetByID(ctx context.Context, id string) (*domain.Note, error)
	ListWindow(ctx context.Context, from, to time.Time) ([]*domain.Note, error)
	Update(ctx context.Context, n *domain.Note) error
	Delete(ctx context.Context, id string) error
}

type VendorRepo interface {
	Create(ctx context.Context, v *domain.Vendor) error
	GetByID(ctx context.Context, id int64) (*domain.Vendor, error)
	List(ctx context.Context) ([]*domain.Vendor, error)
	SetAllotment(ctx context.Context, a *domain.VendorAllotment) error
	ListAllotments(ctx context.Context) ([]*domain.VendorAllotment, error)
}

type QueueRepo interface {
	CreateLine(ctx context.Context, l *domain.QueueLine) error
	GetLine(ctx context.Context, id int64) (*domain.QueueLine, error)
	ListLinesWindow(ctx context.Context, from, to time.Time) ([]*domain.QueueLine, error)
	UpdateLine(ctx context.Context, l *domain.QueueLine) error
	DeleteLine(ctx context.Context, id int64) error

	SetOverride(ctx context.Context, o *domain.AllotmentOverride) error
	ClearOverride(ctx context.Context, vendorID int64, cat domain.BoxCategory, date time.Time) error
	ListOverridesWindow(ctx context.Context, from, to time.Time) ([]*domain.AllotmentOverride, error)
}
