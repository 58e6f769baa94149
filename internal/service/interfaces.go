package service

import (
	"context"

	"github.com/alexanderramin/haulboard/internal/contract"
	"github.com/alexanderramin/haulboard/internal/domain"
)

// BoardService owns the scheduling side of the board: orders, trucks, runs,
// and notes. Apply accepts the board subset of the mutation vocabulary;
// mutations outside it are an error.
type BoardService interface {
	Snapshot(ctx context.Context, win contract.Window) (*contract.BoardSnapshot, error)
	Apply(ctx context.Context, m contract.Mutation) error

	CreateOrder(ctx context.Context, o *domain.Order) error
	ListOrders(ctx context.Context, win contract.Window) ([]*domain.Order, error)
	CreateTruck(ctx context.Context, t *domain.Truck) error
	ListTrucks(ctx context.Context, includeInactive bool) ([]*domain.Truck, error)
}

// QueueService owns the production queue: vendors, allotments, lines, and
// per-date overrides.
type QueueService interface {
	Snapshot(ctx context.Context, win contract.Window) (*contract.QueueSnapshot, error)
	Apply(ctx context.Context, m contract.Mutation) error

	CreateVendor(ctx context.Context, v *domain.Vendor) error
	SetAllotment(ctx context.Context, a *domain.VendorAllotment) error
	CreateLine(ctx context.Context, l *domain.QueueLine) error
}
