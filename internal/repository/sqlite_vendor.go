package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/haulboard/internal/db"
	"github.com/alexanderramin/haulboard/internal/domain"
)

type SQLiteVendorRepo struct {
	db db.DBTX
}

func NewSQLiteVendorRepo(dbtx db.DBTX) *SQLiteVendorRepo {
	return &SQLiteVendorRepo{db: dbtx}
}

func (r *SQLiteVendorRepo) Create(ctx context.Context, v *domain.Vendor) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vendors (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		v.ID, v.Name, v.CreatedAt.Format(time.RFC3339), v.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting vendor: %w", err)
	}
	return nil
}

func (r *SQLiteVendorRepo) GetByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM vendors WHERE id = ?`, id)
	v, err := scanVendor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vendor %d: %w", id, ErrNotFound)
	}
	return v, err
}

func (r *SQLiteVendorRepo) List(ctx context.Context) ([]*domain.Vendor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM vendors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing vendors: %w", err)
	}
	defer rows.Close()

	var out []*domain.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning vendor: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *SQLiteVendorRepo) SetAllotment(ctx context.Context, a *domain.VendorAllotment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vendor_allotments (vendor_id, category, quantity) VALUES (?, ?, ?)
		ON CONFLICT(vendor_id, category) DO UPDATE SET quantity = excluded.quantity`,
		a.VendorID, string(a.Category), a.Quantity)
	if err != nil {
		return fmt.Errorf("setting vendor allotment: %w", err)
	}
	return nil
}

func (r *SQLiteVendorRepo) ListAllotments(ctx context.Context) ([]*domain.VendorAllotment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT vendor_id, category, quantity FROM vendor_allotments ORDER BY vendor_id, category`)
	if err != nil {
		return nil, fmt.Errorf("listing vendor allotments: %w", err)
	}
	defer rows.Close()

	var out []*domain.VendorAllotment
	for rows.Next() {
		var a domain.VendorAllotment
		var cat string
		if err := rows.Scan(&a.VendorID, &cat, &a.Quantity); err != nil {
			return nil, fmt.Errorf("scanning vendor allotment: %w", err)
		}
		a.Category = domain.BoxCategory(cat)
		out = append(out, &a)
	}
	return out, rows.Err()
}

func scanVendor(row rowScanner) (*domain.Vendor, error) {
	var v domain.Vendor
	var createdAt, updatedAt string
	if err := row.Scan(&v.ID, &v.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	v.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	v.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &v, nil
}
