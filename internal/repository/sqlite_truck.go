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

type SQLiteTruckRepo struct {
	db db.DBTX
}

func NewSQLiteTruckRepo(dbtx db.DBTX) *SQLiteTruckRepo {
	return &SQLiteTruckRepo{db: dbtx}
}

func (r *SQLiteTruckRepo) Create(ctx context.Context, t *domain.Truck) error {
	query := `INSERT INTO trucks (id, name, active, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		boolToInt(t.Active),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting truck: %w", err)
	}
	return nil
}

func (r *SQLiteTruckRepo) GetByID(ctx context.Context, id int64) (*domain.Truck, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, active, created_at, updated_at FROM trucks WHERE id = ?`, id)
	t, err := scanTruck(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("truck %d: %w", id, ErrNotFound)
	}
	return t, err
}

func (r *SQLiteTruckRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Truck, error) {
	query := `SELECT id, name, active, created_at, updated_at FROM trucks ORDER BY name`
	if !includeInactive {
		query = `SELECT id, name, active, created_at, updated_at FROM trucks WHERE active = 1 ORDER BY name`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing trucks: %w", err)
	}
	defer rows.Close()

	var out []*domain.Truck
	for rows.Next() {
		t, err := scanTruck(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning truck: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteTruckRepo) Update(ctx context.Context, t *domain.Truck) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE trucks SET name = ?, active = ?, updated_at = ? WHERE id = ?`,
		t.Name, boolToInt(t.Active), t.UpdatedAt.Format(time.RFC3339), t.ID)
	if err != nil {
		return fmt.Errorf("updating truck: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("truck %d: %w", t.ID, ErrNotFound)
	}
	return nil
}

func scanTruck(row rowScanner) (*domain.Truck, error) {
	var t domain.Truck
	var active int
	var createdAt, updatedAt string
	if err := row.Scan(&t.ID, &t.Name, &active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	t.Active = intToBool(active)
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &t, nil
}
