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

type SQLiteRunRepo struct {
	db db.DBTX
}

func NewSQLiteRunRepo(dbtx db.DBTX) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: dbtx}
}

func (r *SQLiteRunRepo) Create(ctx context.Context, run *domain.Run) error {
	query := `INSERT INTO runs (id, name, date, truck_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.Name,
		dateValue(run.Date),
		run.TruckID,
		run.CreatedAt.Format(time.RFC3339),
		run.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

func (r *SQLiteRunRepo) GetByID(ctx context.Context, id string) (*domain.Run, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, date, truck_id, created_at, updated_at FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return run, err
}

func (r *SQLiteRunRepo) ListWindow(ctx context.Context, from, to time.Time) ([]*domain.Run, error) {
	query := `SELECT id, name, date, truck_id, created_at, updated_at FROM runs
		WHERE date >= ? AND date <= ? ORDER BY date, truck_id`
	rows, err := r.db.QueryContext(ctx, query, dateValue(from), dateValue(to))
	if err != nil {
		return nil, fmt.Errorf("listing runs in window: %w", err)
	}
	defer rows.Close()

	var out []*domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (r *SQLiteRunRepo) Update(ctx context.Context, run *domain.Run) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE runs SET name = ?, date = ?, truck_id = ?, updated_at = ? WHERE id = ?`,
		run.Name, dateValue(run.Date), run.TruckID, run.UpdatedAt.Format(time.RFC3339), run.ID)
	if err != nil {
		return fmt.Errorf("updating run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s: %w", run.ID, ErrNotFound)
	}
	return nil
}

// Delete dissolves the run. The orders.run_id foreign key is ON DELETE SET
// NULL, so members detach without moving.
func (r *SQLiteRunRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	return nil
}

func scanRun(row rowScanner) (*domain.Run, error) {
	var run domain.Run
	var dateStr, createdAt, updatedAt string
	if err := row.Scan(&run.ID, &run.Name, &dateStr, &run.TruckID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	run.Date = parseDate(dateStr)
	run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	run.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &run, nil
}
