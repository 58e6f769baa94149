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

const lineColumns = `id, vendor_id, category, date, seq, quantity, description, created_at, updated_at`

type SQLiteQueueRepo struct {
	db db.DBTX
}

func NewSQLiteQueueRepo(dbtx db.DBTX) *SQLiteQueueRepo {
	return &SQLiteQueueRepo{db: dbtx}
}

func (r *SQLiteQueueRepo) CreateLine(ctx context.Context, l *domain.QueueLine) error {
	query := `INSERT INTO queue_lines (` + lineColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		l.ID,
		l.VendorID,
		string(l.Category),
		dateValue(l.Date),
		l.Seq,
		l.Quantity,
		l.Description,
		l.CreatedAt.Format(time.RFC3339),
		l.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting queue line: %w", err)
	}
	return nil
}

func (r *SQLiteQueueRepo) GetLine(ctx context.Context, id int64) (*domain.QueueLine, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+lineColumns+` FROM queue_lines WHERE id = ?`, id)
	l, err := scanLine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("queue line %d: %w", id, ErrNotFound)
	}
	return l, err
}

func (r *SQLiteQueueRepo) ListLinesWindow(ctx context.Context, from, to time.Time) ([]*domain.QueueLine, error) {
	query := `SELECT ` + lineColumns + ` FROM queue_lines
		WHERE date >= ? AND date <= ? ORDER BY vendor_id, category, seq`
	rows, err := r.db.QueryContext(ctx, query, dateValue(from), dateValue(to))
	if err != nil {
		return nil, fmt.Errorf("listing queue lines in window: %w", err)
	}
	defer rows.Close()

	var out []*domain.QueueLine
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning queue line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *SQLiteQueueRepo) UpdateLine(ctx context.Context, l *domain.QueueLine) error {
	query := `UPDATE queue_lines SET vendor_id = ?, category = ?, date = ?, seq = ?,
		quantity = ?, description = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		l.VendorID,
		string(l.Category),
		dateValue(l.Date),
		l.Seq,
		l.Quantity,
		l.Description,
		l.UpdatedAt.Format(time.RFC3339),
		l.ID,
	)
	if err != nil {
		return fmt.Errorf("updating queue line: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("queue line %d: %w", l.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteQueueRepo) DeleteLine(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM queue_lines WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting queue line: %w", err)
	}
	return nil
}

func (r *SQLiteQueueRepo) SetOverride(ctx context.Context, o *domain.AllotmentOverride) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO allotment_overrides (vendor_id, category, date, quantity) VALUES (?, ?, ?, ?)
		ON CONFLICT(vendor_id, category, date) DO UPDATE SET quantity = excluded.quantity`,
		o.VendorID, string(o.Category), dateValue(o.Date), o.Quantity)
	if err != nil {
		return fmt.Errorf("setting allotment override: %w", err)
	}
	return nil
}

func (r *SQLiteQueueRepo) ClearOverride(ctx context.Context, vendorID int64, cat domain.BoxCategory, date time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM allotment_overrides WHERE vendor_id = ? AND category = ? AND date = ?`,
		vendorID, string(cat), dateValue(date))
	if err != nil {
		return fmt.Errorf("clearing allotment override: %w", err)
	}
	return nil
}

func (r *SQLiteQueueRepo) ListOverridesWindow(ctx context.Context, from, to time.Time) ([]*domain.AllotmentOverride, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT vendor_id, category, date, quantity FROM allotment_overrides
		WHERE date >= ? AND date <= ? ORDER BY vendor_id, category, date`,
		dateValue(from), dateValue(to))
	if err != nil {
		return nil, fmt.Errorf("listing allotment overrides: %w", err)
	}
	defer rows.Close()

	var out []*domain.AllotmentOverride
	for rows.Next() {
		var o domain.AllotmentOverride
		var cat, dateStr string
		if err := rows.Scan(&o.VendorID, &cat, &dateStr, &o.Quantity); err != nil {
			return nil, fmt.Errorf("scanning allotment override: %w", err)
		}
		o.Category = domain.BoxCategory(cat)
		o.Date = parseDate(dateStr)
		out = append(out, &o)
	}
	return out, rows.Err()
}

func scanLine(row rowScanner) (*domain.QueueLine, error) {
	var l domain.QueueLine
	var cat, dateStr, createdAt, updatedAt string
	if err := row.Scan(&l.ID, &l.VendorID, &cat, &dateStr, &l.Seq,
		&l.Quantity, &l.Description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	l.Category = domain.BoxCategory(cat)
	l.Date = parseDate(dateStr)
	l.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	l.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &l, nil
}
