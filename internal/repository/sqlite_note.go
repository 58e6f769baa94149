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

const noteColumns = `id, content, color, target_kind, cell_date, cell_truck_id, order_kind, order_id, run_id, created_at, updated_at`

type SQLiteNoteRepo struct {
	db db.DBTX
}

func NewSQLiteNoteRepo(dbtx db.DBTX) *SQLiteNoteRepo {
	return &SQLiteNoteRepo{db: dbtx}
}

func (r *SQLiteNoteRepo) Create(ctx context.Context, n *domain.Note) error {
	query := `INSERT INTO notes (` + noteColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	args := noteArgs(n)
	args = append(args, n.CreatedAt.Format(time.RFC3339), n.UpdatedAt.Format(time.RFC3339))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting note: %w", err)
	}
	return nil
}

func (r *SQLiteNoteRepo) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	return n, err
}

// ListWindow returns cell notes dated inside the window plus every order-
// and run-anchored note; anchored notes follow their anchor's visibility,
// which the store resolves client-side.
func (r *SQLiteNoteRepo) ListWindow(ctx context.Context, from, to time.Time) ([]*domain.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes
		WHERE target_kind != 'cell' OR (cell_date >= ? AND cell_date <= ?)
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, dateValue(from), dateValue(to))
	if err != nil {
		return nil, fmt.Errorf("listing notes in window: %w", err)
	}
	defer rows.Close()

	var out []*domain.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *SQLiteNoteRepo) Update(ctx context.Context, n *domain.Note) error {
	query := `UPDATE notes SET content = ?, color = ?, target_kind = ?, cell_date = ?,
		cell_truck_id = ?, order_kind = ?, order_id = ?, run_id = ?, updated_at = ? WHERE id = ?`
	args := noteArgs(n)[1:] // drop the id from the front
	args = append(args, n.UpdatedAt.Format(time.RFC3339), n.ID)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating note: %w", err)
	}
	if count, _ := res.RowsAffected(); count == 0 {
		return fmt.Errorf("note %s: %w", n.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteNoteRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	return nil
}

// noteArgs flattens a note and its target union into column order:
// id, content, color, target_kind, cell_date, cell_truck_id, order_kind,
// order_id, run_id.
func noteArgs(n *domain.Note) []any {
	var cellDate, orderKind, runID any
	var cellTruck, orderID any
	switch n.Target.Kind {
	case domain.NoteOnCell:
		if n.Target.Cell != nil {
			cellDate = dateValue(n.Target.Cell.Date)
			cellTruck = nullableInt64ToValue(n.Target.Cell.TruckID)
		}
	case domain.NoteOnOrder:
		if n.Target.Order != nil {
			orderKind = string(n.Target.Order.Kind)
			orderID = n.Target.Order.ID
		}
	case domain.NoteOnRun:
		runID = n.Target.RunID
	}
	return []any{n.ID, n.Content, string(n.Color), string(n.Target.Kind),
		cellDate, cellTruck, orderKind, orderID, runID}
}

func scanNote(row rowScanner) (*domain.Note, error) {
	var n domain.Note
	var color, targetKind string
	var cellDate, orderKind, runID sql.NullString
	var cellTruck, orderID sql.NullInt64
	var createdAt, updatedAt string

	if err := row.Scan(&n.ID, &n.Content, &color, &targetKind, &cellDate,
		&cellTruck, &orderKind, &orderID, &runID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	n.Color = domain.NoteColor(color)
	n.Target.Kind = domain.NoteTargetKind(targetKind)
	switch n.Target.Kind {
	case domain.NoteOnCell:
		if cellDate.Valid {
			var truckID *int64
			if cellTruck.Valid {
				v := cellTruck.Int64
				truckID = &v
			}
			p := domain.NewPlacement(parseDate(cellDate.String), truckID)
			n.Target.Cell = &p
		}
	case domain.NoteOnOrder:
		if orderKind.Valid && orderID.Valid {
			ref := domain.Ref{Kind: domain.OrderKind(orderKind.String), ID: orderID.Int64}
			n.Target.Order = &ref
		}
	case domain.NoteOnRun:
		if runID.Valid {
			n.Target.RunID = runID.String
		}
	}
	n.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	n.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &n, nil
}
