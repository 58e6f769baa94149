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

// orderColumns is the canonical SELECT column list for orders.
const orderColumns = `id, kind, customer, quantity, date, truck_id, run_id, seq, created_at, updated_at`

// SQLiteOrderRepo implements OrderRepo over a DBTX, so the same type serves
// plain and transactional access.
type SQLiteOrderRepo struct {
	db db.DBTX
}

func NewSQLiteOrderRepo(dbtx db.DBTX) *SQLiteOrderRepo {
	return &SQLiteOrderRepo{db: dbtx}
}

func (r *SQLiteOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	query := `INSERT INTO orders (` + orderColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		o.ID,
		string(o.Kind),
		o.Customer,
		o.Quantity,
		nullableTimeToString(o.Date, domain.DateLayout),
		nullableInt64ToValue(o.TruckID),
		nullableStringToValue(o.RunID),
		o.Seq,
		o.CreatedAt.Format(time.RFC3339),
		o.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting order %s: %w", o.Ref(), err)
	}
	return nil
}

func (r *SQLiteOrderRepo) GetByRef(ctx context.Context, ref domain.Ref) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE kind = ? AND id = ?`
	row := r.db.QueryRowContext(ctx, query, string(ref.Kind), ref.ID)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %s: %w", ref, ErrNotFound)
	}
	return o, err
}

func (r *SQLiteOrderRepo) ListWindow(ctx context.Context, from, to time.Time) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE date IS NULL OR (date >= ? AND date <= ?)
		ORDER BY seq, kind, id`
	rows, err := r.db.QueryContext(ctx, query, dateValue(from), dateValue(to))
	if err != nil {
		return nil, fmt.Errorf("listing orders in window: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *SQLiteOrderRepo) ListByRun(ctx context.Context, runID string) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE run_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("listing orders by run: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *SQLiteOrderRepo) Update(ctx context.Context, o *domain.Order) error {
	query := `UPDATE orders SET customer = ?, quantity = ?, date = ?, truck_id = ?,
		run_id = ?, seq = ?, updated_at = ? WHERE kind = ? AND id = ?`
	res, err := r.db.ExecContext(ctx, query,
		o.Customer,
		o.Quantity,
		nullableTimeToString(o.Date, domain.DateLayout),
		nullableInt64ToValue(o.TruckID),
		nullableStringToValue(o.RunID),
		o.Seq,
		o.UpdatedAt.Format(time.RFC3339),
		string(o.Kind),
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("updating order %s: %w", o.Ref(), err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("order %s: %w", o.Ref(), ErrNotFound)
	}
	return nil
}

func (r *SQLiteOrderRepo) Delete(ctx context.Context, ref domain.Ref) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE kind = ? AND id = ?`, string(ref.Kind), ref.ID)
	if err != nil {
		return fmt.Errorf("deleting order %s: %w", ref, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	var kindStr string
	var dateStr, runID sql.NullString
	var truckID sql.NullInt64
	var createdAt, updatedAt string

	if err := row.Scan(&o.ID, &kindStr, &o.Customer, &o.Quantity, &dateStr,
		&truckID, &runID, &o.Seq, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	o.Kind = domain.OrderKind(kindStr)
	o.Date = parseNullableTime(dateStr, domain.DateLayout)
	if truckID.Valid {
		v := truckID.Int64
		o.TruckID = &v
	}
	if runID.Valid {
		v := runID.String
		o.RunID = &v
	}
	o.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	o.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &o, nil
}

func scanOrders(rows *sql.Rows) ([]*domain.Order, error) {
	var out []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
