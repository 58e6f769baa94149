package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// duplicates are tolerated because the migration list re-runs in full.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS trucks (
		id         INTEGER PRIMARY KEY,
		name       TEXT NOT NULL,
		active     INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS runs (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		date       TEXT NOT NULL,
		truck_id   INTEGER NOT NULL REFERENCES trucks(id),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS orders (
		id         INTEGER NOT NULL,
		kind       TEXT NOT NULL CHECK(kind IN ('inbound','outbound')),
		customer   TEXT NOT NULL,
		quantity   INTEGER NOT NULL DEFAULT 0,
		date       TEXT,
		truck_id   INTEGER REFERENCES trucks(id),
		run_id     TEXT REFERENCES runs(id) ON DELETE SET NULL,
		seq        INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (kind, id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_orders_date ON orders(date)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_run ON orders(run_id)`,

	`CREATE TABLE IF NOT EXISTS notes (
		id            TEXT PRIMARY KEY,
		content       TEXT NOT NULL,
		color         TEXT NOT NULL CHECK(color IN ('yellow','pink','blue','green')),
		target_kind   TEXT NOT NULL CHECK(target_kind IN ('cell','order','run')),
		cell_date     TEXT,
		cell_truck_id INTEGER,
		order_kind    TEXT,
		order_id      INTEGER,
		run_id        TEXT,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS vendors (
		id         INTEGER PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS vendor_allotments (
		vendor_id INTEGER NOT NULL REFERENCES vendors(id) ON DELETE CASCADE,
		category  TEXT NOT NULL CHECK(category IN ('rsc','die_cut','sheet')),
		quantity  INTEGER NOT NULL,
		PRIMARY KEY (vendor_id, category)
	)`,

	`CREATE TABLE IF NOT EXISTS allotment_overrides (
		vendor_id INTEGER NOT NULL REFERENCES vendors(id) ON DELETE CASCADE,
		category  TEXT NOT NULL CHECK(category IN ('rsc','die_cut','sheet')),
		date      TEXT NOT NULL,
		quantity  INTEGER NOT NULL,
		PRIMARY KEY (vendor_id, category, date)
	)`,

	`CREATE TABLE IF NOT EXISTS queue_lines (
		id          INTEGER PRIMARY KEY,
		vendor_id   INTEGER NOT NULL REFERENCES vendors(id),
		category    TEXT NOT NULL CHECK(category IN ('rsc','die_cut','sheet')),
		date        TEXT NOT NULL,
		seq         INTEGER NOT NULL DEFAULT 0,
		quantity    INTEGER NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_queue_lines_bin ON queue_lines(vendor_id, category, date)`,
}
