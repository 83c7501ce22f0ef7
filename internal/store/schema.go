package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS ingestion_history (
		id           TEXT PRIMARY KEY,
		source       TEXT NOT NULL,
		trigger_type TEXT NOT NULL,
		status       TEXT NOT NULL,
		row_count    INTEGER NOT NULL DEFAULT 0,
		processed_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS purchase_order_lines (
		batch_id          TEXT NOT NULL,
		line_no           INTEGER NOT NULL,
		purchase_order_id TEXT NOT NULL DEFAULT '',
		product_id        TEXT NOT NULL DEFAULT '',
		supplier_id       TEXT NOT NULL DEFAULT '',
		purchasing_group  TEXT NOT NULL DEFAULT '',
		plant             TEXT NOT NULL DEFAULT '',
		material_group    TEXT NOT NULL DEFAULT '',
		description       TEXT NOT NULL DEFAULT '',
		unit              TEXT NOT NULL DEFAULT '',
		status            TEXT NOT NULL DEFAULT '',
		created_date      TEXT NOT NULL DEFAULT '',
		month             TEXT NOT NULL DEFAULT '',
		quantity          DOUBLE PRECISION,
		unit_price        DOUBLE PRECISION,
		net_value         DOUBLE PRECISION,
		PRIMARY KEY (batch_id, line_no)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ingestion_history_processed_at ON ingestion_history (processed_at)`,
}

// EnsureSchema creates the tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
