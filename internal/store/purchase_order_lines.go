package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// insertChunk bounds the bind variables of one multi-row insert well below
// the limits of both drivers.
const insertChunk = 500

type PurchaseOrderLineStore struct {
	db *sqlx.DB
}

// InsertLines writes lines as batch batchID in a single transaction. LineNo
// is assigned from the slice position.
func (s *PurchaseOrderLineStore) InsertLines(ctx context.Context, batchID string, lines []PurchaseOrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	query := `INSERT INTO purchase_order_lines (
		batch_id,
		line_no,
		purchase_order_id,
		product_id,
		supplier_id,
		purchasing_group,
		plant,
		material_group,
		description,
		unit,
		status,
		created_date,
		month,
		quantity,
		unit_price,
		net_value
	) VALUES (
		:batch_id,
		:line_no,
		:purchase_order_id,
		:product_id,
		:supplier_id,
		:purchasing_group,
		:plant,
		:material_group,
		:description,
		:unit,
		:status,
		:created_date,
		:month,
		:quantity,
		:unit_price,
		:net_value
	)`

	rows := make([]PurchaseOrderLine, len(lines))
	for i, l := range lines {
		l.BatchID = batchID
		l.LineNo = i
		rows[i] = l
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for start := 0; start < len(rows); start += insertChunk {
		end := min(start+insertChunk, len(rows))
		if _, err := tx.NamedExecContext(ctx, query, rows[start:end]); err != nil {
			return fmt.Errorf("failed to insert lines %d-%d of batch %s: %w", start, end-1, batchID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch %s: %w", batchID, err)
	}
	return nil
}

// ListLines returns the lines of one batch in insertion order.
func (s *PurchaseOrderLineStore) ListLines(ctx context.Context, batchID string) ([]PurchaseOrderLine, error) {
	query := s.db.Rebind(`
	SELECT
		batch_id, line_no, purchase_order_id, product_id, supplier_id,
		purchasing_group, plant, material_group, description, unit, status,
		created_date, month, quantity, unit_price, net_value
	FROM
		purchase_order_lines
	WHERE
		batch_id = ?
	ORDER BY
		line_no`)

	var lines []PurchaseOrderLine
	if err := s.db.SelectContext(ctx, &lines, query, batchID); err != nil {
		return nil, fmt.Errorf("failed to list lines of batch %s: %w", batchID, err)
	}
	return lines, nil
}

func (s *PurchaseOrderLineStore) DeleteBatch(ctx context.Context, batchID string) error {
	query := s.db.Rebind(`DELETE FROM purchase_order_lines WHERE batch_id = ?`)
	if _, err := s.db.ExecContext(ctx, query, batchID); err != nil {
		return fmt.Errorf("failed to delete batch %s: %w", batchID, err)
	}
	return nil
}
