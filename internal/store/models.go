package store

import (
	"time"

	"github.com/farxc/procurement-insights/internal/procurement/types"
)

// PurchaseOrderLine represents the 'purchase_order_lines' table. Every load
// writes a new batch keyed by the ingestion id, so older batches stay
// queryable until they are pruned.
type PurchaseOrderLine struct {
	BatchID         string      `db:"batch_id"`
	LineNo          int         `db:"line_no"`
	PurchaseOrderID string      `db:"purchase_order_id"`
	ProductID       string      `db:"product_id"`
	SupplierID      string      `db:"supplier_id"`
	PurchasingGroup string      `db:"purchasing_group"`
	Plant           string      `db:"plant"`
	MaterialGroup   string      `db:"material_group"`
	Description     string      `db:"description"`
	Unit            string      `db:"unit"`
	Status          string      `db:"status"`
	CreatedDate     string      `db:"created_date"` // RFC 3339, empty when unknown
	Month           string      `db:"month"`
	Quantity        types.Float `db:"quantity"`
	UnitPrice       types.Float `db:"unit_price"`
	NetValue        types.Float `db:"net_value"`
}

// IngestionHistory represents the 'ingestion_history' table.
type IngestionHistory struct {
	ID          string    `db:"id" json:"id"`
	Source      string    `db:"source" json:"source"`
	TriggerType string    `db:"trigger_type" json:"trigger_type"`
	Status      string    `db:"status" json:"status"`
	RowCount    int       `db:"row_count" json:"row_count"`
	ProcessedAt time.Time `db:"-" json:"processed_at"`
}

// ingestionRow is the on-disk form of IngestionHistory. Timestamps are kept as
// RFC 3339 text so the same DDL serves postgres and sqlite.
type ingestionRow struct {
	ID          string `db:"id"`
	Source      string `db:"source"`
	TriggerType string `db:"trigger_type"`
	Status      string `db:"status"`
	RowCount    int    `db:"row_count"`
	ProcessedAt string `db:"processed_at"`
}
