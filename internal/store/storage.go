package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Storage struct {
	PurchaseOrderLines interface {
		InsertLines(ctx context.Context, batchID string, lines []PurchaseOrderLine) error
		ListLines(ctx context.Context, batchID string) ([]PurchaseOrderLine, error)
		DeleteBatch(ctx context.Context, batchID string) error
	}

	IngestionHistory interface {
		InsertIngestionHistory(ctx context.Context, history *IngestionHistory) error
		GetLatest(ctx context.Context, limit int) ([]IngestionHistory, error)
		GetLatestSuccessful(ctx context.Context) (*IngestionHistory, error)
		UpdateIngestionStatus(ctx context.Context, id string, status string, rowCount int) error
	}
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		PurchaseOrderLines: &PurchaseOrderLineStore{db: db},
		IngestionHistory:   &IngestionHistoryStore{db: db},
	}
}
