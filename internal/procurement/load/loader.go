package load

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/farxc/procurement-insights/internal/blob"
	"github.com/farxc/procurement-insights/internal/logger"
	"github.com/farxc/procurement-insights/internal/procurement"
	"github.com/farxc/procurement-insights/internal/procurement/converter"
	"github.com/farxc/procurement-insights/internal/procurement/files"
	"github.com/farxc/procurement-insights/internal/procurement/types"
	"github.com/farxc/procurement-insights/internal/store"
)

// ErrArtifactMissing means the processed data has not been produced yet.
var ErrArtifactMissing = errors.New("processed purchase order data not found")

// BlobGetter is the read side of an object store.
type BlobGetter interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// FromCSV builds the record table from a processed CSV stream.
func FromCSV(r io.Reader, encoding string) (*procurement.Table, error) {
	df, err := files.ReadProcessed(r, encoding)
	if err != nil {
		return nil, err
	}
	return procurement.NewTable(converter.DataFrameToLineItems(df)), nil
}

// FromFile loads the processed CSV at path.
func FromFile(path, encoding string) (*procurement.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrArtifactMissing)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return FromCSV(f, encoding)
}

// FromBlob loads the processed CSV stored under key.
func FromBlob(ctx context.Context, b BlobGetter, key, encoding string) (*procurement.Table, error) {
	rc, err := b.Get(ctx, key)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", key, ErrArtifactMissing)
		}
		return nil, err
	}
	defer rc.Close()

	return FromCSV(rc, encoding)
}

// FromStore loads the lines of the latest successful ingestion.
func FromStore(ctx context.Context, storage *store.Storage) (*procurement.Table, error) {
	latest, err := storage.IngestionHistory.GetLatestSuccessful(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNoIngestion) {
			return nil, fmt.Errorf("database: %w", ErrArtifactMissing)
		}
		return nil, err
	}

	lines, err := storage.PurchaseOrderLines.ListLines(ctx, latest.ID)
	if err != nil {
		return nil, err
	}

	items := make([]types.LineItem, len(lines))
	for i, l := range lines {
		items[i] = converter.StoreToLineItem(l)
	}
	return procurement.NewTable(items), nil
}

// LoadLines writes items as a new batch and records the ingestion. A failed
// write leaves a failure entry behind and no partial batch.
func LoadLines(ctx context.Context, storage *store.Storage, items []types.LineItem, source, trigger string, appLogger *logger.Logger) (*store.IngestionHistory, error) {
	const component = "Loader"

	history := &store.IngestionHistory{
		Source:      source,
		TriggerType: trigger,
		Status:      store.StatusRunning,
	}
	if err := storage.IngestionHistory.InsertIngestionHistory(ctx, history); err != nil {
		return nil, err
	}
	appLogger.Info(component, "Starting data load: ingestion=%s lines=%d", history.ID, len(items))

	lines := make([]store.PurchaseOrderLine, len(items))
	for i, it := range items {
		lines[i] = converter.LineItemToStore(it)
	}

	if err := storage.PurchaseOrderLines.InsertLines(ctx, history.ID, lines); err != nil {
		appLogger.Error(component, "Failed to insert lines: ingestion=%s error=%v", history.ID, err)
		if uerr := storage.IngestionHistory.UpdateIngestionStatus(ctx, history.ID, store.StatusFailure, 0); uerr != nil {
			appLogger.Error(component, "Failed to mark ingestion as failed: ingestion=%s error=%v", history.ID, uerr)
		}
		history.Status = store.StatusFailure
		return history, err
	}

	if err := storage.IngestionHistory.UpdateIngestionStatus(ctx, history.ID, store.StatusSuccess, len(lines)); err != nil {
		return history, err
	}
	history.Status = store.StatusSuccess
	history.RowCount = len(lines)

	appLogger.Info(component, "Data load completed: ingestion=%s lines=%d", history.ID, len(lines))
	return history, nil
}
