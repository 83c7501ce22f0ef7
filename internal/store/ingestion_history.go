package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type IngestionHistoryStore struct {
	db *sqlx.DB
}

var (
	SourceFile = "file"
	SourceHTTP = "http"
)

var (
	TriggerTypeManual    = "manual"
	TriggerTypeScheduled = "scheduled"
)

var (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// timeLayout is fixed width so processed_at orders correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNoIngestion is returned when no successful ingestion has been recorded.
var ErrNoIngestion = errors.New("no successful ingestion recorded")

// InsertIngestionHistory records history, assigning an id and processed_at
// when they are unset.
func (ih *IngestionHistoryStore) InsertIngestionHistory(ctx context.Context, history *IngestionHistory) error {
	if history.ID == "" {
		history.ID = uuid.NewString()
	}
	if history.ProcessedAt.IsZero() {
		history.ProcessedAt = time.Now().UTC()
	}

	query := `INSERT INTO ingestion_history (
		id,
		source,
		trigger_type,
		status,
		row_count,
		processed_at
	) VALUES (
		:id,
		:source,
		:trigger_type,
		:status,
		:row_count,
		:processed_at
	)`

	if _, err := ih.db.NamedExecContext(ctx, query, toRow(*history)); err != nil {
		return fmt.Errorf("failed to insert ingestion history: %w", err)
	}
	return nil
}

// GetLatest returns up to limit entries, most recent first.
func (ih *IngestionHistoryStore) GetLatest(ctx context.Context, limit int) ([]IngestionHistory, error) {
	query := ih.db.Rebind(`
	SELECT id, source, trigger_type, status, row_count, processed_at
	FROM ingestion_history
	ORDER BY processed_at DESC
	LIMIT ?`)

	var rows []ingestionRow
	if err := ih.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query ingestion history: %w", err)
	}

	out := make([]IngestionHistory, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromRow(r))
	}
	return out, nil
}

// GetLatestSuccessful returns the most recent successful ingestion or
// ErrNoIngestion.
func (ih *IngestionHistoryStore) GetLatestSuccessful(ctx context.Context) (*IngestionHistory, error) {
	query := ih.db.Rebind(`
	SELECT id, source, trigger_type, status, row_count, processed_at
	FROM ingestion_history
	WHERE status = ?
	ORDER BY processed_at DESC
	LIMIT 1`)

	var row ingestionRow
	if err := ih.db.GetContext(ctx, &row, query, StatusSuccess); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoIngestion
		}
		return nil, fmt.Errorf("failed to query latest ingestion: %w", err)
	}
	h := fromRow(row)
	return &h, nil
}

func (ih *IngestionHistoryStore) UpdateIngestionStatus(ctx context.Context, id string, status string, rowCount int) error {
	query := ih.db.Rebind(`UPDATE ingestion_history SET status = ?, row_count = ? WHERE id = ?`)

	res, err := ih.db.ExecContext(ctx, query, status, rowCount, id)
	if err != nil {
		return fmt.Errorf("failed to update ingestion %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("ingestion %s not found", id)
	}
	return nil
}

func toRow(h IngestionHistory) ingestionRow {
	return ingestionRow{
		ID:          h.ID,
		Source:      h.Source,
		TriggerType: h.TriggerType,
		Status:      h.Status,
		RowCount:    h.RowCount,
		ProcessedAt: h.ProcessedAt.UTC().Format(timeLayout),
	}
}

func fromRow(r ingestionRow) IngestionHistory {
	processed, _ := time.Parse(timeLayout, r.ProcessedAt)
	return IngestionHistory{
		ID:          r.ID,
		Source:      r.Source,
		TriggerType: r.TriggerType,
		Status:      r.Status,
		RowCount:    r.RowCount,
		ProcessedAt: processed,
	}
}
