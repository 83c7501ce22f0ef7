package main

import (
	"context"
	"fmt"
	"os"

	"github.com/farxc/procurement-insights/internal/logger"
	"github.com/farxc/procurement-insights/internal/procurement/clean"
	"github.com/farxc/procurement-insights/internal/procurement/converter"
	"github.com/farxc/procurement-insights/internal/procurement/downloader"
	"github.com/farxc/procurement-insights/internal/procurement/files"
	"github.com/farxc/procurement-insights/internal/procurement/load"
	"github.com/farxc/procurement-insights/internal/procurement/types"
	"github.com/farxc/procurement-insights/internal/store"
)

type fetcher interface {
	FetchData(ctx context.Context, url, outputPath string) (downloader.DownloadResult, error)
}

type blobPutter interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// pipeline turns the raw order document into the processed artifact. Optional
// stages are skipped when their collaborator is nil.
type pipeline struct {
	logger   *logger.Logger
	fetcher  fetcher
	uploader blobPutter
	storage  *store.Storage
}

type options struct {
	rawPath string
	outPath string
	url     string
	s3Key   string
	trigger string
}

type runSummary struct {
	Orders    int
	Lines     int
	Ingestion *store.IngestionHistory
}

func (p *pipeline) run(ctx context.Context, opts options) (runSummary, error) {
	const component = "Pipeline"
	var summary runSummary

	source := store.SourceFile
	if p.fetcher != nil {
		if _, err := p.fetcher.FetchData(ctx, opts.url, opts.rawPath); err != nil {
			return summary, fmt.Errorf("fetch raw orders: %w", err)
		}
		source = store.SourceHTTP
	}

	raw, err := os.Open(opts.rawPath)
	if err != nil {
		return summary, fmt.Errorf("open raw orders (run with -fetch to download them): %w", err)
	}
	orders, err := clean.DecodeOrders(raw)
	raw.Close()
	if err != nil {
		return summary, err
	}

	items := clean.Flatten(orders)
	summary.Orders = len(orders)
	summary.Lines = len(items)
	p.logger.Info(component, "Flattened raw orders: orders=%d lines=%d", summary.Orders, summary.Lines)

	records := make([][]string, len(items))
	for i, it := range items {
		records[i] = converter.LineItemToRecord(it)
	}
	if err := files.WriteFile(opts.outPath, types.ProcessedColumns, records); err != nil {
		return summary, err
	}
	p.logger.Info(component, "Processed data written: path=%s rows=%d", opts.outPath, len(records))

	if p.uploader != nil {
		body, err := os.ReadFile(opts.outPath)
		if err != nil {
			return summary, err
		}
		if err := p.uploader.Put(ctx, opts.s3Key, body, "text/csv"); err != nil {
			return summary, err
		}
		p.logger.Info(component, "Processed data uploaded: key=%s size=%d", opts.s3Key, len(body))
	}

	if p.storage != nil {
		history, err := load.LoadLines(ctx, p.storage, items, source, opts.trigger, p.logger)
		summary.Ingestion = history
		if err != nil {
			return summary, err
		}
	}

	return summary, nil
}
