package main

import (
	"context"
	"fmt"

	"github.com/farxc/procurement-insights/internal/blob"
	"github.com/farxc/procurement-insights/internal/procurement"
	"github.com/farxc/procurement-insights/internal/procurement/load"
	"github.com/farxc/procurement-insights/internal/store"
)

const (
	sourceFile = "file"
	sourceS3   = "s3"
	sourceDB   = "db"
)

// loadTable builds the record table from the configured source.
func loadTable(ctx context.Context, cfg config, storage *store.Storage) (*procurement.Table, error) {
	switch cfg.dataSource {
	case sourceFile:
		return load.FromFile(cfg.data.path, cfg.data.encoding)
	case sourceS3:
		b, err := blob.New(ctx, blob.Config{
			Region:    cfg.s3.region,
			Bucket:    cfg.s3.bucket,
			Endpoint:  cfg.s3.endpoint,
			PathStyle: cfg.s3.pathStyle,
		})
		if err != nil {
			return nil, err
		}
		return load.FromBlob(ctx, b, cfg.s3.key, cfg.data.encoding)
	case sourceDB:
		if storage == nil {
			return nil, fmt.Errorf("DATA_SOURCE=db requires DB_ADDR")
		}
		return load.FromStore(ctx, storage)
	default:
		return nil, fmt.Errorf("unknown DATA_SOURCE %q", cfg.dataSource)
	}
}
