package main

import (
	"context"
	"flag"
	"time"

	"github.com/farxc/procurement-insights/internal/blob"
	"github.com/farxc/procurement-insights/internal/db"
	"github.com/farxc/procurement-insights/internal/env"
	"github.com/farxc/procurement-insights/internal/logger"
	"github.com/farxc/procurement-insights/internal/procurement/downloader"
	"github.com/farxc/procurement-insights/internal/store"
)

type config struct {
	db dbConfig
	s3 s3Config
}

type dbConfig struct {
	driver       string
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

type s3Config struct {
	bucket    string
	region    string
	endpoint  string
	pathStyle bool
}

func main() {
	const component = "Main"
	appLogger := logger.New(logger.LevelInfo)

	if err := env.LoadDotEnv(); err != nil {
		appLogger.Fatal(component, "failed to read .env: %v", err)
	}

	rawPtr := flag.String("raw", "data/raw/purchase_orders.json", "Raw purchase order JSON")
	outPtr := flag.String("out", env.GetString("DATA_PATH", "data/processed/cleaned_purchase_orders.csv"), "Processed CSV output")
	fetchPtr := flag.Bool("fetch", false, "Download the raw orders before processing")
	urlPtr := flag.String("url", env.GetString("RAW_DATA_URL", downloader.PurchaseOrdersURL), "Raw purchase order endpoint")
	loadDBPtr := flag.Bool("load-db", false, "Load the line items into the database (DB_ADDR)")
	uploadPtr := flag.Bool("upload-s3", false, "Upload the processed CSV to S3 (S3_BUCKET, S3_KEY)")
	triggerPtr := flag.String("trigger", store.TriggerTypeManual, "Trigger source: manual, scheduled")
	logLevelPtr := flag.String("loglevel", env.GetString("LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	flag.Parse()

	appLogger.SetLogLevel(logger.ParseLevel(*logLevelPtr))

	monitor := NewMonitor()
	monitor.Start(400*time.Millisecond, appLogger)

	startingTime := time.Now()
	appLogger.Info(component, "Application starting: raw=%s out=%s fetch=%t loadDB=%t uploadS3=%t", *rawPtr, *outPtr, *fetchPtr, *loadDBPtr, *uploadPtr)

	cfg := config{
		db: dbConfig{
			driver:       env.GetString("DB_DRIVER", db.DriverPostgres),
			addr:         env.GetString("DB_ADDR", ""),
			maxOpenConns: env.GetInt("DB_MAX_OPEN_CONNS", 25),
			maxIdleConns: env.GetInt("DB_MAX_IDLE_CONNS", 25),
			maxIdleTime:  env.GetString("DB_MAX_IDLE_TIME", "15m"),
		},
		s3: s3Config{
			bucket:    env.GetString("S3_BUCKET", ""),
			region:    env.GetString("S3_REGION", "us-east-1"),
			endpoint:  env.GetString("S3_ENDPOINT", ""),
			pathStyle: env.GetBool("S3_PATH_STYLE", false),
		},
	}

	ctx := context.Background()
	p := &pipeline{logger: appLogger}

	if *fetchPtr {
		p.fetcher = downloader.New(appLogger)
	}

	if *uploadPtr {
		b, err := blob.New(ctx, blob.Config{
			Region:    cfg.s3.region,
			Bucket:    cfg.s3.bucket,
			Endpoint:  cfg.s3.endpoint,
			PathStyle: cfg.s3.pathStyle,
		})
		if err != nil {
			appLogger.Fatal(component, "S3 setup failed: error=%v", err)
		}
		p.uploader = b
	}

	if *loadDBPtr {
		if cfg.db.addr == "" {
			appLogger.Fatal(component, "-load-db needs DB_ADDR")
		}
		database, err := db.New(cfg.db.driver, cfg.db.addr, cfg.db.maxOpenConns, cfg.db.maxIdleConns, cfg.db.maxIdleTime)
		if err != nil {
			appLogger.Fatal(component, "Database connection failed: error=%v", err)
		}
		defer database.Close()
		appLogger.Info(component, "Database connection pool established")

		if err := store.EnsureSchema(ctx, database); err != nil {
			appLogger.Fatal(component, "%v", err)
		}
		p.storage = store.NewStorage(database)
	}

	summary, err := p.run(ctx, options{
		rawPath: *rawPtr,
		outPath: *outPtr,
		url:     *urlPtr,
		s3Key:   env.GetString("S3_KEY", "processed/cleaned_purchase_orders.csv"),
		trigger: *triggerPtr,
	})
	stats := monitor.Stop()
	if err != nil {
		appLogger.Fatal(component, "ETL failed: error=%v", err)
	}

	timeTaken := time.Since(startingTime)
	appLogger.Info(component, "Application completed successfully: orders=%d lines=%d duration=%.2f seconds peakGoroutines=%d peakMemoryMB=%d",
		summary.Orders, summary.Lines, timeTaken.Seconds(), stats.PeakGoroutines, stats.PeakMemoryMB)
}
