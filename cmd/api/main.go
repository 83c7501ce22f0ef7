package main

import (
	"context"
	"errors"
	"os"

	"github.com/farxc/procurement-insights/internal/db"
	"github.com/farxc/procurement-insights/internal/env"
	"github.com/farxc/procurement-insights/internal/logger"
	"github.com/farxc/procurement-insights/internal/metrics"
	"github.com/farxc/procurement-insights/internal/procurement/load"
	"github.com/farxc/procurement-insights/internal/store"
)

func main() {
	const component = "Main"

	appLogger := logger.New(logger.LevelInfo)
	if err := env.LoadDotEnv(); err != nil {
		appLogger.Fatal(component, "failed to read .env: %v", err)
	}

	cfg := config{
		addr:       env.GetString("ADDR", ":8080"),
		logLevel:   env.GetString("LOG_LEVEL", "info"),
		dataSource: env.GetString("DATA_SOURCE", sourceFile),
		data: dataConfig{
			path:     env.GetString("DATA_PATH", "data/processed/cleaned_purchase_orders.csv"),
			encoding: env.GetString("DATA_ENCODING", "utf-8"),
		},
		db: dbConfig{
			driver:       env.GetString("DB_DRIVER", db.DriverPostgres),
			addr:         env.GetString("DB_ADDR", ""),
			maxOpenConns: env.GetInt("DB_MAX_OPEN_CONNS", 25),
			maxIdleConns: env.GetInt("DB_MAX_IDLE_CONNS", 25),
			maxIdleTime:  env.GetString("DB_MAX_IDLE_TIME", "15m"),
		},
		s3: s3Config{
			bucket:    env.GetString("S3_BUCKET", ""),
			key:       env.GetString("S3_KEY", "processed/cleaned_purchase_orders.csv"),
			region:    env.GetString("S3_REGION", "us-east-1"),
			endpoint:  env.GetString("S3_ENDPOINT", ""),
			pathStyle: env.GetBool("S3_PATH_STYLE", false),
		},
	}
	appLogger.SetLogLevel(logger.ParseLevel(cfg.logLevel))

	app := &application{
		config:  cfg,
		logger:  appLogger,
		metrics: metrics.New(),
	}

	if cfg.db.addr != "" {
		conn, err := db.New(cfg.db.driver, cfg.db.addr, cfg.db.maxOpenConns, cfg.db.maxIdleConns, cfg.db.maxIdleTime)
		if err != nil {
			appLogger.Fatal(component, "failed to connect to database: %v", err)
		}
		defer conn.Close()
		appLogger.Info(component, "Database connection pool established: driver=%s", cfg.db.driver)

		if err := store.EnsureSchema(context.Background(), conn); err != nil {
			appLogger.Fatal(component, "%v", err)
		}
		app.store = store.NewStorage(conn)
	}

	table, err := loadTable(context.Background(), cfg, app.store)
	if err != nil {
		if errors.Is(err, load.ErrArtifactMissing) {
			appLogger.Error(component, "%v", err)
			appLogger.Error(component, "run the ETL first: go run ./cmd/etl -fetch")
			os.Exit(1)
		}
		appLogger.Fatal(component, "failed to load purchase orders: %v", err)
	}
	app.table = table
	app.metrics.TableRows.Set(float64(table.Len()))
	appLogger.Info(component, "Loaded %d purchase order lines from %s", table.Len(), cfg.dataSource)

	mux := app.mount()

	if err := app.run(mux); err != nil {
		appLogger.Fatal(component, "server stopped: %v", err)
	}
}
