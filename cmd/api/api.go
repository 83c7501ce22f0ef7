package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/farxc/procurement-insights/internal/logger"
	"github.com/farxc/procurement-insights/internal/metrics"
	"github.com/farxc/procurement-insights/internal/procurement"
	"github.com/farxc/procurement-insights/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type application struct {
	config  config
	logger  *logger.Logger
	metrics *metrics.Metrics
	// table is loaded once at startup and only read afterwards.
	table *procurement.Table
	// store is nil when no database is configured.
	store *store.Storage
}

type config struct {
	addr       string
	logLevel   string
	dataSource string
	data       dataConfig
	db         dbConfig
	s3         s3Config
}

type dataConfig struct {
	path     string
	encoding string
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
	key       string
	region    string
	endpoint  string
	pathStyle bool
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(app.metrics.Middleware)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Procurement analysis API. See /v1."})
	})
	r.Handle("/metrics", app.metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Get("/kpis", app.handleGetKPIs)
		r.Get("/recommendations", app.handleGetRecommendations)
		r.Get("/raw-data", app.handleGetRawData)

		r.Route("/charts", func(r chi.Router) {
			r.Get("/spend-trend", app.handleGetSpendTrend)
			r.Get("/department-spend", app.spendByHandler("department_spend", procurement.ByDepartment))
			r.Get("/plant-spend", app.spendByHandler("plant_spend", procurement.ByPlant))
			r.Get("/material-spend", app.spendByHandler("material_spend", procurement.ByMaterialGroup))
		})
		r.Route("/tables", func(r chi.Router) {
			r.Get("/top-skus", app.handleGetTopSKUs)
			r.Get("/sku-analysis", app.handleGetSKUAnalysis)
			r.Get("/sku-analysis/export", app.handleExportSKUAnalysis)
		})
		r.Route("/risk", func(r chi.Router) {
			r.Get("/critical-suppliers", app.handleGetCriticalSuppliers)
			r.Get("/price-volatility", app.handleGetPriceVolatility)
		})
		r.Get("/forecasts/demand", app.handleGetDemandForecast)
		r.Route("/filters", func(r chi.Router) {
			r.Get("/departments", app.handleGetDepartmentFilters)
			r.Get("/suppliers", app.handleGetSupplierFilters)
		})
		if app.store != nil {
			r.Get("/ingestion/history", app.handleGetIngestionHistory)
		}
	})

	return r
}

// run serves mux until SIGINT or SIGTERM, then drains in-flight requests.
func (app *application) run(mux http.Handler) error {
	const component = "Server"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(component, "Server started on %s", app.config.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(component, "Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
