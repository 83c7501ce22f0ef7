package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/farxc/procurement-insights/internal/db"
	"github.com/farxc/procurement-insights/internal/logger"
	"github.com/farxc/procurement-insights/internal/metrics"
	"github.com/farxc/procurement-insights/internal/procurement"
	"github.com/farxc/procurement-insights/internal/procurement/types"
	"github.com/farxc/procurement-insights/internal/store"
	"github.com/xuri/excelize/v2"
)

func item(po, product, supplier, dept, date string, qty, price float64) types.LineItem {
	created, _ := time.Parse("2006-01-02", date)
	return types.LineItem{
		PurchaseOrderID: po,
		ProductID:       product,
		Description:     "desc " + product,
		SupplierID:      supplier,
		PurchasingGroup: dept,
		Department:      dept,
		CreatedDate:     created,
		Month:           created.Format("January"),
		Quantity:        types.Some(qty),
		UnitPrice:       types.Some(price),
		NetValue:        types.Some(qty * price),
	}
}

func newTestApp(t *testing.T, items ...types.LineItem) *application {
	t.Helper()
	return &application{
		config:  config{dataSource: sourceFile},
		logger:  logger.NewWithWriter(io.Discard, logger.LevelError),
		metrics: metrics.New(),
		table:   procurement.NewTable(items),
	}
}

func fixture() []types.LineItem {
	return []types.LineItem{
		item("PO1", "P1", "S1", "IT", "2024-01-10", 2, 10),
		item("PO2", "P1", "S2", "Ops", "2024-02-10", 2, 5),
		item("PO3", "P2", "S1", "IT", "2024-03-10", 1, 100),
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s: invalid JSON %q: %v", target, rec.Body.String(), err)
		}
	}
	return rec, env
}

func TestKPIsEndpoint(t *testing.T) {
	h := newTestApp(t, fixture()...).mount()

	rec, env := get(t, h, "/v1/kpis")
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}

	var kpis []types.KPI
	if err := json.Unmarshal(env.Data, &kpis); err != nil {
		t.Fatal(err)
	}
	if len(kpis) != 6 {
		t.Fatalf("expected 6 KPIs, got %d", len(kpis))
	}
	if kpis[0].Label != procurement.KPITotalSpend || kpis[0].Value != "$130.00" {
		t.Errorf("total spend = %+v", kpis[0])
	}
	if kpis[1].Value != "$10.00" {
		t.Errorf("potential savings = %+v", kpis[1])
	}
	if kpis[5].Value != "50.00%" {
		t.Errorf("fragmentation rate = %+v", kpis[5])
	}
}

func TestEmptyTableKPIsAreNotAvailable(t *testing.T) {
	h := newTestApp(t).mount()

	_, env := get(t, h, "/v1/kpis")
	var kpis []types.KPI
	if err := json.Unmarshal(env.Data, &kpis); err != nil {
		t.Fatal(err)
	}
	if kpis[0].Value != procurement.NotAvailable || kpis[0].Raw.Valid {
		t.Errorf("empty total spend = %+v", kpis[0])
	}
	if !strings.Contains(string(env.Data), `"raw":null`) {
		t.Errorf("missing values should encode as null: %s", env.Data)
	}
}

func TestSKUAnalysisFilters(t *testing.T) {
	h := newTestApp(t, fixture()...).mount()

	tests := []struct {
		name   string
		query  string
		status int
		rows   int
	}{
		{name: "no filter", query: "", status: http.StatusOK, rows: 3},
		{name: "repeated departments", query: "?departments=IT&departments=Ops", status: http.StatusOK, rows: 3},
		{name: "comma separated", query: "?departments=Ops,Finance", status: http.StatusOK, rows: 1},
		{name: "supplier", query: "?suppliers=S1", status: http.StatusOK, rows: 2},
		{name: "threshold", query: "?cost_threshold=5", status: http.StatusOK, rows: 1},
		{name: "negative threshold", query: "?cost_threshold=-1", status: http.StatusBadRequest},
		{name: "garbage threshold", query: "?cost_threshold=lots", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := get(t, h, "/v1/tables/sku-analysis"+tt.query)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.status != http.StatusOK {
				if env.Success || env.Error == "" {
					t.Errorf("error body = %s", rec.Body.String())
				}
				return
			}
			var rows []types.SKUAnalysisRow
			if err := json.Unmarshal(env.Data, &rows); err != nil {
				t.Fatal(err)
			}
			if len(rows) != tt.rows {
				t.Errorf("got %d rows, want %d", len(rows), tt.rows)
			}
		})
	}
}

func TestSKUAnalysisExport(t *testing.T) {
	h := newTestApp(t, fixture()...).mount()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/tables/sku-analysis/export?suppliers=S1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "sku_analysis.xlsx") {
		t.Errorf("content disposition = %q", rec.Header().Get("Content-Disposition"))
	}

	f, err := excelize.OpenReader(rec.Body)
	if err != nil {
		t.Fatalf("not a workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("SKU Analysis")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Errorf("expected header plus 2 rows, got %d", len(rows))
	}
}

func TestEmptyViewsEncodeAsArrays(t *testing.T) {
	h := newTestApp(t).mount()

	for _, path := range []string{
		"/v1/forecasts/demand",
		"/v1/risk/critical-suppliers",
		"/v1/risk/price-volatility",
		"/v1/recommendations",
		"/v1/charts/spend-trend",
		"/v1/filters/departments",
		"/v1/raw-data",
	} {
		rec, env := get(t, h, path)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status %d", path, rec.Code)
			continue
		}
		if string(env.Data) != "[]" {
			t.Errorf("%s: data = %s, want []", path, env.Data)
		}
	}
}

func TestChartsAndFilters(t *testing.T) {
	h := newTestApp(t, fixture()...).mount()

	_, env := get(t, h, "/v1/charts/department-spend")
	var spend []types.DimensionSpend
	if err := json.Unmarshal(env.Data, &spend); err != nil {
		t.Fatal(err)
	}
	if len(spend) != 2 || spend[0].Key != "IT" || spend[0].NetValue.Val != 120 {
		t.Errorf("department spend = %+v", spend)
	}

	_, env = get(t, h, "/v1/filters/suppliers")
	if string(env.Data) != `["S1","S2"]` {
		t.Errorf("suppliers = %s", env.Data)
	}

	rec, _ := get(t, h, "/v1/tables/top-skus?limit=0")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("limit=0 status = %d", rec.Code)
	}
	_, env = get(t, h, "/v1/tables/top-skus?limit=1")
	var top []types.TopSKU
	if err := json.Unmarshal(env.Data, &top); err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0].ProductID != "P2" {
		t.Errorf("top skus = %+v", top)
	}
}

func TestIngestionHistoryRouteNeedsDatabase(t *testing.T) {
	app := newTestApp(t, fixture()...)

	rec, _ := get(t, app.mount(), "/v1/ingestion/history")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("without a database the route should not exist, got %d", rec.Code)
	}

	conn, err := db.New(db.DriverSQLite, ":memory:", 1, 1, "1m")
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	ctx := context.Background()
	if err := store.EnsureSchema(ctx, conn); err != nil {
		t.Fatal(err)
	}
	app.store = store.NewStorage(conn)
	if err := app.store.IngestionHistory.InsertIngestionHistory(ctx, &store.IngestionHistory{
		Source: store.SourceFile, TriggerType: store.TriggerTypeManual, Status: store.StatusSuccess, RowCount: 3,
	}); err != nil {
		t.Fatal(err)
	}

	rec, env := get(t, app.mount(), "/v1/ingestion/history?limit=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var history []store.IngestionHistory
	if err := json.Unmarshal(env.Data, &history); err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].RowCount != 3 {
		t.Errorf("history = %+v", history)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestApp(t, fixture()...).mount()
	get(t, h, "/v1/kpis")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	if !strings.Contains(body, `procurement_view_duration_seconds_count{view="kpis"} 1`) {
		t.Errorf("view histogram missing from exposition")
	}
	if !strings.Contains(body, `route="/v1/kpis"`) {
		t.Errorf("request counter missing from exposition")
	}
}
