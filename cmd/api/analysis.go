package main

import (
	"bytes"
	"net/http"

	"github.com/farxc/procurement-insights/internal/procurement"
	"github.com/farxc/procurement-insights/internal/procurement/export"
	"github.com/farxc/procurement-insights/internal/procurement/types"
)

// @Summary		SKU analysis
// @Description	Spend per department, product and supplier benchmarked against the best observed price.
// @Tags			Tables
// @Produce		json
// @Param			departments		query		[]string	false	"Departments (repeatable or comma separated)"
// @Param			suppliers		query		[]string	false	"Supplier ids (repeatable or comma separated)"
// @Param			cost_threshold	query		number		false	"Minimum cost above best price"	default(0)
// @Success		200				{object}	response.APIResponse[[]types.SKUAnalysisRow]
// @Failure		400				{object}	response.ErrorResponse
// @Router			/tables/sku-analysis [get]
func (app *application) handleGetSKUAnalysis(w http.ResponseWriter, r *http.Request) {
	filter, err := parseSKUFilter(r.URL.Query())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondView(app, w, "sku_analysis", "Successfully calculated SKU analysis", func() []types.SKUAnalysisRow {
		return nonNil(procurement.FilterSKUAnalysis(procurement.SKUAnalysis(app.table), filter))
	})
}

// @Summary		SKU analysis workbook
// @Description	The filtered SKU analysis as an XLSX download.
// @Tags			Tables
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param			departments		query	[]string	false	"Departments (repeatable or comma separated)"
// @Param			suppliers		query	[]string	false	"Supplier ids (repeatable or comma separated)"
// @Param			cost_threshold	query	number		false	"Minimum cost above best price"	default(0)
// @Success		200
// @Failure		400	{object}	response.ErrorResponse
// @Router			/tables/sku-analysis/export [get]
func (app *application) handleExportSKUAnalysis(w http.ResponseWriter, r *http.Request) {
	filter, err := parseSKUFilter(r.URL.Query())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows := procurement.FilterSKUAnalysis(procurement.SKUAnalysis(app.table), filter)

	// buffered so a failure can still become a JSON error
	var buf bytes.Buffer
	if err := export.WriteSKUAnalysis(&buf, rows); err != nil {
		app.logger.Error("API", "failed to build SKU workbook: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to build workbook")
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="sku_analysis.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// @Summary		Critical single-source suppliers
// @Description	Products in the top 80% of spend that are bought from exactly one supplier.
// @Tags			Risk
// @Produce		json
// @Success		200	{object}	response.APIResponse[[]types.CriticalSupplierRow]
// @Router			/risk/critical-suppliers [get]
func (app *application) handleGetCriticalSuppliers(w http.ResponseWriter, r *http.Request) {
	respondView(app, w, "critical_suppliers", "Successfully calculated critical suppliers", func() []types.CriticalSupplierRow {
		return nonNil(procurement.CriticalSuppliers(app.table))
	})
}

// @Summary		Price volatility
// @Description	Mean, standard deviation and coefficient of variation of unit price per product.
// @Tags			Risk
// @Produce		json
// @Success		200	{object}	response.APIResponse[[]types.VolatilityRow]
// @Router			/risk/price-volatility [get]
func (app *application) handleGetPriceVolatility(w http.ResponseWriter, r *http.Request) {
	respondView(app, w, "price_volatility", "Successfully calculated price volatility", func() []types.VolatilityRow {
		return nonNil(procurement.PriceVolatility(app.table))
	})
}

// @Summary		Demand forecast
// @Description	Three monthly periods of forecast demand for the five products with the largest total quantity.
// @Tags			Forecasts
// @Produce		json
// @Success		200	{object}	response.APIResponse[[]types.ForecastRow]
// @Router			/forecasts/demand [get]
func (app *application) handleGetDemandForecast(w http.ResponseWriter, r *http.Request) {
	respondView(app, w, "demand_forecast", "Successfully calculated demand forecast", func() []types.ForecastRow {
		return procurement.DemandForecast(app.table)
	})
}
