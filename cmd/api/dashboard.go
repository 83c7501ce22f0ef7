package main

import (
	"net/http"

	"github.com/farxc/procurement-insights/internal/procurement"
	"github.com/farxc/procurement-insights/internal/procurement/types"
)

// @Summary		Headline KPIs
// @Description	Total spend, potential savings, order and supplier counts and SKU fragmentation.
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	response.APIResponse[[]types.KPI]
// @Router			/kpis [get]
func (app *application) handleGetKPIs(w http.ResponseWriter, r *http.Request) {
	respondView(app, w, "kpis", "Successfully calculated KPIs", func() []types.KPI {
		return procurement.KPIs(app.table)
	})
}

// @Summary		Monthly spend trend
// @Tags			Charts
// @Produce		json
// @Success		200	{object}	response.APIResponse[[]types.SpendTrendPoint]
// @Router			/charts/spend-trend [get]
func (app *application) handleGetSpendTrend(w http.ResponseWriter, r *http.Request) {
	respondView(app, w, "spend_trend", "Successfully calculated spend trend", func() []types.SpendTrendPoint {
		return nonNil(procurement.SpendTrend(app.table))
	})
}

// spendByHandler serves net value summed per value of d.
func (app *application) spendByHandler(view string, d procurement.Dimension) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondView(app, w, view, "Successfully calculated spend breakdown", func() []types.DimensionSpend {
			return procurement.SpendBy(app.table, d)
		})
	}
}

// @Summary		Top SKUs by spend
// @Tags			Tables
// @Produce		json
// @Param			limit	query		int	false	"Number of SKUs"	default(10)
// @Success		200		{object}	response.APIResponse[[]types.TopSKU]
// @Failure		400		{object}	response.ErrorResponse
// @Router			/tables/top-skus [get]
func (app *application) handleGetTopSKUs(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query(), "limit", procurement.TopSKULimit, 100)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondView(app, w, "top_skus", "Successfully retrieved top SKUs", func() []types.TopSKU {
		return procurement.TopSKUs(app.table, limit)
	})
}

// @Summary		Savings recommendations
// @Description	Per product, the cheapest observed supplier and the estimated saving of buying everything at that price.
// @Tags			Recommendations
// @Produce		json
// @Param			limit	query		int	false	"Number of recommendations"	default(10)
// @Success		200		{object}	response.APIResponse[[]types.Recommendation]
// @Failure		400		{object}	response.ErrorResponse
// @Router			/recommendations [get]
func (app *application) handleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query(), "limit", procurement.RecommendationSize, 100)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondView(app, w, "recommendations", "Successfully calculated recommendations", func() []types.Recommendation {
		return nonNil(procurement.Recommendations(app.table, limit))
	})
}

// @Summary		Raw purchase history
// @Description	Product, creation date and quantity of every line, for charting forecast history.
// @Tags			Forecasts
// @Produce		json
// @Success		200	{object}	response.APIResponse[[]types.RawHistoryRow]
// @Router			/raw-data [get]
func (app *application) handleGetRawData(w http.ResponseWriter, r *http.Request) {
	respondView(app, w, "raw_data", "Successfully retrieved raw history", func() []types.RawHistoryRow {
		return procurement.RawHistory(app.table)
	})
}

// @Summary		Department filter options
// @Tags			Filters
// @Produce		json
// @Success		200	{object}	response.APIResponse[[]string]
// @Router			/filters/departments [get]
func (app *application) handleGetDepartmentFilters(w http.ResponseWriter, r *http.Request) {
	respondView(app, w, "filter_departments", "Successfully retrieved departments", func() []string {
		return procurement.Departments(app.table)
	})
}

// @Summary		Supplier filter options
// @Tags			Filters
// @Produce		json
// @Success		200	{object}	response.APIResponse[[]string]
// @Router			/filters/suppliers [get]
func (app *application) handleGetSupplierFilters(w http.ResponseWriter, r *http.Request) {
	respondView(app, w, "filter_suppliers", "Successfully retrieved suppliers", func() []string {
		return procurement.Suppliers(app.table)
	})
}

// nonNil makes empty results encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
