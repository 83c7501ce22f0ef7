package types

import "time"

type KPI struct {
	Label string `json:"kpi"`
	Value string `json:"value"`
	Raw   Float  `json:"raw"`
}

type SKUAnalysisRow struct {
	Department         string `json:"department"`
	ProductID          string `json:"product_id"`
	Description        string `json:"description"`
	SupplierID         string `json:"supplier_id"`
	QuantityPurchased  Float  `json:"quantity_purchased"`
	AvgPricePaid       Float  `json:"avg_price_paid"`
	BestAvailablePrice Float  `json:"best_available_price"`
	CostAboveBestPrice Float  `json:"cost_above_best_price"`
}

// SKUFilter narrows the SKU analysis table. The zero value applies no filter.
type SKUFilter struct {
	Departments   []string `json:"departments"`
	Suppliers     []string `json:"suppliers"`
	CostThreshold float64  `json:"cost_threshold"`
}

func (f SKUFilter) IsZero() bool {
	return len(f.Departments) == 0 && len(f.Suppliers) == 0 && f.CostThreshold == 0
}

// SKUSpend is one product of the cumulative spend (Pareto) ranking.
type SKUSpend struct {
	ProductID        string `json:"product_id"`
	Description      string `json:"description"`
	TotalNetValue    Float  `json:"total_net_value"`
	SupplierCount    int    `json:"supplier_count"`
	CumulativeSpendP Float  `json:"cum_spend_pct"`
	TopSpend         bool   `json:"top_spend"`
}

type CriticalSupplierRow struct {
	ProductID     string `json:"product_id"`
	Description   string `json:"description"`
	SupplierID    string `json:"supplier_id"`
	TotalNetValue Float  `json:"total_net_value"`
}

type VolatilityRow struct {
	ProductID   string `json:"product_id"`
	Description string `json:"description"`
	Mean        Float  `json:"mean"`
	Std         Float  `json:"std"`
	CVPercent   Float  `json:"cv_pct"`
}

type ForecastRow struct {
	ProductID        string    `json:"product_id"`
	ForecastDate     time.Time `json:"forecast_date"`
	ForecastMonth    string    `json:"forecast_month"`
	ForecastQuantity Float     `json:"forecast_quantity"`
}

// MonthlyPoint is one calendar month of a per-product demand series.
type MonthlyPoint struct {
	Month    time.Time `json:"month"`
	Quantity float64   `json:"quantity"`
}

type SpendTrendPoint struct {
	Month    string `json:"month"`
	NetValue Float  `json:"net_value"`
}

type DimensionSpend struct {
	Key      string `json:"key"`
	NetValue Float  `json:"net_value"`
}

type TopSKU struct {
	ProductID   string `json:"product_id"`
	Description string `json:"description"`
	NetValue    Float  `json:"net_value"`
}

type Recommendation struct {
	ProductID           string `json:"product_id"`
	RecommendedSupplier string `json:"recommended_supplier"`
	BestPrice           Float  `json:"best_price"`
	AvgUnitPrice        Float  `json:"avg_unit_price"`
	TotalQuantity       Float  `json:"total_quantity"`
	EstimatedSaving     Float  `json:"estimated_saving"`
}

type RawHistoryRow struct {
	ProductID   string     `json:"product_id"`
	CreatedDate *time.Time `json:"created_date"`
	Quantity    Float      `json:"quantity"`
}
