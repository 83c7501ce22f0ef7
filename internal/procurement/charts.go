package procurement

import (
	"sort"

	"github.com/farxc/procurement-insights/internal/procurement/types"
)

const (
	TopSKULimit        = 10
	RecommendationSize = 10
)

// SpendTrend sums net value per calendar month (YYYY-MM), chronologically.
func SpendTrend(t *Table) []types.SpendTrendPoint {
	byMonth := func(it types.LineItem) string {
		if it.CreatedDate.IsZero() {
			return ""
		}
		return it.CreatedDate.Format("2006-01")
	}

	var out []types.SpendTrendPoint
	for _, g := range GroupBy(t, byMonth) {
		if g.Key(0) == "" {
			continue
		}
		out = append(out, types.SpendTrendPoint{Month: g.Key(0), NetValue: g.Sum(NetValue)})
	}
	return out
}

// SpendBy sums net value per value of d.
func SpendBy(t *Table, d Dimension) []types.DimensionSpend {
	groups := GroupBy(t, d)
	out := make([]types.DimensionSpend, 0, len(groups))
	for _, g := range groups {
		out = append(out, types.DimensionSpend{Key: g.Key(0), NetValue: g.Sum(NetValue)})
	}
	return out
}

// TopSKUs returns the n (product, description) pairs with the highest spend.
func TopSKUs(t *Table, n int) []types.TopSKU {
	groups := GroupBy(t, ByProduct, ByDescription)
	out := make([]types.TopSKU, 0, len(groups))
	for _, g := range groups {
		out = append(out, types.TopSKU{
			ProductID:   g.Key(0),
			Description: g.Key(1),
			NetValue:    g.Sum(NetValue),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return descMissingLast(out[i].NetValue, out[j].NetValue) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Recommendations points every product at the supplier of its cheapest
// observed row and estimates what buying everything at that price would have
// saved. The n largest savings are returned.
func Recommendations(t *Table, n int) []types.Recommendation {
	var out []types.Recommendation
	for _, g := range GroupBy(t, ByProduct) {
		if g.Key(0) == "" {
			continue
		}

		var best types.LineItem
		found := false
		g.Each(func(it types.LineItem) {
			if !it.UnitPrice.Valid {
				return
			}
			if !found || it.UnitPrice.Val < best.UnitPrice.Val {
				best = it
				found = true
			}
		})
		if !found {
			continue
		}

		avg := g.Mean(UnitPrice)
		qty := g.Sum(Quantity)
		out = append(out, types.Recommendation{
			ProductID:           g.Key(0),
			RecommendedSupplier: best.SupplierID,
			BestPrice:           best.UnitPrice,
			AvgUnitPrice:        avg,
			TotalQuantity:       qty,
			EstimatedSaving:     mul(nonNegative(sub(avg, best.UnitPrice), best.UnitPrice.Val), qty),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return descMissingLast(out[i].EstimatedSaving, out[j].EstimatedSaving)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Departments lists distinct departments in first-seen order.
func Departments(t *Table) []string {
	return distinct(t, ByDepartment)
}

// Suppliers lists distinct supplier ids in first-seen order.
func Suppliers(t *Table) []string {
	return distinct(t, BySupplier)
}

func distinct(t *Table, d Dimension) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for i := 0; i < t.Len(); i++ {
		k := d(t.items[i])
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// RawHistory returns the (product, date, quantity) triple of every row.
func RawHistory(t *Table) []types.RawHistoryRow {
	out := make([]types.RawHistoryRow, t.Len())
	for i := range out {
		it := t.items[i]
		row := types.RawHistoryRow{ProductID: it.ProductID, Quantity: it.Quantity}
		if !it.CreatedDate.IsZero() {
			created := it.CreatedDate
			row.CreatedDate = &created
		}
		out[i] = row
	}
	return out
}
