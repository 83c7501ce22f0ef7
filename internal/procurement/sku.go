package procurement

import "github.com/farxc/procurement-insights/internal/procurement/types"

// SKUAnalysis groups spend by (department, product, description, supplier) and
// benchmarks the average price paid in each group against the best price seen
// for the product anywhere in the table.
func SKUAnalysis(t *Table) []types.SKUAnalysisRow {
	best := MinBy(t, ByProduct, UnitPrice)
	groups := GroupBy(t, ByDepartment, ByProduct, ByDescription, BySupplier)

	rows := make([]types.SKUAnalysisRow, 0, len(groups))
	for _, g := range groups {
		qty := g.Sum(Quantity)
		avg := g.Mean(UnitPrice)
		bestPrice := best[g.Key(1)]

		rows = append(rows, types.SKUAnalysisRow{
			Department:         g.Key(0),
			ProductID:          g.Key(1),
			Description:        g.Key(2),
			SupplierID:         g.Key(3),
			QuantityPurchased:  qty,
			AvgPricePaid:       avg,
			BestAvailablePrice: bestPrice,
			CostAboveBestPrice: mul(nonNegative(sub(avg, bestPrice), bestPrice.Val), qty),
		})
	}
	return rows
}

// FilterSKUAnalysis applies f to rows. A zero filter returns rows untouched;
// otherwise department and supplier membership (when given) and the cost
// threshold are all required. Rows with a missing cost never pass the
// threshold.
func FilterSKUAnalysis(rows []types.SKUAnalysisRow, f types.SKUFilter) []types.SKUAnalysisRow {
	if f.IsZero() {
		return rows
	}

	departments := toSet(f.Departments)
	suppliers := toSet(f.Suppliers)

	out := make([]types.SKUAnalysisRow, 0, len(rows))
	for _, r := range rows {
		if len(departments) > 0 {
			if _, ok := departments[r.Department]; !ok {
				continue
			}
		}
		if len(suppliers) > 0 {
			if _, ok := suppliers[r.SupplierID]; !ok {
				continue
			}
		}
		cost, ok := r.CostAboveBestPrice.Get()
		if !ok || cost < f.CostThreshold {
			continue
		}
		out = append(out, r)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
