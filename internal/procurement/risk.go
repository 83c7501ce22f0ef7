package procurement

import (
	"sort"

	"github.com/farxc/procurement-insights/internal/procurement/types"
)

// ParetoCutoff is the cumulative spend share, in percent, that bounds the
// "vital few" products considered for supply risk.
const ParetoCutoff = 80.0

// SpendConcentration ranks (product, description) pairs by total net value,
// descending, and attaches the running share of grand total spend. Pairs with
// no spend at all sort last and carry a missing share.
//
// TopSpend marks the smallest leading set reaching ParetoCutoff: every pair
// whose cumulative share is <= the cutoff, plus the pair that crosses it. A
// single product holding 90% of spend is therefore in the set on its own.
func SpendConcentration(t *Table) []types.SKUSpend {
	groups := GroupBy(t, ByProduct, ByDescription)

	ranking := make([]types.SKUSpend, 0, len(groups))
	for _, g := range groups {
		ranking = append(ranking, types.SKUSpend{
			ProductID:     g.Key(0),
			Description:   g.Key(1),
			TotalNetValue: g.Sum(NetValue),
			SupplierCount: g.NUnique(BySupplier),
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return descMissingLast(ranking[i].TotalNetValue, ranking[j].TotalNetValue)
	})

	var grand float64
	for _, r := range ranking {
		grand += r.TotalNetValue.Or(0)
	}
	if grand == 0 {
		return ranking
	}

	var running, previous float64
	for i := range ranking {
		v, ok := ranking[i].TotalNetValue.Get()
		if !ok {
			continue
		}
		running += v
		pct := running * 100 / grand
		ranking[i].CumulativeSpendP = types.Some(pct)
		ranking[i].TopSpend = pct <= ParetoCutoff || previous < ParetoCutoff
		previous = pct
	}
	return ranking
}

// CriticalSuppliers lists the single-sourced products inside the top spend set
// together with the supplier they depend on, largest spend first.
func CriticalSuppliers(t *Table) []types.CriticalSupplierRow {
	suppliersOf := make(map[[2]string][]string)
	for _, g := range GroupBy(t, ByProduct, ByDescription, BySupplier) {
		key := [2]string{g.Key(0), g.Key(1)}
		suppliersOf[key] = append(suppliersOf[key], g.Key(2))
	}

	var out []types.CriticalSupplierRow
	for _, s := range SpendConcentration(t) {
		if !s.TopSpend || s.SupplierCount != 1 {
			continue
		}
		for _, supplier := range suppliersOf[[2]string{s.ProductID, s.Description}] {
			if supplier == "" {
				continue
			}
			out = append(out, types.CriticalSupplierRow{
				ProductID:     s.ProductID,
				Description:   s.Description,
				SupplierID:    supplier,
				TotalNetValue: s.TotalNetValue,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return descMissingLast(out[i].TotalNetValue, out[j].TotalNetValue)
	})
	return out
}
