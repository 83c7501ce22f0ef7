package procurement

import (
	"math"
	"sort"

	"github.com/farxc/procurement-insights/internal/procurement/types"
)

// PriceVolatility computes the coefficient of variation of unit price for
// every (product, description), most volatile first.
//
// A product with a single distinct price has no dispersion and gets std and CV
// of 0. A zero mean with non-zero dispersion has no meaningful ratio and gets a
// missing CV, as does a product whose prices are all missing.
func PriceVolatility(t *Table) []types.VolatilityRow {
	groups := GroupBy(t, ByProduct, ByDescription)

	rows := make([]types.VolatilityRow, 0, len(groups))
	for _, g := range groups {
		mean := g.Mean(UnitPrice)
		std := g.Std(UnitPrice)
		if mean.Valid && g.DistinctValues(UnitPrice) <= 1 {
			std = types.Some(0)
		}

		rows = append(rows, types.VolatilityRow{
			ProductID:   g.Key(0),
			Description: g.Key(1),
			Mean:        mean,
			Std:         std,
			CVPercent:   coefficientOfVariation(mean, std),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return descMissingLast(rows[i].CVPercent, rows[j].CVPercent)
	})
	return rows
}

func coefficientOfVariation(mean, std types.Float) types.Float {
	if !mean.Valid || !std.Valid {
		return types.Missing
	}
	if std.Val == 0 {
		return types.Some(0)
	}
	if mean.Val == 0 {
		return types.Missing
	}
	return types.Some(std.Val / math.Abs(mean.Val) * 100)
}
