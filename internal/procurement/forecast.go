package procurement

import (
	"sort"
	"time"

	"github.com/farxc/procurement-insights/internal/procurement/smoothing"
	"github.com/farxc/procurement-insights/internal/procurement/types"
)

const (
	// ForecastProducts is how many products, by total quantity, get a forecast.
	ForecastProducts = 5
	// ForecastHorizon is the number of monthly periods projected.
	ForecastHorizon = 3
	// MinForecastHistory is the fewest monthly observations a series needs.
	MinForecastHistory = 3
)

// TopProductsByQuantity returns up to n product ids ordered by total quantity,
// largest first. Equal totals are ordered by product id. Products without any
// quantity are never selected.
func TopProductsByQuantity(t *Table, n int) []string {
	type total struct {
		product string
		qty     float64
	}
	var totals []total
	for _, g := range GroupBy(t, ByProduct) {
		qty, ok := g.Sum(Quantity).Get()
		if !ok || g.Key(0) == "" {
			continue
		}
		totals = append(totals, total{product: g.Key(0), qty: qty})
	}

	// GroupBy already sorted by product id, a stable sort keeps that for ties.
	sort.SliceStable(totals, func(i, j int) bool { return totals[i].qty > totals[j].qty })

	if len(totals) > n {
		totals = totals[:n]
	}
	out := make([]string, len(totals))
	for i, tt := range totals {
		out[i] = tt.product
	}
	return out
}

// MonthlyDemand buckets the quantity of one product into calendar months,
// chronologically. Months without purchases are absent, not zero. Rows with
// no date or no quantity are ignored.
func MonthlyDemand(t *Table, productID string) []types.MonthlyPoint {
	buckets := make(map[time.Time]float64)
	for i := 0; i < t.Len(); i++ {
		it := t.items[i]
		if it.ProductID != productID || it.CreatedDate.IsZero() {
			continue
		}
		qty, ok := it.Quantity.Get()
		if !ok {
			continue
		}
		buckets[monthStart(it.CreatedDate)] += qty
	}

	series := make([]types.MonthlyPoint, 0, len(buckets))
	for m, q := range buckets {
		series = append(series, types.MonthlyPoint{Month: m, Quantity: q})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Month.Before(series[j].Month) })
	return series
}

// DemandForecast projects ForecastHorizon months of demand for the top
// ForecastProducts products. Products with fewer than MinForecastHistory
// months are skipped; an empty result means there was not enough history.
func DemandForecast(t *Table) []types.ForecastRow {
	rows := []types.ForecastRow{}

	for _, product := range TopProductsByQuantity(t, ForecastProducts) {
		history := MonthlyDemand(t, product)
		if len(history) < MinForecastHistory {
			continue
		}

		values := make([]float64, len(history))
		for i, p := range history {
			values[i] = p.Quantity
		}
		model, err := smoothing.Fit(values)
		if err != nil {
			continue
		}

		last := history[len(history)-1].Month
		for i, q := range model.Forecast(ForecastHorizon) {
			month := last.AddDate(0, i+1, 0)
			rows = append(rows, types.ForecastRow{
				ProductID:        product,
				ForecastDate:     monthEnd(month),
				ForecastMonth:    month.Format("2006-01"),
				ForecastQuantity: types.Some(q),
			})
		}
	}
	return rows
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func monthEnd(start time.Time) time.Time {
	return start.AddDate(0, 1, -1)
}
