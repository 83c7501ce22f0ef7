package procurement

import "github.com/farxc/procurement-insights/internal/procurement/types"

const (
	KPITotalSpend          = "Total Spend"
	KPIPotentialSavings    = "Potential Savings"
	KPITotalPurchaseOrders = "Total Purchase Orders"
	KPIActiveSuppliers     = "Total Active Suppliers"
	KPIFragmentedSKUs      = "Fragmented SKUs"
	KPIFragmentationRate   = "Fragmentation Rate (%)"
)

// KPIs computes the headline metrics in display order.
func KPIs(t *Table) []types.KPI {
	all := t.all()
	f := newFormatter()

	totalSpend := all.Sum(NetValue)
	savings := PotentialSavings(t)
	orders := all.NUnique(ByPurchaseOrder)
	suppliers := all.NUnique(BySupplier)
	fragmented, products := FragmentedSKUs(t)

	rate := types.Missing
	if products > 0 {
		rate = types.Some(float64(fragmented) / float64(products) * 100)
	}

	return []types.KPI{
		{Label: KPITotalSpend, Value: f.money(totalSpend), Raw: totalSpend},
		{Label: KPIPotentialSavings, Value: f.money(savings), Raw: savings},
		{Label: KPITotalPurchaseOrders, Value: f.count(orders), Raw: types.Some(float64(orders))},
		{Label: KPIActiveSuppliers, Value: f.count(suppliers), Raw: types.Some(float64(suppliers))},
		{Label: KPIFragmentedSKUs, Value: f.count(fragmented), Raw: types.Some(float64(fragmented))},
		{Label: KPIFragmentationRate, Value: f.percent(rate), Raw: rate},
	}
}

// PotentialSavings sums, over every row, what was paid above the cheapest price
// ever observed for the row's product. A product bought many times above its
// best price contributes once per transaction.
func PotentialSavings(t *Table) types.Float {
	best := MinBy(t, ByProduct, UnitPrice)
	all := t.all()

	overpayment := func(it types.LineItem) types.Float {
		diff := nonNegative(sub(it.UnitPrice, best[it.ProductID]), it.UnitPrice.Val)
		return mul(diff, it.Quantity)
	}
	return all.Sum(overpayment)
}

// FragmentedSKUs returns how many products are bought from more than one
// supplier, and the number of distinct products.
func FragmentedSKUs(t *Table) (fragmented, products int) {
	for _, g := range GroupBy(t, ByProduct) {
		if g.Key(0) == "" {
			continue
		}
		products++
		if g.NUnique(BySupplier) > 1 {
			fragmented++
		}
	}
	return fragmented, products
}
