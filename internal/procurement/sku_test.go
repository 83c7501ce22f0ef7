package procurement

import (
	"reflect"
	"testing"

	"github.com/farxc/procurement-insights/internal/procurement/types"
)

func skuFixture() *Table {
	return tableOf(
		line{department: "A", product: "P1", description: "Bolt", supplier: "S1", qty: 10, price: 2},
		line{department: "A", product: "P1", description: "Bolt", supplier: "S1", qty: 5, price: 3},
		line{department: "B", product: "P1", description: "Bolt", supplier: "S2", qty: 4, price: 1.5},
		line{department: "B", product: "P2", description: "Nut", supplier: "S2", qty: 1, price: 7},
	)
}

func TestSKUAnalysis(t *testing.T) {
	rows := SKUAnalysis(skuFixture())
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Department != "A" || first.ProductID != "P1" || first.SupplierID != "S1" {
		t.Fatalf("unexpected first row: %+v", first)
	}
	assertFloat(t, "quantity", first.QuantityPurchased, 15)
	assertFloat(t, "avg price", first.AvgPricePaid, 2.5)
	assertFloat(t, "best price", first.BestAvailablePrice, 1.5)
	assertFloat(t, "cost above best", first.CostAboveBestPrice, 15)

	for _, r := range rows {
		if c, ok := r.CostAboveBestPrice.Get(); !ok || c < 0 {
			t.Errorf("cost above best price must be non-negative, got %+v for %+v", r.CostAboveBestPrice, r)
		}
	}
}

func TestSKUAnalysisCostNeverNegativeForRepeatedPrices(t *testing.T) {
	tbl := tableOf(
		line{product: "P1", supplier: "S1", qty: 1, price: 0.1},
		line{product: "P1", supplier: "S1", qty: 1, price: 0.1},
		line{product: "P1", supplier: "S1", qty: 1, price: 0.1},
	)
	for _, r := range SKUAnalysis(tbl) {
		if c, ok := r.CostAboveBestPrice.Get(); !ok || c < 0 {
			t.Fatalf("cost above best price = %+v", r.CostAboveBestPrice)
		}
	}
}

func TestFilterSKUAnalysis(t *testing.T) {
	rows := SKUAnalysis(skuFixture())

	tests := []struct {
		name   string
		filter types.SKUFilter
		want   int
	}{
		{name: "department", filter: types.SKUFilter{Departments: []string{"A"}}, want: 1},
		{name: "supplier", filter: types.SKUFilter{Suppliers: []string{"S2"}}, want: 2},
		{name: "threshold", filter: types.SKUFilter{CostThreshold: 10}, want: 1},
		{name: "department and threshold", filter: types.SKUFilter{Departments: []string{"B"}, CostThreshold: 0.5}, want: 0},
		{name: "unknown supplier", filter: types.SKUFilter{Suppliers: []string{"S9"}}, want: 0},
		{name: "several departments", filter: types.SKUFilter{Departments: []string{"A", "B"}}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterSKUAnalysis(rows, tt.filter)
			if len(got) != tt.want {
				t.Errorf("got %d rows, want %d: %+v", len(got), tt.want, got)
			}
		})
	}
}

func TestFilterSKUAnalysisDefaultIsIdentity(t *testing.T) {
	rows := SKUAnalysis(skuFixture())
	if got := FilterSKUAnalysis(rows, types.SKUFilter{}); !reflect.DeepEqual(got, rows) {
		t.Fatalf("default filter changed the table")
	}
}

func TestFilterSKUAnalysisDropsMissingCost(t *testing.T) {
	items := []types.LineItem{
		{Department: "A", ProductID: "P1", SupplierID: "S1", Quantity: types.Missing, UnitPrice: types.Some(2)},
	}
	rows := SKUAnalysis(NewTable(items))
	assertMissing(t, "cost", rows[0].CostAboveBestPrice)

	if got := FilterSKUAnalysis(rows, types.SKUFilter{Departments: []string{"A"}}); len(got) != 0 {
		t.Errorf("row with missing cost passed the threshold: %+v", got)
	}
	if got := FilterSKUAnalysis(rows, types.SKUFilter{}); len(got) != 1 {
		t.Errorf("unfiltered table lost a row")
	}
}
