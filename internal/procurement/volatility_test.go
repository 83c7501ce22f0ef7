package procurement

import (
	"testing"

	"github.com/farxc/procurement-insights/internal/procurement/types"
)

func TestPriceVolatility(t *testing.T) {
	tbl := tableOf(
		line{product: "P1", price: 10},
		line{product: "P1", price: 10},
		line{product: "P1", price: 10},
		line{product: "P2", price: 10},
		line{product: "P2", price: 20},
		line{product: "P3", price: 0},
		line{product: "P3", price: 0},
		line{product: "P4", price: -1},
		line{product: "P4", price: 1},
		line{product: "P5", price: 4},
	)

	rows := PriceVolatility(tbl)
	gotOrder := make([]string, len(rows))
	byProduct := make(map[string]types.VolatilityRow)
	for i, r := range rows {
		gotOrder[i] = r.ProductID
		byProduct[r.ProductID] = r
	}

	wantOrder := []string{"P2", "P1", "P3", "P5", "P4"}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("order = %v, want %v", gotOrder, wantOrder)
		}
	}

	assertFloat(t, "P2 mean", byProduct["P2"].Mean, 15)
	assertFloat(t, "P2 std", byProduct["P2"].Std, 7.0710678118654755)
	assertFloat(t, "P2 cv", byProduct["P2"].CVPercent, 47.14045207910317)
	assertFloat(t, "P1 cv", byProduct["P1"].CVPercent, 0)
	assertFloat(t, "P3 cv", byProduct["P3"].CVPercent, 0)
	assertFloat(t, "P5 std", byProduct["P5"].Std, 0)
	assertFloat(t, "P5 cv", byProduct["P5"].CVPercent, 0)
	assertMissing(t, "P4 cv", byProduct["P4"].CVPercent)

	for _, r := range rows {
		if r.CVPercent.Valid && r.CVPercent.Val < 0 {
			t.Errorf("negative CV for %s: %v", r.ProductID, r.CVPercent.Val)
		}
	}
}

func TestPriceVolatilityRepeatedFractionalPrice(t *testing.T) {
	tbl := tableOf(
		line{product: "P1", price: 0.1},
		line{product: "P1", price: 0.1},
		line{product: "P1", price: 0.1},
	)
	assertFloat(t, "cv", PriceVolatility(tbl)[0].CVPercent, 0)
}

func TestPriceVolatilityAllPricesMissing(t *testing.T) {
	items := []types.LineItem{{ProductID: "P1", UnitPrice: types.Missing}}
	row := PriceVolatility(NewTable(items))[0]
	assertMissing(t, "mean", row.Mean)
	assertMissing(t, "cv", row.CVPercent)
}
