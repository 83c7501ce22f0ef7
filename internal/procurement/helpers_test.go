package procurement

import (
	"math"
	"testing"
	"time"

	"github.com/farxc/procurement-insights/internal/procurement/types"
)

type line struct {
	po, product, description, supplier, department string
	date                                           string
	qty, price                                     float64
}

func (l line) item() types.LineItem {
	created, _ := time.Parse("2006-01-02", l.date)
	return types.LineItem{
		PurchaseOrderID: l.po,
		ProductID:       l.product,
		Description:     l.description,
		SupplierID:      l.supplier,
		PurchasingGroup: l.department,
		Department:      l.department,
		CreatedDate:     created,
		Month:           created.Format("January"),
		Quantity:        types.Some(l.qty),
		UnitPrice:       types.Some(l.price),
		NetValue:        types.Some(l.qty * l.price),
	}
}

func tableOf(lines ...line) *Table {
	items := make([]types.LineItem, len(lines))
	for i, l := range lines {
		items[i] = l.item()
	}
	return NewTable(items)
}

func assertFloat(t *testing.T, name string, got types.Float, want float64) {
	t.Helper()
	if !got.Valid {
		t.Fatalf("%s is missing, want %v", name, want)
	}
	if math.Abs(got.Val-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got.Val, want)
	}
}

func assertMissing(t *testing.T, name string, got types.Float) {
	t.Helper()
	if got.Valid {
		t.Fatalf("%s = %v, want missing", name, got.Val)
	}
}
