package procurement

import (
	"testing"

	"github.com/farxc/procurement-insights/internal/procurement/types"
)

func kpiMap(kpis []types.KPI) map[string]types.KPI {
	m := make(map[string]types.KPI, len(kpis))
	for _, k := range kpis {
		m[k.Label] = k
	}
	return m
}

func TestKPIsTwoSupplierExample(t *testing.T) {
	tbl := tableOf(
		line{po: "PO1", product: "P1", supplier: "S1", qty: 1, price: 10},
		line{po: "PO2", product: "P1", supplier: "S2", qty: 1, price: 20},
	)

	kpis := KPIs(tbl)
	wantOrder := []string{KPITotalSpend, KPIPotentialSavings, KPITotalPurchaseOrders, KPIActiveSuppliers, KPIFragmentedSKUs, KPIFragmentationRate}
	if len(kpis) != len(wantOrder) {
		t.Fatalf("expected %d KPIs, got %d", len(wantOrder), len(kpis))
	}
	for i, label := range wantOrder {
		if kpis[i].Label != label {
			t.Errorf("KPI %d = %q, want %q", i, kpis[i].Label, label)
		}
	}

	want := map[string]string{
		KPITotalSpend:          "$30.00",
		KPIPotentialSavings:    "$10.00",
		KPITotalPurchaseOrders: "2",
		KPIActiveSuppliers:     "2",
		KPIFragmentedSKUs:      "1",
		KPIFragmentationRate:   "100.00%",
	}
	got := kpiMap(kpis)
	for label, value := range want {
		if got[label].Value != value {
			t.Errorf("%s = %q, want %q", label, got[label].Value, value)
		}
	}
	assertFloat(t, "raw savings", got[KPIPotentialSavings].Raw, 10)
}

func TestKPIsEmptyTable(t *testing.T) {
	got := kpiMap(KPIs(NewTable(nil)))

	if got[KPIFragmentationRate].Value != NotAvailable {
		t.Errorf("fragmentation rate = %q, want %q", got[KPIFragmentationRate].Value, NotAvailable)
	}
	assertMissing(t, "fragmentation rate", got[KPIFragmentationRate].Raw)
	if got[KPIFragmentedSKUs].Value != "0" {
		t.Errorf("fragmented SKUs = %q, want 0", got[KPIFragmentedSKUs].Value)
	}
}

func TestKPIsFormatting(t *testing.T) {
	tbl := tableOf(
		line{po: "PO1", product: "P1", supplier: "S1", qty: 1000, price: 1234.567891},
	)
	got := kpiMap(KPIs(tbl))

	if v := got[KPITotalSpend].Value; v != "$1,234,567.89" {
		t.Errorf("total spend = %q, want $1,234,567.89", v)
	}
	if v := got[KPIFragmentationRate].Value; v != "0.00%" {
		t.Errorf("fragmentation rate = %q, want 0.00%%", v)
	}
}

func TestPotentialSavingsCountsEveryTransaction(t *testing.T) {
	tbl := tableOf(
		line{product: "P1", supplier: "S1", qty: 2, price: 5},
		line{product: "P1", supplier: "S2", qty: 3, price: 7},
		line{product: "P1", supplier: "S2", qty: 1, price: 7},
		line{product: "P2", supplier: "S3", qty: 10, price: 1},
	)
	// (7-5)*3 + (7-5)*1
	assertFloat(t, "savings", PotentialSavings(tbl), 8)
}

func TestFragmentationInvariants(t *testing.T) {
	tbl := tableOf(
		line{product: "P1", supplier: "S1"},
		line{product: "P1", supplier: "S2"},
		line{product: "P2", supplier: "S1"},
		line{product: "P3", supplier: "S1"},
		line{product: "P3", supplier: "S3"},
	)
	fragmented, products := FragmentedSKUs(tbl)
	if fragmented != 2 || products != 3 {
		t.Fatalf("FragmentedSKUs = (%d, %d), want (2, 3)", fragmented, products)
	}

	rate := kpiMap(KPIs(tbl))[KPIFragmentationRate].Raw
	if !rate.Valid || rate.Val < 0 || rate.Val > 100 {
		t.Fatalf("fragmentation rate out of range: %+v", rate)
	}
	if got := kpiMap(KPIs(tbl))[KPIFragmentationRate].Value; got != "66.67%" {
		t.Errorf("fragmentation rate = %q, want 66.67%%", got)
	}
}
