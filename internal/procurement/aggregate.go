package procurement

import (
	"math"
	"sort"

	"github.com/farxc/procurement-insights/internal/procurement/types"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Dimension extracts a grouping key from a row. The empty string is the null
// key and forms its own group.
type Dimension func(types.LineItem) string

// Measure extracts a numeric value from a row.
type Measure func(types.LineItem) types.Float

var (
	ByPurchaseOrder Dimension = func(it types.LineItem) string { return it.PurchaseOrderID }
	ByProduct       Dimension = func(it types.LineItem) string { return it.ProductID }
	BySupplier      Dimension = func(it types.LineItem) string { return it.SupplierID }
	ByDepartment    Dimension = func(it types.LineItem) string { return it.Department }
	ByPlant         Dimension = func(it types.LineItem) string { return it.Plant }
	ByMaterialGroup Dimension = func(it types.LineItem) string { return it.MaterialGroup }
	ByDescription   Dimension = func(it types.LineItem) string { return it.Description }

	Quantity  Measure = func(it types.LineItem) types.Float { return it.Quantity }
	UnitPrice Measure = func(it types.LineItem) types.Float { return it.UnitPrice }
	NetValue  Measure = func(it types.LineItem) types.Float { return it.NetValue }
)

// Group is a set of row indexes sharing the same key values.
type Group struct {
	Keys  []string
	table *Table
	rows  []int
}

// GroupBy partitions the table by the given dimensions. Groups come back
// sorted by their keys so every view has a stable row order.
func GroupBy(t *Table, dims ...Dimension) []Group {
	return t.all().GroupBy(dims...)
}

// GroupBy partitions the rows of g.
func (g Group) GroupBy(dims ...Dimension) []Group {
	index := make(map[string]int)
	var groups []Group

	for _, r := range g.rows {
		it := g.table.items[r]
		keys := make([]string, len(dims))
		for i, d := range dims {
			keys[i] = d(it)
		}
		id := joinKeys(keys)
		pos, ok := index[id]
		if !ok {
			pos = len(groups)
			index[id] = pos
			groups = append(groups, Group{Keys: keys, table: g.table})
		}
		groups[pos].rows = append(groups[pos].rows, r)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return lessKeys(groups[i].Keys, groups[j].Keys)
	})
	return groups
}

func joinKeys(keys []string) string {
	n := 0
	for _, k := range keys {
		n += len(k) + 1
	}
	b := make([]byte, 0, n)
	for _, k := range keys {
		b = append(b, k...)
		b = append(b, 0)
	}
	return string(b)
}

func lessKeys(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Key returns the i-th key value of the group.
func (g Group) Key(i int) string {
	return g.Keys[i]
}

// Len is the number of rows in the group.
func (g Group) Len() int {
	return len(g.rows)
}

// Each calls fn for every row of the group in table order.
func (g Group) Each(fn func(types.LineItem)) {
	for _, r := range g.rows {
		fn(g.table.items[r])
	}
}

// values collects the non-missing values of m.
func (g Group) values(m Measure) []float64 {
	out := make([]float64, 0, len(g.rows))
	for _, r := range g.rows {
		if v, ok := m(g.table.items[r]).Get(); ok {
			out = append(out, v)
		}
	}
	return out
}

// Sum adds the non-missing values of m. A group with no values sums to Missing.
func (g Group) Sum(m Measure) types.Float {
	vals := g.values(m)
	if len(vals) == 0 {
		return types.Missing
	}
	return types.Some(floats.Sum(vals))
}

// Mean averages the non-missing values of m.
func (g Group) Mean(m Measure) types.Float {
	vals := g.values(m)
	if len(vals) == 0 {
		return types.Missing
	}
	return types.Some(stat.Mean(vals, nil))
}

// Std is the sample standard deviation of the non-missing values of m. It needs
// at least two values.
func (g Group) Std(m Measure) types.Float {
	vals := g.values(m)
	if len(vals) < 2 {
		return types.Missing
	}
	return types.Some(stat.StdDev(vals, nil))
}

// Min is the smallest non-missing value of m.
func (g Group) Min(m Measure) types.Float {
	vals := g.values(m)
	if len(vals) == 0 {
		return types.Missing
	}
	return types.Some(floats.Min(vals))
}

// NUnique counts distinct non-null values of d.
func (g Group) NUnique(d Dimension) int {
	seen := make(map[string]struct{})
	for _, r := range g.rows {
		if k := d(g.table.items[r]); k != "" {
			seen[k] = struct{}{}
		}
	}
	return len(seen)
}

// DistinctValues counts distinct non-missing values of m.
func (g Group) DistinctValues(m Measure) int {
	seen := make(map[float64]struct{})
	for _, v := range g.values(m) {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// MinBy builds a per-key lookup of the minimum of m, e.g. the best observed
// price of every product.
func MinBy(t *Table, d Dimension, m Measure) map[string]types.Float {
	out := make(map[string]types.Float)
	for _, g := range GroupBy(t, d) {
		out[g.Key(0)] = g.Min(m)
	}
	return out
}

// mul multiplies two values; the result is missing when either side is.
func mul(a, b types.Float) types.Float {
	if !a.Valid || !b.Valid {
		return types.Missing
	}
	return types.Some(a.Val * b.Val)
}

func sub(a, b types.Float) types.Float {
	if !a.Valid || !b.Valid {
		return types.Missing
	}
	return types.Some(a.Val - b.Val)
}

// descMissingLast orders a before b when a is larger; missing values sort last.
func descMissingLast(a, b types.Float) bool {
	if a.Valid != b.Valid {
		return a.Valid
	}
	return a.Valid && a.Val > b.Val
}

// nonNegative clears rounding noise from a difference that is non-negative by
// construction, such as an average minus the minimum it was drawn from. scale is
// the magnitude of the operands.
func nonNegative(diff types.Float, scale float64) types.Float {
	if diff.Valid && diff.Val < 0 && diff.Val > -1e-9*math.Max(1, math.Abs(scale)) {
		return types.Some(0)
	}
	return diff
}
