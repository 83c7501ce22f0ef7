package procurement

import "github.com/farxc/procurement-insights/internal/procurement/types"

// Table is the immutable record table every view is computed from. It is built
// once and shared by concurrent requests; nothing in this package writes to it
// after NewTable returns.
type Table struct {
	items []types.LineItem
}

// NewTable copies items so later changes to the caller's slice cannot leak in.
func NewTable(items []types.LineItem) *Table {
	owned := make([]types.LineItem, len(items))
	copy(owned, items)
	return &Table{items: owned}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.items)
}

// At returns a copy of row i.
func (t *Table) At(i int) types.LineItem {
	return t.items[i]
}

// Items returns a copy of all rows.
func (t *Table) Items() []types.LineItem {
	out := make([]types.LineItem, t.Len())
	copy(out, t.items)
	return out
}

func (t *Table) all() Group {
	rows := make([]int, t.Len())
	for i := range rows {
		rows[i] = i
	}
	return Group{table: t, rows: rows}
}
