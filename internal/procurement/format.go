package procurement

import (
	"github.com/farxc/procurement-insights/internal/procurement/types"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotAvailable is the display text of a missing KPI.
const NotAvailable = "N/A"

type formatter struct {
	p *message.Printer
}

func newFormatter() formatter {
	return formatter{p: message.NewPrinter(language.English)}
}

// round2 rounds half away from zero on the decimal representation, so 1.005
// becomes 1.01 rather than the binary float's 1.00.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func (f formatter) money(v types.Float) string {
	if !v.Valid {
		return NotAvailable
	}
	return f.p.Sprintf("$%.2f", round2(v.Val))
}

func (f formatter) percent(v types.Float) string {
	if !v.Valid {
		return NotAvailable
	}
	return f.p.Sprintf("%.2f%%", round2(v.Val))
}

func (f formatter) count(n int) string {
	return f.p.Sprintf("%d", n)
}
