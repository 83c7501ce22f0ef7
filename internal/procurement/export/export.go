package export

import (
	"fmt"
	"io"

	"github.com/farxc/procurement-insights/internal/procurement/types"
	"github.com/xuri/excelize/v2"
)

const (
	SKUSheet    = "SKU Analysis"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var skuHeader = []interface{}{
	"Department",
	"Product ID",
	"Description",
	"Supplier ID",
	"Quantity Purchased",
	"Avg Price Paid",
	"Best Available Price",
	"Cost Above Best Price",
}

// WriteSKUAnalysis writes rows as a single sheet workbook to w. Missing
// numbers are left as empty cells.
func WriteSKUAnalysis(w io.Writer, rows []types.SKUAnalysisRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SKUSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(SKUSheet)
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}
	if err := sw.SetColWidth(1, len(skuHeader), 20); err != nil {
		return err
	}

	header := make([]interface{}, len(skuHeader))
	for i, h := range skuHeader {
		header[i] = excelize.Cell{StyleID: bold, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			r.Department,
			r.ProductID,
			r.Description,
			r.SupplierID,
			number(r.QuantityPurchased, 0),
			number(r.AvgPricePaid, money),
			number(r.BestAvailablePrice, money),
			number(r.CostAboveBestPrice, money),
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func number(v types.Float, style int) interface{} {
	f, ok := v.Get()
	if !ok {
		return nil
	}
	if style == 0 {
		return f
	}
	return excelize.Cell{StyleID: style, Value: f}
}
