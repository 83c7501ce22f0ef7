package converter

import (
	"strconv"
	"time"

	"github.com/farxc/procurement-insights/internal/procurement/types"
	"github.com/farxc/procurement-insights/internal/procurement/utils"
	"github.com/farxc/procurement-insights/internal/store"
	"github.com/go-gota/gota/dataframe"
)

// MonthLayout is the month written to the processed file and the store.
const MonthLayout = "2006-01"

// DfRowToLineItem reads one row of a processed dataframe. Department mirrors
// the purchasing group and Month is rewritten to the English month name of
// the creation date.
func DfRowToLineItem(df dataframe.DataFrame, rowIdx int) types.LineItem {
	created := utils.ParseDate(utils.GetStr(types.ColCreatedDate, rowIdx, &df))
	group := utils.GetStr(types.ColPurchasingGroup, rowIdx, &df)

	return types.LineItem{
		PurchaseOrderID: utils.GetStr(types.ColPurchaseOrderID, rowIdx, &df),
		ProductID:       utils.GetStr(types.ColProductID, rowIdx, &df),
		SupplierID:      utils.GetStr(types.ColSupplierID, rowIdx, &df),
		PurchasingGroup: group,
		Department:      group,
		Plant:           utils.GetStr(types.ColPlant, rowIdx, &df),
		MaterialGroup:   utils.GetStr(types.ColMaterialGroup, rowIdx, &df),
		CreatedDate:     created,
		Month:           monthName(created),
		Status:          utils.GetStr(types.ColStatus, rowIdx, &df),
		Quantity:        utils.GetFloat(types.ColQuantity, rowIdx, &df),
		UnitPrice:       utils.GetFloat(types.ColUnitPrice, rowIdx, &df),
		NetValue:        utils.GetFloat(types.ColNetValue, rowIdx, &df),
		Unit:            utils.GetStr(types.ColUnit, rowIdx, &df),
		Description:     utils.GetStr(types.ColDescription, rowIdx, &df),
	}
}

// DataFrameToLineItems converts every row of df.
func DataFrameToLineItems(df dataframe.DataFrame) []types.LineItem {
	items := make([]types.LineItem, df.Nrow())
	for i := range items {
		items[i] = DfRowToLineItem(df, i)
	}
	return items
}

// LineItemToRecord renders an item in types.ProcessedColumns order.
func LineItemToRecord(it types.LineItem) []string {
	created, month := "", ""
	if !it.CreatedDate.IsZero() {
		created = it.CreatedDate.Format(time.RFC3339)
		month = it.CreatedDate.Format(MonthLayout)
	}

	values := map[string]string{
		types.ColPurchasingGroup: it.PurchasingGroup,
		types.ColPlant:           it.Plant,
		types.ColMaterialGroup:   it.MaterialGroup,
		types.ColDescription:     it.Description,
		types.ColSupplierID:      it.SupplierID,
		types.ColProductID:       it.ProductID,
		types.ColQuantity:        formatFloat(it.Quantity),
		types.ColUnitPrice:       formatFloat(it.UnitPrice),
		types.ColNetValue:        formatFloat(it.NetValue),
		types.ColMonth:           month,
		types.ColUnit:            it.Unit,
		types.ColPurchaseOrderID: it.PurchaseOrderID,
		types.ColCreatedDate:     created,
		types.ColStatus:          it.Status,
	}

	record := make([]string, len(types.ProcessedColumns))
	for i, col := range types.ProcessedColumns {
		record[i] = values[col]
	}
	return record
}

// LineItemToStore maps an item to its table row. Batch bookkeeping is left to
// the store.
func LineItemToStore(it types.LineItem) store.PurchaseOrderLine {
	created, month := "", ""
	if !it.CreatedDate.IsZero() {
		created = it.CreatedDate.Format(time.RFC3339)
		month = it.CreatedDate.Format(MonthLayout)
	}
	return store.PurchaseOrderLine{
		PurchaseOrderID: it.PurchaseOrderID,
		ProductID:       it.ProductID,
		SupplierID:      it.SupplierID,
		PurchasingGroup: it.PurchasingGroup,
		Plant:           it.Plant,
		MaterialGroup:   it.MaterialGroup,
		Description:     it.Description,
		Unit:            it.Unit,
		Status:          it.Status,
		CreatedDate:     created,
		Month:           month,
		Quantity:        it.Quantity,
		UnitPrice:       it.UnitPrice,
		NetValue:        it.NetValue,
	}
}

// StoreToLineItem applies the same derivations as DfRowToLineItem.
func StoreToLineItem(l store.PurchaseOrderLine) types.LineItem {
	created := utils.ParseDate(l.CreatedDate)
	return types.LineItem{
		PurchaseOrderID: l.PurchaseOrderID,
		ProductID:       l.ProductID,
		SupplierID:      l.SupplierID,
		PurchasingGroup: l.PurchasingGroup,
		Department:      l.PurchasingGroup,
		Plant:           l.Plant,
		MaterialGroup:   l.MaterialGroup,
		CreatedDate:     created,
		Month:           monthName(created),
		Status:          l.Status,
		Quantity:        l.Quantity,
		UnitPrice:       l.UnitPrice,
		NetValue:        l.NetValue,
		Unit:            l.Unit,
		Description:     l.Description,
	}
}

func monthName(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January")
}

func formatFloat(f types.Float) string {
	v, ok := f.Get()
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
