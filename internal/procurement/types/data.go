package types

import (
	"bytes"
	"encoding/json"
	"time"
)

// Column names of the processed purchase order file.
const (
	ColPurchasingGroup = "purchasing_group"
	ColPlant           = "plant"
	ColMaterialGroup   = "material_group"
	ColDescription     = "description"
	ColSupplierID      = "supplier_id"
	ColProductID       = "product_id"
	ColQuantity        = "quantity"
	ColUnitPrice       = "unit_price"
	ColNetValue        = "net_value"
	ColMonth           = "month"
	ColUnit            = "unit"
	ColPurchaseOrderID = "purchase_order_id"
	ColCreatedDate     = "created_date"
	ColStatus          = "status"
)

// ProcessedColumns is the column order of the processed CSV.
var ProcessedColumns = []string{
	ColPurchasingGroup,
	ColPlant,
	ColMaterialGroup,
	ColDescription,
	ColSupplierID,
	ColProductID,
	ColQuantity,
	ColUnitPrice,
	ColNetValue,
	ColMonth,
	ColUnit,
	ColPurchaseOrderID,
	ColCreatedDate,
	ColStatus,
}

// LineItem is one flattened purchase order item. Values are never mutated after
// the table holding them has been built.
type LineItem struct {
	PurchaseOrderID string    `json:"purchase_order_id"`
	ProductID       string    `json:"product_id"`
	SupplierID      string    `json:"supplier_id"`
	PurchasingGroup string    `json:"purchasing_group"`
	Department      string    `json:"department"`
	Plant           string    `json:"plant"`
	MaterialGroup   string    `json:"material_group"`
	CreatedDate     time.Time `json:"created_date"`
	Month           string    `json:"month"`
	Status          string    `json:"status"`
	Quantity        Float     `json:"quantity"`
	UnitPrice       Float     `json:"unit_price"`
	NetValue        Float     `json:"net_value"`
	Unit            string    `json:"unit"`
	Description     string    `json:"description"`
}

// FlexString accepts JSON strings, numbers, booleans and null and keeps their
// textual form. The upstream service is not consistent about quoting.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(b)
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

type RawItem struct {
	ProductID     FlexString `json:"product_id"`
	Description   FlexString `json:"description"`
	Quantity      FlexString `json:"quantity"`
	Unit          FlexString `json:"unit"`
	UnitPrice     FlexString `json:"unit_price"`
	NetValue      FlexString `json:"net_value"`
	MaterialGroup FlexString `json:"material_group"`
}

type RawOrder struct {
	PurchaseOrderID FlexString `json:"purchase_order_id"`
	CreatedDate     FlexString `json:"created_date"`
	Status          FlexString `json:"status"`
	SupplierID      FlexString `json:"supplier_id"`
	Plant           FlexString `json:"plant"`
	PurchasingGroup FlexString `json:"purchasing_group"`
	Items           []RawItem  `json:"items"`
}
