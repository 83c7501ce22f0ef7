package clean

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/farxc/procurement-insights/internal/procurement/types"
	"github.com/farxc/procurement-insights/internal/procurement/utils"
)

// OrdersKey is preferred when the raw document wraps several lists.
const OrdersKey = "purchase_orders"

var ErrNoOrders = errors.New("raw document holds no purchase order list")

// DecodeOrders reads the raw purchase order document. It is either a bare list
// of orders or an object wrapping that list: its only key, else OrdersKey,
// else the first key in sorted order.
func DecodeOrders(r io.Reader) ([]types.RawOrder, error) {
	var doc json.RawMessage
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode raw orders: %w", err)
	}

	doc = bytes.TrimSpace(doc)
	if len(doc) == 0 {
		return nil, ErrNoOrders
	}

	list := doc
	if doc[0] == '{' {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(doc, &wrapper); err != nil {
			return nil, fmt.Errorf("failed to decode raw orders: %w", err)
		}
		key, ok := ordersKey(wrapper)
		if !ok {
			return nil, ErrNoOrders
		}
		list = wrapper[key]
	}

	var orders []types.RawOrder
	if err := json.Unmarshal(list, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode purchase order list: %w", err)
	}
	return orders, nil
}

func ordersKey(wrapper map[string]json.RawMessage) (string, bool) {
	if len(wrapper) == 0 {
		return "", false
	}
	if _, ok := wrapper[OrdersKey]; ok {
		return OrdersKey, true
	}
	keys := make([]string, 0, len(wrapper))
	for k := range wrapper {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0], true
}

// Flatten emits one line item per order item, carrying the order context.
// Dates and measures that cannot be parsed become unknown.
func Flatten(orders []types.RawOrder) []types.LineItem {
	var items []types.LineItem
	for _, o := range orders {
		created := utils.ParseDate(o.CreatedDate.String())
		month := ""
		if !created.IsZero() {
			month = created.Format("January")
		}
		group := utils.CleanString(o.PurchasingGroup.String())

		for _, it := range o.Items {
			items = append(items, types.LineItem{
				PurchaseOrderID: utils.CleanString(o.PurchaseOrderID.String()),
				ProductID:       utils.CleanString(it.ProductID.String()),
				SupplierID:      utils.CleanString(o.SupplierID.String()),
				PurchasingGroup: group,
				Department:      group,
				Plant:           utils.CleanString(o.Plant.String()),
				MaterialGroup:   utils.CleanString(it.MaterialGroup.String()),
				CreatedDate:     created,
				Month:           month,
				Status:          utils.CleanString(o.Status.String()),
				Quantity:        utils.ParseFloat(it.Quantity.String()),
				UnitPrice:       utils.ParseFloat(it.UnitPrice.String()),
				NetValue:        utils.ParseFloat(it.NetValue.String()),
				Unit:            utils.CleanString(it.Unit.String()),
				Description:     utils.CleanString(it.Description.String()),
			})
		}
	}
	return items
}
