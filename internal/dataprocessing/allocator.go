package dataprocessing

import (
	"salespulse/pkg/contracts/domain"
)

// AllocateRevenue splits each order's PO value across its line items in
// proportion to ordered quantity. Per order, allocated values sum back to
// the order's PO value whenever its total quantity is positive; orders
// with zero total quantity allocate zero to every item. Summing raw PO
// value over line items would count an order once per product; this is
// the step that prevents that.
func AllocateRevenue(items []domain.LineItemRow) {
	totalQty := make(map[string]float64)
	for _, li := range items {
		totalQty[li.SONumber] += li.OrderedQty
	}

	for i := range items {
		li := &items[i]
		total := totalQty[li.SONumber]
		if total <= 0 || li.POValue == nil {
			li.AllocatedValue = 0
			continue
		}
		li.AllocatedValue = *li.POValue * (li.OrderedQty / total)
	}
}
