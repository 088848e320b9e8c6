package dataprocessing

import (
	"fmt"
	"time"

	"salespulse/pkg/contracts/domain"
)

// DeriveLineItem turns an item partial into a line-item row with every
// per-row derived field filled in. The order's PO date must be present;
// rows without one never reach this stage. Dormancy and allocation are
// dataset-wide and stamped later.
func DeriveLineItem(p ItemPartial) domain.LineItemRow {
	order := p.Order
	poDate := *order.PODate

	row := domain.LineItemRow{
		SONumber:      order.SONumber,
		CustomerName:  order.CustomerName,
		SiteAddress:   order.SiteAddress,
		PODate:        poDate,
		ScheduledDate: order.ScheduledDate,
		InvoiceDate:   order.InvoiceDate,
		POValue:       order.POValue,
		SuppliedValue: order.SuppliedValue,

		ProductName: p.ProductName,
		OrderedQty:  p.OrderedQty,
		SuppliedQty: p.SuppliedQty,

		OrderMonth:   MonthBucket(poDate),
		OrderQuarter: QuarterBucket(poDate),
		OrderYear:    poDate.Year(),
	}

	if order.InvoiceDate != nil {
		row.LeadTimeDays = intPtr(wholeDays(poDate, *order.InvoiceDate))
	}
	if order.InvoiceDate != nil && order.ScheduledDate != nil {
		row.ScheduleDelayDays = intPtr(wholeDays(*order.ScheduledDate, *order.InvoiceDate))
	}

	// An order with no invoice yet counts as delayed, not pending; the
	// aggregation layer relies on this two-state policy.
	row.DeliveryStatus = domain.DeliveryDelayed
	if order.InvoiceDate != nil && order.ScheduledDate != nil && !order.InvoiceDate.After(*order.ScheduledDate) {
		row.DeliveryStatus = domain.DeliveryOnTime
	}

	row.OrderStatus = domain.OrderOpen
	if order.InvoiceDate != nil {
		row.OrderStatus = domain.OrderClosed
	}

	if p.OrderedQty > 0 && order.POValue != nil {
		row.AvgOrderValue = *order.POValue / p.OrderedQty
	}

	return row
}

// StampDormancy computes each customer's days since their most recent
// invoice across closed orders and writes it onto every one of the
// customer's line items. Customers with no closed orders keep a nil
// dormancy. The reference time is injected so reruns over identical input
// stay byte-identical.
func StampDormancy(items []domain.LineItemRow, now time.Time) {
	lastInvoice := make(map[string]time.Time)
	for _, li := range items {
		if li.InvoiceDate == nil {
			continue
		}
		if last, ok := lastInvoice[li.CustomerName]; !ok || li.InvoiceDate.After(last) {
			lastInvoice[li.CustomerName] = *li.InvoiceDate
		}
	}

	for i := range items {
		if last, ok := lastInvoice[items[i].CustomerName]; ok {
			items[i].DormancyDays = intPtr(wholeDays(last, now))
		}
	}
}

// MonthBucket formats a date's year-month bucket, e.g. "2025-03".
func MonthBucket(t time.Time) string {
	return t.Format("2006-01")
}

// QuarterBucket formats a date's year-quarter bucket, e.g. "2025Q1".
func QuarterBucket(t time.Time) string {
	quarter := (int(t.Month())-1)/3 + 1
	return fmt.Sprintf("%dQ%d", t.Year(), quarter)
}

// wholeDays is the day difference to - from, truncated to whole days.
// Negative spans stay negative; downstream consumers filter rather than
// clamp them.
func wholeDays(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}

func intPtr(v int) *int {
	return &v
}
