package domain

import (
	"time"
)

// RawOrderRow is one sales-order record exactly as read from the uploaded
// workbook, before any type coercion. Every field is the raw cell text.
// Order numbers are not guaranteed unique in the input; deduplication
// happens when the order summary table is built.
type RawOrderRow struct {
	SONumber       string `json:"so_no"`
	CustomerName   string `json:"customer_name"`
	SiteAddress    string `json:"site_address"`
	PODate         string `json:"po_date"`
	ScheduledDate  string `json:"scheduled_date"`
	InvoiceDate    string `json:"invoice_dates"`
	POValue        string `json:"po_value"`
	SuppliedValue  string `json:"supplied_value"`
	ItemQtyDetails string `json:"item_qty_details"`
}

// OrderRow is a RawOrderRow after field normalization. Dates use day-first
// interpretation; unparseable cells become nil (dates) or nil (values) so a
// single malformed cell never poisons the rest of the row. A nil PODate
// excludes the row from every downstream stage.
type OrderRow struct {
	SONumber      string     `json:"so_no"`
	CustomerName  string     `json:"customer_name"`
	SiteAddress   string     `json:"site_address"`
	PODate        *time.Time `json:"po_date"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	InvoiceDate   *time.Time `json:"invoice_date"`
	POValue       *float64   `json:"po_value"`
	SuppliedValue *float64   `json:"supplied_value"`
	ItemDetails   string     `json:"item_qty_details"`
}

// POValueOrZero returns the order value, treating a missing value as zero
// so sums over partially malformed inputs stay defined.
func (o OrderRow) POValueOrZero() float64 {
	if o.POValue == nil {
		return 0
	}
	return *o.POValue
}

// IsClosed reports whether the order has been invoiced. Order status is
// determined solely by invoice-date presence.
func (o OrderRow) IsClosed() bool {
	return o.InvoiceDate != nil
}

// DeliveryStatus classifies a line item as delivered on schedule or not.
type DeliveryStatus string

const (
	// DeliveryOnTime means the invoice date exists and does not exceed the
	// scheduled date.
	DeliveryOnTime DeliveryStatus = "OnTime"
	// DeliveryDelayed covers every other case, including orders that have
	// no invoice yet. Uninvoiced orders count as delayed, not pending.
	DeliveryDelayed DeliveryStatus = "Delayed"
)

// OrderStatus tracks whether an order has been invoiced.
type OrderStatus string

const (
	OrderOpen   OrderStatus = "Open"
	OrderClosed OrderStatus = "Closed"
)

// LineItemRow is the fully derived line-item record: one row per
// (order, product) pair produced by expanding an order's packed item text.
// Rows are built once per pipeline run and never mutated afterwards.
type LineItemRow struct {
	SONumber      string     `json:"so_no"`
	CustomerName  string     `json:"customer_name"`
	SiteAddress   string     `json:"site_address"`
	PODate        time.Time  `json:"po_date"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	InvoiceDate   *time.Time `json:"invoice_date"`
	POValue       *float64   `json:"po_value"`
	SuppliedValue *float64   `json:"supplied_value"`

	ProductName string  `json:"product_name"`
	OrderedQty  float64 `json:"ordered_qty"`
	SuppliedQty float64 `json:"supplied_qty"`

	// Day differences truncate toward zero and may be negative (invoice
	// before PO). Nil when an input date is missing.
	LeadTimeDays      *int           `json:"lead_time_days"`
	ScheduleDelayDays *int           `json:"schedule_delay_days"`
	DeliveryStatus    DeliveryStatus `json:"delivery_status"`
	OrderStatus       OrderStatus    `json:"order_status"`

	// Temporal buckets derive from the PO date only, never the invoice.
	OrderMonth   string `json:"order_month"`   // "2006-01"
	OrderQuarter string `json:"order_quarter"` // "2006Q1"
	OrderYear    int    `json:"order_year"`

	// DormancyDays is a per-customer figure stamped onto each of the
	// customer's rows: days from the run's reference time back to the
	// customer's most recent invoice over closed orders. Nil when the
	// customer has no closed orders.
	DormancyDays *int `json:"dormancy_days"`

	// AvgOrderValue is PO value per ordered unit for this line, zero when
	// the line quantity is zero.
	AvgOrderValue float64 `json:"avg_order_value"`

	// AllocatedValue is this line's proportional share of its order's PO
	// value. Per order, allocated values sum back to the order value
	// whenever the order's total quantity is positive.
	AllocatedValue float64 `json:"allocated_value"`
}

// POValueOrZero returns the order value carried on this line, or zero when
// the source cell was unparseable.
func (li LineItemRow) POValueOrZero() float64 {
	if li.POValue == nil {
		return 0
	}
	return *li.POValue
}

// OrderSummaryRow is one row per unique order number, deduplicated from the
// normalized input (first occurrence wins). Order-level sums (total sales,
// pending value, order counts) always come from this table so splitting an
// order into line items can never inflate them.
type OrderSummaryRow struct {
	SONumber      string     `json:"so_no"`
	CustomerName  string     `json:"customer_name"`
	SiteAddress   string     `json:"site_address"`
	PODate        time.Time  `json:"po_date"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	InvoiceDate   *time.Time `json:"invoice_date"`
	POValue       *float64   `json:"po_value"`
	SuppliedValue *float64   `json:"supplied_value"`
	LineItemCount int        `json:"line_item_count"`
}

// POValueOrZero returns the order value, or zero when missing.
func (o OrderSummaryRow) POValueOrZero() float64 {
	if o.POValue == nil {
		return 0
	}
	return *o.POValue
}

// IsClosed reports whether the order has been invoiced.
func (o OrderSummaryRow) IsClosed() bool {
	return o.InvoiceDate != nil
}

// Dataset is the complete result of one pipeline run: the deduplicated
// order table, the expanded line-item table, and the reference time the run
// used for age-based metrics. Running the pipeline twice over identical
// input with the same reference time yields identical datasets.
type Dataset struct {
	RunID       string            `json:"run_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Orders      []OrderSummaryRow `json:"orders"`
	LineItems   []LineItemRow     `json:"line_items"`

	// SourceRows counts raw rows read from the workbook; DroppedRows counts
	// those excluded for lacking a parseable PO date.
	SourceRows  int `json:"source_rows"`
	DroppedRows int `json:"dropped_rows"`
}
