package domain

// KPISet holds the scalar dashboard metrics for one dataset. Every figure
// is defined even over an empty dataset: sums and counts are zero,
// percentages guard their denominators and report zero instead of NaN.
type KPISet struct {
	// TotalSales sums PO value over the deduplicated order table, never
	// over line items.
	TotalSales float64 `json:"total_sales"`
	// TotalOrders counts distinct order numbers.
	TotalOrders int `json:"total_orders"`
	// AvgLeadTimeDays averages lead time over line items with a defined,
	// non-negative lead time.
	AvgLeadTimeDays float64 `json:"avg_lead_time_days"`
	// OnTimePercent is the share of line items classified OnTime.
	OnTimePercent float64 `json:"on_time_percent"`
	// PendingValue sums PO value over orders that have no invoice date.
	PendingValue float64 `json:"pending_value"`
	// TopCustomerSharePercent is the revenue share of the top
	// ceil(20% of customers) customers ranked by total value.
	TopCustomerSharePercent float64 `json:"top_customer_share_percent"`
}

// PeriodValue is one point of a per-period series (month, quarter or year).
type PeriodValue struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// PeriodCount is one point of a per-period count series.
type PeriodCount struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// GrowthPoint is one point of a period-over-period growth series. Growth is
// nil for the first period and wherever the previous period's value is zero.
type GrowthPoint struct {
	Period        string   `json:"period"`
	Value         float64  `json:"value"`
	GrowthPercent *float64 `json:"growth_percent"`
}

// RankedEntry is one row of a top-N ranking. Ties keep input order.
type RankedEntry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ShareSlice is one slice of a revenue-share breakdown (customer or
// region pie). Percent is zero, not NaN, when the total is zero.
type ShareSlice struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// CustomerMix splits the customer base into repeat buyers (more than one
// distinct order) and occasional ones.
type CustomerMix struct {
	Repeat     int `json:"repeat"`
	Occasional int `json:"occasional"`
}

// DormantCustomer is a customer whose last closed-order invoice is older
// than the dormancy threshold.
type DormantCustomer struct {
	CustomerName string `json:"customer_name"`
	DormancyDays int    `json:"dormancy_days"`
	LineItems    int    `json:"line_items"`
}

// HistogramBucket is one fixed-width bin of a day-count distribution.
// Bounds are inclusive at From and exclusive at To, except the last bucket
// which includes its upper bound.
type HistogramBucket struct {
	From  int `json:"from"`
	To    int `json:"to"`
	Count int `json:"count"`
}

// Distribution is a bucketed view over a set of day counts, chart-ready for
// histogram rendering. Values keeps the underlying observations in input
// order so consumers can re-bin.
type Distribution struct {
	Values  []int             `json:"values"`
	Buckets []HistogramBucket `json:"buckets"`
}

// DeliverySplit counts closed orders delivered on or before schedule
// against those delivered late.
type DeliverySplit struct {
	EarlyOrOnTime int `json:"early_or_on_time"`
	Late          int `json:"late"`
}

// RFMEntry is the Recency/Frequency/Monetary triple for one customer.
// Recency is nil for customers with no invoice yet.
type RFMEntry struct {
	CustomerName string   `json:"customer_name"`
	RecencyDays  *int     `json:"recency_days"`
	Frequency    int      `json:"frequency"`
	Monetary     float64  `json:"monetary"`
}

// ParetoEntry is one row of the cumulative revenue-concentration curve,
// customers ordered by descending total value.
type ParetoEntry struct {
	CustomerName      string  `json:"customer_name"`
	Value             float64 `json:"value"`
	CumulativePercent float64 `json:"cumulative_percent"`
}

// ProductDemand is one (month, product) cell of the seasonality matrix.
type ProductDemand struct {
	Period      string  `json:"period"`
	ProductName string  `json:"product_name"`
	OrderedQty  float64 `json:"ordered_qty"`
}

// MoverCategory classifies a product's demand speed against the mean
// demand across products.
type MoverCategory string

const (
	FastMover MoverCategory = "Fast Moving"
	SlowMover MoverCategory = "Slow Moving"
)

// ProductMover is one product with its total demand and speed class.
type ProductMover struct {
	ProductName string        `json:"product_name"`
	OrderedQty  float64       `json:"ordered_qty"`
	Category    MoverCategory `json:"category"`
}

// CapacityView packages the operations-planning aggregates: expected load
// per month, the peak-demand months, per-product capacity requirements and
// the fast/slow movers split.
type CapacityView struct {
	MonthlyLoad     []PeriodValue  `json:"monthly_load"`
	PeakMonths      []PeriodValue  `json:"peak_months"`
	ProductCapacity []RankedEntry  `json:"product_capacity"`
	Movers          []ProductMover `json:"movers"`
}

// RenderConfig carries the chart palette and layout hints for the
// presentation layer. The pipeline never reads it; it exists so renderers
// stay stateless.
type RenderConfig struct {
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	AlertColor     string `json:"alert_color"`
	WarningColor   string `json:"warning_color"`
	AccentColor    string `json:"accent_color"`
	HistogramBins  int    `json:"histogram_bins"`
	TopN           int    `json:"top_n"`
}

// DefaultRenderConfig returns the palette the dashboard ships with.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		PrimaryColor:   "#1f77b4",
		SecondaryColor: "#2ca02c",
		AlertColor:     "#d62728",
		WarningColor:   "#ff7f0e",
		AccentColor:    "#9467bd",
		HistogramBins:  20,
		TopN:           10,
	}
}
