package config

import "time"

// Application constants for the SalesPulse analytics service
const (
	// Application Info
	AppName    = "SalesPulse"
	AppVersion = "1.0.0"

	// Required workbook columns, matched exactly after trimming whitespace.
	ColumnSONumber       = "So_No"
	ColumnCustomerName   = "Customer_Name"
	ColumnSiteAddress    = "Site_Address"
	ColumnPODate         = "Po_Date"
	ColumnScheduledDate  = "Scheduled_Date"
	ColumnInvoiceDate    = "Invoice_Dates"
	ColumnPOValue        = "PO_Value"
	ColumnSuppliedValue  = "Supplied_Value"
	ColumnItemQtyDetails = "Item_Qty_Details"

	// Allocation tolerance: allocated values per order must reproduce the
	// order value within this relative epsilon.
	AllocationEpsilon = 1e-6

	// Item detail lines need at least this many pipe-separated parts to
	// contribute a line item.
	MinItemDetailParts = 4

	// Rate Limiting
	DefaultRateLimit = 100 // requests per minute
	DefaultBurstSize = 50

	// Network Timeouts
	DefaultHTTPTimeout = 30 * time.Second

	// File Paths (relative to executable)
	DefaultDataDir    = "data"
	DefaultLogsDir    = "logs"
	DefaultUploadsDir = "data/uploads"
	DefaultExportsDir = "data/exports"
)

// RequiredColumns lists every column an uploaded workbook must carry, in
// canonical order.
var RequiredColumns = []string{
	ColumnSONumber,
	ColumnCustomerName,
	ColumnSiteAddress,
	ColumnPODate,
	ColumnScheduledDate,
	ColumnInvoiceDate,
	ColumnPOValue,
	ColumnSuppliedValue,
	ColumnItemQtyDetails,
}
