package dataprocessing

import (
	"strconv"
	"strings"
	"time"

	"salespulse/pkg/contracts/domain"
)

// dateLayouts are the accepted date formats, day-first variants before
// anything ambiguous. "02-01-2006" parses 03-04-2025 as 3 April, matching
// the export's day-first convention.
var dateLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"2-1-2006",
	"2/1/2006",
	"02.01.2006",
	"2006-01-02",
	"02-01-2006 15:04:05",
	"02/01/2006 15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// NormalizeRow coerces one raw row's date and numeric columns. Unparseable
// cells become nil so one malformed cell never prevents the rest of the
// row from being used; callers decide what a missing value means.
func NormalizeRow(raw domain.RawOrderRow) domain.OrderRow {
	return domain.OrderRow{
		SONumber:      raw.SONumber,
		CustomerName:  raw.CustomerName,
		SiteAddress:   raw.SiteAddress,
		PODate:        parseDate(raw.PODate),
		ScheduledDate: parseDate(raw.ScheduledDate),
		InvoiceDate:   parseDate(raw.InvoiceDate),
		POValue:       parseFloat(raw.POValue),
		SuppliedValue: parseFloat(raw.SuppliedValue),
		ItemDetails:   raw.ItemQtyDetails,
	}
}

// Normalize coerces every raw row. Row count is preserved; the PO-date
// filter is applied later by the pipeline.
func Normalize(raw []domain.RawOrderRow) []domain.OrderRow {
	rows := make([]domain.OrderRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, NormalizeRow(r))
	}
	return rows
}

// parseDate tries each accepted layout with day-first interpretation and
// returns nil when none matches.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// parseFloat coerces a monetary or quantity cell, tolerating thousands
// separators and surrounding whitespace. Returns nil when unparseable.
func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
