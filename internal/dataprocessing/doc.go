// Package dataprocessing implements the sales-order normalization pipeline:
// reading an uploaded workbook, coercing its semi-structured columns,
// expanding packed item-detail text into line items, deriving temporal and
// status fields, and allocating order revenue across line items.
//
// # Data Flow
//
// The stages run strictly forward, each consuming only the previous
// stage's output:
//
//	Workbook → RawOrderRow → OrderRow → ItemPartial → LineItemRow → Dataset
//
// ReadWorkbook locates the data sheet and maps the header; Normalize
// coerces dates (day-first) and numerics, turning unparseable cells into
// explicit missing values; ExpandRow splits the packed item text into one
// partial per well-formed line; DeriveLineItem fills lead time, schedule
// delay, statuses and temporal buckets; AllocateRevenue and StampDormancy
// are the two full-dataset passes that need every row present.
//
// # Error Policy
//
// One bad cell never aborts a run. Malformed dates and numbers coerce to
// missing, under-specified item lines drop silently, and the only hard
// exclusion is a row with no parseable PO date, which cannot be bucketed.
//
// # Usage
//
//	pipeline := dataprocessing.NewPipeline(cfg.Pipeline, logger)
//	dataset, err := pipeline.Run(ctx, rawRows, time.Now())
package dataprocessing
