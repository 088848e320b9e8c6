// Package exporter writes the CSV artifacts for a pipeline run.
//
// CSVWriter is the core writer: headers, UTF-8 BOM for Excel
// compatibility, and well-known output locations from config.Paths.
// WriteDataset produces three files per run:
//
//   - line_items.csv: the expanded line-item table with derived fields
//   - order_summary.csv: the deduplicated order table
//   - kpi_report.csv: headline KPI scalars as metric/value pairs
//
// Exports are a convenience copy of what the API serves; failures are
// logged by the caller and never fail an upload.
package exporter
