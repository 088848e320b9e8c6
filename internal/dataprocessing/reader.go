package dataprocessing

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"salespulse/internal/config"
	"salespulse/pkg/contracts/domain"
)

// ReadWorkbook reads a sales-order export workbook and extracts one
// RawOrderRow per data row. The sheet is located by scanning for a header
// row that carries every required column; column names match exactly after
// trimming whitespace.
func ReadWorkbook(r io.Reader, logger *slog.Logger) ([]domain.RawOrderRow, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var (
		rows       [][]string
		sheetName  string
		headerIdx  int
		columnMap  map[string]int
		sheetFound bool
	)

	for _, name := range f.GetSheetList() {
		testRows, testErr := f.GetRows(name)
		if testErr != nil || len(testRows) == 0 {
			continue
		}
		if idx, cols, ok := findHeaderRow(testRows); ok {
			rows = testRows
			sheetName = name
			headerIdx = idx
			columnMap = cols
			sheetFound = true
			break
		}
	}

	if !sheetFound {
		return nil, fmt.Errorf("no sheet contains the required columns %v", config.RequiredColumns)
	}

	logger.Info("found order data sheet",
		slog.String("sheet_name", sheetName),
		slog.Int("header_row", headerIdx),
		slog.Int("total_rows", len(rows)))

	var orders []domain.RawOrderRow
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		orders = append(orders, domain.RawOrderRow{
			SONumber:       cellAt(row, columnMap[config.ColumnSONumber]),
			CustomerName:   cellAt(row, columnMap[config.ColumnCustomerName]),
			SiteAddress:    cellAt(row, columnMap[config.ColumnSiteAddress]),
			PODate:         cellAt(row, columnMap[config.ColumnPODate]),
			ScheduledDate:  cellAt(row, columnMap[config.ColumnScheduledDate]),
			InvoiceDate:    cellAt(row, columnMap[config.ColumnInvoiceDate]),
			POValue:        cellAt(row, columnMap[config.ColumnPOValue]),
			SuppliedValue:  cellAt(row, columnMap[config.ColumnSuppliedValue]),
			ItemQtyDetails: cellAt(row, columnMap[config.ColumnItemQtyDetails]),
		})
	}

	logger.Info("workbook read complete",
		slog.String("sheet_name", sheetName),
		slog.Int("order_rows", len(orders)))

	return orders, nil
}

// findHeaderRow scans for the first row containing every required column
// and returns its index with a column-name → position map.
func findHeaderRow(rows [][]string) (int, map[string]int, bool) {
	for i, row := range rows {
		if len(row) < len(config.RequiredColumns) {
			continue
		}

		positions := make(map[string]int, len(config.RequiredColumns))
		for col, cell := range row {
			name := strings.TrimSpace(cell)
			if _, seen := positions[name]; !seen {
				positions[name] = col
			}
		}

		complete := true
		for _, required := range config.RequiredColumns {
			if _, ok := positions[required]; !ok {
				complete = false
				break
			}
		}
		if complete {
			return i, positions, true
		}
	}
	return 0, nil, false
}

// cellAt returns the trimmed cell at idx, or "" when the row is ragged.
// excelize omits trailing empty cells, so short rows are normal.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isEmptyRow reports whether every cell in the row is blank.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
