package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/config"
	"salespulse/pkg/contracts/domain"
)

func tempPaths(t *testing.T) *config.Paths {
	t.Helper()
	dir := t.TempDir()
	exports := filepath.Join(dir, "exports")
	return &config.Paths{
		ExecutableDir:   dir,
		DataDir:         dir,
		UploadsDir:      filepath.Join(dir, "uploads"),
		ExportsDir:      exports,
		LogsDir:         filepath.Join(dir, "logs"),
		LineItemsCSV:    filepath.Join(exports, "line_items.csv"),
		OrderSummaryCSV: filepath.Join(exports, "order_summary.csv"),
		KPIReportCSV:    filepath.Join(exports, "kpi_report.csv"),
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Strip the BOM before parsing.
	text := strings.TrimPrefix(string(data), "\xEF\xBB\xBF")
	records, err := csv.NewReader(strings.NewReader(text)).ReadAll()
	require.NoError(t, err)
	return records
}

func sampleDataset() *domain.Dataset {
	poDate := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	invoice := time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC)
	value := 1000.0
	lead := 7

	return &domain.Dataset{
		RunID:       "run-1",
		GeneratedAt: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		Orders: []domain.OrderSummaryRow{
			{
				SONumber:      "SO-1",
				CustomerName:  "Acme",
				SiteAddress:   "North Plant",
				PODate:        poDate,
				InvoiceDate:   &invoice,
				POValue:       &value,
				LineItemCount: 1,
			},
		},
		LineItems: []domain.LineItemRow{
			{
				SONumber:       "SO-1",
				CustomerName:   "Acme",
				SiteAddress:    "North Plant",
				PODate:         poDate,
				InvoiceDate:    &invoice,
				POValue:        &value,
				ProductName:    "Widget A",
				OrderedQty:     75,
				SuppliedQty:    75,
				LeadTimeDays:   &lead,
				DeliveryStatus: domain.DeliveryOnTime,
				OrderStatus:    domain.OrderClosed,
				OrderMonth:     "2025-01",
				OrderQuarter:   "2025Q1",
				OrderYear:      2025,
				AvgOrderValue:  13.33,
				AllocatedValue: 1000,
			},
		},
	}
}

func TestWriteDatasetProducesAllArtifacts(t *testing.T) {
	paths := tempPaths(t)
	w := NewCSVWriter(paths)

	kpis := domain.KPISet{TotalSales: 1000, TotalOrders: 1, OnTimePercent: 100}
	require.NoError(t, w.WriteDataset(sampleDataset(), kpis))

	lineItems := readCSV(t, paths.LineItemsCSV)
	require.Len(t, lineItems, 2)
	assert.Equal(t, lineItemHeaders, lineItems[0])
	assert.Equal(t, "SO-1", lineItems[1][0])
	assert.Equal(t, "2025-01-01", lineItems[1][3])
	assert.Equal(t, "", lineItems[1][4], "missing scheduled date exports empty")
	assert.Equal(t, "7", lineItems[1][9])
	assert.Equal(t, "OnTime", lineItems[1][11])
	assert.Equal(t, "1000.00", lineItems[1][18])

	orders := readCSV(t, paths.OrderSummaryCSV)
	require.Len(t, orders, 2)
	assert.Equal(t, orderSummaryHeaders, orders[0])
	assert.Equal(t, "1000.00", orders[1][6])
	assert.Equal(t, "1", orders[1][8])

	report := readCSV(t, paths.KPIReportCSV)
	require.GreaterOrEqual(t, len(report), 2)
	assert.Equal(t, []string{"metric", "value"}, report[0])
	assert.Equal(t, []string{"run_id", "run-1"}, report[1])
}

func TestWriteCSVAddsBOM(t *testing.T) {
	paths := tempPaths(t)
	w := NewCSVWriter(paths)

	target := filepath.Join(paths.ExportsDir, "probe.csv")
	require.NoError(t, w.WriteSimpleCSV(target, []string{"a"}, [][]string{{"1"}}))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF"))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "13.40", formatFloat(13.4))
	assert.Equal(t, "0.00", formatFloat(0))
	assert.Equal(t, "42", formatInt(42))
	assert.Equal(t, "", formatOptInt(nil))
	assert.Equal(t, "", formatOptFloat(nil))
	assert.Equal(t, "", formatOptDate(nil))
}
