package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/pkg/contracts/domain"
)

func TestMonthlySalesSortedByPeriod(t *testing.T) {
	ds := emptyDataset()
	ds.LineItems = []domain.LineItemRow{
		lineItem("SO-3", "Acme", "A", "2025-03", 1, 300),
		lineItem("SO-1", "Acme", "A", "2025-01", 1, 100),
		lineItem("SO-2", "Acme", "A", "2025-01", 1, 50),
	}

	series := testEngine().MonthlySales(ds)

	assert.Equal(t, []domain.PeriodValue{
		{Period: "2025-01", Value: 150},
		{Period: "2025-03", Value: 300},
	}, series)
}

func TestMonthlySalesEmptyDataset(t *testing.T) {
	assert.Empty(t, testEngine().MonthlySales(emptyDataset()))
}

func TestQuarterlyAndYearlySales(t *testing.T) {
	ds := emptyDataset()
	items := []domain.LineItemRow{
		lineItem("SO-1", "Acme", "A", "2024-11", 1, 100),
		lineItem("SO-2", "Acme", "A", "2025-02", 1, 200),
	}
	items[0].OrderQuarter = "2024Q4"
	items[0].OrderYear = 2024
	items[1].OrderQuarter = "2025Q1"
	items[1].OrderYear = 2025
	ds.LineItems = items

	e := testEngine()

	assert.Equal(t, []domain.PeriodValue{
		{Period: "2024Q4", Value: 100},
		{Period: "2025Q1", Value: 200},
	}, e.QuarterlySales(ds))

	assert.Equal(t, []domain.PeriodValue{
		{Period: "2024", Value: 100},
		{Period: "2025", Value: 200},
	}, e.YearlySales(ds))
}

func TestMonthlyGrowth(t *testing.T) {
	ds := emptyDataset()
	ds.LineItems = []domain.LineItemRow{
		lineItem("SO-1", "Acme", "A", "2025-01", 1, 100),
		lineItem("SO-2", "Acme", "A", "2025-02", 1, 150),
		lineItem("SO-3", "Acme", "A", "2025-03", 1, 75),
	}

	points := testEngine().MonthlyGrowth(ds)
	require.Len(t, points, 3)

	// First month has no growth figure.
	assert.Nil(t, points[0].GrowthPercent)

	require.NotNil(t, points[1].GrowthPercent)
	assert.InDelta(t, 50.0, *points[1].GrowthPercent, 1e-9)

	require.NotNil(t, points[2].GrowthPercent)
	assert.InDelta(t, -50.0, *points[2].GrowthPercent, 1e-9)
}

func TestMonthlyGrowthUndefinedAfterZeroMonth(t *testing.T) {
	ds := emptyDataset()
	ds.LineItems = []domain.LineItemRow{
		lineItem("SO-1", "Acme", "A", "2025-01", 1, 0),
		lineItem("SO-2", "Acme", "A", "2025-02", 1, 100),
	}

	points := testEngine().MonthlyGrowth(ds)
	require.Len(t, points, 2)
	assert.Nil(t, points[1].GrowthPercent, "growth after a zero month must stay undefined")
}

func TestMonthlyOrderCountsDistinctOrders(t *testing.T) {
	ds := emptyDataset()
	ds.LineItems = []domain.LineItemRow{
		lineItem("SO-1", "Acme", "A", "2025-01", 1, 0),
		lineItem("SO-1", "Acme", "B", "2025-01", 1, 0),
		lineItem("SO-2", "Acme", "A", "2025-01", 1, 0),
		lineItem("SO-3", "Acme", "A", "2025-02", 1, 0),
	}

	counts := testEngine().MonthlyOrderCounts(ds)
	assert.Equal(t, []domain.PeriodCount{
		{Period: "2025-01", Count: 2},
		{Period: "2025-02", Count: 1},
	}, counts)
}

func TestMonthlyLeadTimeOmitsUndefinedMonths(t *testing.T) {
	ds := emptyDataset()
	items := []domain.LineItemRow{
		lineItem("SO-1", "Acme", "A", "2025-01", 1, 0),
		lineItem("SO-2", "Acme", "A", "2025-01", 1, 0),
		lineItem("SO-3", "Acme", "A", "2025-02", 1, 0),
	}
	items[0].LeadTimeDays = iptr(10)
	items[1].LeadTimeDays = iptr(20)
	// 2025-02 has no defined lead times at all.
	ds.LineItems = items

	series := testEngine().MonthlyLeadTime(ds)
	assert.Equal(t, []domain.PeriodValue{
		{Period: "2025-01", Value: 15},
	}, series)
}

func TestMonthlyAvgOrderValue(t *testing.T) {
	ds := emptyDataset()
	items := []domain.LineItemRow{
		lineItem("SO-1", "Acme", "A", "2025-01", 1, 0),
		lineItem("SO-2", "Acme", "A", "2025-01", 1, 0),
	}
	items[0].AvgOrderValue = 10
	items[1].AvgOrderValue = 30
	ds.LineItems = items

	series := testEngine().MonthlyAvgOrderValue(ds)
	assert.Equal(t, []domain.PeriodValue{
		{Period: "2025-01", Value: 20},
	}, series)
}
