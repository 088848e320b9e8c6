package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/config"
	"salespulse/pkg/contracts/domain"
)

func TestTopCustomersByValueTruncatesToTopN(t *testing.T) {
	e := NewEngine(config.PipelineConfig{TopN: 2}, nil)

	ds := emptyDataset()
	ds.LineItems = []domain.LineItemRow{
		lineItem("SO-1", "Small", "A", "2025-01", 1, 10),
		lineItem("SO-2", "Big", "A", "2025-01", 1, 100),
		lineItem("SO-3", "Medium", "A", "2025-01", 1, 50),
	}

	ranked := e.TopCustomersByValue(ds)
	assert.Equal(t, []domain.RankedEntry{
		{Name: "Big", Value: 100},
		{Name: "Medium", Value: 50},
	}, ranked)
}

func TestTopProductsByQuantity(t *testing.T) {
	ds := emptyDataset()
	ds.LineItems = []domain.LineItemRow{
		lineItem("SO-1", "Acme", "Widget A", "2025-01", 75, 0),
		lineItem("SO-1", "Acme", "Widget B", "2025-01", 25, 0),
		lineItem("SO-2", "Globex", "Widget A", "2025-01", 10, 0),
	}

	ranked := testEngine().TopProductsByQuantity(ds)
	assert.Equal(t, []domain.RankedEntry{
		{Name: "Widget A", Value: 85},
		{Name: "Widget B", Value: 25},
	}, ranked)
}

func TestCustomerSharePercentagesSumToHundred(t *testing.T) {
	ds := emptyDataset()
	ds.LineItems = []domain.LineItemRow{
		lineItem("SO-1", "Acme", "A", "2025-01", 1, 750),
		lineItem("SO-2", "Globex", "A", "2025-01", 1, 250),
	}

	slices := testEngine().CustomerShare(ds)
	require.Len(t, slices, 2)
	assert.Equal(t, 75.0, slices[0].Percent)
	assert.Equal(t, 25.0, slices[1].Percent)
}

func TestCustomerShareZeroTotal(t *testing.T) {
	ds := emptyDataset()
	ds.LineItems = []domain.LineItemRow{
		lineItem("SO-1", "Acme", "A", "2025-01", 1, 0),
	}

	slices := testEngine().CustomerShare(ds)
	require.Len(t, slices, 1)
	assert.Equal(t, 0.0, slices[0].Percent)
}

func TestDeliveryStatusBreakdown(t *testing.T) {
	ds := emptyDataset()
	items := []domain.LineItemRow{
		lineItem("SO-1", "Acme", "A", "2025-01", 1, 0),
		lineItem("SO-2", "Acme", "A", "2025-01", 1, 0),
		lineItem("SO-3", "Acme", "A", "2025-01", 1, 0),
	}
	items[2].DeliveryStatus = domain.DeliveryDelayed
	ds.LineItems = items

	slices := testEngine().DeliveryStatusBreakdown(ds)
	require.Len(t, slices, 2)
	assert.Equal(t, string(domain.DeliveryOnTime), slices[0].Name)
	assert.InDelta(t, 66.666, slices[0].Percent, 0.01)
	assert.Equal(t, string(domain.DeliveryDelayed), slices[1].Name)
	assert.InDelta(t, 33.333, slices[1].Percent, 0.01)
}

func TestCustomerMixBreakdown(t *testing.T) {
	ds := emptyDataset()
	ds.LineItems = []domain.LineItemRow{
		lineItem("SO-1", "Repeat Co", "A", "2025-01", 1, 0),
		lineItem("SO-2", "Repeat Co", "A", "2025-02", 1, 0),
		// Two line items from one order still count as a single purchase.
		lineItem("SO-3", "Once Co", "A", "2025-01", 1, 0),
		lineItem("SO-3", "Once Co", "B", "2025-01", 1, 0),
	}

	mix := testEngine().CustomerMixBreakdown(ds)
	assert.Equal(t, 1, mix.Repeat)
	assert.Equal(t, 1, mix.Occasional)
}

func TestDormantCustomers(t *testing.T) {
	ds := emptyDataset()
	items := []domain.LineItemRow{
		lineItem("SO-1", "Dormant Co", "A", "2025-01", 1, 0),
		lineItem("SO-2", "Dormant Co", "B", "2025-01", 1, 0),
		lineItem("SO-3", "Active Co", "A", "2025-06", 1, 0),
		lineItem("SO-4", "Never Invoiced", "A", "2025-06", 1, 0),
	}
	items[0].DormancyDays = iptr(120)
	items[1].DormancyDays = iptr(120)
	items[2].DormancyDays = iptr(10)
	// Never Invoiced keeps nil dormancy and must not appear.
	ds.LineItems = items

	dormant := testEngine().DormantCustomers(ds)
	require.Len(t, dormant, 1)
	assert.Equal(t, "Dormant Co", dormant[0].CustomerName)
	assert.Equal(t, 120, dormant[0].DormancyDays)
	assert.Equal(t, 2, dormant[0].LineItems)
}

func TestDormantCustomersThresholdIsExclusive(t *testing.T) {
	ds := emptyDataset()
	items := []domain.LineItemRow{
		lineItem("SO-1", "Edge Co", "A", "2025-01", 1, 0),
	}
	items[0].DormancyDays = iptr(90)
	ds.LineItems = items

	// Exactly at the threshold is not dormant.
	assert.Empty(t, testEngine().DormantCustomers(ds))
}
