package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/pkg/contracts/domain"
)

func orderWithDetails(details string) domain.OrderRow {
	return domain.OrderRow{
		SONumber:     "SO-1",
		CustomerName: "Acme",
		PODate:       datePtr(2025, 4, 3),
		ItemDetails:  details,
	}
}

func TestExpandRow(t *testing.T) {
	tests := []struct {
		name     string
		details  string
		expected []struct {
			product  string
			ordered  float64
			supplied float64
		}
	}{
		{
			name:    "two products on separate lines",
			details: "Widget A | Unit: pcs | PO Qty: 75 | Supplied Qty: 75\nWidget B | Unit: pcs | PO Qty: 25 | Supplied Qty: 20",
			expected: []struct {
				product  string
				ordered  float64
				supplied float64
			}{
				{"Widget A", 75, 75},
				{"Widget B", 25, 20},
			},
		},
		{
			name:    "missing supplied quantity defaults to zero",
			details: "Widget A | Unit: pcs | PO Qty: 10 | Status: pending",
			expected: []struct {
				product  string
				ordered  float64
				supplied float64
			}{
				{"Widget A", 10, 0},
			},
		},
		{
			name:    "missing both quantities defaults to zero",
			details: "Widget A | a | b | c",
			expected: []struct {
				product  string
				ordered  float64
				supplied float64
			}{
				{"Widget A", 0, 0},
			},
		},
		{
			name:    "fractional quantities",
			details: "Cable | Unit: m | PO Qty: 12.5 | Supplied Qty: 10.25",
			expected: []struct {
				product  string
				ordered  float64
				supplied float64
			}{
				{"Cable", 12.5, 10.25},
			},
		},
		{
			name:     "under-specified line dropped",
			details:  "Widget A | PO Qty: 10",
			expected: nil,
		},
		{
			name:     "empty details",
			details:  "",
			expected: nil,
		},
		{
			name:     "whitespace only",
			details:  "   \n  ",
			expected: nil,
		},
		{
			name:    "short line between valid lines",
			details: "Widget A | x | PO Qty: 5 | Supplied Qty: 5\nbroken line\nWidget B | x | PO Qty: 3 | Supplied Qty: 0",
			expected: []struct {
				product  string
				ordered  float64
				supplied float64
			}{
				{"Widget A", 5, 5},
				{"Widget B", 3, 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			partials := ExpandRow(orderWithDetails(tt.details))
			require.Len(t, partials, len(tt.expected))
			for i, want := range tt.expected {
				assert.Equal(t, want.product, partials[i].ProductName)
				assert.Equal(t, want.ordered, partials[i].OrderedQty)
				assert.Equal(t, want.supplied, partials[i].SuppliedQty)
				assert.Equal(t, "SO-1", partials[i].Order.SONumber)
			}
		})
	}
}

func TestExpandRowTrimsProductName(t *testing.T) {
	partials := ExpandRow(orderWithDetails("  Widget A   | x | y | PO Qty: 1"))
	require.Len(t, partials, 1)
	assert.Equal(t, "Widget A", partials[0].ProductName)
}
