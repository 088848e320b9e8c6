package exporter

import (
	"fmt"
	"time"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	// Always format with exactly 2 decimal places for consistency
	// This ensures values like 13.4 appear as 13.40 in CSV
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatDate formats a date as ISO yyyy-mm-dd for CSV output
func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// formatOptDate formats a nilable date, empty when absent
func formatOptDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

// formatOptFloat formats a nilable float, empty when absent
func formatOptFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

// formatOptInt formats a nilable int, empty when absent
func formatOptInt(i *int) string {
	if i == nil {
		return ""
	}
	return formatInt(*i)
}
