package dataprocessing

import (
	"regexp"
	"strconv"
	"strings"

	"salespulse/internal/config"
	"salespulse/pkg/contracts/domain"
)

var (
	poQtyPattern       = regexp.MustCompile(`PO Qty:\s*([\d.]+)`)
	suppliedQtyPattern = regexp.MustCompile(`Supplied Qty:\s*([\d.]+)`)
)

// ItemPartial is one expanded line item before derivation and allocation:
// the product with its raw quantities, plus the order row it came from.
type ItemPartial struct {
	Order       domain.OrderRow
	ProductName string
	OrderedQty  float64
	SuppliedQty float64
}

// ExpandRow parses the packed item-detail text of one order row into zero
// or more item partials. Lines split on newlines, fields on pipes. A line
// needs at least four pipe-separated parts to contribute; under-specified
// lines are dropped silently rather than treated as errors. Quantity
// labels missing from a well-formed line default to zero.
func ExpandRow(order domain.OrderRow) []ItemPartial {
	text := order.ItemDetails
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var partials []ItemPartial
	for _, line := range strings.Split(text, "\n") {
		parts := strings.Split(line, "|")
		if len(parts) < config.MinItemDetailParts {
			continue
		}

		partials = append(partials, ItemPartial{
			Order:       order,
			ProductName: strings.TrimSpace(parts[0]),
			OrderedQty:  extractQty(poQtyPattern, line),
			SuppliedQty: extractQty(suppliedQtyPattern, line),
		})
	}
	return partials
}

// extractQty runs the labelled-quantity pattern over the whole line and
// returns the captured number, or zero when the label is absent or the
// capture does not parse.
func extractQty(pattern *regexp.Regexp, line string) float64 {
	m := pattern.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return v
}
