package analytics

import (
	"time"

	"salespulse/pkg/contracts/domain"
)

// RFM computes the Recency/Frequency/Monetary triple per customer:
// days since the customer's last invoice (nil when they have none),
// distinct order count, and summed allocated revenue.
func (e *Engine) RFM(ds *domain.Dataset) []domain.RFMEntry {
	type acc struct {
		lastInvoice *time.Time
		orders      map[string]bool
		monetary    float64
	}
	byCustomer := make(map[string]*acc)
	var names []string

	for _, li := range ds.LineItems {
		a, ok := byCustomer[li.CustomerName]
		if !ok {
			a = &acc{orders: make(map[string]bool)}
			byCustomer[li.CustomerName] = a
			names = append(names, li.CustomerName)
		}
		a.orders[li.SONumber] = true
		a.monetary += li.AllocatedValue
		if li.InvoiceDate != nil && (a.lastInvoice == nil || li.InvoiceDate.After(*a.lastInvoice)) {
			a.lastInvoice = li.InvoiceDate
		}
	}

	out := make([]domain.RFMEntry, 0, len(names))
	for _, name := range names {
		a := byCustomer[name]
		entry := domain.RFMEntry{
			CustomerName: name,
			Frequency:    len(a.orders),
			Monetary:     a.monetary,
		}
		if a.lastInvoice != nil {
			days := int(ds.GeneratedAt.Sub(*a.lastInvoice) / (24 * time.Hour))
			entry.RecencyDays = &days
		}
		out = append(out, entry)
	}
	return out
}

// Pareto orders customers by descending total allocated value and reports
// each one's cumulative share of revenue. A zero grand total produces
// zero percentages throughout.
func (e *Engine) Pareto(ds *domain.Dataset) []domain.ParetoEntry {
	g := newGroupSum()
	for _, li := range ds.LineItems {
		g.add(li.CustomerName, li.AllocatedValue)
	}

	ranked := rankDescending(g.entries(), 0)

	var total float64
	for _, entry := range ranked {
		total += entry.Value
	}

	out := make([]domain.ParetoEntry, 0, len(ranked))
	var running float64
	for _, entry := range ranked {
		running += entry.Value
		out = append(out, domain.ParetoEntry{
			CustomerName:      entry.Name,
			Value:             entry.Value,
			CumulativePercent: percentOf(running, total),
		})
	}
	return out
}
