package analytics

import (
	"sort"

	"salespulse/pkg/contracts/domain"
)

// Capacity builds the operations-planning view: expected production load
// per month, the peak-demand months, product-wise capacity requirements
// and the fast/slow movers split.
func (e *Engine) Capacity(ds *domain.Dataset) domain.CapacityView {
	monthly := newGroupSum()
	products := newGroupSum()
	for _, li := range ds.LineItems {
		monthly.add(li.OrderMonth, li.OrderedQty)
		products.add(li.ProductName, li.OrderedQty)
	}

	view := domain.CapacityView{
		MonthlyLoad:     monthly.sortedByPeriod(),
		ProductCapacity: rankDescending(products.entries(), 0),
	}

	// Peak months: highest-load months, re-ranked from the same totals.
	peaks := rankDescending(monthly.entries(), e.cfg.PeakMonths)
	view.PeakMonths = make([]domain.PeriodValue, 0, len(peaks))
	for _, p := range peaks {
		view.PeakMonths = append(view.PeakMonths, domain.PeriodValue{Period: p.Name, Value: p.Value})
	}

	view.Movers = classifyMovers(products)
	return view
}

// Seasonality returns the per-product monthly demand matrix, ordered by
// period then product name for deterministic output.
func (e *Engine) Seasonality(ds *domain.Dataset) []domain.ProductDemand {
	type key struct {
		period  string
		product string
	}
	totals := make(map[key]float64)
	var keys []key
	for _, li := range ds.LineItems {
		k := key{period: li.OrderMonth, product: li.ProductName}
		if _, ok := totals[k]; !ok {
			keys = append(keys, k)
		}
		totals[k] += li.OrderedQty
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].period != keys[j].period {
			return keys[i].period < keys[j].period
		}
		return keys[i].product < keys[j].product
	})

	out := make([]domain.ProductDemand, 0, len(keys))
	for _, k := range keys {
		out = append(out, domain.ProductDemand{
			Period:      k.period,
			ProductName: k.product,
			OrderedQty:  totals[k],
		})
	}
	return out
}

// classifyMovers splits products on the mean total demand: strictly above
// the mean is fast moving, at or below is slow. Output is demand
// descending with ties in input order.
func classifyMovers(products *groupSum) []domain.ProductMover {
	entries := rankDescending(products.entries(), 0)
	if len(entries) == 0 {
		return nil
	}

	var total float64
	for _, entry := range entries {
		total += entry.Value
	}
	mean := total / float64(len(entries))

	movers := make([]domain.ProductMover, 0, len(entries))
	for _, entry := range entries {
		category := domain.SlowMover
		if entry.Value > mean {
			category = domain.FastMover
		}
		movers = append(movers, domain.ProductMover{
			ProductName: entry.Name,
			OrderedQty:  entry.Value,
			Category:    category,
		})
	}
	return movers
}
