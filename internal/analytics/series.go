package analytics

import (
	"sort"
	"strconv"

	"salespulse/pkg/contracts/domain"
)

// MonthlySales sums allocated revenue per PO-date month. Allocated values
// conserve order totals, so this series never double counts an order that
// expanded into several products.
func (e *Engine) MonthlySales(ds *domain.Dataset) []domain.PeriodValue {
	g := newGroupSum()
	for _, li := range ds.LineItems {
		g.add(li.OrderMonth, li.AllocatedValue)
	}
	return g.sortedByPeriod()
}

// QuarterlySales sums allocated revenue per PO-date quarter.
func (e *Engine) QuarterlySales(ds *domain.Dataset) []domain.PeriodValue {
	g := newGroupSum()
	for _, li := range ds.LineItems {
		g.add(li.OrderQuarter, li.AllocatedValue)
	}
	return g.sortedByPeriod()
}

// YearlySales sums allocated revenue per PO-date year.
func (e *Engine) YearlySales(ds *domain.Dataset) []domain.PeriodValue {
	g := newGroupSum()
	for _, li := range ds.LineItems {
		g.add(strconv.Itoa(li.OrderYear), li.AllocatedValue)
	}
	return g.sortedByPeriod()
}

// MonthlyGrowth derives month-over-month percentage growth from the
// monthly sales series. The first month has no growth figure, and a zero
// previous month leaves growth undefined rather than dividing by zero.
func (e *Engine) MonthlyGrowth(ds *domain.Dataset) []domain.GrowthPoint {
	monthly := e.MonthlySales(ds)
	points := make([]domain.GrowthPoint, 0, len(monthly))
	for i, pv := range monthly {
		point := domain.GrowthPoint{Period: pv.Period, Value: pv.Value}
		if i > 0 && monthly[i-1].Value != 0 {
			growth := (pv.Value - monthly[i-1].Value) / monthly[i-1].Value * 100
			point.GrowthPercent = &growth
		}
		points = append(points, point)
	}
	return points
}

// MonthlyOrderCounts counts distinct orders per PO-date month.
func (e *Engine) MonthlyOrderCounts(ds *domain.Dataset) []domain.PeriodCount {
	seen := make(map[string]map[string]bool)
	var months []string
	for _, li := range ds.LineItems {
		if _, ok := seen[li.OrderMonth]; !ok {
			seen[li.OrderMonth] = make(map[string]bool)
			months = append(months, li.OrderMonth)
		}
		seen[li.OrderMonth][li.SONumber] = true
	}
	sort.Strings(months)

	counts := make([]domain.PeriodCount, 0, len(months))
	for _, m := range months {
		counts = append(counts, domain.PeriodCount{Period: m, Count: len(seen[m])})
	}
	return counts
}

// MonthlyAvgOrderValue averages the per-line order value per unit across
// each PO-date month.
func (e *Engine) MonthlyAvgOrderValue(ds *domain.Dataset) []domain.PeriodValue {
	sums := newGroupSum()
	counts := make(map[string]int)
	for _, li := range ds.LineItems {
		sums.add(li.OrderMonth, li.AvgOrderValue)
		counts[li.OrderMonth]++
	}

	out := sums.sortedByPeriod()
	for i := range out {
		if n := counts[out[i].Period]; n > 0 {
			out[i].Value /= float64(n)
		}
	}
	return out
}

// MonthlyLeadTime averages defined lead times per PO-date month. Months
// whose rows all lack an invoice date are omitted.
func (e *Engine) MonthlyLeadTime(ds *domain.Dataset) []domain.PeriodValue {
	sums := newGroupSum()
	counts := make(map[string]int)
	for _, li := range ds.LineItems {
		if li.LeadTimeDays == nil {
			continue
		}
		sums.add(li.OrderMonth, float64(*li.LeadTimeDays))
		counts[li.OrderMonth]++
	}

	out := sums.sortedByPeriod()
	for i := range out {
		if n := counts[out[i].Period]; n > 0 {
			out[i].Value /= float64(n)
		}
	}
	return out
}
