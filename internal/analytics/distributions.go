package analytics

import (
	"salespulse/pkg/contracts/domain"
)

// OpenOrderAging measures how long open line items have been waiting:
// days from PO date to the dataset's reference time. Rows whose PO date
// lies in the future of the reference time are excluded rather than
// reported as negative ages.
func (e *Engine) OpenOrderAging(ds *domain.Dataset) domain.Distribution {
	var ages []int
	for _, li := range ds.LineItems {
		if li.OrderStatus != domain.OrderOpen {
			continue
		}
		age := int(ds.GeneratedAt.Sub(li.PODate) / (24 * 60 * 60 * 1e9))
		if age < 0 {
			continue
		}
		ages = append(ages, age)
	}
	return e.histogram(ages)
}

// ClosedOrderLeadTime is the order-to-delivery lead-time distribution over
// closed line items, negatives excluded.
func (e *Engine) ClosedOrderLeadTime(ds *domain.Dataset) domain.Distribution {
	var days []int
	for _, li := range ds.LineItems {
		if li.OrderStatus != domain.OrderClosed || li.LeadTimeDays == nil || *li.LeadTimeDays < 0 {
			continue
		}
		days = append(days, *li.LeadTimeDays)
	}
	return e.histogram(days)
}

// DeliveryDelayDistribution is the schedule-delay distribution over closed
// line items. Early deliveries keep their negative delays; consumers that
// want only late ones filter on sign.
func (e *Engine) DeliveryDelayDistribution(ds *domain.Dataset) domain.Distribution {
	var days []int
	for _, li := range ds.LineItems {
		if li.OrderStatus != domain.OrderClosed || li.ScheduleDelayDays == nil {
			continue
		}
		days = append(days, *li.ScheduleDelayDays)
	}
	return e.histogram(days)
}

// DeliverySplitCounts counts distinct closed orders delivered on or ahead
// of schedule against those delivered late.
func (e *Engine) DeliverySplitCounts(ds *domain.Dataset) domain.DeliverySplit {
	late := make(map[string]bool)
	early := make(map[string]bool)
	for _, li := range ds.LineItems {
		if li.OrderStatus != domain.OrderClosed || li.ScheduleDelayDays == nil {
			continue
		}
		if *li.ScheduleDelayDays > 0 {
			late[li.SONumber] = true
		} else {
			early[li.SONumber] = true
		}
	}
	return domain.DeliverySplit{
		EarlyOrOnTime: len(early),
		Late:          len(late),
	}
}

// OrderStatusCounts counts distinct orders per status from the order
// summary table.
func (e *Engine) OrderStatusCounts(ds *domain.Dataset) map[domain.OrderStatus]int {
	counts := map[domain.OrderStatus]int{
		domain.OrderOpen:   0,
		domain.OrderClosed: 0,
	}
	for _, o := range ds.Orders {
		if o.IsClosed() {
			counts[domain.OrderClosed]++
		} else {
			counts[domain.OrderOpen]++
		}
	}
	return counts
}

// histogram buckets day counts into the configured number of fixed-width
// bins. Empty input yields an empty distribution, not an error.
func (e *Engine) histogram(values []int) domain.Distribution {
	dist := domain.Distribution{Values: values}
	if len(values) == 0 {
		return dist
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	bins := e.cfg.HistogramBins
	span := maxV - minV + 1
	if span < bins {
		bins = span
	}
	width := span / bins
	if span%bins != 0 {
		width++
	}

	buckets := make([]domain.HistogramBucket, bins)
	for i := range buckets {
		buckets[i].From = minV + i*width
		buckets[i].To = minV + (i+1)*width
	}
	for _, v := range values {
		idx := (v - minV) / width
		if idx >= bins {
			idx = bins - 1
		}
		buckets[idx].Count++
	}
	dist.Buckets = buckets
	return dist
}
