package analytics

import (
	"math"

	"salespulse/pkg/contracts/domain"
)

// KPIs computes the scalar dashboard metrics for a dataset. Order-level
// money comes from the deduplicated order table; only per-line figures
// (lead time, delivery status, customer concentration) read line items.
func (e *Engine) KPIs(ds *domain.Dataset) domain.KPISet {
	var kpi domain.KPISet

	for _, o := range ds.Orders {
		kpi.TotalSales += o.POValueOrZero()
		if !o.IsClosed() {
			kpi.PendingValue += o.POValueOrZero()
		}
	}
	kpi.TotalOrders = len(ds.Orders)

	var leadSum, leadCount float64
	var onTime int
	for _, li := range ds.LineItems {
		if li.LeadTimeDays != nil && *li.LeadTimeDays >= 0 {
			leadSum += float64(*li.LeadTimeDays)
			leadCount++
		}
		if li.DeliveryStatus == domain.DeliveryOnTime {
			onTime++
		}
	}
	if leadCount > 0 {
		kpi.AvgLeadTimeDays = leadSum / leadCount
	}
	kpi.OnTimePercent = percentOf(float64(onTime), float64(len(ds.LineItems)))

	kpi.TopCustomerSharePercent = e.topCustomerShare(ds)

	return kpi
}

// topCustomerShare ranks customers by allocated value and reports the
// revenue share of the top ceil(fraction × customer count) of them.
func (e *Engine) topCustomerShare(ds *domain.Dataset) float64 {
	byCustomer := newGroupSum()
	for _, li := range ds.LineItems {
		byCustomer.add(li.CustomerName, li.AllocatedValue)
	}
	if len(byCustomer.keys) == 0 {
		return 0
	}

	ranked := rankDescending(byCustomer.entries(), 0)

	take := int(math.Ceil(e.cfg.TopCustomerFraction * float64(len(ranked))))
	if take > len(ranked) {
		take = len(ranked)
	}

	var topValue, totalValue float64
	for i, entry := range ranked {
		totalValue += entry.Value
		if i < take {
			topValue += entry.Value
		}
	}
	return percentOf(topValue, totalValue)
}
