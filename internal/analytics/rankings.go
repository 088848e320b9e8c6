package analytics

import (
	"sort"

	"salespulse/pkg/contracts/domain"
)

// TopCustomersByValue ranks customers by summed allocated revenue,
// truncated to the configured top N. Ties keep input order.
func (e *Engine) TopCustomersByValue(ds *domain.Dataset) []domain.RankedEntry {
	g := newGroupSum()
	for _, li := range ds.LineItems {
		g.add(li.CustomerName, li.AllocatedValue)
	}
	return rankDescending(g.entries(), e.cfg.TopN)
}

// TopCustomersByQuantity ranks customers by total ordered quantity.
func (e *Engine) TopCustomersByQuantity(ds *domain.Dataset) []domain.RankedEntry {
	g := newGroupSum()
	for _, li := range ds.LineItems {
		g.add(li.CustomerName, li.OrderedQty)
	}
	return rankDescending(g.entries(), e.cfg.TopN)
}

// TopProductsByQuantity ranks products by total ordered quantity.
func (e *Engine) TopProductsByQuantity(ds *domain.Dataset) []domain.RankedEntry {
	g := newGroupSum()
	for _, li := range ds.LineItems {
		g.add(li.ProductName, li.OrderedQty)
	}
	return rankDescending(g.entries(), e.cfg.TopN)
}

// TopProductsByValue ranks products by summed allocated revenue.
func (e *Engine) TopProductsByValue(ds *domain.Dataset) []domain.RankedEntry {
	g := newGroupSum()
	for _, li := range ds.LineItems {
		g.add(li.ProductName, li.AllocatedValue)
	}
	return rankDescending(g.entries(), e.cfg.TopN)
}

// CustomerShare breaks allocated revenue down per customer. A zero grand
// total yields zero shares, never NaN.
func (e *Engine) CustomerShare(ds *domain.Dataset) []domain.ShareSlice {
	g := newGroupSum()
	for _, li := range ds.LineItems {
		g.add(li.CustomerName, li.AllocatedValue)
	}
	return shares(g)
}

// RegionShare breaks allocated revenue down per site address.
func (e *Engine) RegionShare(ds *domain.Dataset) []domain.ShareSlice {
	g := newGroupSum()
	for _, li := range ds.LineItems {
		g.add(li.SiteAddress, li.AllocatedValue)
	}
	return shares(g)
}

// DeliveryStatusBreakdown counts line items per delivery status.
func (e *Engine) DeliveryStatusBreakdown(ds *domain.Dataset) []domain.ShareSlice {
	g := newGroupSum()
	for _, li := range ds.LineItems {
		g.add(string(li.DeliveryStatus), 1)
	}
	return shares(g)
}

// CustomerMixBreakdown splits customers into repeat buyers (more than one
// distinct order) and occasional ones.
func (e *Engine) CustomerMixBreakdown(ds *domain.Dataset) domain.CustomerMix {
	orders := make(map[string]map[string]bool)
	for _, li := range ds.LineItems {
		if _, ok := orders[li.CustomerName]; !ok {
			orders[li.CustomerName] = make(map[string]bool)
		}
		orders[li.CustomerName][li.SONumber] = true
	}

	var mix domain.CustomerMix
	for _, so := range orders {
		if len(so) > 1 {
			mix.Repeat++
		} else {
			mix.Occasional++
		}
	}
	return mix
}

// DormantCustomers lists customers whose dormancy exceeds the configured
// threshold, most line items first. Customers with no closed orders have
// undefined dormancy and never appear.
func (e *Engine) DormantCustomers(ds *domain.Dataset) []domain.DormantCustomer {
	type entry struct {
		days  int
		items int
	}
	byCustomer := make(map[string]*entry)
	var names []string
	for _, li := range ds.LineItems {
		if li.DormancyDays == nil || *li.DormancyDays <= e.cfg.DormancyThresholdDays {
			continue
		}
		if _, ok := byCustomer[li.CustomerName]; !ok {
			byCustomer[li.CustomerName] = &entry{days: *li.DormancyDays}
			names = append(names, li.CustomerName)
		}
		byCustomer[li.CustomerName].items++
	}

	out := make([]domain.DormantCustomer, 0, len(names))
	for _, name := range names {
		out = append(out, domain.DormantCustomer{
			CustomerName: name,
			DormancyDays: byCustomer[name].days,
			LineItems:    byCustomer[name].items,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LineItems > out[j].LineItems })
	return out
}

// shares converts grouped totals into percentage slices in first-seen
// group order.
func shares(g *groupSum) []domain.ShareSlice {
	var total float64
	for _, k := range g.keys {
		total += g.totals[k]
	}

	out := make([]domain.ShareSlice, 0, len(g.keys))
	for _, k := range g.keys {
		out = append(out, domain.ShareSlice{
			Name:    k,
			Value:   g.totals[k],
			Percent: percentOf(g.totals[k], total),
		})
	}
	return out
}
