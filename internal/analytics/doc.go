// Package analytics is the aggregation engine over a normalized sales
// dataset: KPI scalars, per-period series, rankings, share breakdowns,
// day-count distributions, RFM and Pareto views.
//
// Every method on Engine is a pure read-only transform. Two policies hold
// throughout: order-level money is summed from the deduplicated order
// table while line-item-level money uses allocated revenue, and every
// aggregate is defined over empty input, so empty groups produce empty or
// zero results and percentages guard division by zero.
package analytics
