package analytics

import (
	"log/slog"
	"sort"

	"salespulse/internal/config"
	"salespulse/pkg/contracts/domain"
)

// Engine computes KPI scalars and chart-ready summary tables over a
// dataset. Every method is a pure read-only transform: empty inputs
// produce defined empty or zero results, and every percentage guards its
// denominator so callers never see NaN.
type Engine struct {
	cfg    config.PipelineConfig
	logger *slog.Logger
}

// NewEngine creates an aggregation engine with the given configuration.
// Zero-valued knobs fall back to the dashboard defaults.
func NewEngine(cfg config.PipelineConfig, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 10
	}
	if cfg.TopCustomerFraction <= 0 || cfg.TopCustomerFraction > 1 {
		cfg.TopCustomerFraction = 0.2
	}
	if cfg.HistogramBins <= 0 {
		cfg.HistogramBins = 20
	}
	if cfg.DormancyThresholdDays <= 0 {
		cfg.DormancyThresholdDays = 90
	}
	if cfg.PeakMonths <= 0 {
		cfg.PeakMonths = 3
	}
	return &Engine{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "analytics")),
	}
}

// groupSum accumulates float totals per key while remembering first-seen
// key order, so rankings stay stable and reruns stay deterministic.
type groupSum struct {
	keys   []string
	totals map[string]float64
}

func newGroupSum() *groupSum {
	return &groupSum{totals: make(map[string]float64)}
}

func (g *groupSum) add(key string, v float64) {
	if _, ok := g.totals[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.totals[key] += v
}

// entries returns one RankedEntry per key in first-seen order.
func (g *groupSum) entries() []domain.RankedEntry {
	out := make([]domain.RankedEntry, 0, len(g.keys))
	for _, k := range g.keys {
		out = append(out, domain.RankedEntry{Name: k, Value: g.totals[k]})
	}
	return out
}

// sortedByPeriod returns the entries as a period series in ascending
// period order. Both "2006-01" and "2006Q1" buckets sort correctly as
// strings.
func (g *groupSum) sortedByPeriod() []domain.PeriodValue {
	out := make([]domain.PeriodValue, 0, len(g.keys))
	for _, k := range g.keys {
		out = append(out, domain.PeriodValue{Period: k, Value: g.totals[k]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// rankDescending sorts entries by value descending, keeping input order on
// ties, and truncates to n. n <= 0 means no truncation.
func rankDescending(entries []domain.RankedEntry, n int) []domain.RankedEntry {
	ranked := make([]domain.RankedEntry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Value > ranked[j].Value })
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// percentOf guards the zero denominator: share of zero is zero, never NaN.
func percentOf(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}
