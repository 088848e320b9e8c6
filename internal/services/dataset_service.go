package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"salespulse/internal/analytics"
	"salespulse/internal/config"
	"salespulse/internal/dataprocessing"
	"salespulse/internal/exporter"
	"salespulse/internal/infrastructure"
	"salespulse/pkg/contracts/domain"
)

// Snapshot bundles one pipeline run's dataset with its KPI scalars.
type Snapshot struct {
	Dataset *domain.Dataset
	KPIs    domain.KPISet
}

// DatasetService owns the current dataset snapshot. Each upload replaces
// the snapshot wholesale; nothing persists across uploads. Reads and the
// swap are guarded so concurrent API readers never observe a half-built
// snapshot.
type DatasetService struct {
	cfg      *config.Config
	logger   *slog.Logger
	pipeline *dataprocessing.Pipeline
	engine   *analytics.Engine
	exporter *exporter.CSVWriter

	// now is injectable for deterministic tests.
	now func() time.Time

	mu      sync.RWMutex
	current *Snapshot

	metrics *pipelineMetrics
}

// pipelineMetrics are the Prometheus collectors for pipeline runs.
type pipelineMetrics struct {
	runsTotal    prometheus.Counter
	runFailures  prometheus.Counter
	rowsRead     prometheus.Counter
	rowsDropped  prometheus.Counter
	lineItems    prometheus.Gauge
	runDuration  prometheus.Histogram
}

func newPipelineMetrics(reg prometheus.Registerer) *pipelineMetrics {
	factory := promauto.With(reg)
	return &pipelineMetrics{
		runsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "salespulse_pipeline_runs_total",
			Help: "Total pipeline runs attempted.",
		}),
		runFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "salespulse_pipeline_run_failures_total",
			Help: "Pipeline runs that failed before producing a dataset.",
		}),
		rowsRead: factory.NewCounter(prometheus.CounterOpts{
			Name: "salespulse_pipeline_rows_read_total",
			Help: "Raw order rows read from uploaded workbooks.",
		}),
		rowsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "salespulse_pipeline_rows_dropped_total",
			Help: "Rows excluded for lacking a parseable PO date.",
		}),
		lineItems: factory.NewGauge(prometheus.GaugeOpts{
			Name: "salespulse_dataset_line_items",
			Help: "Line items in the current dataset snapshot.",
		}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "salespulse_pipeline_run_duration_seconds",
			Help:    "Pipeline run latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// NewDatasetService creates the dataset service with its pipeline and
// aggregation engine. Pass prometheus.DefaultRegisterer in production.
func NewDatasetService(cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*DatasetService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	paths, err := config.GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get paths: %w", err)
	}

	logger.Info("DatasetService initialized with paths",
		slog.String("data_dir", paths.DataDir),
		slog.String("exports_dir", paths.ExportsDir))

	return &DatasetService{
		cfg:      cfg,
		logger:   infrastructure.WithComponent(logger, "dataset_service"),
		pipeline: dataprocessing.NewPipeline(cfg.Pipeline, logger),
		engine:   analytics.NewEngine(cfg.Pipeline, logger),
		exporter: exporter.NewCSVWriter(paths),
		now:      time.Now,
		metrics:  newPipelineMetrics(reg),
	}, nil
}

// SetClock overrides the reference-time source. Tests use this to make
// age-based metrics reproducible.
func (s *DatasetService) SetClock(now func() time.Time) {
	s.now = now
}

// LoadFromUpload reads a workbook stream, runs the full pipeline and
// swaps in the resulting snapshot. The previous snapshot is discarded
// only after the new run has fully succeeded, so a failed upload leaves
// the served dataset untouched.
func (s *DatasetService) LoadFromUpload(ctx context.Context, r io.Reader, filename string) (*Snapshot, error) {
	start := time.Now()
	s.metrics.runsTotal.Inc()

	s.logger.InfoContext(ctx, "processing uploaded workbook",
		slog.String("filename", filename))

	raw, err := dataprocessing.ReadWorkbook(r, s.logger)
	if err != nil {
		s.metrics.runFailures.Inc()
		return nil, fmt.Errorf("read workbook: %w", err)
	}

	dataset, err := s.pipeline.Run(ctx, raw, s.now())
	if err != nil {
		s.metrics.runFailures.Inc()
		return nil, fmt.Errorf("run pipeline: %w", err)
	}

	snapshot := &Snapshot{
		Dataset: dataset,
		KPIs:    s.engine.KPIs(dataset),
	}

	s.mu.Lock()
	s.current = snapshot
	s.mu.Unlock()

	s.metrics.rowsRead.Add(float64(dataset.SourceRows))
	s.metrics.rowsDropped.Add(float64(dataset.DroppedRows))
	s.metrics.lineItems.Set(float64(len(dataset.LineItems)))
	s.metrics.runDuration.Observe(time.Since(start).Seconds())

	// CSV exports are a convenience for spreadsheet consumers; a failed
	// export is logged but never fails the upload.
	if err := s.exporter.WriteDataset(dataset, snapshot.KPIs); err != nil {
		s.logger.WarnContext(ctx, "dataset CSV export failed",
			slog.String("error", err.Error()))
	}

	s.logger.InfoContext(ctx, "dataset snapshot replaced",
		slog.String("run_id", dataset.RunID),
		slog.Int("orders", len(dataset.Orders)),
		slog.Int("line_items", len(dataset.LineItems)),
		slog.Duration("elapsed", time.Since(start)))

	return snapshot, nil
}

// Current returns the active snapshot, or ErrNoDataset before the first
// successful upload.
func (s *DatasetService) Current(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNoDataset
	}
	return s.current, nil
}

// View computes one named analytics view over the current snapshot. The
// names mirror the dashboard's chart sections.
func (s *DatasetService) View(ctx context.Context, name string) (interface{}, error) {
	snapshot, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	ds := snapshot.Dataset

	switch name {
	case "monthly-sales":
		return s.engine.MonthlySales(ds), nil
	case "quarterly-sales":
		return s.engine.QuarterlySales(ds), nil
	case "yearly-sales":
		return s.engine.YearlySales(ds), nil
	case "growth":
		return s.engine.MonthlyGrowth(ds), nil
	case "monthly-orders":
		return s.engine.MonthlyOrderCounts(ds), nil
	case "monthly-aov":
		return s.engine.MonthlyAvgOrderValue(ds), nil
	case "monthly-lead-time":
		return s.engine.MonthlyLeadTime(ds), nil
	case "top-customers":
		return s.engine.TopCustomersByValue(ds), nil
	case "top-customers-qty":
		return s.engine.TopCustomersByQuantity(ds), nil
	case "top-products":
		return s.engine.TopProductsByQuantity(ds), nil
	case "top-products-value":
		return s.engine.TopProductsByValue(ds), nil
	case "customer-share":
		return s.engine.CustomerShare(ds), nil
	case "region-share":
		return s.engine.RegionShare(ds), nil
	case "delivery":
		return s.engine.DeliveryStatusBreakdown(ds), nil
	case "delivery-split":
		return s.engine.DeliverySplitCounts(ds), nil
	case "delivery-delay":
		return s.engine.DeliveryDelayDistribution(ds), nil
	case "lead-time":
		return s.engine.ClosedOrderLeadTime(ds), nil
	case "aging":
		return s.engine.OpenOrderAging(ds), nil
	case "order-status":
		return s.engine.OrderStatusCounts(ds), nil
	case "customer-mix":
		return s.engine.CustomerMixBreakdown(ds), nil
	case "dormant":
		return s.engine.DormantCustomers(ds), nil
	case "rfm":
		return s.engine.RFM(ds), nil
	case "pareto":
		return s.engine.Pareto(ds), nil
	case "capacity":
		return s.engine.Capacity(ds), nil
	case "seasonality":
		return s.engine.Seasonality(ds), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownView, name)
	}
}

// ViewNames lists every analytics view the service can compute.
func (s *DatasetService) ViewNames() []string {
	return []string{
		"monthly-sales", "quarterly-sales", "yearly-sales", "growth",
		"monthly-orders", "monthly-aov", "monthly-lead-time",
		"top-customers", "top-customers-qty", "top-products",
		"top-products-value", "customer-share", "region-share",
		"delivery", "delivery-split", "delivery-delay", "lead-time",
		"aging", "order-status", "customer-mix", "dormant",
		"rfm", "pareto", "capacity", "seasonality",
	}
}
