package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"salespulse/internal/config"
	"salespulse/pkg/contracts/domain"
)

// Pipeline runs the full normalization flow: raw rows → normalized columns
// → expanded line items → derived fields → allocated revenue. One Run is a
// pure function of its inputs and the injected reference time; running it
// twice over identical input yields identical datasets.
type Pipeline struct {
	cfg    config.PipelineConfig
	logger *slog.Logger
}

// NewPipeline creates a pipeline with the given configuration.
func NewPipeline(cfg config.PipelineConfig, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ExpansionWorkers < 0 {
		cfg.ExpansionWorkers = 0
	}
	return &Pipeline{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "pipeline")),
	}
}

// Run executes the pipeline over the raw rows using now as the reference
// time for age-based fields. A malformed cell degrades that cell only; the
// single hard exclusion is a row with no parseable PO date, which cannot
// be bucketed temporally and is dropped from every downstream stage.
func (p *Pipeline) Run(ctx context.Context, raw []domain.RawOrderRow, now time.Time) (*domain.Dataset, error) {
	start := time.Now()

	p.logger.InfoContext(ctx, "starting pipeline run",
		slog.Int("source_rows", len(raw)),
		slog.Time("reference_time", now))

	normalized := Normalize(raw)

	// Anchor-date filter: no PO date, no downstream presence.
	anchored := make([]domain.OrderRow, 0, len(normalized))
	for _, row := range normalized {
		if row.PODate == nil {
			continue
		}
		anchored = append(anchored, row)
	}
	dropped := len(normalized) - len(anchored)
	if dropped > 0 {
		p.logger.WarnContext(ctx, "rows excluded for unparseable PO date",
			slog.Int("dropped_rows", dropped))
	}

	lineItems, err := p.expandAll(ctx, anchored)
	if err != nil {
		return nil, fmt.Errorf("expand line items: %w", err)
	}

	// Full-dataset passes; these need every row present and serialized.
	AllocateRevenue(lineItems)
	StampDormancy(lineItems, now)

	dataset := &domain.Dataset{
		RunID:       uuid.New().String(),
		GeneratedAt: now,
		Orders:      DeduplicateOrders(anchored, lineItems),
		LineItems:   lineItems,
		SourceRows:  len(raw),
		DroppedRows: dropped,
	}

	p.logger.InfoContext(ctx, "pipeline run complete",
		slog.String("run_id", dataset.RunID),
		slog.Int("orders", len(dataset.Orders)),
		slog.Int("line_items", len(dataset.LineItems)),
		slog.Duration("elapsed", time.Since(start)))

	return dataset, nil
}

// expandAll expands and derives line items for every order row. Rows are
// independent, so expansion may fan out over a bounded worker group; each
// row writes into its own slot so the output keeps input order regardless
// of scheduling.
func (p *Pipeline) expandAll(ctx context.Context, rows []domain.OrderRow) ([]domain.LineItemRow, error) {
	perRow := make([][]domain.LineItemRow, len(rows))

	expand := func(i int) {
		partials := ExpandRow(rows[i])
		if len(partials) == 0 {
			return
		}
		derived := make([]domain.LineItemRow, 0, len(partials))
		for _, partial := range partials {
			derived = append(derived, DeriveLineItem(partial))
		}
		perRow[i] = derived
	}

	if p.cfg.ExpansionWorkers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.cfg.ExpansionWorkers)
		for i := range rows {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				expand(i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range rows {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			expand(i)
		}
	}

	var items []domain.LineItemRow
	for _, derived := range perRow {
		items = append(items, derived...)
	}
	return items, nil
}

// DeduplicateOrders builds the order summary table: one row per unique
// order number, first occurrence wins. Order-level aggregates always read
// this table so expanding an order into several products cannot inflate
// value sums.
func DeduplicateOrders(rows []domain.OrderRow, lineItems []domain.LineItemRow) []domain.OrderSummaryRow {
	itemCounts := make(map[string]int)
	for _, li := range lineItems {
		itemCounts[li.SONumber]++
	}

	seen := make(map[string]bool, len(rows))
	summaries := make([]domain.OrderSummaryRow, 0, len(rows))
	for _, row := range rows {
		if seen[row.SONumber] {
			continue
		}
		seen[row.SONumber] = true
		summaries = append(summaries, domain.OrderSummaryRow{
			SONumber:      row.SONumber,
			CustomerName:  row.CustomerName,
			SiteAddress:   row.SiteAddress,
			PODate:        *row.PODate,
			ScheduledDate: row.ScheduledDate,
			InvoiceDate:   row.InvoiceDate,
			POValue:       row.POValue,
			SuppliedValue: row.SuppliedValue,
			LineItemCount: itemCounts[row.SONumber],
		})
	}
	return summaries
}
