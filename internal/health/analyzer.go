package health

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/healthstats/internal/telemetry/metrics"
	"github.com/2beens/healthstats/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// Dashboard is everything the dashboard page shows for one window and one metric.
type Dashboard struct {
	Window  Window        `json:"window"`
	Metric  Metric        `json:"metric"`
	Unit    string        `json:"unit"`
	Cutoff  *string       `json:"cutoff"`
	Series  MetricSeries  `json:"series"`
	Summary MetricSummary `json:"summary"`
	Chart   ChartData     `json:"chart"`
}

// Overview holds the summaries of all the metrics over one window.
type Overview struct {
	Window    Window          `json:"window"`
	Cutoff    *string         `json:"cutoff"`
	Count     int             `json:"count"`
	Summaries []MetricSummary `json:"summaries"`
}

type DashboardParams struct {
	Now    time.Time
	Window Window
	Metric Metric
}

// Analyzer runs the read -> normalize -> filter -> series -> summary pipeline.
// Everything is recomputed per call, nothing is cached.
type Analyzer struct {
	repo           recordsRepo
	presenter      *ChartPresenter
	metricsManager *metrics.Manager
}

func NewAnalyzer(repo recordsRepo, presenter *ChartPresenter, metricsManager *metrics.Manager) *Analyzer {
	return &Analyzer{
		repo:           repo,
		presenter:      presenter,
		metricsManager: metricsManager,
	}
}

// LoadRecords reads the stored collection and normalizes it.
// Stored records that cannot be normalized are logged and skipped.
func (a *Analyzer) LoadRecords(ctx context.Context) (_ []HealthRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.health.loadRecords")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	raws, err := a.repo.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	records := make([]HealthRecord, 0, len(raws))
	for i, raw := range raws {
		record, err := Normalize(raw)
		if err != nil {
			log.Warnf("skipping malformed stored record at index %d: %s", i, err)
			a.metricsManager.CounterMalformedSkipped.Inc()
			continue
		}
		records = append(records, record)
	}

	span.SetAttributes(
		attribute.Int("records.stored", len(raws)),
		attribute.Int("records.valid", len(records)),
	)

	return records, nil
}

// Derive builds the dashboard of already normalized records. It has no side effects.
func (a *Analyzer) Derive(records []HealthRecord, now time.Time, window Window, metric Metric) Dashboard {
	filtered := FilterByWindow(records, now, window)
	series := BuildSeries(filtered, metric)

	return Dashboard{
		Window:  window,
		Metric:  metric,
		Unit:    metric.Unit(),
		Cutoff:  cutoffString(now, window),
		Series:  series,
		Summary: Summarize(filtered, metric),
		Chart:   a.presenter.ChartData(series),
	}
}

func (a *Analyzer) Dashboard(ctx context.Context, params DashboardParams) (_ *Dashboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.health.dashboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	span.SetAttributes(
		attribute.String("window", params.Window.String()),
		attribute.String("metric", params.Metric.String()),
	)

	records, err := a.LoadRecords(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := a.Derive(records, params.Now, params.Window, params.Metric)
	a.metricsManager.CounterDashboardDerivations.WithLabelValues(params.Window.String(), params.Metric.String()).Inc()

	return &dashboard, nil
}

func (a *Analyzer) Overview(ctx context.Context, now time.Time, window Window) (_ *Overview, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.health.overview")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	records, err := a.LoadRecords(ctx)
	if err != nil {
		return nil, err
	}

	filtered := FilterByWindow(records, now, window)
	overview := &Overview{
		Window:    window,
		Cutoff:    cutoffString(now, window),
		Count:     len(filtered),
		Summaries: make([]MetricSummary, 0, len(AllMetrics)),
	}
	for _, metric := range AllMetrics {
		overview.Summaries = append(overview.Summaries, Summarize(filtered, metric))
	}

	return overview, nil
}

func cutoffString(now time.Time, window Window) *string {
	cutoff, ok := window.Cutoff(now)
	if !ok {
		return nil
	}
	s := cutoff.Format(DateLayout)
	return &s
}
