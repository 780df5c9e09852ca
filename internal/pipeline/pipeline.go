package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/urbanflow/internal/domain"
	"github.com/couchcryptid/urbanflow/internal/observability"
	"github.com/couchcryptid/urbanflow/internal/report"
)

// TrafficSource supplies raw traffic rows, header-mapped but unparsed.
type TrafficSource interface {
	ReadRows(ctx context.Context) ([]domain.TrafficRow, error)
}

// AirQualitySource supplies raw PM2.5 rows from every discovered export file.
type AirQualitySource interface {
	ReadRows(ctx context.Context) ([]domain.AirQualityRow, error)
}

// ReportSink persists the rendered report text.
type ReportSink interface {
	Write(ctx context.Context, text string) error
}

// Pipeline runs the batch load-join-filter-report sequence. Both datasets
// are loaded fully into memory before any downstream stage begins; there is
// no streaming path.
type Pipeline struct {
	traffic TrafficSource
	air     AirQualitySource
	sink    ReportSink

	scope            domain.Scope
	hotspotThreshold float64

	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
	ready   atomic.Bool
}

// New assembles a Pipeline from its sources, sink, and scope. Pass a nil
// clock to use real time.
func New(traffic TrafficSource, air AirQualitySource, sink ReportSink, scope domain.Scope, hotspotThreshold float64, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Pipeline{
		traffic:          traffic,
		air:              air,
		sink:             sink,
		scope:            scope,
		hotspotThreshold: hotspotThreshold,
		logger:           logger,
		metrics:          metrics,
		clock:            clock,
	}
}

// CheckReadiness returns nil once a run has completed, so the optional
// metrics endpoint can distinguish "still loading" from "done".
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not completed a run yet")
	}
	return nil
}

// Run executes one batch: read both sources, join, filter, aggregate, and
// write the report. It returns the populated dataset alongside any error so
// a failed report write does not lose the computed results. An empty
// filtered dataset suppresses the report and is not an error.
func (p *Pipeline) Run(ctx context.Context) (*domain.Dataset, error) {
	start := p.clock.Now()
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	p.logger.Info("pipeline started",
		"city", p.scope.City,
		"hotspot_threshold", p.hotspotThreshold,
	)

	trafficRows, err := p.traffic.ReadRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read traffic source: %w", err)
	}
	p.metrics.RowsRead.WithLabelValues("traffic").Add(float64(len(trafficRows)))

	airRows, err := p.air.ReadRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read air quality source: %w", err)
	}
	p.metrics.RowsRead.WithLabelValues("air_quality").Add(float64(len(airRows)))

	// Traffic first, always: air-quality application is update-if-present.
	joiner := NewJoiner(p.scope, p.logger, p.metrics)
	joiner.IndexTraffic(trafficRows)
	joiner.ApplyAirQuality(airRows)
	records := joiner.Filter()

	dataset := domain.NewDataset(p.scope.City, records)
	p.metrics.RecordsPublished.Set(float64(len(records)))
	p.logger.Info("records joined",
		"city", dataset.City,
		"traffic_rows", len(trafficRows),
		"air_rows", len(airRows),
		"valid_records", len(records),
	)

	hotspots := dataset.FindHotspots(p.hotspotThreshold)
	p.metrics.HotspotsReported.Set(float64(len(hotspots)))

	text, err := report.Render(dataset, p.hotspotThreshold)
	if errors.Is(err, report.ErrNoRecords) {
		p.logger.Warn("no records to summarize, report skipped")
		p.finish(start)
		return dataset, nil
	}
	if err != nil {
		return dataset, fmt.Errorf("render report: %w", err)
	}

	if err := p.sink.Write(ctx, text); err != nil {
		return dataset, fmt.Errorf("write report: %w", err)
	}

	p.finish(start)
	return dataset, nil
}

func (p *Pipeline) finish(start time.Time) {
	elapsed := p.clock.Since(start)
	p.metrics.PipelineDuration.Observe(elapsed.Seconds())
	p.ready.Store(true)
	p.logger.Info("pipeline complete", "duration", elapsed)
}
