package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// join-and-aggregate pipeline.
type Metrics struct {
	RowsRead    *prometheus.CounterVec // labels: source={traffic,air_quality}
	RowsSkipped *prometheus.CounterVec // labels: source, reason={out_of_scope,bad_date,no_signal}

	RecordsIndexed     prometheus.Counter // traffic records seeding the join index
	ReadingsMatched    prometheus.Counter // PM2.5 readings applied to an indexed record
	ReadingsUnanchored prometheus.Counter // PM2.5 readings with no traffic record to join

	RecordsPublished prometheus.Gauge // records surviving the filter on the last run
	HotspotsReported prometheus.Gauge // hotspots in the last report

	PipelineDuration prometheus.Histogram
	PipelineRunning  prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "urbanflow",
			Name:      "rows_read_total",
			Help:      "Raw rows read from each source.",
		}, []string{"source"}),
		RowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "urbanflow",
			Name:      "rows_skipped_total",
			Help:      "Rows discarded during parsing, by source and reason.",
		}, []string{"source", "reason"}),
		RecordsIndexed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "urbanflow",
			Name:      "records_indexed_total",
			Help:      "Traffic records inserted into the join index.",
		}),
		ReadingsMatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "urbanflow",
			Name:      "readings_matched_total",
			Help:      "PM2.5 readings merged into an indexed traffic record.",
		}),
		ReadingsUnanchored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "urbanflow",
			Name:      "readings_unanchored_total",
			Help:      "PM2.5 readings dropped for lack of a matching traffic record.",
		}),
		RecordsPublished: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "urbanflow",
			Name:      "records_published",
			Help:      "Joined records that passed the positive traffic and PM2.5 filter.",
		}),
		HotspotsReported: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "urbanflow",
			Name:      "hotspots_reported",
			Help:      "Records above the hotspot ratio threshold in the last report.",
		}),
		PipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "urbanflow",
			Name:      "pipeline_duration_seconds",
			Help:      "Duration of a complete load-join-report run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "urbanflow",
			Name:      "pipeline_running",
			Help:      "1 while a pipeline run is active, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.RowsRead,
		m.RowsSkipped,
		m.RecordsIndexed,
		m.ReadingsMatched,
		m.ReadingsUnanchored,
		m.RecordsPublished,
		m.HotspotsReported,
		m.PipelineDuration,
		m.PipelineRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsRead:           prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "urbanflow", Name: "rows_read_total"}, []string{"source"}),
		RowsSkipped:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "urbanflow", Name: "rows_skipped_total"}, []string{"source", "reason"}),
		RecordsIndexed:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "urbanflow", Name: "records_indexed_total"}),
		ReadingsMatched:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "urbanflow", Name: "readings_matched_total"}),
		ReadingsUnanchored: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "urbanflow", Name: "readings_unanchored_total"}),
		RecordsPublished:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "urbanflow", Name: "records_published"}),
		HotspotsReported:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "urbanflow", Name: "hotspots_reported"}),
		PipelineDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "urbanflow", Name: "pipeline_duration_seconds"}),
		PipelineRunning:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "urbanflow", Name: "pipeline_running"}),
	}
}
