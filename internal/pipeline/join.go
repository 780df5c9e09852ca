package pipeline

import (
	"errors"
	"log/slog"
	"sort"

	"github.com/couchcryptid/urbanflow/internal/domain"
	"github.com/couchcryptid/urbanflow/internal/observability"
)

// Joiner merges the two source streams into one record per (location, date)
// key. The build is strictly phased: every traffic row must be indexed
// before any air-quality row is applied, because application is a pure
// update-if-present with no backfill pass.
type Joiner struct {
	scope   domain.Scope
	index   map[domain.JoinKey]*domain.Record
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewJoiner creates an empty join index for the given scope.
func NewJoiner(scope domain.Scope, logger *slog.Logger, metrics *observability.Metrics) *Joiner {
	return &Joiner{
		scope:   scope,
		index:   make(map[domain.JoinKey]*domain.Record),
		logger:  logger,
		metrics: metrics,
	}
}

// IndexTraffic parses and indexes every accepted traffic row. A duplicate
// key overwrites the prior record, last write wins. Rows that fail to parse
// are counted and skipped individually; none aborts the batch.
func (j *Joiner) IndexTraffic(rows []domain.TrafficRow) {
	for _, row := range rows {
		m, err := domain.ParseTrafficRow(row, j.scope)
		if err != nil {
			j.skip("traffic", err)
			continue
		}
		j.index[m.Key] = &domain.Record{
			Location:      m.Key.Location,
			TrafficVolume: m.Volume,
			Date:          m.Key.Date,
		}
		j.metrics.RecordsIndexed.Inc()
	}
}

// ApplyAirQuality merges accepted PM2.5 readings into already-indexed
// traffic records. Readings whose key has no traffic record are dropped;
// traffic presence anchors a merged record. Multiple source files can be
// applied in any order relative to each other.
func (j *Joiner) ApplyAirQuality(rows []domain.AirQualityRow) {
	for _, row := range rows {
		m, err := domain.ParseAirQualityRow(row, j.scope)
		if err != nil {
			j.skip("air_quality", err)
			continue
		}
		rec, ok := j.index[m.Key]
		if !ok {
			j.metrics.ReadingsUnanchored.Inc()
			continue
		}
		pm25 := m.PM25
		rec.PM25 = &pm25
		j.metrics.ReadingsMatched.Inc()
	}
}

// Filter returns the records with positive traffic and a positive measured
// PM2.5, sorted by (date, location) so downstream output is deterministic.
func (j *Joiner) Filter() []domain.Record {
	records := make([]domain.Record, 0, len(j.index))
	for _, rec := range j.index {
		if rec.TrafficVolume > 0 && rec.PM25Value() > 0 {
			records = append(records, *rec)
		}
	}
	sort.Slice(records, func(a, b int) bool {
		if records[a].Date != records[b].Date {
			return records[a].Date < records[b].Date
		}
		return records[a].Location < records[b].Location
	})
	return records
}

// skip records one discarded row. Out-of-scope rows dominate the raw files
// and are only worth a debug line.
func (j *Joiner) skip(source string, err error) {
	j.metrics.RowsSkipped.WithLabelValues(source, skipReason(err)).Inc()
	j.logger.Debug("row skipped", "source", source, "reason", err)
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrOutOfScope):
		return "out_of_scope"
	case errors.Is(err, domain.ErrBadDate):
		return "bad_date"
	case errors.Is(err, domain.ErrNoTrafficSignal), errors.Is(err, domain.ErrNoPM25Signal):
		return "no_signal"
	default:
		return "other"
	}
}
