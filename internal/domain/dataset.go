package domain

import (
	"sort"
	"strconv"
	"time"
)

// Dataset owns the filtered, joined records for one city. It is populated
// once by the join pipeline and read-only afterwards; every statistic is
// computed on demand from the records.
type Dataset struct {
	City     string
	Records  []Record
	LoadedAt time.Time
}

// NewDataset wraps the filtered records for a city, stamping the load time.
func NewDataset(city string, records []Record) *Dataset {
	return &Dataset{City: city, Records: records, LoadedAt: clock.Now()}
}

// AverageTraffic returns the mean traffic volume across all records,
// or 0 when the dataset is empty.
func (d *Dataset) AverageTraffic() float64 {
	if len(d.Records) == 0 {
		return 0
	}
	total := 0
	for _, r := range d.Records {
		total += r.TrafficVolume
	}
	return float64(total) / float64(len(d.Records))
}

// AverageAirQuality returns the mean of each air-quality metric across all
// records, keyed by metric name. PM2.5 is the only metric today; the map
// shape leaves room for ozone or NO2 without changing callers.
func (d *Dataset) AverageAirQuality() map[string]float64 {
	if len(d.Records) == 0 {
		return map[string]float64{"pm25": 0}
	}
	total := 0.0
	for _, r := range d.Records {
		total += r.PM25Value()
	}
	return map[string]float64{"pm25": total / float64(len(d.Records))}
}

// YearSummary holds one year's averages and their signed deviation from the
// dataset-wide averages.
type YearSummary struct {
	Year        int
	Records     int
	AvgTraffic  float64
	AvgPM25     float64
	TrafficDiff float64
	PM25Diff    float64
}

// YearlyBreakdown partitions records by the four-digit year prefix of their
// date and returns per-year summaries in ascending year order. Records
// whose date has no parseable year are left out of the breakdown; they
// still count toward the overall averages the deviations are taken from.
func (d *Dataset) YearlyBreakdown() []YearSummary {
	type bucket struct {
		count   int
		traffic int
		pm25    float64
	}
	buckets := make(map[int]*bucket)
	for _, r := range d.Records {
		year, ok := recordYear(r)
		if !ok {
			continue
		}
		b := buckets[year]
		if b == nil {
			b = &bucket{}
			buckets[year] = b
		}
		b.count++
		b.traffic += r.TrafficVolume
		b.pm25 += r.PM25Value()
	}

	overallTraffic := d.AverageTraffic()
	overallPM25 := d.AverageAirQuality()["pm25"]

	summaries := make([]YearSummary, 0, len(buckets))
	for year, b := range buckets {
		avgTraffic := float64(b.traffic) / float64(b.count)
		avgPM25 := b.pm25 / float64(b.count)
		summaries = append(summaries, YearSummary{
			Year:        year,
			Records:     b.count,
			AvgTraffic:  avgTraffic,
			AvgPM25:     avgPM25,
			TrafficDiff: avgTraffic - overallTraffic,
			PM25Diff:    avgPM25 - overallPM25,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Year < summaries[j].Year })
	return summaries
}

// FindHotspots returns every record whose pollution-to-traffic ratio is
// strictly greater than threshold, in record order. Records with zero
// traffic or unmeasured PM2.5 are skipped outright, so the scan is safe
// even over an unfiltered record set.
func (d *Dataset) FindHotspots(threshold float64) []Record {
	var hotspots []Record
	for _, r := range d.Records {
		if r.TrafficVolume <= 0 || r.PM25Value() <= 0 {
			continue
		}
		if r.PollutionToTrafficRatio() > threshold {
			hotspots = append(hotspots, r)
		}
	}
	return hotspots
}

// recordYear extracts the four-digit year prefix from a YYYY-MM-DD date.
func recordYear(r Record) (int, bool) {
	if len(r.Date) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(r.Date[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}
