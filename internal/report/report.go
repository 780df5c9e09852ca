// Package report renders the flat-text analysis report. The layout is fixed
// and deterministic: downstream consumers diff successive reports, so the
// same dataset must always produce byte-identical output.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/couchcryptid/urbanflow/internal/domain"
)

// ErrNoRecords means the dataset has nothing to summarize and no report
// should be written.
var ErrNoRecords = errors.New("no records to summarize")

const banner = "========================================"

// Render produces the full report text for a populated dataset. The hotspot
// threshold is the ratio above which a record is listed in the hotspot
// section.
func Render(d *domain.Dataset, hotspotThreshold float64) (string, error) {
	if len(d.Records) == 0 {
		return "", ErrNoRecords
	}

	avgTraffic := d.AverageTraffic()
	avgPM25 := d.AverageAirQuality()["pm25"]

	var b strings.Builder
	b.WriteString(banner + "\n")
	b.WriteString("UrbanFlow Analysis Report\n")
	b.WriteString(banner + "\n")
	fmt.Fprintf(&b, "City: %s\n", d.City)
	fmt.Fprintf(&b, "Total Records: %d\n", len(d.Records))
	fmt.Fprintf(&b, "Overall Average Traffic: %.2f vehicles/hour\n", avgTraffic)
	fmt.Fprintf(&b, "Overall Average PM2.5: %.2f µg/m³\n\n", avgPM25)

	b.WriteString("Yearly Averages and Differences:\n")
	years := d.YearlyBreakdown()
	lines := make([]string, 0, len(years))
	for _, y := range years {
		lines = append(lines, fmt.Sprintf(
			"%d: Avg Traffic = %.2f (Diff %+.2f), Avg PM2.5 = %.2f (Diff %+.2f)",
			y.Year, y.AvgTraffic, y.TrafficDiff, y.AvgPM25, y.PM25Diff,
		))
	}
	b.WriteString(strings.Join(lines, "\n"))

	hotspots := d.FindHotspots(hotspotThreshold)
	entries := make([]string, 0, len(hotspots))
	for _, r := range hotspots {
		entries = append(entries, fmt.Sprintf("%s - Ratio: %.6f", r.Location, r.PollutionToTrafficRatio()))
	}
	b.WriteString("\n\nHotspots:\n" + strings.Join(entries, ", ") + "\n")

	return b.String(), nil
}
