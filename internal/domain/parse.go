package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Skip reasons for a single source row. The pipeline counts and logs these;
// none of them ever aborts a file.
var (
	ErrOutOfScope      = errors.New("location outside scope")
	ErrBadDate         = errors.New("malformed date")
	ErrNoTrafficSignal = errors.New("no traffic signal")
	ErrNoPM25Signal    = errors.New("no pm2.5 signal")
)

// TrafficRow is one raw row from the DOT automated traffic volume counts,
// all fields still in their source string form.
type TrafficRow struct {
	Borough string // "Boro" column
	Year    string // "Yr"
	Month   string // "M"
	Day     string // "D"
	Volume  string // "Vol", fallback "Volume"; may contain thousands separators
}

// AirQualityRow is one raw row from an EPA daily PM2.5 export.
type AirQualityRow struct {
	County string
	Date   string // MM/DD/YYYY
	PM25   string // "Daily Mean PM2.5 Concentration"
}

// TrafficMeasurement is a normalized traffic observation keyed for joining.
type TrafficMeasurement struct {
	Key    JoinKey
	Volume int
}

// AirMeasurement is a normalized PM2.5 observation keyed for joining.
type AirMeasurement struct {
	Key  JoinKey
	PM25 float64
}

// ParseTrafficRow normalizes one traffic source row. It returns one of the
// skip-reason errors for out-of-scope, malformed, or signal-less rows and
// never panics on bad input.
func ParseTrafficRow(row TrafficRow, scope Scope) (TrafficMeasurement, error) {
	location := NormalizeLocation(row.Borough)
	if !scope.Contains(location) {
		return TrafficMeasurement{}, fmt.Errorf("%w: %q", ErrOutOfScope, location)
	}

	date, err := trafficDate(row.Year, row.Month, row.Day)
	if err != nil {
		return TrafficMeasurement{}, err
	}

	volume := parseVolume(row.Volume)
	if volume <= 0 {
		return TrafficMeasurement{}, ErrNoTrafficSignal
	}

	return TrafficMeasurement{
		Key:    JoinKey{Location: location, Date: date},
		Volume: volume,
	}, nil
}

// ParseAirQualityRow normalizes one air-quality source row. A reading of
// exactly zero is indistinguishable from "no data" in the EPA export and is
// reported as ErrNoPM25Signal rather than kept as a valid zero.
func ParseAirQualityRow(row AirQualityRow, scope Scope) (AirMeasurement, error) {
	location := NormalizeLocation(row.County)
	if !scope.Contains(location) {
		return AirMeasurement{}, fmt.Errorf("%w: %q", ErrOutOfScope, location)
	}

	date, err := airDate(row.Date)
	if err != nil {
		return AirMeasurement{}, err
	}

	pm25, err := strconv.ParseFloat(strings.TrimSpace(row.PM25), 64)
	if err != nil || pm25 == 0 {
		return AirMeasurement{}, ErrNoPM25Signal
	}

	return AirMeasurement{
		Key:  JoinKey{Location: location, Date: date},
		PM25: pm25,
	}, nil
}

// trafficDate builds YYYY-MM-DD from the traffic source's split year, month,
// and day columns. Any non-numeric field rejects the row.
func trafficDate(year, month, day string) (string, error) {
	y, errY := strconv.Atoi(strings.TrimSpace(year))
	m, errM := strconv.Atoi(strings.TrimSpace(month))
	d, errD := strconv.Atoi(strings.TrimSpace(day))
	if errY != nil || errM != nil || errD != nil {
		return "", fmt.Errorf("%w: %q-%q-%q", ErrBadDate, year, month, day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d), nil
}

// airDate reorders the air-quality source's MM/DD/YYYY into YYYY-MM-DD.
func airDate(date string) (string, error) {
	parts := strings.Split(strings.TrimSpace(date), "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: %q", ErrBadDate, date)
	}
	m, errM := strconv.Atoi(parts[0])
	d, errD := strconv.Atoi(parts[1])
	y, errY := strconv.Atoi(parts[2])
	if errM != nil || errD != nil || errY != nil {
		return "", fmt.Errorf("%w: %q", ErrBadDate, date)
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d), nil
}

// parseVolume strips thousands separators and truncates to an integer count.
// Returns 0 for anything unparsable; the caller treats that as no signal.
func parseVolume(volume string) int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(volume), ",", "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return int(v)
}
