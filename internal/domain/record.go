package domain

// Thresholds for classifying a record, from NYC DOT traffic screenline
// studies and the EPA annual PM2.5 standard.
const (
	HighTrafficThreshold = 1000 // vehicles per hour
	PoorAirPM25Threshold = 12.0 // micrograms per cubic meter
)

// JoinKey identifies one (location, date) cell across both source datasets.
// Location is lower-cased, Date is canonical YYYY-MM-DD.
type JoinKey struct {
	Location string
	Date     string
}

// Record is one merged measurement for a location on a date.
//
// PM25 is nil until an air-quality reading has been matched; the filtered
// dataset only ever contains records with a measured, positive PM25. A nil
// pointer rather than a zero value keeps "not yet measured" distinct from
// "measured zero", which the raw sources conflate.
type Record struct {
	Location      string   `json:"location"`
	TrafficVolume int      `json:"traffic_volume"`
	PM25          *float64 `json:"pm25,omitempty"`
	Date          string   `json:"date,omitempty"`
}

// PM25Value returns the measured PM2.5 concentration, or 0 when unmeasured.
func (r Record) PM25Value() float64 {
	if r.PM25 == nil {
		return 0
	}
	return *r.PM25
}

// IsHighTraffic reports whether the record meets the high-traffic threshold.
func (r Record) IsHighTraffic() bool {
	return r.TrafficVolume >= HighTrafficThreshold
}

// IsPoorAir reports whether the measured PM2.5 meets the poor-air threshold.
// Unmeasured PM2.5 is never poor air.
func (r Record) IsPoorAir() bool {
	return r.PM25 != nil && *r.PM25 >= PoorAirPM25Threshold
}

// PollutionToTrafficRatio divides PM2.5 by traffic volume. Higher values
// mean more pollution per unit of traffic. Returns 0 when traffic volume
// is zero or PM2.5 is unmeasured, never a division error.
func (r Record) PollutionToTrafficRatio() float64 {
	if r.TrafficVolume == 0 || r.PM25 == nil {
		return 0
	}
	return *r.PM25 / float64(r.TrafficVolume)
}

// Key returns the record's join key.
func (r Record) Key() JoinKey {
	return JoinKey{Location: r.Location, Date: r.Date}
}
