// Package domain models joined NYC traffic and air-quality measurements.
//
// # Data Sources
//
// Traffic volumes come from the NYC DOT Automated Traffic Volume Counts
// export on NYC Open Data. Relevant columns:
//
//	Boro            borough name, e.g. "Bronx" (case and whitespace vary)
//	Yr, M, D        split date fields, numeric
//	Vol / Volume    vehicles counted, may contain thousands separators ("1,247")
//
// PM2.5 readings come from the EPA outdoor air quality download tool, one
// or more daily CSV exports. Relevant columns:
//
//	County                            county name, matches the borough for NYC
//	Date                              MM/DD/YYYY
//	Daily Mean PM2.5 Concentration    micrograms per cubic meter
//
// # Join Convention
//
// Both sources are keyed by [JoinKey]: the lower-cased borough/county name
// plus the date in canonical YYYY-MM-DD form. Traffic rows anchor the join;
// an air-quality reading with no traffic row on its key is dropped.
//
// # Missing Data
//
// The EPA export writes 0 where a monitor reported nothing, so a PM2.5 of
// exactly zero cannot be told apart from "no data" and is skipped during
// parsing. A [Record] carries PM2.5 as a pointer: nil until a reading has
// been matched, which keeps "not yet measured" out of the numeric range
// entirely. Published records always have positive traffic and a positive
// measured PM2.5.
//
// # Thresholds
//
// High traffic is >= 1000 vehicles/hour; poor air is >= 12.0 µg/m³ PM2.5
// (the EPA annual standard). A hotspot is a record whose PM2.5 to traffic
// ratio exceeds a caller-chosen threshold, strictly.
package domain
