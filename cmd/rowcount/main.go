// Command rowcount counts the raw data rows in both source datasets with no
// borough or signal restrictions and writes a small text summary. Useful for
// sanity-checking a fresh data drop against what the pipeline later keeps.
//
// Usage:
//
//	go run ./cmd/rowcount \
//	  -traffic data/Automated_Traffic_Volume_Counts_20251129.csv \
//	  -air-dir data/AirQuality \
//	  -out data_summary.txt
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/couchcryptid/urbanflow/internal/adapter/datafile"
	"github.com/couchcryptid/urbanflow/internal/observability"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	trafficFile := flag.String("traffic", "", "path to the traffic volume counts CSV")
	airDir := flag.String("air-dir", "", "folder containing EPA PM2.5 export CSVs")
	out := flag.String("out", "data_summary.txt", "output path for the summary")
	flag.Parse()

	if *trafficFile == "" || *airDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -traffic, -air-dir")
	}

	logger := observability.NewLogger("info", "text")
	ctx := context.Background()

	trafficCount, err := datafile.NewTrafficReader(*trafficFile, logger).CountRows(ctx)
	if err != nil {
		return fmt.Errorf("counting traffic rows: %w", err)
	}

	airCount, err := datafile.NewAirQualityReader(*airDir, logger).CountRows(ctx)
	if err != nil {
		return fmt.Errorf("counting air quality rows: %w", err)
	}

	summary := fmt.Sprintf(
		"=== NYC Data Summary ===\nTotal Traffic Rows (no restrictions): %d\nTotal Air Quality Rows (no restrictions): %d\n",
		trafficCount, airCount,
	)
	if err := os.WriteFile(*out, []byte(summary), 0o644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	log.Printf("summary written to %s", *out)
	return nil
}
