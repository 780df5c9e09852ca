// Command urbanflow joins NYC traffic volume counts with EPA PM2.5 readings
// and writes a yearly summary and pollution-hotspot report.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/couchcryptid/urbanflow/internal/adapter/datafile"
	httpadapter "github.com/couchcryptid/urbanflow/internal/adapter/http"
	"github.com/couchcryptid/urbanflow/internal/config"
	"github.com/couchcryptid/urbanflow/internal/domain"
	"github.com/couchcryptid/urbanflow/internal/observability"
	"github.com/couchcryptid/urbanflow/internal/pipeline"
)

var (
	cfgFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "urbanflow",
	Short: "NYC traffic and air-quality analysis",
	Long: `urbanflow loads a DOT automated traffic volume counts CSV and a folder
of EPA daily PM2.5 exports, joins them by borough and date, and writes a
flat-text report with overall and yearly averages plus pollution hotspots.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")

	rootCmd.Flags().String("traffic-file", "", "path to the traffic volume counts CSV")
	rootCmd.Flags().String("air-quality-dir", "data/AirQuality", "folder containing EPA PM2.5 export CSVs")
	rootCmd.Flags().String("output-file", "nyc_yearly_summary_report.txt", "report output path")
	rootCmd.Flags().String("city-name", "New York City", "city label for the report")
	rootCmd.Flags().Float64("hotspot-threshold", 0.01, "pollution-to-traffic ratio above which a record is a hotspot")
	rootCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().String("log-format", "json", "log format (json, text)")
	rootCmd.Flags().String("metrics-addr", "", "optional listen address for health and Prometheus metrics endpoints")

	for key, flag := range map[string]string{
		"traffic_file":      "traffic-file",
		"air_quality_dir":   "air-quality-dir",
		"output_file":       "output-file",
		"city_name":         "city-name",
		"hotspot_threshold": "hotspot-threshold",
		"log_level":         "log-level",
		"log_format":        "log-format",
		"metrics_addr":      "metrics-addr",
	} {
		cobra.CheckErr(v.BindPFlag(key, rootCmd.Flags().Lookup(flag)))
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	scope := domain.NewScope(cfg.CityName, cfg.Boroughs)

	traffic := datafile.NewTrafficReader(cfg.TrafficFile, logger)
	air := datafile.NewAirQualityReader(cfg.AirQualityDir, logger)
	sink := datafile.NewReportWriter(cfg.OutputFile, logger)

	p := pipeline.New(traffic, air, sink, scope, cfg.HotspotThreshold, logger, metrics, nil)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional ops endpoint for scraping metrics during long runs.
	var srv *httpadapter.Server
	if cfg.MetricsAddr != "" {
		srv = httpadapter.NewServer(cfg.MetricsAddr, p, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server error", "error", err)
			}
		}()
	}

	_, runErr := p.Run(ctx)

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", "error", err)
		}
	}

	if runErr != nil {
		logger.Error("pipeline failed", "error", runErr)
		return runErr
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
