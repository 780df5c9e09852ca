package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("URBANFLOW_TRAFFIC_FILE", "data/traffic.csv")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "New York City", cfg.CityName)
	assert.Equal(t, []string{"bronx", "brooklyn", "manhattan", "queens", "staten island"}, cfg.Boroughs)
	assert.Equal(t, "data/traffic.csv", cfg.TrafficFile)
	assert.Equal(t, "data/AirQuality", cfg.AirQualityDir)
	assert.Equal(t, "nyc_yearly_summary_report.txt", cfg.OutputFile)
	assert.Equal(t, 0.01, cfg.HotspotThreshold)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("URBANFLOW_TRAFFIC_FILE", "/srv/traffic.csv")
	t.Setenv("URBANFLOW_AIR_QUALITY_DIR", "/srv/air")
	t.Setenv("URBANFLOW_OUTPUT_FILE", "/tmp/report.txt")
	t.Setenv("URBANFLOW_HOTSPOT_THRESHOLD", "0.05")
	t.Setenv("URBANFLOW_LOG_LEVEL", "debug")
	t.Setenv("URBANFLOW_LOG_FORMAT", "text")
	t.Setenv("URBANFLOW_METRICS_ADDR", ":9090")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "/srv/traffic.csv", cfg.TrafficFile)
	assert.Equal(t, "/srv/air", cfg.AirQualityDir)
	assert.Equal(t, "/tmp/report.txt", cfg.OutputFile)
	assert.Equal(t, 0.05, cfg.HotspotThreshold)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urbanflow.yaml")
	body := `city_name: Chicago
boroughs:
  - cook
traffic_file: chicago_traffic.csv
hotspot_threshold: 0.02
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "Chicago", cfg.CityName)
	assert.Equal(t, []string{"cook"}, cfg.Boroughs)
	assert.Equal(t, "chicago_traffic.csv", cfg.TrafficFile)
	assert.Equal(t, 0.02, cfg.HotspotThreshold)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoad_Validation(t *testing.T) {
	t.Run("traffic file required", func(t *testing.T) {
		_, err := Load(viper.New(), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "traffic_file is required")
	})

	t.Run("negative hotspot threshold", func(t *testing.T) {
		t.Setenv("URBANFLOW_TRAFFIC_FILE", "data/traffic.csv")
		t.Setenv("URBANFLOW_HOTSPOT_THRESHOLD", "-0.5")

		_, err := Load(viper.New(), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "hotspot_threshold")
	})

	t.Run("bad log format", func(t *testing.T) {
		t.Setenv("URBANFLOW_TRAFFIC_FILE", "data/traffic.csv")
		t.Setenv("URBANFLOW_LOG_FORMAT", "xml")

		_, err := Load(viper.New(), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log_format")
	})
}
