package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all pipeline settings, populated from an optional config
// file, URBANFLOW_* environment variables, and bound CLI flags.
type Config struct {
	CityName string   `mapstructure:"city_name"`
	Boroughs []string `mapstructure:"boroughs"`

	TrafficFile   string `mapstructure:"traffic_file"`
	AirQualityDir string `mapstructure:"air_quality_dir"`
	OutputFile    string `mapstructure:"output_file"`

	HotspotThreshold float64 `mapstructure:"hotspot_threshold"`

	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
	MetricsAddr string `mapstructure:"metrics_addr"` // empty disables the listener
}

// SetDefaults registers every setting's default on the given viper instance.
// Called before flag binding so flags and file values both override them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("city_name", "New York City")
	v.SetDefault("boroughs", []string{"bronx", "brooklyn", "manhattan", "queens", "staten island"})
	v.SetDefault("traffic_file", "")
	v.SetDefault("air_quality_dir", "data/AirQuality")
	v.SetDefault("output_file", "nyc_yearly_summary_report.txt")
	v.SetDefault("hotspot_threshold", 0.01)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("metrics_addr", "")
}

// Load reads configuration from the given file (optional when empty),
// overlays URBANFLOW_* environment variables, and validates the result.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix("urbanflow")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.TrafficFile == "" {
		return errors.New("traffic_file is required")
	}
	if c.OutputFile == "" {
		return errors.New("output_file is required")
	}
	if len(c.Boroughs) == 0 {
		return errors.New("boroughs allow-list must not be empty")
	}
	if c.HotspotThreshold < 0 {
		return fmt.Errorf("hotspot_threshold must not be negative, got %g", c.HotspotThreshold)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("log_format must be json or text, got %q", c.LogFormat)
	}
	return nil
}
