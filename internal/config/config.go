// Package config loads pricer settings from a file and LATTICE_* environment
// variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/contactkeval/option-lattice/internal/logger"
	"github.com/contactkeval/option-lattice/internal/pricing"
)

// Config struct
type Config struct {
	Scheme    string        `mapstructure:"scheme"`     // "lr" or "crr"
	Steps     int           `mapstructure:"steps"`      // default lattice steps for the CLI
	Parallel  bool          `mapstructure:"parallel"`   // reprice theta/vega/rho concurrently
	Bumps     BumpConfig    `mapstructure:"bumps"`      // finite-difference steps
	Log       logger.Config `mapstructure:"log"`        // logging
	Server    ServerConfig  `mapstructure:"server"`     // REST surface
	ReportDir string        `mapstructure:"report_dir"` // batch output directory
	Precision int32         `mapstructure:"precision"`  // decimal places in reports
}

// BumpConfig mirrors pricing.Bumps.
type BumpConfig struct {
	TimeDays float64 `mapstructure:"time_days"` // theta step in calendar days
	Vol      float64 `mapstructure:"vol"`
	Rate     float64 `mapstructure:"rate"`
}

// ServerConfig holds the REST listen address.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// Load reads configPath (JSON, YAML or TOML, by extension) over the defaults
// and applies LATTICE_* environment overrides, e.g. LATTICE_SCHEME=crr or
// LATTICE_BUMPS_VOL=0.001. An empty path uses defaults and environment only.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("LATTICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings that the pricer would otherwise reject later.
func (c *Config) Validate() error {
	if _, err := pricing.ParseScheme(c.Scheme); err != nil {
		return err
	}
	if c.Steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", c.Steps)
	}
	if c.Bumps.TimeDays <= 0 || c.Bumps.Vol <= 0 || c.Bumps.Rate <= 0 {
		return fmt.Errorf("bumps must be positive, got %+v", c.Bumps)
	}
	if c.Precision < 0 || c.Precision > 16 {
		return fmt.Errorf("precision must be within [0,16], got %d", c.Precision)
	}
	return nil
}

// PricerOptions translates the config into pricing.Option values.
func (c *Config) PricerOptions() ([]pricing.Option, error) {
	scheme, err := pricing.ParseScheme(c.Scheme)
	if err != nil {
		return nil, err
	}
	opts := []pricing.Option{
		pricing.WithScheme(scheme),
		pricing.WithBumps(pricing.Bumps{
			Time: c.Bumps.TimeDays / 365.0,
			Vol:  c.Bumps.Vol,
			Rate: c.Bumps.Rate,
		}),
	}
	if !c.Parallel {
		opts = append(opts, pricing.Sequential())
	}
	return opts, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("scheme", "lr")
	v.SetDefault("steps", 300)
	v.SetDefault("parallel", true)

	v.SetDefault("bumps.time_days", 1.0)
	v.SetDefault("bumps.vol", 1e-4)
	v.SetDefault("bumps.rate", 1e-4)

	v.SetDefault("log.verbosity", int(logger.Info))
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("log.file_path", "logs/option-lattice.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")

	v.SetDefault("report_dir", "./out")
	v.SetDefault("precision", 6)
}
