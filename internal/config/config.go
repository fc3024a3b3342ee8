// Package config loads application configuration from config.yaml and the
// environment, and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/fundamentals-cli/internal/store"
)

// Config holds the full application configuration.
type Config struct {
	Store  store.Config `yaml:"store" mapstructure:"store"`
	Edgar  EdgarConfig  `yaml:"edgar" mapstructure:"edgar"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// EdgarConfig configures the EDGAR dataset pipeline.
type EdgarConfig struct {
	DataDir           string  `yaml:"data_dir" mapstructure:"data_dir"`
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"`
	SICCodesURL       string  `yaml:"sic_codes_url" mapstructure:"sic_codes_url"`
	UserAgent         string  `yaml:"user_agent" mapstructure:"user_agent"`
	Year              int     `yaml:"year" mapstructure:"year"`
	Quarter           string  `yaml:"quarter" mapstructure:"quarter"`
	DefaultRatioValue float64 `yaml:"default_ratio_value" mapstructure:"default_ratio_value"`
	TaxonomyPath      string  `yaml:"taxonomy_path" mapstructure:"taxonomy_path"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Validate checks that the configuration is usable for the given mode.
// Modes: "run" (pipeline), "serve" (HTTP API), "siccodes" (SIC fetch).
func (c *Config) Validate(mode string) error {
	var problems []string

	switch c.Store.Driver {
	case "", "sqlite":
	case "postgres":
		if c.Store.DatabaseURL == "" {
			problems = append(problems, "store.database_url is required for the postgres driver")
		}
	default:
		problems = append(problems, "store.driver must be sqlite or postgres")
	}

	switch mode {
	case "run":
		if c.Edgar.Year < 2009 {
			problems = append(problems, "edgar.year must be 2009 or later")
		}
		switch c.Edgar.Quarter {
		case "Q1", "Q2", "Q3", "Q4":
		default:
			problems = append(problems, "edgar.quarter must be one of Q1..Q4")
		}
		if c.Edgar.UserAgent == "" {
			problems = append(problems, "edgar.user_agent is required")
		}
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			problems = append(problems, "server.port must be > 0 and <= 65535")
		}
	case "siccodes":
		if c.Edgar.SICCodesURL == "" {
			problems = append(problems, "edgar.sic_codes_url is required")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FUNDAMENTALS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "fundamentals.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("edgar.data_dir", "data")
	v.SetDefault("edgar.base_url", "https://www.sec.gov/files/dera/data/financial-statement-data-sets")
	v.SetDefault("edgar.sic_codes_url", "https://www.sec.gov/info/edgar/siccodes.htm")
	v.SetDefault("edgar.user_agent", "Sells Advisors blake@sellsadvisors.com")
	v.SetDefault("edgar.year", 2019)
	v.SetDefault("edgar.quarter", "Q2")
	v.SetDefault("edgar.default_ratio_value", 0.0)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
