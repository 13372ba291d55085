package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Dataset DatasetConfig `yaml:"dataset" mapstructure:"dataset"`
	Prefs   PrefsConfig   `yaml:"prefs" mapstructure:"prefs"`
	Render  RenderConfig  `yaml:"render" mapstructure:"render"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// DatasetConfig configures where the vehicle population data is read from.
type DatasetConfig struct {
	Source      string  `yaml:"source" mapstructure:"source"`
	DatabaseURL string  `yaml:"database_url" mapstructure:"database_url"`
	Table       string  `yaml:"table" mapstructure:"table"`
	Sheet       string  `yaml:"sheet" mapstructure:"sheet"`
	TempDir     string  `yaml:"temp_dir" mapstructure:"temp_dir"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int     `yaml:"max_retries" mapstructure:"max_retries"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// PrefsConfig configures the local preference store.
type PrefsConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// RenderConfig configures chart image output.
type RenderConfig struct {
	OutDir string `yaml:"out_dir" mapstructure:"out_dir"`
	Format string `yaml:"format" mapstructure:"format"`
	Width  int    `yaml:"width" mapstructure:"width"`
	Height int    `yaml:"height" mapstructure:"height"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("EVDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("dataset.source", "Electric_Vehicle_Population_Data.csv")
	v.SetDefault("dataset.database_url", "")
	v.SetDefault("dataset.table", "ev_population")
	v.SetDefault("dataset.sheet", "")
	v.SetDefault("dataset.temp_dir", "")
	v.SetDefault("dataset.user_agent", "ev-dashboard/1.0")
	v.SetDefault("dataset.timeout_secs", 60)
	v.SetDefault("dataset.max_retries", 1)
	v.SetDefault("dataset.rate_limit", 5.0)
	v.SetDefault("prefs.path", "evdash.db")
	v.SetDefault("render.out_dir", "charts")
	v.SetDefault("render.format", "png")
	v.SetDefault("render.width", 800)
	v.SetDefault("render.height", 480)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the commands cannot work with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Render.Format) {
	case "png", "svg":
	default:
		return eris.Errorf("config: render.format must be png or svg, got %q", c.Render.Format)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return eris.Errorf("config: render size must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Dataset.Source == "" && c.Dataset.DatabaseURL == "" {
		return eris.New("config: dataset.source or dataset.database_url is required")
	}
	return nil
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
