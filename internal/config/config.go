package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`

	Safilo        VendorConfig `yaml:"safilo" mapstructure:"safilo"`
	ModernOptical VendorConfig `yaml:"modernoptical" mapstructure:"modernoptical"`
	Luxottica     VendorConfig `yaml:"luxottica" mapstructure:"luxottica"`
	Marchon       VendorConfig `yaml:"marchon" mapstructure:"marchon"`
	Europa        VendorConfig `yaml:"europa" mapstructure:"europa"`
	Kenmark       VendorConfig `yaml:"kenmark" mapstructure:"kenmark"`
}

// Vendor returns one vendor's client options by identifier.
func (c *Config) Vendor(name string) (VendorConfig, bool) {
	switch strings.ToLower(name) {
	case "safilo":
		return c.Safilo, true
	case "modernoptical":
		return c.ModernOptical, true
	case "luxottica":
		return c.Luxottica, true
	case "marchon":
		return c.Marchon, true
	case "europa":
		return c.Europa, true
	case "kenmark":
		return c.Kenmark, true
	}
	return VendorConfig{}, false
}

// PipelineConfig configures batch orchestration.
type PipelineConfig struct {
	BatchSize    int `yaml:"batch_size" mapstructure:"batch_size"`
	BatchPauseMs int `yaml:"batch_pause_ms" mapstructure:"batch_pause_ms"`
}

// BatchPause returns the inter-batch pause as a duration.
func (p PipelineConfig) BatchPause() time.Duration {
	return time.Duration(p.BatchPauseMs) * time.Millisecond
}

// VendorConfig holds one vendor client's options.
type VendorConfig struct {
	BaseURL       string `yaml:"base_url" mapstructure:"base_url"`
	APIKey        string `yaml:"api_key" mapstructure:"api_key"`
	TimeoutSecs   int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries    int    `yaml:"max_retries" mapstructure:"max_retries"`
	RetryDelayMs  int    `yaml:"retry_delay_ms" mapstructure:"retry_delay_ms"`
	MinConfidence int    `yaml:"min_confidence" mapstructure:"min_confidence"`
	Debug         bool   `yaml:"debug" mapstructure:"debug"`
}

// Timeout returns the per-call network timeout as a duration.
func (v VendorConfig) Timeout() time.Duration {
	return time.Duration(v.TimeoutSecs) * time.Second
}

// RetryDelay returns the base retry delay as a duration.
func (v VendorConfig) RetryDelay() time.Duration {
	return time.Duration(v.RetryDelayMs) * time.Millisecond
}

// Validate checks the bounds the unmarshaller cannot express.
func (c *Config) Validate() error {
	var problems []string

	if c.Pipeline.BatchSize < 1 || c.Pipeline.BatchSize > 50 {
		problems = append(problems, "pipeline.batch_size must be between 1 and 50")
	}
	if c.Pipeline.BatchPauseMs < 0 {
		problems = append(problems, "pipeline.batch_pause_ms must be >= 0")
	}

	for _, vendor := range []string{"safilo", "modernoptical", "luxottica", "marchon", "europa", "kenmark"} {
		vc, _ := c.Vendor(vendor)
		if vc.TimeoutSecs < 1 {
			problems = append(problems, vendor+".timeout_secs must be > 0")
		}
		if vc.MaxRetries < 1 || vc.MaxRetries > 10 {
			problems = append(problems, vendor+".max_retries must be between 1 and 10")
		}
		if vc.MinConfidence < 0 {
			problems = append(problems, vendor+".min_confidence must be >= 0")
		}
	}

	if len(problems) > 0 {
		return eris.New("invalid configuration: " + strings.Join(problems, "; "))
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
	v.SetEnvPrefix("OPTICAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("pipeline.batch_size", 5)
	v.SetDefault("pipeline.batch_pause_ms", 500)

	for _, vendor := range []string{"safilo", "modernoptical", "luxottica", "marchon", "europa", "kenmark"} {
		v.SetDefault(vendor+".timeout_secs", 15)
		v.SetDefault(vendor+".max_retries", 3)
		v.SetDefault(vendor+".retry_delay_ms", 1000)
		v.SetDefault(vendor+".min_confidence", 50)
	}

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

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}
