package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. FARAID_CURRENCY
const EnvPrefix = "FARAID"

// Config is the complete runtime configuration
type Config struct {
	Currency  string       `yaml:"currency" mapstructure:"currency"`
	Precision int32        `yaml:"precision" mapstructure:"precision"`
	Workers   int          `yaml:"workers" mapstructure:"workers"`
	Output    OutputConfig `yaml:"output" mapstructure:"output"`
	Cache     CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Log       LogConfig    `yaml:"log" mapstructure:"log"`
}

type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
	Dir    string `yaml:"dir" mapstructure:"dir"`
}

type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() Config {
	return Config{
		Currency:  "IDR",
		Precision: 2,
		Workers:   runtime.NumCPU(),
		Output: OutputConfig{
			Format: "text",
			Dir:    "",
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             10 * time.Minute,
			CleanupInterval: 0,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// SetDefaults registers every default on v so env vars and files can override them
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("currency", d.Currency)
	v.SetDefault("precision", d.Precision)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.cleanup_interval", d.Cache.CleanupInterval)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// ConfigureEnv makes FARAID_* variables override file values, with dots mapped to underscores
func ConfigureEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the effective configuration out of v and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no command can run with
func (c Config) Validate() error {
	switch c.Output.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("invalid output.format %q: expected text, json or csv", c.Output.Format)
	}
	if c.Precision < 0 || c.Precision > 18 {
		return fmt.Errorf("invalid precision %d: expected 0..18", c.Precision)
	}
	if c.Workers < 1 {
		return fmt.Errorf("invalid workers %d: expected at least 1", c.Workers)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("invalid cache.ttl %s", c.Cache.TTL)
	}
	return nil
}
