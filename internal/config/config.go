// Package config loads the cooker's settings from defaults, an optional YAML
// file and RICECOOKER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/ricecooker/internal/logger"
)

// EnvPrefix is prepended to every environment override, e.g.
// RICECOOKER_COOKER_TICK_INTERVAL=5s.
const EnvPrefix = "RICECOOKER"

// DefaultPath is the config file read when none is given.
const DefaultPath = "ricecooker.yaml"

// Config holds all application configuration.
type Config struct {
	Cooker CookerConfig `mapstructure:"cooker"`
	Chime  ChimeConfig  `mapstructure:"chime"`
	Logger LoggerConfig `mapstructure:"logger"`
}

// CookerConfig holds the simulation settings. Temperature limits are
// properties of the appliance and are not configurable.
type CookerConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

// ChimeConfig holds the completion chime settings.
type ChimeConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	FrequencyHz float64       `mapstructure:"frequency_hz"`
	Duration    time.Duration `mapstructure:"duration"`
	File        string        `mapstructure:"file"` // WAV to play instead of the tone
}

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load reads configuration from path and the environment. A missing file is
// not an error; defaults and environment overrides still apply. Unknown keys
// in the file are.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		case errors.Is(err, fs.ErrNotExist):
			// Defaults only.
		default:
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Cooker: CookerConfig{
			TickInterval: time.Minute,
		},
		Chime: ChimeConfig{
			Enabled:     true,
			FrequencyHz: 880,
			Duration:    600 * time.Millisecond,
		},
		Logger: LoggerConfig{
			Level: "normal",
			File:  ".ricecooker-logs/ricecooker.log",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("cooker.tick_interval", d.Cooker.TickInterval)

	v.SetDefault("chime.enabled", d.Chime.Enabled)
	v.SetDefault("chime.frequency_hz", d.Chime.FrequencyHz)
	v.SetDefault("chime.duration", d.Chime.Duration)
	v.SetDefault("chime.file", d.Chime.File)

	v.SetDefault("logger.level", d.Logger.Level)
	v.SetDefault("logger.file", d.Logger.File)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Cooker.TickInterval <= 0 {
		return fmt.Errorf("cooker.tick_interval must be positive, got %s", c.Cooker.TickInterval)
	}

	if c.Chime.Enabled && c.Chime.File == "" {
		if c.Chime.FrequencyHz <= 0 {
			return fmt.Errorf("chime.frequency_hz must be positive, got %g", c.Chime.FrequencyHz)
		}
		if c.Chime.Duration <= 0 {
			return fmt.Errorf("chime.duration must be positive, got %s", c.Chime.Duration)
		}
	}

	if _, err := logger.ParseLevel(c.Logger.Level); err != nil {
		return fmt.Errorf("logger.level: %w", err)
	}

	return nil
}

// fileConfig is the on-disk shape. Durations are written as strings ("1m0s")
// so the file stays readable and loads back through viper.
type fileConfig struct {
	Cooker struct {
		TickInterval string `yaml:"tick_interval"`
	} `yaml:"cooker"`
	Chime struct {
		Enabled     bool    `yaml:"enabled"`
		FrequencyHz float64 `yaml:"frequency_hz"`
		Duration    string  `yaml:"duration"`
		File        string  `yaml:"file,omitempty"`
	} `yaml:"chime"`
	Logger struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"logger"`
}

// Save writes c to path as YAML, creating parent directories as needed.
func (c *Config) Save(path string) error {
	var fc fileConfig
	fc.Cooker.TickInterval = c.Cooker.TickInterval.String()
	fc.Chime.Enabled = c.Chime.Enabled
	fc.Chime.FrequencyHz = c.Chime.FrequencyHz
	fc.Chime.Duration = c.Chime.Duration.String()
	fc.Chime.File = c.Chime.File
	fc.Logger.Level = c.Logger.Level
	fc.Logger.File = c.Logger.File

	data, err := yaml.Marshal(&fc)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
