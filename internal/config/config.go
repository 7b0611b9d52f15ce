package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/moffa90/go-lcd1602/protocol"
)

// EnvPrefix prefixes environment overrides, e.g. LCDCTL_DEVICE_PATH.
const EnvPrefix = "LCDCTL"

// Config represents the lcdctl configuration
type Config struct {
	Device   DeviceConfig   `mapstructure:"device"`
	Sequence SequenceConfig `mapstructure:"sequence"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DeviceConfig represents the display device configuration
type DeviceConfig struct {
	Path        string        `mapstructure:"path"`
	SettleDelay time.Duration `mapstructure:"settle_delay"`
	DecodeMode  string        `mapstructure:"decode_mode"`
}

// SequenceConfig selects the command sequence to run.
// An empty File runs the built-in demo sequence.
type SequenceConfig struct {
	File string `mapstructure:"file"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// Load reads configuration from the YAML file at path and from LCDCTL_*
// environment variables. An empty path uses defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Device defaults
	v.SetDefault("device.path", protocol.DefaultDevicePath)
	v.SetDefault("device.settle_delay", "1s")
	v.SetDefault("device.decode_mode", protocol.DecodeStrict.String())

	v.SetDefault("sequence.file", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
	v.SetDefault("logging.compress", true)
}

// Validate validates the configuration
func Validate(config *Config) error {
	if config.Device.Path == "" {
		return errors.New("device.path is required")
	}
	if config.Device.SettleDelay < 0 {
		return fmt.Errorf("device.settle_delay must not be negative, got %s", config.Device.SettleDelay)
	}
	if _, err := protocol.ParseDecodeMode(config.Device.DecodeMode); err != nil {
		return fmt.Errorf("device.decode_mode: %w", err)
	}

	if config.Logging.MaxSize < 0 {
		return fmt.Errorf("logging.max_size must not be negative, got %d", config.Logging.MaxSize)
	}
	if config.Logging.MaxBackups < 0 {
		return fmt.Errorf("logging.max_backups must not be negative, got %d", config.Logging.MaxBackups)
	}
	if config.Logging.MaxAge < 0 {
		return fmt.Errorf("logging.max_age must not be negative, got %d", config.Logging.MaxAge)
	}

	validLevels := []string{"debug", "info", "warn", "error", "fatal"}
	if !contains(validLevels, config.Logging.Level) {
		return fmt.Errorf("logging.level must be one of: %v", validLevels)
	}

	validFormats := []string{"json", "console"}
	if !contains(validFormats, config.Logging.Format) {
		return fmt.Errorf("logging.format must be one of: %v", validFormats)
	}

	return nil
}

// DecodeMode returns the parsed device.decode_mode.
func (c *Config) DecodeMode() protocol.DecodeMode {
	mode, err := protocol.ParseDecodeMode(c.Device.DecodeMode)
	if err != nil {
		return protocol.DecodeStrict
	}
	return mode
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
