// Package config holds the backend configuration and its loader.
package config

import (
	"fmt"
	"strings"
)

// Config is the complete configuration of the escl backend tooling. It
// loads from configuration files, environment variables and
// command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Scan defaults applied when the caller does not choose
	Scan ScanConfig `mapstructure:"scan" yaml:"scan" json:"scan"`

	// Device addressing for the external transport layer
	Device DeviceConfig `mapstructure:"device" yaml:"device" json:"device"`
}

// ScanConfig contains the default scan settings.
type ScanConfig struct {
	Source     string `mapstructure:"source" yaml:"source" json:"source"`
	Resolution int    `mapstructure:"resolution" yaml:"resolution" json:"resolution"`
	ColorMode  string `mapstructure:"color_mode" yaml:"color_mode" json:"color_mode"`
	Format     string `mapstructure:"format" yaml:"format" json:"format"`
}

// DeviceConfig contains device addressing settings. The transport that
// uses them lives outside this module.
type DeviceConfig struct {
	Endpoint   string `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint"`
	TimeoutSec int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
}

// DefaultConfig returns the configuration defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Scan: ScanConfig{
			Source:     "flatbed",
			Resolution: 300,
			ColorMode:  "RGB24",
			Format:     "image/jpeg",
		},
		Device: DeviceConfig{
			TimeoutSec: 30,
		},
	}
}

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validSources    = []string{"flatbed", "adf", "adf-duplex"}
	validColorModes = []string{"BlackAndWhite1", "Grayscale8", "RGB24"}
	validFormats    = []string{"image/jpeg", "image/png", "application/pdf"}
)

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level %q (valid: %s)",
			c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if c.Scan.Source != "" && !contains(validSources, c.Scan.Source) {
		return fmt.Errorf("invalid scan.source %q (valid: %s)",
			c.Scan.Source, strings.Join(validSources, ", "))
	}
	if c.Scan.Resolution <= 0 {
		return fmt.Errorf("invalid scan.resolution %d: must be positive", c.Scan.Resolution)
	}
	if c.Scan.ColorMode != "" && !contains(validColorModes, c.Scan.ColorMode) {
		return fmt.Errorf("invalid scan.color_mode %q (valid: %s)",
			c.Scan.ColorMode, strings.Join(validColorModes, ", "))
	}
	if c.Scan.Format != "" && !contains(validFormats, strings.ToLower(c.Scan.Format)) {
		return fmt.Errorf("invalid scan.format %q (valid: %s)",
			c.Scan.Format, strings.Join(validFormats, ", "))
	}
	if c.Device.TimeoutSec < 0 {
		return fmt.Errorf("invalid device.timeout_sec %d: must not be negative", c.Device.TimeoutSec)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
