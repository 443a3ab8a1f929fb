package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// freshLoader returns a loader backed by its own viper instance so
// tests do not leak state through the global one.
func freshLoader() *Loader {
	return &Loader{v: viper.New()}
}

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, _ := os.Getwd()
	defer func() { _ = os.Chdir(originalWd) }()
	require.NoError(t, os.Chdir(tmpDir))

	cfg, err := freshLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 300, cfg.Scan.Resolution)
	assert.Equal(t, 30, cfg.Device.TimeoutSec)
}

func TestLoadWithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "escl.yaml")

	yamlContent := `
log_level: debug
scan:
  source: adf
  resolution: 600
device:
  endpoint: http://192.0.2.7/eSCL
`
	require.NoError(t, os.WriteFile(configFile, []byte(yamlContent), 0o600))

	cfg, err := freshLoader().LoadWithFile(configFile)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "adf", cfg.Scan.Source)
	assert.Equal(t, 600, cfg.Scan.Resolution)
	assert.Equal(t, "http://192.0.2.7/eSCL", cfg.Device.Endpoint)
	// Unset keys keep their defaults.
	assert.Equal(t, "image/jpeg", cfg.Scan.Format)
}

func TestLoadWithMissingFile(t *testing.T) {
	_, err := freshLoader().LoadWithFile("/nonexistent/escl.yaml")
	assert.Error(t, err)
}

func TestLoadWithInvalidValues(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "escl.yaml")
	require.NoError(t, os.WriteFile(configFile,
		[]byte("scan:\n  resolution: -10\n"), 0o600))

	_, err := freshLoader().LoadWithFile(configFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestLoadFromEnvironment(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, _ := os.Getwd()
	defer func() { _ = os.Chdir(originalWd) }()
	require.NoError(t, os.Chdir(tmpDir))

	t.Setenv("ESCL_SCAN_RESOLUTION", "1200")

	cfg, err := freshLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, 1200, cfg.Scan.Resolution)
}
