package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestInitializeConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.True(t, config.Log.MaskPII)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "data/transactions.db", config.Database.Path)
	assert.Equal(t, "goals.yaml", config.Goals.File)
	assert.Empty(t, config.Classifier.ModelPath)
}

func TestInitializeConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `log:
  level: debug
  format: json
server:
  port: 9090
classifier:
  model_path: artifacts/model.yaml
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))
	chdir(t, dir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "artifacts/model.yaml", config.Classifier.ModelPath)
	// Untouched keys keep defaults.
	assert.Equal(t, "data/transactions.db", config.Database.Path)
}

func TestInitializeConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	content := "log:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))
	chdir(t, dir)

	t.Setenv("AMIFI_LOG_LEVEL", "warn")
	t.Setenv("AMIFI_DATABASE_PATH", "/tmp/override.db")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "/tmp/override.db", config.Database.Path)
}

func TestInitializeConfigRejectsInvalidValues(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("AMIFI_LOG_LEVEL", "verbose-ish")
	_, err := InitializeConfig()
	assert.Error(t, err)
}

func TestInitializeConfigRejectsBadPort(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("AMIFI_SERVER_PORT", "99999")
	_, err := InitializeConfig()
	assert.Error(t, err)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("AMIFI_TEST_KEY", "set")

	assert.Equal(t, "set", GetEnv("AMIFI_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("AMIFI_TEST_ABSENT", "fallback"))
}
