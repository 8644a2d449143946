package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv 清空会影响加载结果的环境变量，viper 将空值视为未设置
func clearEnv(t *testing.T) {
	t.Helper()
	for _, names := range envBindings {
		for _, name := range names {
			t.Setenv(name, "")
		}
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.HTTP.Port)
	assert.Equal(t, 90*time.Second, cfg.Server.HTTP.WriteTimeout)
	assert.Equal(t, int64(10<<20), cfg.Server.HTTP.MaxBodyBytes)
	assert.Equal(t, "https://api.stability.ai", cfg.Stability.BaseURL)
	assert.Equal(t, "stable-diffusion-xl-1024-v1-0", cfg.Stability.Engine)
	assert.Equal(t, 60*time.Second, cfg.Stability.Timeout)
	assert.False(t, cfg.Stability.HasAPIKey())
	assert.Equal(t, "http://localhost:5000", cfg.Studio.APIURL)
	assert.Empty(t, cfg.Security.CORS.FrontendURL)
	assert.True(t, cfg.Observability.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Observability.Metrics.Path)
	assert.False(t, cfg.Observability.Tracing.Enabled)
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("STABILITY_API_KEY", "sk-test")
	t.Setenv("FRONTEND_URL", "http://localhost:5173")
	t.Setenv("VITE_API_URL", "http://api.internal:9000")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTP.Port)
	assert.Equal(t, "sk-test", cfg.Stability.APIKey)
	assert.True(t, cfg.Stability.HasAPIKey())
	assert.Equal(t, "http://localhost:5173", cfg.Security.CORS.FrontendURL)
	assert.Equal(t, "http://api.internal:9000", cfg.Studio.APIURL)
}

func TestLoadFrom_FilesMergeByEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "test")
	t.Setenv("Z_IMAGE_TEST_ENGINE", "sdxl-custom")

	dir := t.TempDir()
	base := `
stability:
  engine: ${Z_IMAGE_TEST_ENGINE:unused}
  timeout: 30s
studio:
  download_dir: ${Z_IMAGE_TEST_UNSET:/tmp/images}
`
	override := `
stability:
  timeout: 45s
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(base), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.test.yaml"), []byte(override), 0o644))

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "sdxl-custom", cfg.Stability.Engine)
	assert.Equal(t, 45*time.Second, cfg.Stability.Timeout)
	assert.Equal(t, "/tmp/images", cfg.Studio.DownloadDir)
	assert.Equal(t, "test", cfg.App.Env)
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o644))

	_, err := LoadFrom(dir)
	assert.Error(t, err)
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("Z_IMAGE_SET", "value")

	assert.Equal(t, "a: value", expandEnv("a: ${Z_IMAGE_SET:other}"))
	assert.Equal(t, "a: fallback", expandEnv("a: ${Z_IMAGE_MISSING:fallback}"))
	assert.Equal(t, "a: ", expandEnv("a: ${Z_IMAGE_MISSING:}"))
	assert.Equal(t, "a: ${Z_IMAGE_MISSING}", expandEnv("a: ${Z_IMAGE_MISSING}"))
}
