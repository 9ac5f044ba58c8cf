package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0644))
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: test
jwt:
  secret: short
storage:
  type: minio
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.True(t, cfg.Testing.StatsIncludeInProgress)
	assert.Equal(t, 3, cfg.Testing.AnswerRetryLimit)
	assert.Equal(t, time.Minute, cfg.Testing.ExpireInterval())
	assert.Equal(t, 5*time.Minute, cfg.Testing.CacheTTL())
	assert.Equal(t, 6000, cfg.RateLimit.MaxRequests)
}

func TestLoadConfig_TestingSection(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: test
storage:
  type: minio
testing:
  stats_include_in_progress: false
  expire_interval_seconds: 0
  answer_retry_limit: 0
  cache_ttl_seconds: 30
cors:
  allowed_origins: ["https://edu.example"]
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.False(t, cfg.Testing.StatsIncludeInProgress)
	assert.Equal(t, time.Duration(0), cfg.Testing.ExpireInterval())
	assert.Equal(t, 1, cfg.Testing.AnswerRetryLimit, "retry limit is at least one")
	assert.Equal(t, 30*time.Second, cfg.Testing.CacheTTL())
	assert.Equal(t, []string{"https://edu.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfig_ReleaseNeedsStrongSecret(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: release
jwt:
  secret: too-short
storage:
  type: minio
`)

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}
