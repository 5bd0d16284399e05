package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
upstream:
  base_url: "http://localhost:8080"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Upstream.TimeoutSeconds)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 30, cfg.Session.TTLMinutes)
	assert.Equal(t, "0 0 */6 * * *", cfg.Scheduler.RefreshReferenceData)
	assert.Equal(t, "0 */10 * * * *", cfg.Scheduler.ExpireSessions)
	assert.Equal(t, ":8090", cfg.GetServerAddress())
}

func TestLoadRequiresUpstreamBaseURL(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
upstream:
  base_url: "http://localhost:8080"
`)

	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("UPSTREAM_BASE_URL", "http://library:8080")
	t.Setenv("SESSION_TTL_MINUTES", "5")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "http://library:8080", cfg.Upstream.BaseURL)
	assert.Equal(t, 5, cfg.Session.TTLMinutes)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
