package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
server:
  port: "9090"
  mode: debug
database:
  host: localhost
  port: 3306
  user: root
  password: secret
  dbname: risk
jwt:
  secret: dev-secret
  expire_hours: 8
scoring:
  strategy: weighted
statistics:
  cache_ttl_seconds: 30
cors:
  allowed_origins:
    - http://localhost:5173
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	content += "storage:\n  local_path: " + filepath.Join(dir, "uploads") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := writeConfig(t, sampleConfig)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "risk", cfg.Database.DBName)
	assert.Equal(t, "utf8mb4", cfg.Database.Charset)
	assert.Equal(t, 8*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, "weighted", cfg.Scoring.Strategy)
	assert.Equal(t, 30*time.Second, cfg.Statistics.CacheTTL())
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, dir, cfg.Path)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := writeConfig(t, sampleConfig)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATABASE_HOST", "db.internal")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestLoadConfig_ReleaseRequiresStrongSecret(t *testing.T) {
	dir := writeConfig(t, sampleConfig)
	t.Setenv("SERVER_MODE", "release")

	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "JWT secret is too short")
}

func TestValidate_UnknownStrategy(t *testing.T) {
	cfg := &Config{Scoring: ScoringConfig{Strategy: "magic"}}

	assert.Error(t, cfg.Validate())
}

func TestValidate_DefaultStrategy(t *testing.T) {
	cfg := &Config{}

	assert.NoError(t, cfg.Validate())
}

func TestValidate_UnknownServerMode(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Mode: "production"}}

	assert.ErrorContains(t, cfg.Validate(), "server.mode")
}
