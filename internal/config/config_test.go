package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("SEO_FLOW_TEST_HOST", "db.internal")

	assert.Equal(t, "host: db.internal", expandEnv("host: ${SEO_FLOW_TEST_HOST}"))
	assert.Equal(t, "port: 5433", expandEnv("port: ${SEO_FLOW_TEST_MISSING:5433}"))
	assert.Equal(t, "key: ", expandEnv("key: ${SEO_FLOW_TEST_MISSING:}"))
	assert.Equal(t, "raw: ${SEO_FLOW_TEST_MISSING}", expandEnv("raw: ${SEO_FLOW_TEST_MISSING}"))
}

func TestLoadFromDirMergesEnvFileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	base := `
app:
  name: seo-flow-api
llm:
  default_provider: gemini
  providers:
    gemini:
      api_key: ${SEO_FLOW_TEST_KEY:}
      model: gemini-2.5-flash
      timeout: 45s
report:
  dashboard:
    project_limit: 5
`
	override := `
report:
  dashboard:
    project_limit: 7
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(base), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.staging.yaml"), []byte(override), 0o600))

	t.Setenv("APP_ENV", "staging")
	t.Setenv("SEO_FLOW_TEST_KEY", "secret-key")

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)

	name, provider, ok := cfg.LLM.Provider("")
	require.True(t, ok)
	assert.Equal(t, "gemini", name)
	assert.Equal(t, "secret-key", provider.APIKey)
	assert.Equal(t, "gemini-2.5-flash", provider.Model)
	assert.Equal(t, 45*time.Second, provider.Timeout)

	assert.Equal(t, 7, cfg.Report.Dashboard.ProjectLimit)
	assert.Equal(t, 3, cfg.Report.Dashboard.BriefLimit)
	assert.Equal(t, 8080, cfg.Server.HTTP.Port)
	assert.Equal(t, "seo_flow", cfg.Database.Postgres.Database)
}

func TestLoadFromDirMissingBaseFile(t *testing.T) {
	_, err := LoadFromDir(t.TempDir())
	assert.Error(t, err)
}

func TestProviderUnknown(t *testing.T) {
	cfg := LLMConfig{DefaultProvider: "gemini"}
	_, _, ok := cfg.Provider("")
	assert.False(t, ok)
}
