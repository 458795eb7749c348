package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/draftd/internal/llm"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, llm.ProviderGroq, cfg.LLM.Provider)
	assert.Equal(t, 3, cfg.Workflow.Drafts)
	assert.Equal(t, 8093, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadYAMLFile(t *testing.T) {
	path := writeConfigFile(t, `
llm:
  provider: openai
  model: gpt-4o
  api_key: sk-test
workflow:
  drafts: 5
server:
  port: 9000
logging:
  level: debug
  format: console
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, 5, cfg.Workflow.Drafts)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)

	// Unset values keep their defaults.
	assert.Equal(t, "localhost", cfg.Server.Host)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
llm:
  provider: openai
  api_key: from-file
`)

	t.Setenv("DRAFTD_LLM_API_KEY", "from-env")
	t.Setenv("DRAFTD_WORKFLOW_DRAFTS", "2")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.LLM.APIKey)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 2, cfg.Workflow.Drafts)
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfigFile(t, "llm: [not a map")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	path := writeConfigFile(t, `
workflow:
  drafts: 0
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "drafts")
}

func TestTransformEnv(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"DRAFTD_LLM_API_KEY", "llm.api_key"},
		{"DRAFTD_SERVER_SHUTDOWN_TIMEOUT", "server.shutdown_timeout"},
		{"DRAFTD_LOGGING_LEVEL", "logging.level"},
		{"DRAFTD_WORKFLOW_DRAFTS", "workflow.drafts"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, transformEnv(tt.in))
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Server.ShutdownTimeout = 0
	assert.Error(t, cfg.Validate())
}
