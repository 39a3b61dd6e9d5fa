package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"UIBRIDGE_HOST", "UIBRIDGE_PORT", "UIBRIDGE_PROVIDER", "UIBRIDGE_MODEL",
		"UIBRIDGE_BASE_URL", "UIBRIDGE_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultSystemPrompt, cfg.SystemPrompt)
	assert.Empty(t, cfg.Provider)
	assert.False(t, cfg.IsLLMConfigured())
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("host: 127.0.0.1\nport: 9000\nprovider: openai\nmodel: qwen-max\napi_key: test-key\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "qwen-max", cfg.Model)
	assert.Equal(t, path, cfg.ConfigFile)
	assert.True(t, cfg.IsLLMConfigured())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\nmodel: from-file\n"), 0o644))

	t.Setenv("UIBRIDGE_PORT", "9100")
	t.Setenv("UIBRIDGE_MODEL", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "from-env", cfg.Model)
}

func TestLoad_ProviderKeyFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.True(t, cfg.IsLLMConfigured())
}

func TestLoad_AnthropicKeyFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("UIBRIDGE_PROVIDER", ProviderAnthropic)
	t.Setenv("ANTHROPIC_API_KEY", "ak-test")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "ak-test", cfg.APIKey)
	assert.True(t, cfg.IsLLMConfigured())
}

func TestConfig_Addr(t *testing.T) {
	cfg := &Config{Host: "127.0.0.1", Port: 5001}
	assert.Equal(t, "127.0.0.1:5001", cfg.Addr())
}
