package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("LOJINHA_BASE_URL overrides", func(t *testing.T) {
		t.Setenv("LOJINHA_BASE_URL", "http://example.com:9090")

		cfg := Default()
		cfg.applyEnvOverrides()

		assert.Equal(t, "http://example.com:9090", cfg.BaseURL)
	})

	t.Run("LOJINHA_TIMEOUT overrides", func(t *testing.T) {
		t.Setenv("LOJINHA_TIMEOUT", "30s")

		cfg := Default()
		cfg.applyEnvOverrides()

		assert.Equal(t, "30s", cfg.Timeout)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
	})

	t.Run("LOJINHA_THEME overrides", func(t *testing.T) {
		t.Setenv("LOJINHA_THEME", "dark")

		cfg := Default()
		cfg.applyEnvOverrides()

		assert.Equal(t, "dark", cfg.Theme)
	})

	t.Run("LOJINHA_DEBUG enables debug logging", func(t *testing.T) {
		t.Setenv("LOJINHA_DEBUG", "1")

		cfg := Default()
		cfg.applyEnvOverrides()

		assert.True(t, cfg.Logging.Debug)
	})

	t.Run("unset vars leave defaults", func(t *testing.T) {
		t.Setenv("LOJINHA_BASE_URL", "")
		t.Setenv("LOJINHA_TIMEOUT", "")

		cfg := Default()
		cfg.applyEnvOverrides()

		assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
		assert.Equal(t, "15s", cfg.Timeout)
	})
}

func TestRequestTimeout_Fallback(t *testing.T) {
	cases := []string{"", "not-a-duration", "-5s", "0"}
	for _, raw := range cases {
		cfg := Config{Timeout: raw}
		assert.Equal(t, 15*time.Second, cfg.RequestTimeout(), "timeout %q", raw)
	}
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.BaseURL = "http://backend:8081"
	cfg.Theme = "dark"
	cfg.Logging.Debug = true

	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	var loaded Config
	require.NoError(t, yaml.Unmarshal(data, &loaded))

	assert.Equal(t, cfg.BaseURL, loaded.BaseURL)
	assert.Equal(t, cfg.Theme, loaded.Theme)
	assert.True(t, loaded.Logging.Debug)
}
