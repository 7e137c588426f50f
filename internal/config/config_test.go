package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Should apply defaults without a config file", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0:8080", cfg.Address())
		assert.Equal(t, "https://developer.adobe.com/app-builder/docs/", cfg.Docs.BaseURL)
		assert.Equal(t, "App Builder", cfg.Docs.Name)
		assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLM.BaseURL)
		assert.Equal(t, 60, cfg.RateLimit.WindowSeconds)
		assert.Equal(t, 10, cfg.RateLimit.MaxRequests)
		assert.Equal(t, "info", cfg.Log.Level)
	})
	t.Run("Should honor legacy environment names", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "gsk_from_env")
		t.Setenv("DOCS_NAME", "My Docs")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "gsk_from_env", cfg.LLM.APIKey)
		assert.Equal(t, "My Docs", cfg.Docs.Name)
		assert.Equal(t, "debug", cfg.Log.Level)
	})
	t.Run("Should prefer prefixed environment names", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "gsk_legacy")
		t.Setenv("DOCUBOT_LLM_API_KEY", "gsk_prefixed")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "gsk_prefixed", cfg.LLM.APIKey)
	})
	t.Run("Should read an explicit config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"server:\n  port: 9999\ndocs:\n  name: Custom Docs\n"), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 9999, cfg.Server.Port)
		assert.Equal(t, "Custom Docs", cfg.Docs.Name)
		// Untouched keys keep their defaults
		assert.Equal(t, 10, cfg.RateLimit.MaxRequests)
	})
	t.Run("Should convert duration fields", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "5s", cfg.Docs.Timeout().String())
		assert.Equal(t, "1m0s", cfg.RateLimit.Window().String())
	})
}
