package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadDefaults(t *testing.T) {
	t.Setenv("CFG_PATH", "")
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Read()
	require.NoError(t, err)
	require.Equal(t, DefaultPort, cfg.DesignAI.Port)
	require.Equal(t, DefaultSocialMediaPort, cfg.SocialMedia.Port)
	require.Equal(t, DefaultMaxImageSize, cfg.DesignAI.MaxImageSize)
	require.Equal(t, DefaultGeminiModel, cfg.DesignAI.Model)
	require.Equal(t, []string{"png", "jpg", "jpeg", "webp", "gif"}, cfg.DesignAI.AllowedFormats)
	require.Equal(t, DefaultRequestsPerMinute, cfg.DesignAI.RequestsPerMinute)
	require.Equal(t, DefaultRequestsPerDay, cfg.DesignAI.RequestsPerDay)
}

func TestReadEnvOverrides(t *testing.T) {
	t.Setenv("CFG_PATH", "")
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("MAX_IMAGE_SIZE", "1024")
	t.Setenv("STORAGE_DSN", "postgresql://localhost/designai")

	cfg, err := Read()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.DesignAI.Port)
	require.Equal(t, "test-key", cfg.DesignAI.GeminiAPIKey)
	require.Equal(t, 1024, cfg.DesignAI.MaxImageSize)
	require.Equal(t, "postgresql://localhost/designai", cfg.Storage.DSN)
}

func TestReadInvalidPort(t *testing.T) {
	t.Setenv("CFG_PATH", "")
	t.Setenv("PORT", "not-a-port")

	_, err := Read()
	require.Error(t, err)
}

func TestReadYamlFile(t *testing.T) {
	content := `
designai:
  port: 8080
  loglevel: debug
  model: gemini-2.0-flash
storage:
  dsn: postgresql://pg-db/designai
  expiration: 3600
archive:
  enabled: true
  bucket: design-versions
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("CFG_PATH", path)
	t.Setenv("PORT", "")

	cfg, err := Read()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.DesignAI.Port)
	require.Equal(t, "debug", cfg.DesignAI.LogLevel)
	require.Equal(t, "gemini-2.0-flash", cfg.DesignAI.Model)
	require.Equal(t, 3600, cfg.Storage.Expiration)
	require.True(t, cfg.Archive.Enabled)
	require.Equal(t, "design-versions", cfg.Archive.Bucket)
	// File must not wipe defaults it does not mention.
	require.Equal(t, DefaultMaxImageSize, cfg.DesignAI.MaxImageSize)
}

func TestReadEnvBeatsFile(t *testing.T) {
	content := `
designai:
  port: 8080
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("CFG_PATH", path)
	t.Setenv("PORT", "8000")

	cfg, err := Read()
	require.NoError(t, err)
	require.Equal(t, 8000, cfg.DesignAI.Port)
}

func TestReadMissingFile(t *testing.T) {
	t.Setenv("CFG_PATH", filepath.Join(t.TempDir(), "nope.yml"))

	_, err := Read()
	require.Error(t, err)
}
