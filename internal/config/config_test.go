package config_test

import (
	"testing"

	"cover-builder-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://cover.db")
	t.Setenv("OPENAI_API_KEY", "sk-test")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "127.0.0.1:8000", cfg.Addr())
	assert.Equal(t, "1024x1536", cfg.OpenAIImageSize)
	assert.Equal(t, "storage", cfg.StorageDir)
	assert.Equal(t, config.TextProviderOpenAI, cfg.TextProvider)
	assert.Equal(t, config.StorageBackendLocal, cfg.StorageBackend)
	assert.False(t, cfg.UseOpenAI)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("API_PORT", "9090")
	t.Setenv("USE_OPENAI", "yes")
	t.Setenv("OPENAI_TEXT_MODEL", "gpt-test")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "9090", cfg.APIPort)
	assert.True(t, cfg.UseOpenAI)
	assert.Equal(t, "gpt-test", cfg.OpenAITextModel)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowOrigins)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://cover.db")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY is required")
}

func TestLoad_InvalidFlag(t *testing.T) {
	setRequired(t)
	t.Setenv("USE_OPENAI", "maybe")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate_ProviderRequirements(t *testing.T) {
	cfg := &config.Config{
		DatabaseURL:    "sqlite://cover.db",
		OpenAIAPIKey:   "sk-test",
		TextProvider:   config.TextProviderGemini,
		StorageBackend: config.StorageBackendLocal,
	}
	assert.ErrorContains(t, cfg.Validate(), "GEMINI_API_KEY")

	cfg.GeminiAPIKey = "g-test"
	assert.NoError(t, cfg.Validate())

	cfg.StorageBackend = config.StorageBackendSupabase
	assert.ErrorContains(t, cfg.Validate(), "SUPABASE_URL")

	cfg.StorageBackend = "s3"
	assert.ErrorContains(t, cfg.Validate(), "unsupported STORAGE_BACKEND")
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes", "on"} {
		got, err := config.ParseBool(v)
		require.NoError(t, err)
		assert.True(t, got, v)
	}
	for _, v := range []string{"0", "false", "no", "off", ""} {
		got, err := config.ParseBool(v)
		require.NoError(t, err)
		assert.False(t, got, v)
	}
	_, err := config.ParseBool("sometimes")
	assert.Error(t, err)
}

func TestRead_SkipsValidation(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://cli.db")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := config.Read()
	require.NoError(t, err)
	assert.Equal(t, "sqlite://cli.db", cfg.DatabaseURL)
}
