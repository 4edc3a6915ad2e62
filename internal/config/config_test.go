package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RECORD_STORE_TOKEN", "secret-token")
	t.Setenv("RECORD_STORE_DATABASE_ID", "db-123")
	t.Setenv("DB_URL", "sqlite:///tmp/catalog.db")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("POLL_INTERVAL_SECONDS", "5")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "secret-token", cfg.RecordStoreToken)
	assert.Equal(t, "db-123", cfg.RecordStoreDatabaseID)
	assert.Equal(t, 5*time.Second, cfg.PollInterval())
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout())
	assert.Equal(t, "https://api.notion.com", cfg.RecordStoreBaseURL)
	assert.Equal(t, DefaultChatModel, cfg.ChatModel)
}

func TestValidateReportsAllMissing(t *testing.T) {
	var cfg Config

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRequired)
	assert.Contains(t, err.Error(), "RECORD_STORE_TOKEN")
	assert.Contains(t, err.Error(), "RECORD_STORE_DATABASE_ID")
	assert.Contains(t, err.Error(), "DB_URL")
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestPollIntervalDefaultsWhenUnset(t *testing.T) {
	var cfg Config
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval())
}
