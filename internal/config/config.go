// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Default configuration values.
const (
	DefaultPollInterval   = 30 * time.Second
	DefaultRequestTimeout = 15 * time.Second
	DefaultChatModel      = "gpt-3.5-turbo"
	DefaultEmbeddingModel = "text-embedding-3-small"
	DefaultOpsAddr        = "0.0.0.0:8080"
	DefaultLogLevel       = "INFO"
	DefaultLogFormat      = "pretty"
	DefaultVectorCollection = "products"
)

// ErrMissingRequired indicates required configuration values are absent.
var ErrMissingRequired = errors.New("missing required configuration")

// Config holds all environment-based configuration for the worker.
// Field names map directly to environment variables.
type Config struct {
	// RecordStoreToken is the integration token for the record store API.
	// Env: RECORD_STORE_TOKEN (required)
	RecordStoreToken string `envconfig:"RECORD_STORE_TOKEN"`

	// RecordStoreDatabaseID identifies the record store database to poll.
	// Env: RECORD_STORE_DATABASE_ID (required)
	RecordStoreDatabaseID string `envconfig:"RECORD_STORE_DATABASE_ID"`

	// RecordStoreBaseURL overrides the record store API base URL.
	// Env: RECORD_STORE_BASE_URL (default: https://api.notion.com)
	RecordStoreBaseURL string `envconfig:"RECORD_STORE_BASE_URL" default:"https://api.notion.com"`

	// DBURL is the catalog database connection URL.
	// Supported schemes: postgres://, postgresql://, sqlite:///
	// Env: DB_URL (required)
	DBURL string `envconfig:"DB_URL"`

	// OpenAIAPIKey is the enrichment service API key.
	// Env: OPENAI_API_KEY (required)
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`

	// OpenAIBaseURL overrides the enrichment service base URL.
	// Env: OPENAI_BASE_URL
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`

	// ChatModel is the text generation model.
	// Env: CHAT_MODEL (default: gpt-3.5-turbo)
	ChatModel string `envconfig:"CHAT_MODEL" default:"gpt-3.5-turbo"`

	// EmbeddingModel is the embedding model.
	// Env: EMBEDDING_MODEL (default: text-embedding-3-small)
	EmbeddingModel string `envconfig:"EMBEDDING_MODEL" default:"text-embedding-3-small"`

	// VectorIndexURL is the vector index base URL. Empty disables indexing.
	// Env: VECTOR_INDEX_URL
	VectorIndexURL string `envconfig:"VECTOR_INDEX_URL"`

	// VectorCollection is the vector index collection name.
	// Env: VECTOR_COLLECTION (default: products)
	VectorCollection string `envconfig:"VECTOR_COLLECTION" default:"products"`

	// PollIntervalSeconds is the pause between poll cycles.
	// Env: POLL_INTERVAL_SECONDS (default: 30)
	PollIntervalSeconds float64 `envconfig:"POLL_INTERVAL_SECONDS" default:"30"`

	// RequestTimeoutSeconds is the per-call timeout for external services.
	// Env: REQUEST_TIMEOUT_SECONDS (default: 15)
	RequestTimeoutSeconds float64 `envconfig:"REQUEST_TIMEOUT_SECONDS" default:"15"`

	// OpsAddr is the listen address for the operational HTTP endpoint.
	// Env: OPS_ADDR (default: 0.0.0.0:8080)
	OpsAddr string `envconfig:"OPS_ADDR" default:"0.0.0.0:8080"`

	// OpsEnabled controls whether the operational HTTP endpoint is served.
	// Env: OPS_ENABLED (default: true)
	OpsEnabled bool `envconfig:"OPS_ENABLED" default:"true"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
}

// Load reads configuration from an optional .env file and the environment,
// then validates it. Missing required values are a startup error.
func Load(envFile string) (Config, error) {
	if err := LoadDotEnv(envFile); err != nil {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg, err := LoadFromEnv()
	if err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables without validating.
func LoadFromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required values are present. It reports every
// missing value at once so operators can fix the deployment in one pass.
func (c Config) Validate() error {
	var missing []string

	if c.RecordStoreToken == "" {
		missing = append(missing, "RECORD_STORE_TOKEN")
	}
	if c.RecordStoreDatabaseID == "" {
		missing = append(missing, "RECORD_STORE_DATABASE_ID")
	}
	if c.DBURL == "" {
		missing = append(missing, "DB_URL")
	}
	if c.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequired, strings.Join(missing, ", "))
	}
	return nil
}

// PollInterval returns the pause between poll cycles.
func (c Config) PollInterval() time.Duration {
	if c.PollIntervalSeconds <= 0 {
		return DefaultPollInterval
	}
	return time.Duration(c.PollIntervalSeconds * float64(time.Second))
}

// RequestTimeout returns the per-call timeout for external services.
func (c Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return DefaultRequestTimeout
	}
	return time.Duration(c.RequestTimeoutSeconds * float64(time.Second))
}
