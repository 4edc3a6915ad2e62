package catalogsync

import (
	"log/slog"
	"time"

	"github.com/shopworks/catalogsync/domain/catalog"
	"github.com/shopworks/catalogsync/domain/record"
	"github.com/shopworks/catalogsync/domain/vector"
	"github.com/shopworks/catalogsync/infrastructure/provider"
)

// workerConfig holds construction-time overrides. Anything left nil is
// built from the Config during New.
type workerConfig struct {
	logger        *slog.Logger
	records       record.Store
	products      catalog.Store
	index         vector.Index
	indexSet      bool
	textGenerator provider.TextGenerator
	embedder      provider.Embedder
	embedderSet   bool
	pollInterval  time.Duration
	opsDisabled   bool
}

// Option configures the Worker.
type Option func(*workerConfig)

// WithLogger sets the logger. Defaults to one built from LOG_FORMAT and
// LOG_LEVEL.
func WithLogger(logger *slog.Logger) Option {
	return func(c *workerConfig) {
		c.logger = logger
	}
}

// WithRecordStore replaces the record store client.
func WithRecordStore(store record.Store) Option {
	return func(c *workerConfig) {
		c.records = store
	}
}

// WithProductStore replaces the catalog store. The worker then neither
// opens nor migrates a database of its own.
func WithProductStore(store catalog.Store) Option {
	return func(c *workerConfig) {
		c.products = store
	}
}

// WithVectorIndex replaces the vector index. Passing nil disables indexing
// regardless of VECTOR_INDEX_URL.
func WithVectorIndex(index vector.Index) Option {
	return func(c *workerConfig) {
		c.index = index
		c.indexSet = true
	}
}

// WithTextGenerator replaces the description generator backend.
func WithTextGenerator(generator provider.TextGenerator) Option {
	return func(c *workerConfig) {
		c.textGenerator = generator
	}
}

// WithEmbedder replaces the embedding backend. Passing nil disables
// embedding, and with it vector indexing.
func WithEmbedder(embedder provider.Embedder) Option {
	return func(c *workerConfig) {
		c.embedder = embedder
		c.embedderSet = true
	}
}

// WithPollInterval overrides the pause between poll cycles.
func WithPollInterval(interval time.Duration) Option {
	return func(c *workerConfig) {
		c.pollInterval = interval
	}
}

// WithoutOpsServer disables the operational HTTP endpoint.
func WithoutOpsServer() Option {
	return func(c *workerConfig) {
		c.opsDisabled = true
	}
}
