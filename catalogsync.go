// Package catalogsync provides a reconciliation worker that keeps a
// human-edited record store, a relational product catalog, and a vector
// similarity index in agreement.
//
// Each poll cycle lists the candidate records, ingests the new ones into
// the catalog with a generated one-line description and an embedding, and
// overwrites records whose names already have a catalog row with the
// canonical values. The catalog is the system of record; the record store
// is an editing surface; the vector index is best-effort.
//
// Basic usage:
//
//	cfg, err := config.Load(".env")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	worker, err := catalogsync.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer worker.Close()
//
//	if err := worker.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package catalogsync

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shopworks/catalogsync/application/service"
	"github.com/shopworks/catalogsync/domain/tracking"
	"github.com/shopworks/catalogsync/infrastructure/api"
	"github.com/shopworks/catalogsync/infrastructure/chroma"
	"github.com/shopworks/catalogsync/infrastructure/enricher"
	"github.com/shopworks/catalogsync/infrastructure/notion"
	"github.com/shopworks/catalogsync/infrastructure/persistence"
	"github.com/shopworks/catalogsync/infrastructure/provider"
	"github.com/shopworks/catalogsync/internal/config"
	"github.com/shopworks/catalogsync/internal/database"
	"github.com/shopworks/catalogsync/internal/log"
)

// shutdownTimeout bounds the ops server drain on exit.
const shutdownTimeout = 10 * time.Second

// Worker runs the poll loop and, unless disabled, the ops HTTP server.
type Worker struct {
	scheduler *service.Scheduler
	opsServer *api.Server
	tracker   *tracking.Tracker
	logger    *slog.Logger

	db     database.Database
	ownsDB bool
}

// New creates a Worker from configuration. Options inject replacements for
// individual backends, mainly for embedding the worker in tests.
func New(cfg config.Config, opts ...Option) (*Worker, error) {
	wc := &workerConfig{}
	for _, opt := range opts {
		opt(wc)
	}

	logger := wc.logger
	if logger == nil {
		logger = log.New(log.ParseFormat(cfg.LogFormat), cfg.LogLevel)
	}

	w := &Worker{
		tracker: tracking.NewTracker(),
		logger:  logger,
	}

	records := wc.records
	if records == nil {
		if cfg.RecordStoreToken == "" || cfg.RecordStoreDatabaseID == "" {
			return nil, errors.New("record store requires RECORD_STORE_TOKEN and RECORD_STORE_DATABASE_ID")
		}
		records = notion.NewClient(notion.Config{
			Token:      cfg.RecordStoreToken,
			DatabaseID: cfg.RecordStoreDatabaseID,
			BaseURL:    cfg.RecordStoreBaseURL,
			Timeout:    cfg.RequestTimeout(),
			Logger:     logger,
		})
	}

	products := wc.products
	if products == nil {
		if cfg.DBURL == "" {
			return nil, errors.New("catalog requires DB_URL")
		}
		db, err := database.New(context.Background(), cfg.DBURL)
		if err != nil {
			return nil, err
		}
		if err := persistence.AutoMigrate(context.Background(), db); err != nil {
			_ = db.Close()
			return nil, err
		}
		w.db = db
		w.ownsDB = true
		products = persistence.NewProductStore(db)
	}

	index := wc.index
	if !wc.indexSet && cfg.VectorIndexURL != "" {
		index = chroma.NewClient(chroma.Config{
			BaseURL:    cfg.VectorIndexURL,
			Collection: cfg.VectorCollection,
			Timeout:    cfg.RequestTimeout(),
			Logger:     logger,
		})
	}

	textGenerator := wc.textGenerator
	embedder := wc.embedder
	if textGenerator == nil || (embedder == nil && !wc.embedderSet) {
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.New("enrichment requires OPENAI_API_KEY")
		}
		p := provider.NewOpenAIProvider(provider.OpenAIConfig{
			APIKey:         cfg.OpenAIAPIKey,
			BaseURL:        cfg.OpenAIBaseURL,
			ChatModel:      cfg.ChatModel,
			EmbeddingModel: cfg.EmbeddingModel,
			Timeout:        cfg.RequestTimeout(),
		})
		if textGenerator == nil {
			textGenerator = p
		}
		if embedder == nil && !wc.embedderSet {
			embedder = p
		}
	}

	resolver := service.NewResolver(products, logger)
	describer := enricher.NewDescriber(textGenerator, logger)
	processor := service.NewProcessor(records, products, index, resolver, describer, embedder, logger)

	interval := wc.pollInterval
	if interval == 0 {
		interval = cfg.PollInterval()
	}
	w.scheduler = service.NewScheduler(records, processor, w.tracker, interval, logger)

	if cfg.OpsEnabled && !wc.opsDisabled {
		w.opsServer = api.NewServer(cfg.OpsAddr, w.tracker, products, logger)
	}

	return w, nil
}

// Run blocks until the context is cancelled or a fatal error occurs. A
// cancelled context is a clean shutdown, not an error.
func (w *Worker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return w.scheduler.Run(ctx)
	})

	if w.opsServer != nil {
		g.Go(func() error {
			return w.opsServer.Start()
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return w.opsServer.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// RunCycle performs a single pass over the candidate records.
func (w *Worker) RunCycle(ctx context.Context) error {
	return w.scheduler.RunCycle(ctx)
}

// Tracker exposes cycle statistics.
func (w *Worker) Tracker() *tracking.Tracker {
	return w.tracker
}

// Logger returns the worker's logger.
func (w *Worker) Logger() *slog.Logger {
	return w.logger
}

// Close releases resources owned by the worker.
func (w *Worker) Close() error {
	if w.ownsDB {
		return w.db.Close()
	}
	return nil
}
