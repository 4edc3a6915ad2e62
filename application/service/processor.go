package service

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/shopworks/catalogsync/domain/catalog"
	"github.com/shopworks/catalogsync/domain/record"
	"github.com/shopworks/catalogsync/domain/vector"
	"github.com/shopworks/catalogsync/infrastructure/enricher"
	"github.com/shopworks/catalogsync/infrastructure/provider"
)

// FallbackDescription is used when the enrichment service cannot produce a
// description. A new record is still ingested; enrichment is best-effort.
const FallbackDescription = "A wonderful product!"

// Describer generates one-line product descriptions.
type Describer interface {
	Describe(ctx context.Context, name, category string) (string, error)
}

// Processor drives one record through the reconciliation state machine.
// Process never returns an error past its own boundary: every failure ends
// in a terminal state and is logged with the record name and stage.
type Processor struct {
	records   record.Store
	products  catalog.Store
	index     vector.Index
	resolver  *Resolver
	describer Describer
	embedder  provider.Embedder
	logger    *slog.Logger
}

// NewProcessor creates a new Processor. The vector index may be nil, in
// which case indexing is disabled and ingestion stops at the catalog.
func NewProcessor(
	records record.Store,
	products catalog.Store,
	index vector.Index,
	resolver *Resolver,
	describer Describer,
	embedder provider.Embedder,
	logger *slog.Logger,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		records:   records,
		products:  products,
		index:     index,
		resolver:  resolver,
		describer: describer,
		embedder:  embedder,
		logger:    logger,
	}
}

// recordSync is the working set accumulated while one record advances
// through the state machine.
type recordSync struct {
	rec         record.Record
	product     catalog.Product
	description string
	indexFailed bool
}

// Process drives a single record to a terminal state.
func (p *Processor) Process(ctx context.Context, rec record.Record) Outcome {
	if rec.Malformed() {
		p.logger.Warn("skipping record without a name",
			slog.String("record_id", rec.ID()),
			slog.String("stage", StateNew.String()),
		)
		return Outcome{state: StateSkipped}
	}

	sync := &recordSync{rec: rec.Normalized()}
	state := StateNew

	for !state.Terminal() {
		next, err := p.step(ctx, state, sync)
		if err != nil {
			p.logger.Error("record processing failed",
				slog.String("record", sync.rec.Name()),
				slog.String("stage", state.String()),
				slog.String("error", err.Error()),
			)
			return Outcome{state: StateFailed, stage: state, err: err}
		}
		state = next
	}

	p.logger.Info("record processed",
		slog.String("record", sync.rec.Name()),
		slog.String("outcome", state.String()),
	)
	return Outcome{state: state}
}

// step runs the transition function for one state.
func (p *Processor) step(ctx context.Context, state State, sync *recordSync) (State, error) {
	switch state {
	case StateNew:
		return p.resolve(ctx, sync)
	case StateReconciling:
		return p.reconcile(ctx, sync)
	case StateEnriching:
		return p.enrich(ctx, sync)
	case StateInserting:
		return p.insert(ctx, sync)
	case StateIndexing:
		return p.indexEmbedding(ctx, sync)
	case StateWritingBack:
		return p.writeBack(ctx, sync)
	default:
		return StateFailed, errUnknownState(state)
	}
}

// resolve branches on whether the record's name already has a catalog row.
func (p *Processor) resolve(ctx context.Context, sync *recordSync) (State, error) {
	if product, ok := p.resolver.Fetch(ctx, sync.rec.Name()); ok {
		sync.product = product
		return StateReconciling, nil
	}
	return StateEnriching, nil
}

// reconcile overwrites the source record with the catalog's current values.
// Once a row exists the catalog is authoritative.
func (p *Processor) reconcile(ctx context.Context, sync *recordSync) (State, error) {
	patch := record.NewPatch().
		WithCategory(sync.product.Category()).
		WithPrice(sync.product.Price()).
		WithStock(sync.product.Stock()).
		WithDescription(sync.product.Description()).
		WithImageURL(sync.product.ImageURL())

	if err := p.records.Patch(ctx, sync.rec.ID(), patch); err != nil {
		return StateFailed, err
	}
	return StateSyncedFromCatalog, nil
}

// enrich obtains a one-line description, falling back to a fixed string if
// the enrichment service fails. A failed enrichment never fails the record.
func (p *Processor) enrich(ctx context.Context, sync *recordSync) (State, error) {
	description, err := p.describer.Describe(ctx, sync.rec.Name(), sync.rec.Category())
	if err != nil {
		p.logger.Warn("enrichment failed, using fallback description",
			slog.String("record", sync.rec.Name()),
			slog.String("stage", StateEnriching.String()),
			slog.String("error", err.Error()),
		)
		description = FallbackDescription
	}

	sync.description = description
	return StateInserting, nil
}

// insert creates the canonical catalog row and captures its generated id.
func (p *Processor) insert(ctx context.Context, sync *recordSync) (State, error) {
	product := catalog.NewProduct(
		sync.rec.Name(),
		sync.rec.Category(),
		sync.rec.Price(),
		sync.description,
		sync.rec.Stock(),
		sync.rec.ImageURL(),
	)

	inserted, err := p.products.Insert(ctx, product)
	if err != nil {
		return StateFailed, err
	}

	sync.product = inserted
	return StateIndexing, nil
}

// indexEmbedding embeds the product document and upserts it keyed by the
// new catalog id. Failure is logged and accepted: the catalog insert stands
// and the record still gets its write-back.
func (p *Processor) indexEmbedding(ctx context.Context, sync *recordSync) (State, error) {
	if p.index == nil || p.embedder == nil {
		return StateWritingBack, nil
	}

	document := enricher.Document(
		sync.product.Name(),
		sync.product.Category(),
		sync.product.Description(),
	)

	resp, err := p.embedder.Embed(ctx, provider.NewEmbeddingRequest([]string{document}))
	if err != nil {
		p.logIndexFailure(sync, err)
		sync.indexFailed = true
		return StateWritingBack, nil
	}

	embeddings := resp.Embeddings()
	if len(embeddings) != 1 {
		p.logIndexFailure(sync, errEmbeddingShape(len(embeddings)))
		sync.indexFailed = true
		return StateWritingBack, nil
	}

	entry := vector.NewEntry(
		strconv.FormatInt(sync.product.ID(), 10),
		embeddings[0],
		map[string]string{
			"name":        sync.product.Name(),
			"category":    sync.product.Category(),
			"description": sync.product.Description(),
		},
		document,
	)

	if err := p.index.Upsert(ctx, entry); err != nil {
		p.logIndexFailure(sync, err)
		sync.indexFailed = true
	}
	return StateWritingBack, nil
}

func (p *Processor) logIndexFailure(sync *recordSync, err error) {
	p.logger.Error("vector indexing failed, catalog row stands without an entry",
		slog.String("record", sync.rec.Name()),
		slog.Int64("product_id", sync.product.ID()),
		slog.String("stage", StateIndexing.String()),
		slog.String("error", err.Error()),
	)
}

// writeBack patches the source record with the canonical values, clearing
// an empty image URL to null.
func (p *Processor) writeBack(ctx context.Context, sync *recordSync) (State, error) {
	patch := record.NewPatch().
		WithCategory(sync.product.Category()).
		WithPrice(sync.product.Price()).
		WithStock(sync.product.Stock()).
		WithDescription(sync.product.Description()).
		WithImageURL(sync.product.ImageURL())

	if err := p.records.Patch(ctx, sync.rec.ID(), patch); err != nil {
		return StateFailed, err
	}

	if sync.indexFailed {
		return StateInsertedUnindexed, nil
	}
	return StateSyncedNew, nil
}
