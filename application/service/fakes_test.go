package service

import (
	"context"
	"errors"
	"sync"

	"github.com/shopworks/catalogsync/domain/catalog"
	"github.com/shopworks/catalogsync/domain/record"
	"github.com/shopworks/catalogsync/domain/vector"
	"github.com/shopworks/catalogsync/infrastructure/provider"
)

type patchCall struct {
	id    string
	patch record.Patch
}

type fakeRecordStore struct {
	mu      sync.Mutex
	records []record.Record
	listErr error
	patchErr error
	patches []patchCall
}

func (f *fakeRecordStore) List(_ context.Context) ([]record.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]record.Record, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeRecordStore) Patch(_ context.Context, id string, patch record.Patch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.patchErr != nil {
		return f.patchErr
	}
	f.patches = append(f.patches, patchCall{id: id, patch: patch})
	return nil
}

func (f *fakeRecordStore) lastPatch() (patchCall, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.patches) == 0 {
		return patchCall{}, false
	}
	return f.patches[len(f.patches)-1], true
}

type fakeProductStore struct {
	mu        sync.Mutex
	nextID    int64
	products  []catalog.Product
	findErr   error
	insertErr error
}

func (f *fakeProductStore) FindByName(_ context.Context, name string) (catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return catalog.Product{}, f.findErr
	}
	for _, p := range f.products {
		if p.Name() == name {
			return p, nil
		}
	}
	return catalog.Product{}, catalog.ErrNotFound
}

func (f *fakeProductStore) Insert(_ context.Context, product catalog.Product) (catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return catalog.Product{}, f.insertErr
	}
	f.nextID++
	inserted := product.WithID(f.nextID)
	f.products = append(f.products, inserted)
	return inserted, nil
}

func (f *fakeProductStore) Search(_ context.Context, _, _ string) ([]catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]catalog.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeProductStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.products)
}

type fakeIndex struct {
	mu        sync.Mutex
	entries   map[string]vector.Entry
	upsertErr error
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{entries: map[string]vector.Entry{}}
}

func (f *fakeIndex) Upsert(_ context.Context, entry vector.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.entries[entry.ID()] = entry
	return nil
}

type fakeDescriber struct {
	mu          sync.Mutex
	description string
	err         error
	calls       int
}

func (f *fakeDescriber) Describe(_ context.Context, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.description, nil
}

type fakeEmbedder struct {
	mu    sync.Mutex
	vec   []float32
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(_ context.Context, req provider.EmbeddingRequest) (provider.EmbeddingResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return provider.EmbeddingResponse{}, f.err
	}
	vectors := make([][]float32, len(req.Texts()))
	for i := range vectors {
		vectors[i] = f.vec
	}
	return provider.NewEmbeddingResponse(vectors), nil
}

var errBoom = errors.New("boom")
