package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopworks/catalogsync/domain/catalog"
	"github.com/shopworks/catalogsync/domain/tracking"
)

type stubCatalog struct {
	products []catalog.Product
}

func (s *stubCatalog) FindByName(_ context.Context, name string) (catalog.Product, error) {
	for _, p := range s.products {
		if p.Name() == name {
			return p, nil
		}
	}
	return catalog.Product{}, catalog.ErrNotFound
}

func (s *stubCatalog) Insert(_ context.Context, product catalog.Product) (catalog.Product, error) {
	return product, nil
}

func (s *stubCatalog) Search(_ context.Context, _, _ string) ([]catalog.Product, error) {
	return s.products, nil
}

func TestHealthEndpoint(t *testing.T) {
	server := NewServer("127.0.0.1:0", tracking.NewTracker(), &stubCatalog{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStatusEndpoint(t *testing.T) {
	tracker := tracking.NewTracker()
	stats := tracking.NewCycleStats()
	stats.RecordSeen()
	stats.RecordIngested()
	stats.Finish()
	tracker.Observe(stats)

	server := NewServer("127.0.0.1:0", tracker, &stubCatalog{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Cycles)
	assert.Equal(t, 1, body.LastCycle.Seen)
	assert.Equal(t, 1, body.LastCycle.Ingested)
	assert.Equal(t, 1, body.TotalIngested)
}

func TestProductsEndpoint(t *testing.T) {
	store := &stubCatalog{products: []catalog.Product{
		catalog.NewProduct("Blue Mug", "kitchen", 12, "A mug.", 5, "").WithID(1),
	}}
	server := NewServer("127.0.0.1:0", tracking.NewTracker(), store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?q=mug", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Products []productResponse `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Products, 1)
	assert.Equal(t, int64(1), body.Products[0].ID)
	assert.Equal(t, "Blue Mug", body.Products[0].Name)
}
