package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopworks/catalogsync/domain/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(srv *httptest.Server) *Client {
	return NewClient(Config{
		Token:      "secret",
		DatabaseID: "db-1",
		BaseURL:    srv.URL,
	})
}

func TestListParsesPropertyBags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/databases/db-1/query", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "2022-06-28", r.Header.Get("Notion-Version"))

		body := map[string]any{
			"results": []map[string]any{
				{
					"id": "page-1",
					"properties": map[string]any{
						"name": map[string]any{
							"title": []map[string]any{
								{"plain_text": "Blue "},
								{"plain_text": "Mug"},
							},
						},
						"category":  map[string]any{"select": map[string]any{"name": "Kitchen"}},
						"price":     map[string]any{"number": 12},
						"stock":     map[string]any{"number": 5},
						"image_url": map[string]any{"url": "https://example.com/mug.png"},
					},
				},
				{
					// Absent sub-fields must not raise: no title parts,
					// null select, missing numbers.
					"id": "page-2",
					"properties": map[string]any{
						"name":     map[string]any{"title": []map[string]any{}},
						"category": map[string]any{"select": nil},
					},
				},
			},
			"has_more": false,
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	records, err := testClient(srv).List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "page-1", first.ID())
	assert.Equal(t, "Blue Mug", first.Name(), "multi-part titles are concatenated")
	assert.Equal(t, "Kitchen", first.Category())
	assert.Equal(t, 12, first.Price())
	assert.Equal(t, 5, first.Stock())
	assert.Equal(t, "https://example.com/mug.png", first.ImageURL())

	second := records[1]
	assert.Equal(t, "page-2", second.ID())
	assert.Empty(t, second.Name())
	assert.Empty(t, second.Category())
	assert.Zero(t, second.Price())
}

func TestListFollowsCursor(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++

		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)

		if calls == 1 {
			assert.NotContains(t, req, "start_cursor")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"results": []map[string]any{
					{"id": "page-1", "properties": map[string]any{
						"name": map[string]any{"title": []map[string]any{{"plain_text": "First"}}},
					}},
				},
				"has_more":    true,
				"next_cursor": "cursor-2",
			})
			return
		}

		assert.Equal(t, "cursor-2", req["start_cursor"])
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"id": "page-2", "properties": map[string]any{
					"name": map[string]any{"title": []map[string]any{{"plain_text": "Second"}}},
				}},
			},
			"has_more": false,
		})
	}))
	defer srv.Close()

	records, err := testClient(srv).List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "Second", records[1].Name())
}

func TestListReportsAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "API token is invalid."})
	}))
	defer srv.Close()

	_, err := testClient(srv).List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "API token is invalid.")
}

func TestPatchWritesNullForClearedImageURL(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/v1/pages/page-1", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "page-1"})
	}))
	defer srv.Close()

	patch := record.NewPatch().
		WithPrice(15).
		WithStock(2).
		WithDescription("Great mug!").
		WithImageURL("")

	require.NoError(t, testClient(srv).Patch(context.Background(), "page-1", patch))

	props, ok := captured["properties"].(map[string]any)
	require.True(t, ok)

	price := props["price"].(map[string]any)
	assert.Equal(t, float64(15), price["number"])

	image := props["image_url"].(map[string]any)
	val, present := image["url"]
	assert.True(t, present, "url key must be present")
	assert.Nil(t, val, "cleared image url is null, not empty string")

	description := props["description"].(map[string]any)
	parts := description["rich_text"].([]any)
	require.Len(t, parts, 1)

	assert.NotContains(t, props, "category", "unset fields are not patched")
}

func TestPatchSkipsEmptyPatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an empty patch")
	}))
	defer srv.Close()

	require.NoError(t, testClient(srv).Patch(context.Background(), "page-1", record.NewPatch()))
}
