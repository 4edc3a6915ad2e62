// Package chroma provides a vector index client for a Chroma server.
package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/shopworks/catalogsync/domain/vector"
)

const defaultTimeout = 15 * time.Second

// Client implements vector.Index against the Chroma HTTP API. The
// collection is created on first use if it does not exist; its id is
// cached for the lifetime of the client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	collection string
	logger     *slog.Logger

	mu           sync.Mutex
	collectionID string
}

// Config holds configuration for the Chroma client.
type Config struct {
	BaseURL    string
	Collection string
	Timeout    time.Duration
	Logger     *slog.Logger
}

// NewClient creates a new Client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		collection: cfg.Collection,
		logger:     logger,
	}
}

// Upsert writes one entry keyed by its id. Re-upserting an id replaces the
// prior entry.
func (c *Client) Upsert(ctx context.Context, entry vector.Entry) error {
	collectionID, err := c.ensureCollection(ctx)
	if err != nil {
		return err
	}

	metadata := map[string]any{}
	for k, v := range entry.Metadata() {
		metadata[k] = v
	}

	payload, err := json.Marshal(map[string]any{
		"ids":        []string{entry.ID()},
		"embeddings": [][]float32{entry.Embedding()},
		"metadatas":  []map[string]any{metadata},
		"documents":  []string{entry.Document()},
	})
	if err != nil {
		return fmt.Errorf("marshal upsert: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/collections/%s/upsert", c.baseURL, collectionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build upsert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upsert entry %s: %w", entry.ID(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(fmt.Sprintf("upsert entry %s", entry.ID()), resp)
	}
	return nil
}

// ensureCollection resolves the collection id, creating the collection if
// needed. The resolved id is cached; a failed resolution is retried on the
// next call.
func (c *Client) ensureCollection(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.collectionID != "" {
		return c.collectionID, nil
	}

	payload, err := json.Marshal(map[string]any{
		"name":          c.collection,
		"get_or_create": true,
	})
	if err != nil {
		return "", fmt.Errorf("marshal collection request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/collections", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build collection request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("get or create collection %s: %w", c.collection, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apiError(fmt.Sprintf("get or create collection %s", c.collection), resp)
	}

	var decoded struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode collection response: %w", err)
	}
	if decoded.ID == "" {
		return "", fmt.Errorf("get or create collection %s: empty id in response", c.collection)
	}

	c.collectionID = decoded.ID
	c.logger.Debug("vector collection resolved",
		slog.String("collection", c.collection),
		slog.String("id", decoded.ID),
	)
	return c.collectionID, nil
}

func apiError(operation string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var decoded struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &decoded); err == nil && decoded.Error != "" {
		return fmt.Errorf("%s: status %d: %s", operation, resp.StatusCode, decoded.Error)
	}
	return fmt.Errorf("%s: status %d", operation, resp.StatusCode)
}

// Ensure Client implements vector.Index.
var _ vector.Index = (*Client)(nil)
