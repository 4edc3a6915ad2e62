// Package notion provides a record store client for Notion databases.
// Candidate catalog entries are rows in a human-edited Notion database;
// the worker queries them and patches canonical values back.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopworks/catalogsync/domain/record"
)

const (
	// DefaultBaseURL is the public Notion API endpoint.
	DefaultBaseURL = "https://api.notion.com"

	// apiVersion is the pinned Notion-Version header value.
	apiVersion = "2022-06-28"

	defaultTimeout = 15 * time.Second
)

// Client implements record.Store against the Notion API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	databaseID string
	logger     *slog.Logger
}

// Config holds configuration for the Notion client.
type Config struct {
	Token      string
	DatabaseID string
	BaseURL    string
	Timeout    time.Duration
	Logger     *slog.Logger
}

// NewClient creates a new Client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
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
		baseURL:    baseURL,
		token:      cfg.Token,
		databaseID: cfg.DatabaseID,
		logger:     logger,
	}
}

// queryResponse is the shape of a database query result page.
type queryResponse struct {
	Results    []page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

type page struct {
	ID         string              `json:"id"`
	Properties map[string]property `json:"properties"`
}

// List queries the database and returns every row as a Record. Rows with
// absent or oddly-shaped properties are returned with zero values rather
// than rejected; the processor decides what is malformed.
func (c *Client) List(ctx context.Context) ([]record.Record, error) {
	var records []record.Record
	var cursor *string

	for {
		resp, err := c.queryPage(ctx, cursor)
		if err != nil {
			return nil, err
		}

		for _, pg := range resp.Results {
			records = append(records, pageToRecord(pg))
		}

		if !resp.HasMore || resp.NextCursor == nil {
			return records, nil
		}
		cursor = resp.NextCursor
	}
}

func (c *Client) queryPage(ctx context.Context, cursor *string) (queryResponse, error) {
	url := fmt.Sprintf("%s/v1/databases/%s/query", c.baseURL, c.databaseID)

	body := map[string]any{}
	if cursor != nil {
		body["start_cursor"] = *cursor
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return queryResponse{}, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return queryResponse{}, fmt.Errorf("build query request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return queryResponse{}, fmt.Errorf("query database: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return queryResponse{}, apiError("query database", resp)
	}

	var decoded queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return queryResponse{}, fmt.Errorf("decode query response: %w", err)
	}
	return decoded, nil
}

// Patch applies a partial property update to the page with the given id.
// A cleared image URL is written as an explicit null, not an empty string.
func (c *Client) Patch(ctx context.Context, id string, patch record.Patch) error {
	if patch.Empty() {
		return nil
	}

	url := fmt.Sprintf("%s/v1/pages/%s", c.baseURL, id)

	payload, err := json.Marshal(map[string]any{
		"properties": patchProperties(patch),
	})
	if err != nil {
		return fmt.Errorf("marshal patch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build patch request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("patch page %s: %w", id, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return apiError(fmt.Sprintf("patch page %s", id), resp)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")
}

func apiError(operation string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var decoded struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &decoded); err == nil && decoded.Message != "" {
		return fmt.Errorf("%s: status %d: %s", operation, resp.StatusCode, decoded.Message)
	}
	return fmt.Errorf("%s: status %d", operation, resp.StatusCode)
}

// Ensure Client implements record.Store.
var _ record.Store = (*Client)(nil)
