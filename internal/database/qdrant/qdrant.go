package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"contentforge/internal/config"
)

// Client is a minimal REST client for one Qdrant collection. It covers
// exactly the operations the catalog and query path need: collection
// create-if-absent, upsert, similarity search, point delete, bulk clear
// and introspection.
type Client struct {
	baseURL    string
	apiKey     string
	collection string
	http       *http.Client
}

// Point is one (id, vector, payload) entry as Qdrant stores it.
type Point struct {
	ID      string                 `json:"id"`
	Vector  []float32              `json:"vector"`
	Payload map[string]interface{} `json:"payload"`
}

// ScoredPoint is a search hit with its similarity score.
type ScoredPoint struct {
	ID      string                 `json:"id"`
	Score   float32                `json:"score"`
	Payload map[string]interface{} `json:"payload"`
}

// CollectionInfo is the introspection snapshot of the collection.
type CollectionInfo struct {
	PointsCount  int64  `json:"points_count"`
	VectorsCount int64  `json:"vectors_count"`
	Status       string `json:"status"`
}

// NewClient creates a Qdrant client from config. It performs no network
// calls; use EnsureCollection before the first operation.
func NewClient(cfg *config.QdrantConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		http:       &http.Client{Timeout: timeout},
	}
}

// Collection returns the collection name the client targets.
func (c *Client) Collection() string { return c.collection }

// EnsureCollection creates the collection if it does not exist. It is
// idempotent and safe to call repeatedly; Qdrant answers the create
// with 200 when the collection already exists with the same schema.
func (c *Client) EnsureCollection(ctx context.Context, vectorSize int, distance string) error {
	if vectorSize <= 0 {
		return fmt.Errorf("invalid vector size %d", vectorSize)
	}
	if distance == "" {
		distance = "Cosine"
	}

	if _, err := c.collectionInfo(ctx); err == nil {
		return nil
	}

	body := map[string]interface{}{
		"vectors": map[string]interface{}{
			"size":     vectorSize,
			"distance": distance,
		},
		"optimizers_config": map[string]interface{}{
			"default_segment_number": 2,
		},
		"replication_factor": 1,
	}
	return c.do(ctx, http.MethodPut, c.collectionURL(""), body, nil)
}

// UpsertPoints writes the points and waits for them to be persisted.
// On error the index state is unknown to the caller.
func (c *Client) UpsertPoints(ctx context.Context, points []Point) error {
	if len(points) == 0 {
		return nil
	}
	body := map[string]interface{}{"points": points}
	return c.do(ctx, http.MethodPut, c.collectionURL("/points?wait=true"), body, nil)
}

// SearchPoints runs a similarity search and returns hits sorted by
// descending score, all at or above scoreThreshold. Fewer than limit
// hits is a normal outcome, not an error.
func (c *Client) SearchPoints(ctx context.Context, vector []float32, limit int, scoreThreshold float32) ([]ScoredPoint, error) {
	body := map[string]interface{}{
		"vector":          vector,
		"limit":           limit,
		"score_threshold": scoreThreshold,
		"with_payload":    true,
	}
	var resp struct {
		Result []ScoredPoint `json:"result"`
	}
	if err := c.do(ctx, http.MethodPost, c.collectionURL("/points/search"), body, &resp); err != nil {
		return nil, err
	}
	return resp.Result, nil
}

// DeletePoints removes the given point ids and waits for the deletion.
func (c *Client) DeletePoints(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	body := map[string]interface{}{"points": ids}
	return c.do(ctx, http.MethodPost, c.collectionURL("/points/delete?wait=true"), body, nil)
}

// ClearPoints deletes every point in the collection. The collection
// itself stays in place.
func (c *Client) ClearPoints(ctx context.Context) error {
	body := map[string]interface{}{
		"filter": map[string]interface{}{},
	}
	return c.do(ctx, http.MethodPost, c.collectionURL("/points/delete?wait=true"), body, nil)
}

// Info fetches point and vector counts. A reachable but empty
// collection reports zeros; only a connection failure is an error.
func (c *Client) Info(ctx context.Context) (*CollectionInfo, error) {
	return c.collectionInfo(ctx)
}

func (c *Client) collectionInfo(ctx context.Context) (*CollectionInfo, error) {
	var resp struct {
		Result CollectionInfo `json:"result"`
	}
	if err := c.do(ctx, http.MethodGet, c.collectionURL(""), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Result, nil
}

func (c *Client) collectionURL(suffix string) string {
	return fmt.Sprintf("%s/collections/%s%s", c.baseURL, c.collection, suffix)
}

// do issues one JSON request and decodes the response into out when
// non-nil. Any transport error or non-2xx status is returned as an
// error with the response body attached for diagnosis.
func (c *Client) do(ctx context.Context, method, url string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding qdrant request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("qdrant %s %s failed: %s: %s", method, url, resp.Status, bytes.TrimSpace(detail))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
