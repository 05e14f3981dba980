package qdrant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"contentforge/internal/config"
)

func newTestClient(url string) *Client {
	return NewClient(&config.QdrantConfig{
		URL:        url,
		Collection: "test_collection",
	})
}

func TestEnsureCollectionCreatesWhenAbsent(t *testing.T) {
	var created map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/collections/test_collection":
			http.Error(w, `{"status":{"error":"Not found"}}`, http.StatusNotFound)
		case r.Method == http.MethodPut && r.URL.Path == "/collections/test_collection":
			if err := json.NewDecoder(r.Body).Decode(&created); err != nil {
				t.Errorf("decoding create body: %v", err)
			}
			w.Write([]byte(`{"result":true,"status":"ok"}`))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			http.Error(w, "unexpected", http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if err := c.EnsureCollection(context.Background(), 1536, "Cosine"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vectors, ok := created["vectors"].(map[string]interface{})
	if !ok {
		t.Fatalf("create body missing vectors config: %v", created)
	}
	if vectors["size"] != float64(1536) || vectors["distance"] != "Cosine" {
		t.Errorf("vectors config = %v, want size 1536 / Cosine", vectors)
	}
	if _, ok := created["optimizers_config"]; !ok {
		t.Error("create body missing optimizers_config")
	}
}

func TestEnsureCollectionSkipsCreateWhenPresent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected %s request, collection already exists", r.Method)
		}
		w.Write([]byte(`{"result":{"points_count":0,"vectors_count":0,"status":"green"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if err := c.EnsureCollection(context.Background(), 1536, "Cosine"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpsertPointsWaitsForPersistence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/test_collection/points" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("wait") != "true" {
			t.Error("upsert must wait for persistence")
		}
		var body struct {
			Points []Point `json:"points"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding upsert body: %v", err)
		}
		if len(body.Points) != 2 {
			t.Errorf("got %d points, want 2", len(body.Points))
		}
		w.Write([]byte(`{"result":{"status":"completed"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	points := []Point{
		{ID: "a", Vector: []float32{1}, Payload: map[string]interface{}{"text": "one"}},
		{ID: "b", Vector: []float32{2}, Payload: map[string]interface{}{"text": "two"}},
	}
	if err := c.UpsertPoints(context.Background(), points); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSearchPointsParsesHits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/test_collection/points/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding search body: %v", err)
		}
		if body["limit"] != float64(5) || body["score_threshold"] != 0.7 {
			t.Errorf("search body = %v, want limit 5 and score_threshold 0.7", body)
		}
		if body["with_payload"] != true {
			t.Error("search must request payloads")
		}
		w.Write([]byte(`{"result":[{"id":"a","score":0.91,"payload":{"text":"hello"}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	hits, err := c.SearchPoints(context.Background(), []float32{1, 2}, 5, 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if hits[0].Score != 0.91 || hits[0].Payload["text"] != "hello" {
		t.Errorf("hit = %+v", hits[0])
	}
}

func TestDeletePointsSendsIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/test_collection/points/delete" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body struct {
			Points []string `json:"points"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding delete body: %v", err)
		}
		if len(body.Points) != 2 || body.Points[0] != "a" || body.Points[1] != "b" {
			t.Errorf("delete ids = %v, want [a b]", body.Points)
		}
		w.Write([]byte(`{"result":{"status":"completed"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if err := c.DeletePoints(context.Background(), []string{"a", "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClearPointsDeletesByEmptyFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/test_collection/points/delete" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("wait") != "true" {
			t.Error("clear must wait for the deletion")
		}
		var body struct {
			Filter map[string]interface{} `json:"filter"`
			Points []string               `json:"points"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding clear body: %v", err)
		}
		if body.Filter == nil || len(body.Filter) != 0 {
			t.Errorf("clear filter = %v, want an empty filter matching all points", body.Filter)
		}
		if len(body.Points) != 0 {
			t.Errorf("clear must not name individual points, got %v", body.Points)
		}
		w.Write([]byte(`{"result":{"status":"completed"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if err := c.ClearPoints(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInfoReportsCounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{"points_count":42,"vectors_count":42,"status":"green"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	info, err := c.Info(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.PointsCount != 42 || info.VectorsCount != 42 {
		t.Errorf("info = %+v, want counts of 42", info)
	}
}

func TestServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":{"error":"boom"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.Info(context.Background()); err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}

func TestConnectionFailureSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.Info(context.Background()); err == nil {
		t.Fatal("expected an error for an unreachable backend")
	}
}
