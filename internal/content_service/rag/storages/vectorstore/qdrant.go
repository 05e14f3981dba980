package vectorstore

import (
	"context"

	"contentforge/internal/content_service/rag/interfaces"
	"contentforge/internal/content_service/rag/schema"
	"contentforge/internal/database/qdrant"
	"contentforge/internal/models"
)

// QdrantStore adapts the raw Qdrant client to the VectorIndex contract.
// Every backend failure comes out as an IndexUnavailableError so the
// callers can distinguish "index down" from their own mistakes.
type QdrantStore struct {
	client     *qdrant.Client
	vectorSize int
}

// NewQdrantStore wraps a client. vectorSize is the dimensionality the
// collection is created with on EnsureCollection.
func NewQdrantStore(client *qdrant.Client, vectorSize int) *QdrantStore {
	return &QdrantStore{client: client, vectorSize: vectorSize}
}

// EnsureCollection creates the backing collection if absent. Cosine
// distance is fixed; similarity scores come back in [0,1].
func (s *QdrantStore) EnsureCollection(ctx context.Context) error {
	if err := s.client.EnsureCollection(ctx, s.vectorSize, "Cosine"); err != nil {
		return indexErr("ensure collection", err)
	}
	return nil
}

// Upsert writes the points and returns how many were stored. On error
// the count is 0 and the index state is unknown.
func (s *QdrantStore) Upsert(ctx context.Context, points []*schema.VectorPoint) (int, error) {
	if len(points) == 0 {
		return 0, nil
	}
	raw := make([]qdrant.Point, len(points))
	for i, p := range points {
		raw[i] = qdrant.Point{ID: p.ID, Vector: p.Vector, Payload: p.Payload}
	}
	if err := s.client.UpsertPoints(ctx, raw); err != nil {
		return 0, indexErr("upsert", err)
	}
	return len(points), nil
}

// Search returns hits at or above scoreThreshold sorted by descending
// score. No hits is an empty slice, not an error.
func (s *QdrantStore) Search(ctx context.Context, vector []float32, topK int, scoreThreshold float32) ([]*schema.ScoredPoint, error) {
	raw, err := s.client.SearchPoints(ctx, vector, topK, scoreThreshold)
	if err != nil {
		return nil, indexErr("search", err)
	}
	hits := make([]*schema.ScoredPoint, len(raw))
	for i, p := range raw {
		hits[i] = &schema.ScoredPoint{Payload: p.Payload, Score: p.Score}
	}
	return hits, nil
}

// DeletePoints removes the given point ids.
func (s *QdrantStore) DeletePoints(ctx context.Context, ids []string) error {
	if err := s.client.DeletePoints(ctx, ids); err != nil {
		return indexErr("delete points", err)
	}
	return nil
}

// Clear removes every point while keeping the collection.
func (s *QdrantStore) Clear(ctx context.Context) error {
	if err := s.client.ClearPoints(ctx); err != nil {
		return indexErr("clear", err)
	}
	return nil
}

// Info reports point and vector counts for the stats endpoint.
func (s *QdrantStore) Info(ctx context.Context) (*schema.IndexInfo, error) {
	info, err := s.client.Info(ctx)
	if err != nil {
		return nil, indexErr("info", err)
	}
	return &schema.IndexInfo{
		PointCount:  info.PointsCount,
		VectorCount: info.VectorsCount,
	}, nil
}

func indexErr(op string, err error) error {
	return &models.IndexUnavailableError{Op: op, Err: err}
}

// compile-time check to ensure QdrantStore implements the VectorIndex interface
var _ interfaces.VectorIndex = (*QdrantStore)(nil)
