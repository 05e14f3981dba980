package embedding

import (
	"context"
	"fmt"

	"contentforge/internal/content_service/rag/interfaces"
	"contentforge/internal/models"
)

// Gateway fronts an Embedding model with the contract the ingestion and
// query paths rely on: order and length preservation, an empty-input short
// circuit, provider failures surfaced as ProviderUnavailableError, and
// a dimensionality check against the configured vector size. It does
// not retry; the caller decides what a failure means.
type Gateway struct {
	model      Embedding
	provider   string
	dimensions int
}

// NewGateway wraps a model client. dimensions is the vector size the
// index was created with.
func NewGateway(model Embedding, provider string, dimensions int) *Gateway {
	return &Gateway{model: model, provider: provider, dimensions: dimensions}
}

// EmbedBatch embeds the given texts, one vector per text in input
// order. An empty input returns an empty result without touching the
// provider.
func (g *Gateway) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	vectors, err := g.model.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, &models.ProviderUnavailableError{Provider: g.provider, Err: err}
	}
	if len(vectors) != len(texts) {
		return nil, &models.ProviderUnavailableError{
			Provider: g.provider,
			Err:      fmt.Errorf("expected %d vectors, got %d", len(texts), len(vectors)),
		}
	}

	for _, v := range vectors {
		if len(v) != g.dimensions {
			return nil, &models.ConfigurationError{
				Reason: "embedding dimensionality does not match the vector collection",
			}
		}
	}
	return vectors, nil
}

// EmbedQuery embeds a single query string; it is EmbedBatch with a
// one-element input.
func (g *Gateway) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := g.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// compile-time check to ensure Gateway implements the Embedder interface
var _ interfaces.Embedder = (*Gateway)(nil)
