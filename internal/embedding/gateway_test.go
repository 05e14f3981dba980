package embedding

import (
	"context"
	"errors"
	"testing"

	"contentforge/internal/models"
)

type stubModel struct {
	calls   int
	vectors [][]float32
	err     error
}

func (m *stubModel) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (m *stubModel) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.vectors, nil
}

func TestEmbedBatchEmptyInputSkipsProvider(t *testing.T) {
	model := &stubModel{}
	g := NewGateway(model, "openai", 3)

	vectors, err := g.EmbedBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vectors) != 0 {
		t.Errorf("expected empty result, got %d vectors", len(vectors))
	}
	if model.calls != 0 {
		t.Errorf("provider was called %d times for empty input", model.calls)
	}
}

func TestEmbedBatchWrapsProviderFailure(t *testing.T) {
	model := &stubModel{err: errors.New("connection refused")}
	g := NewGateway(model, "openai", 3)

	_, err := g.EmbedBatch(context.Background(), []string{"hello"})
	var unavailable *models.ProviderUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ProviderUnavailableError, got %T: %v", err, err)
	}
	if unavailable.Provider != "openai" {
		t.Errorf("provider = %q, want openai", unavailable.Provider)
	}
}

func TestEmbedBatchRejectsShortProviderReply(t *testing.T) {
	model := &stubModel{vectors: [][]float32{}}
	g := NewGateway(model, "ollama", 3)

	_, err := g.EmbedBatch(context.Background(), []string{"hello", "world"})
	var unavailable *models.ProviderUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ProviderUnavailableError, got %T: %v", err, err)
	}

	// EmbedQuery rides on the same check; a zero-vector reply must come
	// back as an error, never a panic.
	if _, err := g.EmbedQuery(context.Background(), "hello"); !errors.As(err, &unavailable) {
		t.Fatalf("expected ProviderUnavailableError from EmbedQuery, got %v", err)
	}
}

func TestEmbedBatchRejectsDimensionMismatch(t *testing.T) {
	model := &stubModel{vectors: [][]float32{{1, 2}}}
	g := NewGateway(model, "openai", 3)

	_, err := g.EmbedBatch(context.Background(), []string{"hello"})
	var confErr *models.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %T: %v", err, err)
	}
}

func TestEmbedQueryReturnsSingleVector(t *testing.T) {
	model := &stubModel{vectors: [][]float32{{1, 2, 3}}}
	g := NewGateway(model, "openai", 3)

	vec, err := g.EmbedQuery(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vec) != 3 {
		t.Errorf("vector length = %d, want 3", len(vec))
	}
}
