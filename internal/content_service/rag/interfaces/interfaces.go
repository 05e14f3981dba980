package interfaces

import (
	"context"

	"contentforge/internal/content_service/rag/schema"
)

// Splitter is the interface for cutting source text into bounded,
// ordered chunks.
type Splitter interface {
	Split(text string) []string
}

// Embedder is the interface for mapping an ordered list of texts to
// one vector per text, preserving order. An empty input yields an
// empty result without a provider call.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorIndex is the interface for the external vector collection. An
// error from Upsert means the index state is unknown; callers must not
// assume the points were written.
type VectorIndex interface {
	EnsureCollection(ctx context.Context) error
	Upsert(ctx context.Context, points []*schema.VectorPoint) (int, error)
	Search(ctx context.Context, vector []float32, topK int, scoreThreshold float32) ([]*schema.ScoredPoint, error)
	DeletePoints(ctx context.Context, ids []string) error
	Clear(ctx context.Context) error
	Info(ctx context.Context) (*schema.IndexInfo, error)
}

// FileLoader is the interface for extracting plain text from an
// uploaded file's raw bytes.
type FileLoader interface {
	Extract(ctx context.Context, name string, data []byte) (string, error)
}

// URLLoader is the interface for fetching a web page and extracting
// its title and readable text.
type URLLoader interface {
	ExtractURL(ctx context.Context, url string) (title, text string, err error)
}

// Generator is the interface for a text generation provider. The
// system instruction and token budget are per call.
type Generator interface {
	Generate(ctx context.Context, system, prompt string, maxTokens int) (string, error)
}
