package embedding

import "context"

// Embedding is the interface every embedding model client implements.
type Embedding interface {
	// Embed generates the embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates one embedding vector per input text,
	// preserving input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// ModelType enumerates the supported embedding providers.
type ModelType string

const (
	OpenAI ModelType = "openai" // OpenAI-compatible endpoints
	Ollama ModelType = "ollama" // local Ollama server
)
