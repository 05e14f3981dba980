package embedding

import (
	"fmt"
)

// NewModel creates an Embedding model client for the given provider.
//
// provider selects the backend ("openai" or "ollama"); model names the
// embedding model; apiKey and baseURL are passed through to the client
// where the provider needs them.
func NewModel(provider, model, apiKey, baseURL string) (Embedding, error) {
	switch ModelType(provider) {
	case OpenAI:
		return NewOpenAIModel(model, apiKey, baseURL)
	case Ollama:
		return NewOllamaModel(model, baseURL)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}
}
