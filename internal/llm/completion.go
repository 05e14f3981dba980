package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/meguminnnnnnnnn/go-openai"

	"contentforge/internal/content_service/rag/interfaces"
)

// LegacyClient generates text through the older completion endpoint for
// providers that expose instruction-tuned models without a chat shape.
// The system instruction is folded into the prompt since the endpoint
// has no message roles.
type LegacyClient struct {
	client *openai.Client
	model  string
}

// NewLegacyClient creates a legacy completion client.
func NewLegacyClient(model, apiKey, baseURL string) *LegacyClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &LegacyClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Generate runs one completion and returns the trimmed model output.
func (c *LegacyClient) Generate(ctx context.Context, system, prompt string, maxTokens int) (string, error) {
	full := prompt
	if system != "" {
		full = system + "\n\n" + prompt
	}

	req := openai.CompletionRequest{
		Model:       c.model,
		Prompt:      full,
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	}

	resp, err := c.client.CreateCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Text), nil
}

// compile-time check to ensure LegacyClient implements the Generator interface
var _ interfaces.Generator = (*LegacyClient)(nil)
