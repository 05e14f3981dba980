package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/meguminnnnnnnnn/go-openai"

	"contentforge/internal/content_service/rag/interfaces"
)

// ChatClient generates text through an OpenAI-compatible
// chat-completions endpoint.
type ChatClient struct {
	client *openai.Client
	model  string
}

// NewChatClient creates a chat-completions client. baseURL is optional;
// when empty the default OpenAI endpoint is used.
func NewChatClient(model, apiKey, baseURL string) *ChatClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &ChatClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Generate runs one chat completion with a system instruction and a
// user prompt and returns the trimmed model output.
func (c *ChatClient) Generate(ctx context.Context, system, prompt string, maxTokens int) (string, error) {
	temperature := float32(0.6)
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: &temperature,
		TopP:        0.9,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// compile-time check to ensure ChatClient implements the Generator interface
var _ interfaces.Generator = (*ChatClient)(nil)
