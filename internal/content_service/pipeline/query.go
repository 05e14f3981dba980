package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"contentforge/internal/content_service/rag/interfaces"
	"contentforge/internal/content_service/rag/schema"
	"contentforge/internal/models"
	"contentforge/pkg/logger"
)

const (
	// DefaultTopK is how many chunks a query retrieves when the caller
	// does not say otherwise.
	DefaultTopK = 5
	// DefaultScoreThreshold filters out weakly similar chunks.
	DefaultScoreThreshold = 0.7

	ragMaxTokens = 2000

	systemPrompt = "You are a helpful assistant that generates high-quality content suggestions based on company data and goals."
)

// QueryEngine answers free-text queries with retrieval-augmented
// generation: embed the query, pull similar chunks out of the index,
// assemble a context block and hand both to the generation provider.
type QueryEngine struct {
	embedder  interfaces.Embedder
	index     interfaces.VectorIndex
	generator interfaces.Generator
	timeout   time.Duration
	log       *logger.Logger
}

// NewQueryEngine wires the engine. timeout bounds each generation call;
// zero selects 30 seconds.
func NewQueryEngine(embedder interfaces.Embedder, index interfaces.VectorIndex, generator interfaces.Generator, timeout time.Duration) *QueryEngine {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &QueryEngine{
		embedder:  embedder,
		index:     index,
		generator: generator,
		timeout:   timeout,
		log:       logger.New("query_engine"),
	}
}

// Query runs the full RAG flow. topK and scoreThreshold fall back to
// the defaults when non-positive. An unreachable index degrades to an
// empty context block; a generation failure is a hard error since an
// answer without model output has no value.
func (e *QueryEngine) Query(ctx context.Context, query string, topK int, scoreThreshold float32) (*models.RAGResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &models.ValidationError{Fields: []string{"query"}}
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if scoreThreshold <= 0 {
		scoreThreshold = DefaultScoreThreshold
	}

	contexts, err := e.retrieve(ctx, query, topK, scoreThreshold)
	if err != nil {
		return nil, err
	}

	prompt := buildRAGPrompt(query, contexts)

	genCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	response, err := e.generator.Generate(genCtx, systemPrompt, prompt, ragMaxTokens)
	if err != nil {
		return nil, &models.GenerationError{Err: err}
	}

	return &models.RAGResult{
		Query:    query,
		Response: response,
		Context:  contexts,
	}, nil
}

// retrieve embeds the query and searches the index. An embedding
// failure is surfaced; an index failure is logged and degrades to no
// context so the query can still be answered from the model alone.
func (e *QueryEngine) retrieve(ctx context.Context, query string, topK int, scoreThreshold float32) ([]models.RetrievedContext, error) {
	vectors, err := e.embedder.EmbedBatch(ctx, []string{query})
	if err != nil {
		return nil, err
	}

	hits, err := e.index.Search(ctx, vectors[0], topK, scoreThreshold)
	if err != nil {
		e.log.WithError(err).Warn("vector search unavailable, answering without retrieved context")
		return []models.RetrievedContext{}, nil
	}

	contexts := make([]models.RetrievedContext, 0, len(hits))
	for _, hit := range hits {
		contexts = append(contexts, contextFromHit(hit))
	}
	return contexts, nil
}

func contextFromHit(hit *schema.ScoredPoint) models.RetrievedContext {
	rc := models.RetrievedContext{Score: hit.Score}
	if v, ok := hit.Payload[schema.PayloadKeyText].(string); ok {
		rc.Text = v
	}
	if v, ok := hit.Payload[schema.PayloadKeySourceType].(string); ok {
		rc.SourceType = v
	}
	if v, ok := hit.Payload[schema.PayloadKeyTitle].(string); ok {
		rc.SourceRef = v
	}
	return rc
}

// buildRAGPrompt assembles the generation prompt: the retrieved chunks
// tagged with their source type and score, then the literal query.
func buildRAGPrompt(query string, contexts []models.RetrievedContext) string {
	var b strings.Builder
	b.WriteString("Based on the following context and query, provide a comprehensive and relevant response:\n\n")

	if len(contexts) == 0 {
		b.WriteString("Context: no indexed company data matched this query.\n")
	} else {
		b.WriteString("Context:\n")
		for _, c := range contexts {
			fmt.Fprintf(&b, "[%s | score %.2f] %s\n", c.SourceType, c.Score, c.Text)
		}
	}

	fmt.Fprintf(&b, "\nQuery: %s\n\n", query)
	b.WriteString("Please provide a detailed response that:\n")
	b.WriteString("1. Directly addresses the query\n")
	b.WriteString("2. Uses information from the provided context\n")
	b.WriteString("3. Is well-structured and professional\n")
	b.WriteString("4. Includes actionable insights when applicable\n\n")
	b.WriteString("Response:")
	return b.String()
}
