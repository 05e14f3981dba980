package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"contentforge/internal/content_service/catalog"
	"contentforge/internal/content_service/rag/interfaces"
	"contentforge/internal/llm"
	"contentforge/internal/models"
	"contentforge/pkg/logger"
)

const suggestionMaxTokens = 1500

// suggestionPrompts maps a content type to its prompt template. The
// verbs (%s) are the serialized company data and the joined goals.
var suggestionPrompts = map[string]string{
	"articles": `Based on the following company information, suggest 3 article ideas that align with the company's goals:

Company Data: %s
Company Goals: %s

Please provide:
1. Article title
2. Brief description (2-3 sentences)
3. Key points to cover
4. Target audience
5. Estimated reading time

Format as JSON array with objects containing: title, description, keyPoints, targetAudience, readingTime.`,

	"demos": `Based on the following company information, suggest 3 demo ideas that showcase the company's capabilities:

Company Data: %s
Company Goals: %s

Please provide:
1. Demo title
2. Demo description
3. Key features to highlight
4. Target audience
5. Estimated demo duration

Format as JSON array with objects containing: title, description, keyFeatures, targetAudience, duration.`,

	"socialMedia": `Based on the following company information, suggest 5 social media post ideas:

Company Data: %s
Company Goals: %s

Please provide:
1. Post title/headline
2. Post content (2-3 sentences)
3. Suggested hashtags
4. Best platform (LinkedIn, Twitter, Instagram, etc.)
5. Engagement strategy

Format as JSON array with objects containing: title, content, hashtags, platform, engagementStrategy.`,
}

const analyzePrompt = `Analyze the following company data and provide insights:

Company Data: %s

Please provide:
1. Key strengths and opportunities
2. Potential content themes
3. Target audience analysis
4. Recommended content strategy
5. Competitive advantages to highlight

Format as JSON with these sections.`

// SuggestionEngine generates structured content suggestions from the
// stored company profile. Model output is decoded best-effort: callers
// always get either parsed JSON or the raw text, never a parse error.
type SuggestionEngine struct {
	catalog   *catalog.Catalog
	generator interfaces.Generator
	timeout   time.Duration
	log       *logger.Logger
}

// NewSuggestionEngine wires the engine. timeout bounds each generation
// call; zero selects 30 seconds.
func NewSuggestionEngine(cat *catalog.Catalog, generator interfaces.Generator, timeout time.Duration) *SuggestionEngine {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &SuggestionEngine{
		catalog:   cat,
		generator: generator,
		timeout:   timeout,
		log:       logger.New("suggestion_engine"),
	}
}

// Suggest generates content suggestions of the given type ("articles",
// "demos" or "socialMedia"; unknown types fall back to articles). It
// requires an uploaded company profile.
func (e *SuggestionEngine) Suggest(ctx context.Context, contentType string) (*models.SuggestionResult, error) {
	profile, err := e.catalog.GetProfile()
	if err != nil {
		return nil, err
	}

	template, ok := suggestionPrompts[contentType]
	if !ok {
		template = suggestionPrompts["articles"]
	}
	prompt := fmt.Sprintf(template, profileJSON(profile), strings.Join(profile.Goals, ", "))

	return e.generate(ctx, prompt)
}

// Analyze produces a structured analysis of the stored company profile.
func (e *SuggestionEngine) Analyze(ctx context.Context) (*models.SuggestionResult, error) {
	profile, err := e.catalog.GetProfile()
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(analyzePrompt, profileJSON(profile))
	return e.generate(ctx, prompt)
}

func (e *SuggestionEngine) generate(ctx context.Context, prompt string) (*models.SuggestionResult, error) {
	genCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.generator.Generate(genCtx, systemPrompt, prompt, suggestionMaxTokens)
	if err != nil {
		return nil, &models.GenerationError{Err: err}
	}

	if parsed, ok := llm.ExtractJSON(raw); ok {
		return &models.SuggestionResult{Parsed: true, Data: parsed, RawResponse: raw}, nil
	}
	e.log.Warn("model output held no decodable JSON, returning raw text")
	return &models.SuggestionResult{Parsed: false, Data: raw, RawResponse: raw}, nil
}

// profileJSON serializes the profile for prompt embedding. A marshal
// failure cannot realistically happen for this struct; fall back to the
// description rather than aborting a generation request over it.
func profileJSON(p *models.CompanyProfile) string {
	data, err := json.Marshal(p)
	if err != nil {
		return p.Description
	}
	return string(data)
}
