package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"contentforge/internal/models"
)

// AppInfo corresponds to the 'app' section with basic application
// information.
type AppInfo struct {
	Name        string `yaml:"name"`        // application name
	Version     string `yaml:"version"`     // application version
	Environment string `yaml:"environment"` // "development" or "production"
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Address string `yaml:"address"` // listen address, e.g. ":3001"
}

// QdrantConfig configures the vector index connection and collection.
type QdrantConfig struct {
	URL        string        `yaml:"url"`        // e.g. "http://localhost:6333"
	APIKey     string        `yaml:"apiKey"`     // optional api-key header
	Collection string        `yaml:"collection"` // collection name
	VectorSize int           `yaml:"vectorSize"` // fixed vector dimensionality
	Timeout    time.Duration `yaml:"timeout"`    // per-request timeout
}

// EmbeddingConfig configures the embedding provider.
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"`   // "openai" or "ollama"
	Model      string `yaml:"model"`      // embedding model name
	APIKey     string `yaml:"apiKey"`     // provider API key
	BaseURL    string `yaml:"baseURL"`    // override endpoint (OpenAI-compatible gateways)
	Dimensions int    `yaml:"dimensions"` // expected embedding dimensionality
}

// GenerationConfig configures the text generation provider. The chat
// endpoint is tried first; on failure the provider falls back to the
// legacy completion endpoint for the rest of the process lifetime.
type GenerationConfig struct {
	Model       string        `yaml:"model"`       // chat model name
	APIKey      string        `yaml:"apiKey"`      // provider API key
	BaseURL     string        `yaml:"baseURL"`     // chat-completions endpoint base
	LegacyModel string        `yaml:"legacyModel"` // model for the legacy completion shape
	LegacyURL   string        `yaml:"legacyURL"`   // legacy completion endpoint base
	MaxTokens   int           `yaml:"maxTokens"`   // default generation budget
	Timeout     time.Duration `yaml:"timeout"`     // per-call timeout
}

// ChunkingConfig controls how source text is split before embedding.
type ChunkingConfig struct {
	MaxChunkSize int `yaml:"maxChunkSize"` // hard upper bound per chunk, in characters
	Overlap      int `yaml:"overlap"`      // characters carried over between chunks
}

// AppConfig is the root of the YAML configuration file.
type AppConfig struct {
	App        AppInfo          `yaml:"app"`
	Logger     LoggerConfig     `yaml:"logger"`
	Server     ServerConfig     `yaml:"server"`
	Qdrant     QdrantConfig     `yaml:"qdrant"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Generation GenerationConfig `yaml:"generation"`
	Chunking   ChunkingConfig   `yaml:"chunking"`
}

// LoadConfig loads and parses the YAML configuration file at path.
func LoadConfig(path string) (*AppConfig, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file %q: %w", path, err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(yamlFile, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":3001"
	}
	if c.Qdrant.URL == "" {
		c.Qdrant.URL = "http://localhost:6333"
	}
	if c.Qdrant.Collection == "" {
		c.Qdrant.Collection = "company_data"
	}
	if c.Qdrant.VectorSize == 0 {
		c.Qdrant.VectorSize = 1536
	}
	if c.Qdrant.Timeout == 0 {
		c.Qdrant.Timeout = 15 * time.Second
	}
	if c.Embedding.Dimensions == 0 {
		c.Embedding.Dimensions = c.Qdrant.VectorSize
	}
	if c.Generation.MaxTokens == 0 {
		c.Generation.MaxTokens = 1000
	}
	if c.Generation.Timeout == 0 {
		c.Generation.Timeout = 30 * time.Second
	}
	if c.Chunking.MaxChunkSize == 0 {
		c.Chunking.MaxChunkSize = 1000
	}
	if c.Chunking.Overlap == 0 {
		c.Chunking.Overlap = 100
	}
}

// Validate cross-checks the configuration. A dimensionality mismatch
// between the embedding provider and the vector collection is a
// deployment error that must stop startup, not something to discover on
// the first embedding call.
func (c *AppConfig) Validate() error {
	if c.Embedding.Dimensions != c.Qdrant.VectorSize {
		return &models.ConfigurationError{
			Reason: fmt.Sprintf("embedding dimensions (%d) do not match qdrant vector size (%d)",
				c.Embedding.Dimensions, c.Qdrant.VectorSize),
		}
	}
	if c.Chunking.Overlap >= c.Chunking.MaxChunkSize {
		return &models.ConfigurationError{
			Reason: fmt.Sprintf("chunk overlap (%d) must be smaller than max chunk size (%d)",
				c.Chunking.Overlap, c.Chunking.MaxChunkSize),
		}
	}
	return nil
}
