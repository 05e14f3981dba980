package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentforge/internal/models"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: "contentforge"
logger:
  level: "debug"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":3001", cfg.Server.Address)
	assert.Equal(t, "http://localhost:6333", cfg.Qdrant.URL)
	assert.Equal(t, "company_data", cfg.Qdrant.Collection)
	assert.Equal(t, 1536, cfg.Qdrant.VectorSize)
	assert.Equal(t, 1536, cfg.Embedding.Dimensions)
	assert.Equal(t, 1000, cfg.Chunking.MaxChunkSize)
	assert.Equal(t, 100, cfg.Chunking.Overlap)
	assert.Equal(t, 30*time.Second, cfg.Generation.Timeout)
}

func TestLoadConfigReadsValues(t *testing.T) {
	path := writeConfig(t, `
server:
  address: ":8080"
qdrant:
  url: "http://qdrant:6333"
  collection: "docs"
  vectorSize: 768
embedding:
  provider: "ollama"
  model: "nomic-embed-text"
  dimensions: 768
chunking:
  maxChunkSize: 500
  overlap: 50
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "docs", cfg.Qdrant.Collection)
	assert.Equal(t, 768, cfg.Qdrant.VectorSize)
	assert.Equal(t, "ollama", cfg.Embedding.Provider)
	assert.Equal(t, 500, cfg.Chunking.MaxChunkSize)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidateRejectsDimensionMismatch(t *testing.T) {
	path := writeConfig(t, `
qdrant:
  vectorSize: 1536
embedding:
  dimensions: 768
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	var confErr *models.ConfigurationError
	assert.ErrorAs(t, err, &confErr)
}

func TestValidateRejectsOverlapNotBelowChunkSize(t *testing.T) {
	path := writeConfig(t, `
chunking:
  maxChunkSize: 100
  overlap: 100
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	var confErr *models.ConfigurationError
	assert.ErrorAs(t, cfg.Validate(), &confErr)
}
