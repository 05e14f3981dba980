package llm

import (
	"contentforge/internal/config"
	"contentforge/internal/content_service/rag/interfaces"
	"contentforge/pkg/logger"
)

// NewProvider builds the text generation provider from config. The
// chat-completions client is always the primary; when a legacy model is
// configured the provider fails over to the legacy completion shape
// after the first chat failure and stays there for the process
// lifetime.
func NewProvider(cfg *config.GenerationConfig, log *logger.Logger) interfaces.Generator {
	primary := NewChatClient(cfg.Model, cfg.APIKey, cfg.BaseURL)
	if cfg.LegacyModel == "" {
		return primary
	}

	legacyURL := cfg.LegacyURL
	if legacyURL == "" {
		legacyURL = cfg.BaseURL
	}
	secondary := NewLegacyClient(cfg.LegacyModel, cfg.APIKey, legacyURL)
	return NewFailover(primary, secondary, log)
}
