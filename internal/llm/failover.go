package llm

import (
	"context"
	"sync/atomic"

	"contentforge/internal/content_service/rag/interfaces"
	"contentforge/pkg/logger"
)

// Failover routes generation to a primary provider and, once the
// primary fails, to a secondary for the rest of the process lifetime.
// The switch is sticky: a provider that failed once is assumed down
// rather than probed on every call.
type Failover struct {
	primary   interfaces.Generator
	secondary interfaces.Generator
	log       *logger.Logger
	degraded  atomic.Bool
}

// NewFailover wires the two providers. secondary must be non-nil.
func NewFailover(primary, secondary interfaces.Generator, log *logger.Logger) *Failover {
	return &Failover{primary: primary, secondary: secondary, log: log}
}

// Generate tries the primary unless a previous call already degraded,
// then the secondary. Only the last provider's error is returned.
func (f *Failover) Generate(ctx context.Context, system, prompt string, maxTokens int) (string, error) {
	if !f.degraded.Load() {
		out, err := f.primary.Generate(ctx, system, prompt, maxTokens)
		if err == nil {
			return out, nil
		}
		if ctx.Err() != nil {
			// A cancelled context says nothing about provider health.
			return "", err
		}
		f.degraded.Store(true)
		if f.log != nil {
			f.log.WithError(err).Warn("primary generation provider failed, switching to fallback")
		}
	}
	return f.secondary.Generate(ctx, system, prompt, maxTokens)
}

// Degraded reports whether the provider has switched to the fallback.
func (f *Failover) Degraded() bool { return f.degraded.Load() }

// compile-time check to ensure Failover implements the Generator interface
var _ interfaces.Generator = (*Failover)(nil)
