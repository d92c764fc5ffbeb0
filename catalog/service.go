// Package catalog fetches and caches model lists per backend so UI pickers
// don't trigger a network call on every render.
package catalog

import (
	"context"
	"sync"

	"github.com/pcallahan/inkwell/llm"
	"github.com/rs/zerolog"
)

// Source is the slice of the dispatcher the catalog needs: the active
// backend name and its model listing.
type Source interface {
	ActiveProvider() string
	ListModels(ctx context.Context) []llm.ModelInfo
}

// Service caches model lists for the process lifetime, keyed by backend
// identity only. Settings edits (API key, model, temperature) don't
// invalidate the cache; a miss happens on backend switch or explicit
// refresh. The service never fails: fetch failures are already absorbed by
// the adapters' fallback lists.
type Service struct {
	source Source
	logger zerolog.Logger

	mu    sync.Mutex
	cache map[string][]llm.ModelInfo
}

// NewService creates a catalog service over a dispatcher.
func NewService(source Source, logger zerolog.Logger) *Service {
	return &Service{
		source: source,
		logger: logger,
		cache:  make(map[string][]llm.ModelInfo),
	}
}

// GetModels returns the model list for the active backend, served from
// cache unless forceRefresh is set or no cached entry exists.
func (s *Service) GetModels(ctx context.Context, forceRefresh bool) []llm.ModelInfo {
	provider := s.source.ActiveProvider()

	s.mu.Lock()
	cached, ok := s.cache[provider]
	s.mu.Unlock()

	if ok && !forceRefresh {
		s.logger.Debug().Str("provider", provider).Int("models", len(cached)).Msg("Model catalog cache hit")
		return cached
	}

	models := s.source.ListModels(ctx)

	s.mu.Lock()
	s.cache[provider] = models
	s.mu.Unlock()

	s.logger.Debug().Str("provider", provider).Int("models", len(models)).Bool("forced", forceRefresh).Msg("Model catalog refreshed")
	return models
}

// Invalidate drops the cached entry for one backend.
func (s *Service) Invalidate(provider string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, provider)
}
