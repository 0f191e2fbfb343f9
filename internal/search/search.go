// Package search defines the image-search Provider interface and its two
// implementations: Google Custom Search and SerpAPI/DuckDuckGo. Adapters map
// a query string to an ordered list of candidates; candidate order is
// whatever the upstream returns, with no re-ranking.
package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dkruglov/newsimage/internal/config"
	"github.com/dkruglov/newsimage/internal/fetch"
	"github.com/dkruglov/newsimage/internal/model"
)

// Provider is the interface for image-search backends. Implementations route
// every HTTP call through the resilient fetcher and degrade to an empty
// candidate list when the retry budget is exhausted — a total fetch failure
// is "no candidates", not an error.
type Provider interface {
	Search(ctx context.Context, query string) ([]model.Candidate, error)
	Name() string
}

// New selects the provider for the configured engine. Selection happens here
// once; nothing downstream branches on the engine again.
func New(cfg *config.Config, fetcher *fetch.Client, logger *zap.Logger) (Provider, error) {
	switch model.Engine(cfg.Search.Engine) {
	case model.EngineGoogle:
		return NewGoogleProvider(cfg.Search.Google, cfg.Search.Count, fetcher, logger), nil
	case model.EngineDuckDuckGo:
		return NewSerpAPIProvider(cfg.Search.SerpAPI, fetcher, logger), nil
	default:
		return nil, fmt.Errorf("unsupported search engine: %q", cfg.Search.Engine)
	}
}
