package search

import (
	"context"
	"errors"
	"net/url"

	"go.uber.org/zap"

	"github.com/dkruglov/newsimage/internal/config"
	"github.com/dkruglov/newsimage/internal/fetch"
	"github.com/dkruglov/newsimage/internal/model"
)

const serpapiEndpoint = "https://serpapi.com/search"

// SerpAPIProvider searches images through SerpAPI's DuckDuckGo engine.
// Unlike Google, these results expose only a `thumbnail` URL and the title
// may be absent entirely.
type SerpAPIProvider struct {
	cfg      config.SerpAPIConfig
	endpoint string
	fetcher  *fetch.Client
	logger   *zap.Logger
}

// NewSerpAPIProvider creates a SerpAPI/DuckDuckGo image-search adapter.
func NewSerpAPIProvider(cfg config.SerpAPIConfig, fetcher *fetch.Client, logger *zap.Logger) *SerpAPIProvider {
	return &SerpAPIProvider{
		cfg:      cfg,
		endpoint: serpapiEndpoint,
		fetcher:  fetcher,
		logger:   logger,
	}
}

func (s *SerpAPIProvider) Name() string { return "duckduckgo" }

type serpapiImage struct {
	Thumbnail string `json:"thumbnail"`
	Title     string `json:"title"`
}

type serpapiResponse struct {
	ImagesResults []serpapiImage `json:"images_results"`
}

// Search returns image candidates for the query, in API order. Same
// degradation policy as the Google adapter: exhausted retries mean an empty
// list.
func (s *SerpAPIProvider) Search(ctx context.Context, query string) ([]model.Candidate, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("engine", "duckduckgo")
	params.Set("api_key", s.cfg.APIKey)
	params.Set("no_html", "1")
	params.Set("output", "json")

	var resp serpapiResponse
	if err := s.fetcher.GetJSON(ctx, s.endpoint, params, &resp); err != nil {
		if errors.Is(err, fetch.ErrExhausted) {
			s.logger.Warn("duckduckgo image search exhausted retries", zap.String("query", query))
			return nil, nil
		}
		return nil, err
	}

	candidates := make([]model.Candidate, 0, len(resp.ImagesResults))
	for _, img := range resp.ImagesResults {
		candidates = append(candidates, model.Candidate{
			Thumbnail: img.Thumbnail,
			Title:     img.Title,
			Source:    s.Name(),
		})
	}
	return candidates, nil
}
