package search

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/dkruglov/newsimage/internal/config"
	"github.com/dkruglov/newsimage/internal/fetch"
	"github.com/dkruglov/newsimage/internal/model"
)

const googleEndpoint = "https://www.googleapis.com/customsearch/v1"

// GoogleProvider searches images through the Google Custom Search API.
// Results carry a direct `link` plus a `title`.
type GoogleProvider struct {
	cfg      config.GoogleConfig
	count    int
	endpoint string
	fetcher  *fetch.Client
	logger   *zap.Logger
}

// NewGoogleProvider creates a Google CSE image-search adapter. count is the
// requested page size (the API caps it at 10).
func NewGoogleProvider(cfg config.GoogleConfig, count int, fetcher *fetch.Client, logger *zap.Logger) *GoogleProvider {
	return &GoogleProvider{
		cfg:      cfg,
		count:    count,
		endpoint: googleEndpoint,
		fetcher:  fetcher,
		logger:   logger,
	}
}

func (g *GoogleProvider) Name() string { return "google" }

// googleItem is the slice of a CSE result this pipeline cares about.
type googleItem struct {
	Link  string `json:"link"`
	Title string `json:"title"`
}

type googleResponse struct {
	Items []googleItem `json:"items"`
}

// Search returns image candidates for the query, in API order.
// Fetch exhaustion yields an empty slice, not an error — the orchestrator
// reports "no images found" and stops.
func (g *GoogleProvider) Search(ctx context.Context, query string) ([]model.Candidate, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("cx", g.cfg.CSEID)
	params.Set("key", g.cfg.APIKey)
	params.Set("searchType", "image")
	params.Set("num", strconv.Itoa(g.count))

	var resp googleResponse
	if err := g.fetcher.GetJSON(ctx, g.endpoint, params, &resp); err != nil {
		if errors.Is(err, fetch.ErrExhausted) {
			g.logger.Warn("google image search exhausted retries", zap.String("query", query))
			return nil, nil
		}
		return nil, err
	}

	candidates := make([]model.Candidate, 0, len(resp.Items))
	for _, item := range resp.Items {
		candidates = append(candidates, model.Candidate{
			Link:   item.Link,
			Title:  item.Title,
			Source: g.Name(),
		})
	}
	return candidates, nil
}
