package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/h2non/bimg"
)

// ImageInfo describes a verified image: what the URL actually serves.
type ImageInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Type   string `json:"type"`
	Bytes  int    `json:"bytes"`
}

// Verifier downloads a selected image and probes its dimensions and format.
// It runs after selection, on request only, and never influences scoring —
// relevance stays a text-only judgment on URL and title.
type Verifier struct {
	httpClient *http.Client
}

// NewVerifier creates a verifier with its own HTTP client.
func NewVerifier(timeout time.Duration) *Verifier {
	return &Verifier{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Verify downloads the image at url and returns its pixel dimensions and
// detected format. An unreachable URL or undecodable payload is an error —
// the pick itself stands either way.
func (v *Verifier) Verify(ctx context.Context, url string) (*ImageInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "newsimage/1.0")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20)) // 10MB limit
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	img := bimg.NewImage(data)
	size, err := img.Size()
	if err != nil {
		return nil, fmt.Errorf("not a decodable image: %w", err)
	}

	return &ImageInfo{
		Width:  size.Width,
		Height: size.Height,
		Type:   bimg.DetermineImageTypeName(data),
		Bytes:  len(data),
	}, nil
}
