// Package model defines the core data types for the news-image pipeline.
// Each stage produces a new value consumed by the next — nothing here is
// mutated after creation.
package model

import "time"

// Engine identifies an image-search backend.
// Go doesn't have enums — we use typed string constants instead.
type Engine string

const (
	EngineGoogle     Engine = "google"     // Google Custom Search, image type
	EngineDuckDuckGo Engine = "duckduckgo" // DuckDuckGo via SerpAPI
)

// ValidEngine checks if a string names a supported search engine.
func ValidEngine(s string) bool {
	switch Engine(s) {
	case EngineGoogle, EngineDuckDuckGo:
		return true
	}
	return false
}

// NoDescription is the placeholder used when a candidate carries no title.
const NoDescription = "No description"

// Candidate is one image search result before scoring.
// Google results populate Link; SerpAPI/DuckDuckGo results only have a
// Thumbnail. URL resolution (Link first, Thumbnail as fallback) happens in
// the scorer, not here.
type Candidate struct {
	Link      string `json:"link,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Title     string `json:"title,omitempty"`
	Source    string `json:"source,omitempty"` // which engine produced it
}

// URL returns the representative URL for the candidate: the primary link if
// present, otherwise the thumbnail. Empty string means the candidate is
// unusable and must be skipped by the scorer.
func (c Candidate) URL() string {
	if c.Link != "" {
		return c.Link
	}
	return c.Thumbnail
}

// Description returns the candidate title, or the placeholder when absent.
func (c Candidate) Description() string {
	if c.Title != "" {
		return c.Title
	}
	return NoDescription
}

// ScoredCandidate pairs a candidate with its model-assigned relevance score.
// The nominal range is 1–10, but the model's raw output is not validated:
// anything unparsable scores exactly 0.
type ScoredCandidate struct {
	Candidate Candidate `json:"candidate"`
	Score     float64   `json:"score"`
}

// BestImage is the final pick, reduced to what callers consume.
type BestImage struct {
	URL         string  `json:"url"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// ModelCall records one language-model invocation for cost tracking.
// Stored in SQLite when auditing is enabled; never read back by the pipeline.
type ModelCall struct {
	ID         int64     `db:"id" json:"id"`
	Stage      string    `db:"stage" json:"stage"` // "keywords" or "score"
	Provider   string    `db:"provider" json:"provider"`
	Model      string    `db:"model" json:"model"`
	TargetURL  *string   `db:"target_url" json:"target_url,omitempty"` // image URL for score calls
	Success    bool      `db:"success" json:"success"`
	DurationMs *int64    `db:"duration_ms" json:"duration_ms,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Call stages recorded in the audit log.
const (
	StageKeywords = "keywords"
	StageScore    = "score"
)
