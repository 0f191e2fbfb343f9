package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dkruglov/newsimage/internal/llm"
	"github.com/dkruglov/newsimage/internal/model"
)

// Extractor reduces a news text to a search query with a single completion
// call. The trimmed reply is used verbatim — no splitting, no validation of
// non-emptiness; whatever the model says is the query.
type Extractor struct {
	caller *Caller
	logger *zap.Logger
}

// NewExtractor creates a keyword extractor on top of the shared caller.
func NewExtractor(caller *Caller, logger *zap.Logger) *Extractor {
	return &Extractor{
		caller: caller,
		logger: logger,
	}
}

// Extract returns the search query derived from text. A failed completion is
// an error here: nothing downstream can run without keywords.
func (e *Extractor) Extract(ctx context.Context, text string) (string, error) {
	reply, err := e.caller.Complete(ctx, model.StageKeywords, "", llm.KeywordsPrompt(text))
	if err != nil {
		return "", fmt.Errorf("extracting keywords: %w", err)
	}

	keywords := strings.TrimSpace(reply)
	e.logger.Debug("extracted keywords", zap.String("keywords", keywords))
	return keywords, nil
}
