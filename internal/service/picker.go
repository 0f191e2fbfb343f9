package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dkruglov/newsimage/internal/model"
	"github.com/dkruglov/newsimage/internal/search"
)

// Outcome is the terminal state of a pipeline run. Exactly one of the three
// is reported; only a runtime error (not an empty result) makes Illustrate
// return a non-nil error instead.
type Outcome string

const (
	OutcomeFound      Outcome = "found"
	OutcomeNoImages   Outcome = "no_images"
	OutcomeNoRelevant Outcome = "no_relevant"
)

// Result is what a pipeline run produces.
type Result struct {
	Outcome  Outcome          `json:"outcome"`
	Keywords string           `json:"keywords,omitempty"`
	Engine   string           `json:"engine,omitempty"`
	Best     *model.BestImage `json:"best,omitempty"`
}

// Picker sequences the pipeline: keywords → search → score → report.
// Strictly linear, no branching back; an empty stage output short-circuits to
// a "nothing found" outcome rather than an error.
type Picker struct {
	extractor *Extractor
	provider  search.Provider
	scorer    *Scorer
	logger    *zap.Logger
}

// NewPicker wires the three stages together. Provider selection already
// happened in search.New; the picker never looks at the engine again.
func NewPicker(extractor *Extractor, provider search.Provider, scorer *Scorer, logger *zap.Logger) *Picker {
	return &Picker{
		extractor: extractor,
		provider:  provider,
		scorer:    scorer,
		logger:    logger,
	}
}

// Illustrate runs the full pipeline for one news text.
func (p *Picker) Illustrate(ctx context.Context, text string) (*Result, error) {
	keywords, err := p.extractor.Extract(ctx, text)
	if err != nil {
		return nil, err
	}
	p.logger.Info("keywords extracted", zap.String("keywords", keywords))

	candidates, err := p.provider.Search(ctx, keywords)
	if err != nil {
		return nil, fmt.Errorf("searching images via %s: %w", p.provider.Name(), err)
	}
	p.logger.Info("search complete",
		zap.String("engine", p.provider.Name()),
		zap.Int("candidates", len(candidates)),
	)

	if len(candidates) == 0 {
		// The scorer is never invoked on an empty candidate list.
		return &Result{
			Outcome:  OutcomeNoImages,
			Keywords: keywords,
			Engine:   p.provider.Name(),
		}, nil
	}

	best, err := p.scorer.Best(ctx, text, candidates)
	if err != nil {
		return nil, fmt.Errorf("scoring candidates: %w", err)
	}
	if best == nil {
		return &Result{
			Outcome:  OutcomeNoRelevant,
			Keywords: keywords,
			Engine:   p.provider.Name(),
		}, nil
	}

	p.logger.Info("best image selected",
		zap.String("url", best.URL),
		zap.Float64("score", best.Score),
	)

	return &Result{
		Outcome:  OutcomeFound,
		Keywords: keywords,
		Engine:   p.provider.Name(),
		Best:     best,
	}, nil
}
