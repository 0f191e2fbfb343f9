package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dkruglov/newsimage/internal/llm"
	"github.com/dkruglov/newsimage/internal/model"
)

// Scorer asks the model to rate each candidate's relevance to the news text
// and keeps the running maximum. One completion call per candidate, strictly
// in input order — no batching, no parallelism, no early exit.
type Scorer struct {
	caller *Caller
	logger *zap.Logger
}

// NewScorer creates a relevance scorer on top of the shared caller.
func NewScorer(caller *Caller, logger *zap.Logger) *Scorer {
	return &Scorer{
		caller: caller,
		logger: logger,
	}
}

// ParseScore turns a model reply into a numeric score. Any reply that is not
// a bare floating-point number — "high", "", "N/A" — scores exactly 0. This
// parse-or-zero leniency is deliberate: a garbled reply keeps the candidate
// in the running at the bottom instead of crashing the loop.
func ParseScore(reply string) float64 {
	score, err := strconv.ParseFloat(strings.TrimSpace(reply), 64)
	if err != nil {
		return 0
	}
	return score
}

// Best returns the highest-scoring candidate reduced to URL + description,
// or nil when no candidate had a resolvable URL.
//
// Candidates without a link or thumbnail are skipped outright and never enter
// the comparison. Ties keep the first-seen maximum: a later equal score does
// not replace the current best (strict > only).
func (s *Scorer) Best(ctx context.Context, text string, candidates []model.Candidate) (*model.BestImage, error) {
	var best *model.ScoredCandidate
	bestScore := -1.0 // below any possible score, including the 0 of a garbled reply

	for _, candidate := range candidates {
		imageURL := candidate.URL()
		if imageURL == "" {
			s.logger.Debug("skipping candidate without URL", zap.String("title", candidate.Title))
			continue
		}

		reply, err := s.caller.Complete(ctx, model.StageScore, imageURL, llm.ScorePrompt(text, imageURL))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// A single failed call doesn't abort the loop; the candidate
			// simply scores 0, same as an unparsable reply.
			s.logger.Warn("scoring call failed",
				zap.String("url", imageURL),
				zap.Error(err),
			)
			reply = ""
		}

		score := ParseScore(reply)
		s.logger.Debug("scored candidate",
			zap.String("url", imageURL),
			zap.Float64("score", score),
		)

		if score > bestScore {
			bestScore = score
			best = &model.ScoredCandidate{Candidate: candidate, Score: score}
		}
	}

	if best == nil {
		return nil, nil
	}
	return &model.BestImage{
		URL:         best.Candidate.URL(),
		Description: best.Candidate.Description(),
		Score:       best.Score,
	}, nil
}
