// Package service contains the pipeline stages: keyword extraction, image
// search orchestration, relevance scoring, and the optional post-selection
// verifier. The Picker sequences them; everything runs synchronously on the
// calling goroutine.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dkruglov/newsimage/internal/llm"
	"github.com/dkruglov/newsimage/internal/model"
	"github.com/dkruglov/newsimage/internal/storage"
)

// Caller funnels every language-model completion through one place: an
// ordered provider list (first success wins), a token-bucket rate limiter to
// cap API spend, and the optional audit log.
//
// No retries happen here — a provider either answers or the next one in the
// order is tried. Retry logic belongs to HTTP fetches only.
type Caller struct {
	clients []llm.Client // ordered: first is primary, rest are fallbacks
	limiter *rate.Limiter
	calls   storage.CallRepository // nil disables auditing
	logger  *zap.Logger
}

// NewCaller creates a Caller. ratePerMinute caps completion calls; calls may
// be nil when auditing is disabled.
func NewCaller(clients []llm.Client, ratePerMinute int, calls storage.CallRepository, logger *zap.Logger) *Caller {
	// Zero or negative disables the limiter rather than dividing by zero.
	limit := rate.Inf
	if ratePerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(ratePerMinute))
	}

	return &Caller{
		clients: clients,
		limiter: rate.NewLimiter(limit, 1),
		calls:   calls,
		logger:  logger,
	}
}

// Complete runs one completion through the provider order. stage and
// targetURL only feed the audit record.
func (c *Caller) Complete(ctx context.Context, stage, targetURL, prompt string) (string, error) {
	if len(c.clients) == 0 {
		return "", fmt.Errorf("no LLM providers configured")
	}

	var lastErr error

	for i, client := range c.clients {
		// Blocks until a token is available or the context is cancelled.
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}

		start := time.Now()
		reply, err := client.Complete(ctx, prompt)
		c.record(ctx, client, stage, targetURL, err, time.Since(start).Milliseconds())

		if err == nil {
			return reply, nil
		}
		lastErr = err

		if i < len(c.clients)-1 {
			c.logger.Warn("LLM provider failed, trying next",
				zap.String("stage", stage),
				zap.String("provider", client.ProviderName()),
				zap.Error(err),
			)
		}
	}

	return "", fmt.Errorf("all LLM providers failed: %w", lastErr)
}

func (c *Caller) record(ctx context.Context, client llm.Client, stage, targetURL string, callErr error, durationMs int64) {
	if c.calls == nil {
		return
	}

	call := &model.ModelCall{
		Stage:    stage,
		Provider: client.ProviderName(),
		Model:    client.ModelName(),
		Success:  callErr == nil,
	}
	call.DurationMs = &durationMs
	if targetURL != "" {
		call.TargetURL = &targetURL
	}

	if err := c.calls.Create(ctx, call); err != nil {
		c.logger.Error("recording model call", zap.Error(err))
	}
}
