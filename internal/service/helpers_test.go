package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/dkruglov/newsimage/internal/llm"
)

// fakeLLM implements llm.Client with a queue of canned replies (or errors).
// It records every prompt so tests can assert how many calls each stage made.
type fakeLLM struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	prompts []string
}

func (f *fakeLLM) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := len(f.prompts)
	f.prompts = append(f.prompts, prompt)

	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return "", nil
}

func (f *fakeLLM) ProviderName() string { return "fake" }
func (f *fakeLLM) ModelName() string    { return "fake-model" }

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// newTestCaller builds a Caller around the fake with the rate limiter and
// audit log disabled.
func newTestCaller(fake *fakeLLM) *Caller {
	return NewCaller([]llm.Client{fake}, 0, nil, zap.NewNop())
}
