// Package llm provides a provider-agnostic interface for the two language
// model calls the pipeline makes: reducing a news text to a search query, and
// scoring a candidate image's relevance. Both are plain text completions —
// the caller embeds everything in the prompt and reads the raw reply.
package llm

import "context"

// Client is the interface for completion providers. OpenAI is the primary
// implementation, Anthropic the optional fallback — the caller tries them in
// configured order, first success wins.
//
// One method for the actual work. The bigger the interface, the weaker the
// abstraction.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	ProviderName() string
	ModelName() string
}
