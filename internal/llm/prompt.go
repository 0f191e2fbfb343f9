package llm

import "fmt"

// KeywordsPrompt builds the single prompt used for keyword extraction.
// The whole completion, trimmed, becomes the search query verbatim.
func KeywordsPrompt(text string) string {
	return fmt.Sprintf(
		"Extract keywords or short phrases from the following text, suitable for an image search. "+
			"Reply with the keywords only.\n\n%s", text)
}

// ScorePrompt builds the per-candidate relevance prompt. The model sees only
// the news text and the image URL — no image bytes are fetched or analyzed.
// The reply is expected to be a bare number on a 1–10 scale.
func ScorePrompt(text, imageURL string) string {
	return fmt.Sprintf(
		"Rate the relevance of the following image to the given text on a scale from 1 to 10. "+
			"Reply with the number only.\n\nNews text:\n%s\n\nImage URL: %s\n\nScore:", text, imageURL)
}
