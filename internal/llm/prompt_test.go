package llm

import (
	"strings"
	"testing"
)

func TestKeywordsPrompt_EmbedsText(t *testing.T) {
	prompt := KeywordsPrompt("Wildfires spread across the region")
	if !strings.Contains(prompt, "Wildfires spread across the region") {
		t.Errorf("prompt should embed the text, got %q", prompt)
	}
	if !strings.Contains(prompt, "image search") {
		t.Errorf("prompt should state the purpose, got %q", prompt)
	}
}

func TestScorePrompt_EmbedsTextAndURL(t *testing.T) {
	prompt := ScorePrompt("some news", "http://a/1.jpg")
	if !strings.Contains(prompt, "some news") {
		t.Errorf("prompt should embed the text, got %q", prompt)
	}
	if !strings.Contains(prompt, "http://a/1.jpg") {
		t.Errorf("prompt should embed the image URL, got %q", prompt)
	}
	if !strings.Contains(prompt, "1 to 10") {
		t.Errorf("prompt should name the scale, got %q", prompt)
	}
}
