package service

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestExtract_ReturnsTrimmedReply(t *testing.T) {
	fake := &fakeLLM{replies: []string{"  wildfires, forest, smoke \n"}}
	extractor := NewExtractor(newTestCaller(fake), zap.NewNop())

	keywords, err := extractor.Extract(context.Background(), "Wildfires spread across the region")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if keywords != "wildfires, forest, smoke" {
		t.Errorf("expected trimmed keywords, got %q", keywords)
	}

	// The prompt embeds the raw text; the reply is not parsed or split.
	if len(fake.prompts) != 1 {
		t.Fatalf("expected 1 call, got %d", len(fake.prompts))
	}
	if !strings.Contains(fake.prompts[0], "Wildfires spread across the region") {
		t.Errorf("prompt should embed the news text, got %q", fake.prompts[0])
	}
}

func TestExtract_EmptyReplyIsNotAnError(t *testing.T) {
	// The whole completion is the query, even when the model says nothing.
	fake := &fakeLLM{replies: []string{""}}
	extractor := NewExtractor(newTestCaller(fake), zap.NewNop())

	keywords, err := extractor.Extract(context.Background(), "text")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if keywords != "" {
		t.Errorf("expected empty keywords, got %q", keywords)
	}
}
