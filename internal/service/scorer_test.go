package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/dkruglov/newsimage/internal/model"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		reply string
		want  float64
	}{
		{"7", 7},
		{"9.5", 9.5},
		{"  8 \n", 8},
		{"high", 0},
		{"", 0},
		{"N/A", 0},
		{"8/10", 0},
		{"-3", -3},
	}

	for _, tt := range tests {
		if got := ParseScore(tt.reply); got != tt.want {
			t.Errorf("ParseScore(%q) = %v, want %v", tt.reply, got, tt.want)
		}
	}
}

func TestBest_PicksHighestScore(t *testing.T) {
	fake := &fakeLLM{replies: []string{"7", "9"}}
	scorer := NewScorer(newTestCaller(fake), zap.NewNop())

	candidates := []model.Candidate{
		{Link: "http://a/1.jpg", Title: "Fire1"},
		{Link: "http://a/2.jpg", Title: "Fire2"},
	}

	best, err := scorer.Best(context.Background(), "Wildfires spread across the region", candidates)
	if err != nil {
		t.Fatalf("Best failed: %v", err)
	}
	if best == nil {
		t.Fatal("expected a best image")
	}
	if best.URL != "http://a/2.jpg" {
		t.Errorf("expected URL http://a/2.jpg, got %s", best.URL)
	}
	if best.Description != "Fire2" {
		t.Errorf("expected description Fire2, got %s", best.Description)
	}
}

func TestBest_TieKeepsFirstSeen(t *testing.T) {
	fake := &fakeLLM{replies: []string{"7", "7"}}
	scorer := NewScorer(newTestCaller(fake), zap.NewNop())

	candidates := []model.Candidate{
		{Link: "http://a/first.jpg", Title: "First"},
		{Link: "http://a/second.jpg", Title: "Second"},
	}

	best, err := scorer.Best(context.Background(), "text", candidates)
	if err != nil {
		t.Fatalf("Best failed: %v", err)
	}
	if best.URL != "http://a/first.jpg" {
		t.Errorf("tie should keep the first-seen candidate, got %s", best.URL)
	}
}

func TestBest_MalformedScoresStayInTheRunning(t *testing.T) {
	// All replies are garbage → every candidate scores 0, and the first one
	// still wins (0 beats the initial sentinel, later 0s don't replace it).
	fake := &fakeLLM{replies: []string{"high", "N/A"}}
	scorer := NewScorer(newTestCaller(fake), zap.NewNop())

	candidates := []model.Candidate{
		{Link: "http://a/1.jpg", Title: "One"},
		{Link: "http://a/2.jpg", Title: "Two"},
	}

	best, err := scorer.Best(context.Background(), "text", candidates)
	if err != nil {
		t.Fatalf("Best failed: %v", err)
	}
	if best == nil {
		t.Fatal("malformed scores must not drop candidates")
	}
	if best.URL != "http://a/1.jpg" {
		t.Errorf("expected first candidate, got %s", best.URL)
	}
	if best.Score != 0 {
		t.Errorf("expected score 0, got %v", best.Score)
	}
}

func TestBest_SkipsCandidatesWithoutURL(t *testing.T) {
	fake := &fakeLLM{replies: []string{"9"}}
	scorer := NewScorer(newTestCaller(fake), zap.NewNop())

	candidates := []model.Candidate{
		{Title: "no urls at all"},
		{Thumbnail: "http://t/2.jpg", Title: "Thumb"},
	}

	best, err := scorer.Best(context.Background(), "text", candidates)
	if err != nil {
		t.Fatalf("Best failed: %v", err)
	}
	if best == nil {
		t.Fatal("expected a best image")
	}
	if best.URL != "http://t/2.jpg" {
		t.Errorf("expected the thumbnail fallback URL, got %s", best.URL)
	}
	if fake.callCount() != 1 {
		t.Errorf("URL-less candidate should not trigger a model call, got %d calls", fake.callCount())
	}
}

func TestBest_NoResolvableURLs(t *testing.T) {
	fake := &fakeLLM{}
	scorer := NewScorer(newTestCaller(fake), zap.NewNop())

	candidates := []model.Candidate{
		{Title: "one"},
		{Title: "two"},
	}

	best, err := scorer.Best(context.Background(), "text", candidates)
	if err != nil {
		t.Fatalf("Best failed: %v", err)
	}
	if best != nil {
		t.Errorf("expected nil best for URL-less candidates, got %+v", best)
	}
	if fake.callCount() != 0 {
		t.Errorf("expected no model calls, got %d", fake.callCount())
	}
}

func TestBest_FailedCallScoresZero(t *testing.T) {
	fake := &fakeLLM{
		replies: []string{"", "6"},
		errs:    []error{errors.New("model unavailable"), nil},
	}
	scorer := NewScorer(newTestCaller(fake), zap.NewNop())

	candidates := []model.Candidate{
		{Link: "http://a/1.jpg", Title: "Broken"},
		{Link: "http://a/2.jpg", Title: "Scored"},
	}

	best, err := scorer.Best(context.Background(), "text", candidates)
	if err != nil {
		t.Fatalf("Best failed: %v", err)
	}
	if best.URL != "http://a/2.jpg" {
		t.Errorf("expected the successfully scored candidate, got %s", best.URL)
	}
}

func TestBest_PlaceholderDescription(t *testing.T) {
	fake := &fakeLLM{replies: []string{"5"}}
	scorer := NewScorer(newTestCaller(fake), zap.NewNop())

	candidates := []model.Candidate{
		{Thumbnail: "http://t/1.jpg"}, // no title
	}

	best, err := scorer.Best(context.Background(), "text", candidates)
	if err != nil {
		t.Fatalf("Best failed: %v", err)
	}
	if best.Description != model.NoDescription {
		t.Errorf("expected placeholder description, got %q", best.Description)
	}
}
