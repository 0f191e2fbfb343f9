package model

import "testing"

func TestValidEngine(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"google", true},
		{"duckduckgo", true},
		{"", false},
		{"bing", false},
		{"GOOGLE", false}, // engine names are case sensitive
	}
	for _, tc := range cases {
		if got := ValidEngine(tc.input); got != tc.want {
			t.Errorf("ValidEngine(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCandidateURL_PrefersLink(t *testing.T) {
	c := Candidate{Link: "http://example.com/full.jpg", Thumbnail: "http://example.com/thumb.jpg"}
	if got := c.URL(); got != "http://example.com/full.jpg" {
		t.Errorf("expected link to win, got %q", got)
	}

	c = Candidate{Thumbnail: "http://example.com/thumb.jpg"}
	if got := c.URL(); got != "http://example.com/thumb.jpg" {
		t.Errorf("expected thumbnail fallback, got %q", got)
	}

	if got := (Candidate{}).URL(); got != "" {
		t.Errorf("expected empty URL for bare candidate, got %q", got)
	}
}

func TestCandidateDescription_Placeholder(t *testing.T) {
	if got := (Candidate{Title: "Wildfire"}).Description(); got != "Wildfire" {
		t.Errorf("expected title, got %q", got)
	}
	if got := (Candidate{}).Description(); got != NoDescription {
		t.Errorf("expected placeholder, got %q", got)
	}
}
