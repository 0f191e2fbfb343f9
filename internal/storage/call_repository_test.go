package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dkruglov/newsimage/internal/model"
)

func newTestRepo(t *testing.T) CallRepository {
	t.Helper()

	db, err := NewDatabase(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("creating database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewCallRepository(db)
}

func TestCreateAndCount(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	duration := int64(120)
	url := "http://a/1.jpg"

	calls := []*model.ModelCall{
		{Stage: model.StageKeywords, Provider: "openai", Model: "gpt-4o-mini", Success: true, DurationMs: &duration},
		{Stage: model.StageScore, Provider: "openai", Model: "gpt-4o-mini", Success: true, DurationMs: &duration, TargetURL: &url},
		{Stage: model.StageScore, Provider: "openai", Model: "gpt-4o-mini", Success: false, DurationMs: &duration},
	}
	for _, call := range calls {
		if err := repo.Create(ctx, call); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if call.ID == 0 {
			t.Error("expected ID to be set after insert")
		}
	}

	keywordCount, err := repo.CountByStage(ctx, model.StageKeywords)
	if err != nil {
		t.Fatalf("CountByStage failed: %v", err)
	}
	if keywordCount != 1 {
		t.Errorf("expected 1 keyword call, got %d", keywordCount)
	}

	scoreCount, err := repo.CountByStage(ctx, model.StageScore)
	if err != nil {
		t.Fatalf("CountByStage failed: %v", err)
	}
	if scoreCount != 2 {
		t.Errorf("expected 2 score calls, got %d", scoreCount)
	}
}

func TestStats(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	short, long := int64(100), int64(300)
	for _, call := range []*model.ModelCall{
		{Stage: model.StageScore, Provider: "openai", Model: "m", Success: true, DurationMs: &short},
		{Stage: model.StageScore, Provider: "openai", Model: "m", Success: false, DurationMs: &long},
	} {
		if err := repo.Create(ctx, call); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 2 {
		t.Errorf("expected 2 total calls, got %d", stats.Total)
	}
	if stats.Failed != 1 {
		t.Errorf("expected 1 failed call, got %d", stats.Failed)
	}
	if stats.AvgDuration != 200 {
		t.Errorf("expected average duration 200ms, got %d", stats.AvgDuration)
	}
}

func TestStats_EmptyTable(t *testing.T) {
	repo := newTestRepo(t)

	stats, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 0 || stats.Failed != 0 || stats.AvgDuration != 0 {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}
}
