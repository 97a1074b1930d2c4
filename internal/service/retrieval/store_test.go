package retrieval_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Joelrtharakan/boredom-breaker/backend/internal/service/retrieval"
)

// vectorEmbedder maps known phrases to fixed vectors so cosine ranking is
// fully deterministic.
type vectorEmbedder struct {
	vectors map[string][]float32
}

func (e vectorEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	v, ok := e.vectors[text]
	if !ok {
		return nil, errors.New("unknown text")
	}
	return v, nil
}

func TestQueryRanksByCosineSimilarity(t *testing.T) {
	embedder := vectorEmbedder{vectors: map[string][]float32{
		"calm breathing":   {1, 0, 0},
		"fast workout":     {0, 1, 0},
		"slow stretching":  {0.9, 0.1, 0},
		"feeling stressed": {1, 0, 0},
	}}
	store := retrieval.NewStore(embedder)
	ctx := context.Background()

	store.Add(ctx, "test", "calm breathing", nil)
	store.Add(ctx, "test", "fast workout", nil)
	store.Add(ctx, "test", "slow stretching", nil)

	hits := store.Query(ctx, "test", "feeling stressed", 2)

	if len(hits) != 2 {
		t.Fatalf("hits: got %d want 2", len(hits))
	}
	if hits[0].Description != "calm breathing" {
		t.Fatalf("top hit: got %q want %q", hits[0].Description, "calm breathing")
	}
	if hits[1].Description != "slow stretching" {
		t.Fatalf("second hit: got %q want %q", hits[1].Description, "slow stretching")
	}
	if hits[0].Similarity < hits[1].Similarity {
		t.Fatalf("similarity order inverted: %v < %v", hits[0].Similarity, hits[1].Similarity)
	}
}

func TestQueryFallsBackToKeywordsWithoutEmbedder(t *testing.T) {
	store := retrieval.NewStore(nil)
	ctx := context.Background()
	store.Seed(ctx)

	hits := store.Query(ctx, retrieval.CollActivities, "stressed", 1)

	if len(hits) != 1 {
		t.Fatalf("hits: got %d want 1", len(hits))
	}
	// "stressed" only appears in the mood metadata of the breathing doc.
	if hits[0].Description != "2-minute breathing reset" {
		t.Fatalf("top hit: got %q", hits[0].Description)
	}
	if hits[0].Type != "breathing" {
		t.Fatalf("type: got %q want breathing", hits[0].Type)
	}
}

func TestQueryNeverErrors(t *testing.T) {
	store := retrieval.NewStore(nil)
	ctx := context.Background()

	if hits := store.Query(ctx, "missing", "anything", 3); hits != nil {
		t.Fatalf("empty collection should yield nil, got %+v", hits)
	}

	store.Add(ctx, "one", "solo entry", nil)
	if hits := store.Query(ctx, "one", "solo", 10); len(hits) != 1 {
		t.Fatalf("n larger than corpus should clamp, got %d", len(hits))
	}
	if hits := store.Query(ctx, "one", "solo", 0); len(hits) != 1 {
		t.Fatalf("n<=0 should default, got %d", len(hits))
	}
}

func TestSeedLoadsBothCorpora(t *testing.T) {
	store := retrieval.NewStore(nil)
	ctx := context.Background()
	store.Seed(ctx)

	if hits := store.Query(ctx, retrieval.CollActivities, "water", 10); len(hits) != 7 {
		t.Fatalf("activities: got %d want 7", len(hits))
	}
	if hits := store.Query(ctx, retrieval.CollMicroTasks, "blue", 10); len(hits) != 5 {
		t.Fatalf("micro tasks: got %d want 5", len(hits))
	}
}
