package retrieval

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Collection names for the two seeded corpora.
const (
	CollActivities = "activities"
	CollMicroTasks = "micro_tasks"
)

// Hit is one ranked result. Read-only; callers must not mutate Metadata.
type Hit struct {
	Description string            `json:"description"`
	Type        string            `json:"type"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Similarity  float64           `json:"similarity"`
}

// Embedder turns text into a vector. Optional: without one the store ranks
// by keyword overlap instead.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type entry struct {
	id       string
	text     string
	metadata map[string]string
	vector   []float32
}

// Store is a small in-process similarity index over named collections. It is
// written once by Seed/Add before the server starts and read-only afterwards,
// so queries are safe for unlimited concurrent readers.
type Store struct {
	mu          sync.RWMutex
	embedder    Embedder
	collections map[string][]entry
}

// NewStore builds an empty store. embedder may be nil.
func NewStore(embedder Embedder) *Store {
	return &Store{
		embedder:    embedder,
		collections: make(map[string][]entry),
	}
}

// Add inserts a document into a collection, embedding it when possible.
// Embedding failures are logged, not fatal: the entry still participates in
// keyword ranking.
func (s *Store) Add(ctx context.Context, collection, text string, metadata map[string]string) {
	e := entry{id: uuid.NewString(), text: text, metadata: metadata}

	if s.embedder != nil {
		vector, err := s.embedder.Embed(ctx, text)
		if err != nil {
			log.Printf("[retrieval] failed to embed %q: %v", text, err)
		} else {
			e.vector = vector
		}
	}

	s.mu.Lock()
	s.collections[collection] = append(s.collections[collection], e)
	s.mu.Unlock()
}

// Query returns up to n hits ranked most-similar first. An empty collection
// or any internal failure yields an empty result, never an error.
func (s *Store) Query(ctx context.Context, collection, queryText string, n int) []Hit {
	if n <= 0 {
		n = 3
	}

	s.mu.RLock()
	entries := s.collections[collection]
	s.mu.RUnlock()

	if len(entries) == 0 {
		return nil
	}

	scores := s.scoreEntries(ctx, entries, queryText)

	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if n > len(order) {
		n = len(order)
	}
	hits := make([]Hit, 0, n)
	for _, idx := range order[:n] {
		e := entries[idx]
		hit := Hit{
			Description: e.text,
			Metadata:    e.metadata,
			Similarity:  scores[idx],
		}
		if e.metadata != nil {
			hit.Type = e.metadata["type"]
		}
		hits = append(hits, hit)
	}
	return hits
}

// scoreEntries prefers embedding cosine similarity and falls back to keyword
// overlap when the query cannot be embedded.
func (s *Store) scoreEntries(ctx context.Context, entries []entry, queryText string) []float64 {
	scores := make([]float64, len(entries))

	if s.embedder != nil {
		queryVec, err := s.embedder.Embed(ctx, queryText)
		if err == nil && len(queryVec) > 0 {
			embedded := false
			for i, e := range entries {
				if len(e.vector) > 0 {
					scores[i] = cosineSimilarity(queryVec, e.vector)
					embedded = true
				}
			}
			if embedded {
				return scores
			}
		} else if err != nil {
			log.Printf("[retrieval] query embedding failed, using keyword ranking: %v", err)
		}
	}

	keywords := strings.Fields(strings.ToLower(queryText))
	for i, e := range entries {
		text := strings.ToLower(e.text + " " + e.metadata["mood"])
		overlap := 0
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				overlap++
			}
		}
		if len(keywords) > 0 {
			scores[i] = float64(overlap) / float64(len(keywords))
		}
	}
	return scores
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
