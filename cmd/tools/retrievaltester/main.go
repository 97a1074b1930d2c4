// Command retrievaltester exercises the pipeline from the terminal: classify
// a line of text, print the routed plan, and dump raw retrieval hits. Useful
// for tuning the corpus and checking the offline fallbacks.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/Joelrtharakan/boredom-breaker/backend/internal/analysis/emotion"
	"github.com/Joelrtharakan/boredom-breaker/backend/internal/config"
	"github.com/Joelrtharakan/boredom-breaker/backend/internal/service/agent"
	"github.com/Joelrtharakan/boredom-breaker/backend/internal/service/llm"
	musicService "github.com/Joelrtharakan/boredom-breaker/backend/internal/service/music"
	"github.com/Joelrtharakan/boredom-breaker/backend/internal/service/retrieval"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] failed to load .env, using system environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	text := flag.String("text", "", "free text to classify and plan for")
	collection := flag.String("collection", retrieval.CollActivities, "retrieval collection to query")
	n := flag.Int("n", 3, "number of retrieval hits to print")
	timeout := flag.Duration("timeout", 90*time.Second, "overall timeout")
	flag.Parse()

	if *text == "" {
		flag.Usage()
		log.Fatal("provide input with -text")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var embedder retrieval.Embedder
	if cfg.Embedding.Enabled() {
		embedder = retrieval.NewOllamaEmbedder(cfg.Embedding.Endpoint, cfg.Embedding.Model)
	}
	store := retrieval.NewStore(embedder)
	store.Seed(ctx)

	classifier := emotion.New(cfg.Classifier)
	signal := classifier.Analyze(ctx, *text)
	fmt.Printf("mood=%s emotion=%s intensity=%.2f\n\n", signal.Mood, signal.Emotion, signal.Intensity)

	fmt.Printf("top %d hits in %q:\n", *n, *collection)
	for _, hit := range store.Query(ctx, *collection, *text, *n) {
		fmt.Printf("  %.3f  %s\n", hit.Similarity, hit.Description)
	}
	fmt.Println()

	llmClient := llm.NewClient(ctx, cfg.AI)
	music := musicService.NewService(cfg.Spotify)
	micro := agent.NewMicroTaskAgent(nil)
	planner := agent.NewPlanner(llmClient, store, music, nil)
	router := agent.NewRouter(planner, agent.NewSurpriseAgent(micro, nil))

	steps := router.Route(ctx, signal, 0)
	out, err := json.MarshalIndent(steps, "", "  ")
	if err != nil {
		log.Fatalf("failed to render plan: %v", err)
	}
	fmt.Printf("plan:\n%s\n", out)
}
