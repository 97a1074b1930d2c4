package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Joelrtharakan/boredom-breaker/backend/internal/analysis/emotion"
	"github.com/Joelrtharakan/boredom-breaker/backend/internal/config"
	"github.com/Joelrtharakan/boredom-breaker/backend/internal/handler"
	"github.com/Joelrtharakan/boredom-breaker/backend/internal/service/agent"
	chatService "github.com/Joelrtharakan/boredom-breaker/backend/internal/service/chat"
	"github.com/Joelrtharakan/boredom-breaker/backend/internal/service/llm"
	musicService "github.com/Joelrtharakan/boredom-breaker/backend/internal/service/music"
	"github.com/Joelrtharakan/boredom-breaker/backend/internal/service/retrieval"
	"github.com/Joelrtharakan/boredom-breaker/backend/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer store.Close()

	// Retrieval corpus. Semantic ranking needs an embedding endpoint;
	// without one the store falls back to keyword overlap.
	var embedder retrieval.Embedder
	if cfg.Embedding.Enabled() {
		embedder = retrieval.NewOllamaEmbedder(cfg.Embedding.Endpoint, cfg.Embedding.Model)
		log.Println("Embedding endpoint configured, semantic retrieval enabled")
	} else {
		log.Println("EMBEDDING_ENDPOINT not set, retrieval falls back to keyword matching")
	}
	retrievalStore := retrieval.NewStore(embedder)
	retrievalStore.Seed(ctx)

	llmClient := llm.NewClient(ctx, cfg.AI)
	if llmClient.Enabled() {
		log.Println("LLM client initialized successfully")
	}

	music := musicService.NewService(cfg.Spotify)
	if !music.Enabled() {
		log.Println("Spotify credentials not configured, serving mock playlists")
	}

	classifier := emotion.New(cfg.Classifier)

	microTask := agent.NewMicroTaskAgent(nil)
	surprise := agent.NewSurpriseAgent(microTask, nil)
	planner := agent.NewPlanner(llmClient, retrievalStore, music, nil)
	routerAgent := agent.NewRouter(planner, surprise)

	chatSvc := chatService.NewService(llmClient, store)

	router := handler.NewRouter(handler.Services{
		Classifier: classifier,
		Router:     routerAgent,
		MicroTask:  microTask,
		Surprise:   surprise,
		Chat:       chatSvc,
		Music:      music,
		Store:      store,
	})

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Boredom Breaker backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
