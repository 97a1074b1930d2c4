package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every subsystem's configuration.
type Config struct {
	Server     ServerConfig
	AI         AIConfig
	Classifier ClassifierConfig
	Embedding  EmbeddingConfig
	Spotify    SpotifyConfig
	Storage    StorageConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	classifier, err := loadClassifierConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:     server,
		AI:         ai,
		Classifier: classifier,
		Embedding:  loadEmbeddingConfig(),
		Spotify:    loadSpotifyConfig(),
		Storage:    loadStorageConfig(),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8000"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8000" or "127.0.0.1:8000" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig describes the chat-completion provider (OpenRouter-compatible).
type AIConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Enabled reports whether a credential was provided. Without one the LLM
// client runs in offline mode and serves canned fallbacks.
func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

// NewChatModel builds a chat model against the configured endpoint.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("OPENROUTER_API_KEY not configured")
	}

	return einoopenai.NewChatModel(ctx, &einoopenai.ChatModelConfig{
		BaseURL: c.BaseURL,
		APIKey:  c.APIKey,
		Model:   c.Model,
		Timeout: c.Timeout,
	})
}

func loadAIConfig() (AIConfig, error) {
	timeoutSeconds := 60
	if override, err := parseOptionalIntEnv("LLM_TIMEOUT_SECONDS"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		timeoutSeconds = *override
		if timeoutSeconds < 10 {
			timeoutSeconds = 10
		}
		if timeoutSeconds > 60 {
			timeoutSeconds = 60
		}
	}

	return AIConfig{
		APIKey:     strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")),
		Model:      getEnvOrDefault("OPENROUTER_MODEL", "mistralai/mistral-7b-instruct:free"),
		BaseURL:    getEnvOrDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		Timeout:    time.Duration(timeoutSeconds) * time.Second,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
	}, nil
}

// ClassifierConfig carries the emotion classifier's tunables. The threshold
// constants are deliberately configuration, not hard-coded policy.
type ClassifierConfig struct {
	BaseThreshold       float64
	ShortTextThreshold  float64
	ShortTextLimit      int
	JoyThreshold        float64
	JoyRelaxedThreshold float64
	HFAPIKey            string
	HFModel             string
}

func loadClassifierConfig() (ClassifierConfig, error) {
	cfg := ClassifierConfig{
		BaseThreshold:       0.50,
		ShortTextThreshold:  0.80,
		ShortTextLimit:      15,
		JoyThreshold:        0.90,
		JoyRelaxedThreshold: 0.60,
		HFAPIKey:            strings.TrimSpace(os.Getenv("HF_API_KEY")),
		HFModel:             getEnvOrDefault("HF_EMOTION_MODEL", "cardiffnlp/twitter-roberta-base-emotion"),
	}

	overrides := []struct {
		key  string
		dest *float64
	}{
		{"MOOD_BASE_THRESHOLD", &cfg.BaseThreshold},
		{"MOOD_SHORT_TEXT_THRESHOLD", &cfg.ShortTextThreshold},
		{"MOOD_JOY_THRESHOLD", &cfg.JoyThreshold},
		{"MOOD_JOY_RELAXED_THRESHOLD", &cfg.JoyRelaxedThreshold},
	}
	for _, o := range overrides {
		val, err := parseOptionalFloatEnv(o.key)
		if err != nil {
			return ClassifierConfig{}, err
		}
		if val != nil {
			*o.dest = *val
		}
	}

	return cfg, nil
}

// EmbeddingConfig describes the optional embedding endpoint used by the
// retrieval store. Without it the store ranks by keyword overlap.
type EmbeddingConfig struct {
	Endpoint string
	Model    string
}

// Enabled reports whether an embedding endpoint was configured.
func (c EmbeddingConfig) Enabled() bool {
	return c.Endpoint != ""
}

func loadEmbeddingConfig() EmbeddingConfig {
	return EmbeddingConfig{
		Endpoint: strings.TrimSpace(os.Getenv("EMBEDDING_ENDPOINT")),
		Model:    getEnvOrDefault("EMBEDDING_MODEL", "nomic-embed-text"),
	}
}

// SpotifyConfig holds the music catalog credentials.
type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
}

// Enabled reports whether both Spotify credentials were provided.
func (c SpotifyConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

func loadSpotifyConfig() SpotifyConfig {
	return SpotifyConfig{
		ClientID:     strings.TrimSpace(os.Getenv("SPOTIFY_CLIENT_ID")),
		ClientSecret: strings.TrimSpace(os.Getenv("SPOTIFY_CLIENT_SECRET")),
	}
}

// StorageConfig points at the SQLite database file.
type StorageConfig struct {
	Path string
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Path: getEnvOrDefault("DATABASE_PATH", "./boredom_breaker.db"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
