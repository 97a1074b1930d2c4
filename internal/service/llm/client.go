package llm

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/Joelrtharakan/boredom-breaker/backend/internal/config"
)

// Fallback responses served whenever the provider is unavailable. Callers
// expecting structured JSON still receive parseable JSON.
const (
	fallbackPlanJSON    = `{"plan": []}`
	fallbackAffirmation = "You are stronger than you think."
	fallbackGeneric     = "I am currently offline, but I hear you. Take a deep breath."
)

// ChatModel is the narrow slice of the eino model interface the client needs.
// Declared locally so tests can substitute a fake.
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// Client talks to an OpenAI-compatible chat-completion endpoint with a fixed
// retry budget, degrading to content-sniffed canned responses. It never
// returns an error: mood support must not hard-fail.
type Client struct {
	chatModel  ChatModel
	maxRetries int
	retryDelay time.Duration
	timeout    time.Duration
	sleep      func(time.Duration)
}

// NewClient wires the client from configuration. A missing credential is a
// supported offline mode, not an error.
func NewClient(ctx context.Context, cfg config.AIConfig) *Client {
	client := &Client{
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		timeout:    cfg.Timeout,
		sleep:      time.Sleep,
	}

	if !cfg.Enabled() {
		log.Printf("[llm] OPENROUTER_API_KEY not set, serving offline fallbacks")
		return client
	}

	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		log.Printf("[llm] failed to create chat model, serving offline fallbacks: %v", err)
		return client
	}

	client.chatModel = chatModel
	return client
}

// Enabled reports whether a provider is actually wired.
func (c *Client) Enabled() bool {
	return c.chatModel != nil
}

// Generate sends a system/user prompt pair and returns the model's reply, or
// a fallback string after the retry budget is exhausted.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) string {
	if c.chatModel == nil {
		return fallbackResponse(systemPrompt)
	}

	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userPrompt),
	}

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		reply, err := c.invoke(ctx, messages)
		if err == nil && reply != "" {
			return reply
		}
		if err != nil {
			log.Printf("[llm] attempt %d/%d failed: %v", attempt, c.maxRetries, err)
		} else {
			log.Printf("[llm] attempt %d/%d returned an empty completion", attempt, c.maxRetries)
		}
		if attempt < c.maxRetries {
			c.sleep(c.retryDelay)
		}
	}

	return fallbackResponse(systemPrompt)
}

func (c *Client) invoke(ctx context.Context, messages []*schema.Message) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	msg, err := c.chatModel.Generate(callCtx, messages)
	if err != nil {
		return "", err
	}
	if msg == nil {
		return "", nil
	}
	return strings.TrimSpace(msg.Content), nil
}

// fallbackResponse sniffs the system prompt so plan callers still get JSON.
func fallbackResponse(systemPrompt string) string {
	lower := strings.ToLower(systemPrompt)
	if strings.Contains(lower, "plan") || strings.Contains(lower, "json") {
		return fallbackPlanJSON
	}
	if strings.Contains(lower, "affirmation") {
		return fallbackAffirmation
	}
	return fallbackGeneric
}
