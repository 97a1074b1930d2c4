package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/Joelrtharakan/boredom-breaker/backend/internal/config"
)

type scriptedModel struct {
	calls   int
	replies []string
	errs    []error
}

func (m *scriptedModel) Generate(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	idx := m.calls
	m.calls++
	if idx < len(m.errs) && m.errs[idx] != nil {
		return nil, m.errs[idx]
	}
	if idx < len(m.replies) {
		return schema.AssistantMessage(m.replies[idx], nil), nil
	}
	return nil, errors.New("script exhausted")
}

func newTestClient(chatModel ChatModel) (*Client, *[]time.Duration) {
	var slept []time.Duration
	c := &Client{
		chatModel:  chatModel,
		maxRetries: 3,
		retryDelay: 2 * time.Second,
		timeout:    time.Second,
		sleep:      func(d time.Duration) { slept = append(slept, d) },
	}
	return c, &slept
}

func TestOfflineClientServesFallbacksWithoutNetwork(t *testing.T) {
	client := NewClient(context.Background(), config.AIConfig{MaxRetries: 3, RetryDelay: 2 * time.Second, Timeout: time.Second})
	if client.Enabled() {
		t.Fatal("client without credentials must not be enabled")
	}

	got := client.Generate(context.Background(), "Return a JSON plan with 3 steps.", "help")
	if got != `{"plan": []}` {
		t.Fatalf("plan fallback: got %q", got)
	}

	got = client.Generate(context.Background(), "Write one short affirmation sentence.", "help")
	if got != "You are stronger than you think." {
		t.Fatalf("affirmation fallback: got %q", got)
	}

	got = client.Generate(context.Background(), "You are an empathetic friend.", "help")
	if got != "I am currently offline, but I hear you. Take a deep breath." {
		t.Fatalf("generic fallback: got %q", got)
	}
}

func TestGenerateRetriesThenFallsBack(t *testing.T) {
	boom := errors.New("upstream 503")
	chatModel := &scriptedModel{errs: []error{boom, boom, boom}}
	client, slept := newTestClient(chatModel)

	got := client.Generate(context.Background(), "Return a JSON plan.", "bored")
	if got != `{"plan": []}` {
		t.Fatalf("expected plan fallback after retries, got %q", got)
	}
	if chatModel.calls != 3 {
		t.Fatalf("attempts: got %d want 3", chatModel.calls)
	}
	if len(*slept) != 2 {
		t.Fatalf("delays: got %d want 2", len(*slept))
	}
	for _, d := range *slept {
		if d != 2*time.Second {
			t.Fatalf("delay: got %v want 2s", d)
		}
	}
}

func TestGenerateRecoversOnSecondAttempt(t *testing.T) {
	chatModel := &scriptedModel{
		errs:    []error{errors.New("transient")},
		replies: []string{"", "all good"},
	}
	client, slept := newTestClient(chatModel)

	got := client.Generate(context.Background(), "system", "user")
	if got != "all good" {
		t.Fatalf("got %q want %q", got, "all good")
	}
	if chatModel.calls != 2 {
		t.Fatalf("attempts: got %d want 2", chatModel.calls)
	}
	if len(*slept) != 1 {
		t.Fatalf("delays: got %d want 1", len(*slept))
	}
}

func TestGenerateTreatsEmptyReplyAsFailure(t *testing.T) {
	chatModel := &scriptedModel{replies: []string{"", "  ", "ok"}}
	client, _ := newTestClient(chatModel)

	got := client.Generate(context.Background(), "system", "user")
	if got != "ok" {
		t.Fatalf("got %q want %q", got, "ok")
	}
	if chatModel.calls != 3 {
		t.Fatalf("attempts: got %d want 3", chatModel.calls)
	}
}
