package chat_test

import (
	"context"
	"errors"
	"testing"

	chatmodel "github.com/Joelrtharakan/boredom-breaker/backend/internal/model/chat"
	chat "github.com/Joelrtharakan/boredom-breaker/backend/internal/service/chat"
)

type fakeResponder struct {
	enabled bool
	reply   string
	calls   int
}

func (f *fakeResponder) Generate(_ context.Context, _, _ string) string {
	f.calls++
	return f.reply
}

func (f *fakeResponder) Enabled() bool { return f.enabled }

type memoryStore struct {
	messages []chatmodel.Message
	failSave bool
}

func (m *memoryStore) SaveChatMessage(_ context.Context, msg chatmodel.Message) error {
	if m.failSave {
		return errors.New("disk full")
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *memoryStore) ChatHistory(_ context.Context, userID int64, sessionID string, _ int) ([]chatmodel.Message, error) {
	var out []chatmodel.Message
	for _, msg := range m.messages {
		if msg.UserID != userID {
			continue
		}
		if sessionID != "" && msg.SessionID != sessionID {
			continue
		}
		out = append(out, msg)
	}
	return out, nil
}

func TestSendStartsSessionAndPersistsBothTurns(t *testing.T) {
	store := &memoryStore{}
	svc := chat.NewService(&fakeResponder{enabled: true, reply: "here for you"}, store)

	reply, err := svc.Send(context.Background(), 1, "", "rough day")
	if err != nil {
		t.Fatalf("Send err: %v", err)
	}
	if reply.SessionID == "" {
		t.Fatal("expected a generated session id")
	}
	if reply.Text != "here for you" {
		t.Fatalf("reply: got %q", reply.Text)
	}

	if len(store.messages) != 2 {
		t.Fatalf("persisted turns: got %d want 2", len(store.messages))
	}
	if store.messages[0].Role != "user" || store.messages[1].Role != "assistant" {
		t.Fatalf("roles wrong: %+v", store.messages)
	}
	if store.messages[0].SessionID != reply.SessionID || store.messages[1].SessionID != reply.SessionID {
		t.Fatal("turns not bound to the session")
	}
}

func TestSendReusesProvidedSession(t *testing.T) {
	svc := chat.NewService(&fakeResponder{enabled: true, reply: "ok"}, &memoryStore{})

	reply, err := svc.Send(context.Background(), 1, "my-session", "hello")
	if err != nil {
		t.Fatalf("Send err: %v", err)
	}
	if reply.SessionID != "my-session" {
		t.Fatalf("session: got %q want my-session", reply.SessionID)
	}
}

func TestSendRejectsEmptyMessage(t *testing.T) {
	svc := chat.NewService(&fakeResponder{enabled: true}, &memoryStore{})

	if _, err := svc.Send(context.Background(), 1, "", "   "); !errors.Is(err, chat.ErrEmptyMessage) {
		t.Fatalf("got %v want ErrEmptyMessage", err)
	}
}

func TestSendOfflineUsesCannedReplies(t *testing.T) {
	responder := &fakeResponder{enabled: false, reply: "should not be used"}
	svc := chat.NewService(responder, &memoryStore{})

	cases := []struct {
		message string
		want    string
	}{
		{"i am so bored", "Boredom can be a gateway to creativity. Have you checked the dashboard suggestions?"},
		{"feeling sad tonight", "I'm sorry you're feeling down. Maybe some calming music would help?"},
		{"so happy today", "That's wonderful! Keep that momentum going."},
		{"whatever", "I hear you. Tell me more about that."},
	}
	for _, tc := range cases {
		reply, err := svc.Send(context.Background(), 1, "", tc.message)
		if err != nil {
			t.Fatalf("Send err: %v", err)
		}
		if reply.Text != tc.want {
			t.Fatalf("%q: got %q want %q", tc.message, reply.Text, tc.want)
		}
	}
	if responder.calls != 0 {
		t.Fatalf("disabled responder was called %d times", responder.calls)
	}
}

func TestSendSurvivesPersistenceFailure(t *testing.T) {
	svc := chat.NewService(&fakeResponder{enabled: true, reply: "still here"}, &memoryStore{failSave: true})

	reply, err := svc.Send(context.Background(), 1, "", "hello")
	if err != nil {
		t.Fatalf("Send err: %v", err)
	}
	if reply.Text != "still here" {
		t.Fatalf("reply: got %q", reply.Text)
	}
}

func TestHistoryScopesBySession(t *testing.T) {
	store := &memoryStore{}
	svc := chat.NewService(&fakeResponder{enabled: true, reply: "ok"}, store)

	first, err := svc.Send(context.Background(), 1, "", "one")
	if err != nil {
		t.Fatalf("Send err: %v", err)
	}
	if _, err := svc.Send(context.Background(), 1, "", "two"); err != nil {
		t.Fatalf("Send err: %v", err)
	}

	messages, err := svc.History(context.Background(), 1, first.SessionID, 50)
	if err != nil {
		t.Fatalf("History err: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("messages: got %d want 2", len(messages))
	}
}
