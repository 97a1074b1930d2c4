package chat

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Joelrtharakan/boredom-breaker/backend/internal/model/chat"
)

var ErrEmptyMessage = errors.New("message is required")

const systemPrompt = `You are an Empathetic AI Friend.
Your goals:
- encourage the user
- reduce boredom or stress
- respond warmly and naturally
- never judge
- give emotional support

Never mention you are an AI unless asked.
Answer in a friendly, conversational tone. Keep responses concise (under 3 sentences).`

// Responder produces a completion for a system/user prompt pair.
type Responder interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) string
	Enabled() bool
}

// HistoryStore persists conversation turns.
type HistoryStore interface {
	SaveChatMessage(ctx context.Context, msg chat.Message) error
	ChatHistory(ctx context.Context, userID int64, sessionID string, limit int) ([]chat.Message, error)
}

// Service drives the empathetic chat agent and keeps its transcript.
type Service struct {
	responder Responder
	store     HistoryStore
}

// NewService wires the chat agent. store may be nil; turns are then not
// persisted but the conversation still works.
func NewService(responder Responder, store HistoryStore) *Service {
	return &Service{responder: responder, store: store}
}

// Reply is one completed conversation turn.
type Reply struct {
	SessionID string `json:"session_id"`
	Text      string `json:"reply"`
}

// Send records the user's message, produces a reply, and records that too.
// A missing session id starts a new session.
func (s *Service) Send(ctx context.Context, userID int64, sessionID, message string) (Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{}, ErrEmptyMessage
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	s.persist(ctx, chat.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		UserID:    userID,
		Role:      "user",
		Content:   message,
		CreatedAt: time.Now().UTC(),
	})

	var text string
	if s.responder != nil && s.responder.Enabled() {
		text = s.responder.Generate(ctx, systemPrompt, message)
	} else {
		text = cannedReply(message)
	}

	s.persist(ctx, chat.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		UserID:    userID,
		Role:      "assistant",
		Content:   text,
		CreatedAt: time.Now().UTC(),
	})

	return Reply{SessionID: sessionID, Text: text}, nil
}

// History returns the user's transcript, oldest first.
func (s *Service) History(ctx context.Context, userID int64, sessionID string, limit int) ([]chat.Message, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.ChatHistory(ctx, userID, sessionID, limit)
}

func (s *Service) persist(ctx context.Context, msg chat.Message) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveChatMessage(ctx, msg); err != nil {
		log.Printf("[chat] failed to persist message: %v", err)
	}
}

// cannedReply covers offline mode with simple keyword matching.
func cannedReply(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "bored"):
		return "Boredom can be a gateway to creativity. Have you checked the dashboard suggestions?"
	case strings.Contains(lower, "sad"):
		return "I'm sorry you're feeling down. Maybe some calming music would help?"
	case strings.Contains(lower, "happy"):
		return "That's wonderful! Keep that momentum going."
	default:
		return "I hear you. Tell me more about that."
	}
}
