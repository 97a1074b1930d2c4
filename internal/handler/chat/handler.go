package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	chatmodel "github.com/Joelrtharakan/boredom-breaker/backend/internal/model/chat"
	chatService "github.com/Joelrtharakan/boredom-breaker/backend/internal/service/chat"
	"github.com/Joelrtharakan/boredom-breaker/backend/pkg/utils"
)

// Handler exposes the empathetic chat agent over HTTP.
type Handler struct {
	chatSvc *chatService.Service
}

func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/chat", func(r chi.Router) {
		r.Post("/send", h.handleSend)
		r.Get("/history", h.handleHistory)
		r.Get("/stream", h.handleStream)
	})
}

type sendRequest struct {
	UserID    int64  `json:"user_id"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	var payload sendRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.chatSvc.Send(r.Context(), payload.UserID, payload.SessionID, payload.Message)
	if err != nil {
		if errors.Is(err, chatService.ErrEmptyMessage) {
			utils.RespondError(w, http.StatusBadRequest, "message is required")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to generate reply")
		return
	}

	utils.RespondJSON(w, http.StatusOK, reply)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	sessionID := r.URL.Query().Get("session_id")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	messages, err := h.chatSvc.History(r.Context(), userID, sessionID, limit)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load chat history")
		return
	}
	if messages == nil {
		messages = []chatmodel.Message{}
	}

	utils.RespondJSON(w, http.StatusOK, messages)
}

// handleStream answers one message over SSE so the client can show progress
// while the model is thinking.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	userID, _ := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	sessionID := r.URL.Query().Get("session_id")
	message := r.URL.Query().Get("message")
	if message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
		return
	}

	utils.SetupSSEHeaders(w)

	utils.SendSSEEvent(w, flusher, "status", map[string]any{"message": "thinking"})

	reply, err := h.chatSvc.Send(r.Context(), userID, sessionID, message)
	if err != nil {
		utils.SendSSEEvent(w, flusher, "error", map[string]any{"message": "failed to generate reply"})
		return
	}

	// The reply travels as a plain data frame; clients read it off the
	// default message event.
	utils.SendSSEChunk(w, flusher, reply)
	utils.SendSSEEvent(w, flusher, "done", map[string]any{"session_id": reply.SessionID})
}
