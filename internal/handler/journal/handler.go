package journal

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Joelrtharakan/boredom-breaker/backend/internal/storage"
	"github.com/Joelrtharakan/boredom-breaker/backend/pkg/utils"
)

// Handler manages journal entries.
type Handler struct {
	store *storage.Store
}

func New(store *storage.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/journal", func(r chi.Router) {
		r.Post("/create", h.handleCreate)
		r.Get("/list", h.handleList)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID    int64  `json:"user_id"`
		Title     string `json:"title"`
		Content   string `json:"content"`
		Encrypted bool   `json:"is_encrypted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Title == "" {
		utils.RespondError(w, http.StatusBadRequest, "title is required")
		return
	}

	id, err := h.store.CreateJournal(r.Context(), payload.UserID, payload.Title, payload.Content, payload.Encrypted)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to create journal entry")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)

	entries, err := h.store.ListJournals(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to list journal entries")
		return
	}
	if entries == nil {
		entries = []storage.Journal{}
	}

	utils.RespondJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid entry id")
		return
	}
	userID, _ := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)

	if err := h.store.DeleteJournal(r.Context(), userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.RespondError(w, http.StatusNotFound, "journal entry not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to delete journal entry")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"ok": true})
}
