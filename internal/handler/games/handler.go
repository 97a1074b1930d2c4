package games

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Joelrtharakan/boredom-breaker/backend/internal/storage"
	"github.com/Joelrtharakan/boredom-breaker/backend/pkg/utils"
)

// Handler records scores for the built-in casual games.
type Handler struct {
	store *storage.Store
}

func New(store *storage.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/games", func(r chi.Router) {
		r.Post("/{gameName}/submit", h.handleSubmit)
		r.Get("/scores", h.handleScores)
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	gameName := chi.URLParam(r, "gameName")

	var payload struct {
		UserID int64           `json:"user_id"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The result object is stored verbatim; only the score field is lifted.
	var result struct {
		Score int64 `json:"score"`
	}
	if len(payload.Result) > 0 {
		if err := json.Unmarshal(payload.Result, &result); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "result must be an object")
			return
		}
	}

	if _, err := h.store.SubmitScore(r.Context(), payload.UserID, gameName, result.Score, string(payload.Result)); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to submit score")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"success": true, "score": result.Score})
}

func (h *Handler) handleScores(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	gameName := r.URL.Query().Get("game")

	scores, err := h.store.Scores(r.Context(), userID, gameName, 20)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load scores")
		return
	}
	if scores == nil {
		scores = []storage.GameScore{}
	}

	utils.RespondJSON(w, http.StatusOK, scores)
}
