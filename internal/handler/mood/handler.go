package mood

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Joelrtharakan/boredom-breaker/backend/internal/analysis/emotion"
	"github.com/Joelrtharakan/boredom-breaker/backend/internal/storage"
	"github.com/Joelrtharakan/boredom-breaker/backend/pkg/utils"
)

// Handler exposes mood detection and the mood log.
type Handler struct {
	classifier *emotion.Classifier
	store      *storage.Store
}

func New(classifier *emotion.Classifier, store *storage.Store) *Handler {
	return &Handler{classifier: classifier, store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/mood", func(r chi.Router) {
		r.Post("/detect", h.handleDetect)
		r.Post("/log", h.handleLog)
		r.Get("/history", h.handleHistory)
	})
}

// energyLevel maps detected emotions onto a coarse energy estimate.
func energyLevel(emotionName string) string {
	switch emotionName {
	case "joy", "optimism", "anger":
		return "high"
	case "sadness":
		return "low"
	default:
		return "medium"
	}
}

func (h *Handler) handleDetect(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	signal := h.classifier.Analyze(r.Context(), payload.Text)

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"mood":         signal.Mood,
		"emotion":      signal.Emotion,
		"intensity":    signal.Intensity,
		"energy_level": energyLevel(string(signal.Emotion)),
	})
}

func (h *Handler) handleLog(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID         int64    `json:"user_id"`
		Mood           string   `json:"mood"`
		Emotion        string   `json:"emotion"`
		Intensity      float64  `json:"intensity"`
		ActivitiesUsed []string `json:"activities_used"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Mood == "" {
		utils.RespondError(w, http.StatusBadRequest, "mood is required")
		return
	}

	id, err := h.store.LogMood(r.Context(), payload.UserID, payload.Mood, payload.Emotion, payload.Intensity, payload.ActivitiesUsed)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to log mood")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"ok": true, "id": id})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)

	entries, err := h.store.MoodHistory(r.Context(), userID, 20)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load mood history")
		return
	}
	if entries == nil {
		entries = []storage.MoodEntry{}
	}

	utils.RespondJSON(w, http.StatusOK, entries)
}
