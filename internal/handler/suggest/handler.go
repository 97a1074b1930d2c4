package suggest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Joelrtharakan/boredom-breaker/backend/internal/analysis/emotion"
	"github.com/Joelrtharakan/boredom-breaker/backend/internal/service/agent"
	"github.com/Joelrtharakan/boredom-breaker/backend/pkg/utils"
)

// Handler turns free text into a mood-support plan.
type Handler struct {
	classifier *emotion.Classifier
	router     *agent.Router
	micro      *agent.MicroTaskAgent
	surprise   *agent.SurpriseAgent
}

func New(classifier *emotion.Classifier, router *agent.Router, micro *agent.MicroTaskAgent, surprise *agent.SurpriseAgent) *Handler {
	return &Handler{classifier: classifier, router: router, micro: micro, surprise: surprise}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/suggest", func(r chi.Router) {
		r.Post("/", h.handleSuggest)
		r.Get("/micro-task", h.handleMicroTask)
		r.Get("/surprise", h.handleSurprise)
	})
}

func (h *Handler) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID int64  `json:"user_id"`
		Text   string `json:"text"`
		Mood   string `json:"mood"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	text := payload.Text
	if text == "" {
		text = payload.Mood
	}

	signal := h.classifier.Analyze(r.Context(), text)
	steps := h.router.Route(r.Context(), signal, payload.UserID)

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"plan":      steps,
		"mood":      signal.Mood,
		"emotion":   signal.Emotion,
		"intensity": signal.Intensity,
	})
}

func (h *Handler) handleMicroTask(w http.ResponseWriter, r *http.Request) {
	moodName := r.URL.Query().Get("mood")
	if moodName == "" {
		moodName = "neutral"
	}

	utils.RespondJSON(w, http.StatusOK, h.micro.Generate(moodName))
}

func (h *Handler) handleSurprise(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.surprise.Generate())
}
