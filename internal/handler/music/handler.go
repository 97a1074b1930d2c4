package music

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	musicService "github.com/Joelrtharakan/boredom-breaker/backend/internal/service/music"
	"github.com/Joelrtharakan/boredom-breaker/backend/pkg/utils"
)

// Handler serves mood-matched playlists.
type Handler struct {
	svc *musicService.Service
}

func New(svc *musicService.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/music", h.handleMusic)
}

func (h *Handler) handleMusic(w http.ResponseWriter, r *http.Request) {
	moodName := r.URL.Query().Get("mood")
	if moodName == "" {
		moodName = "neutral"
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	playlists := h.svc.MoodPlaylists(r.Context(), moodName, limit)

	utils.RespondJSON(w, http.StatusOK, map[string]any{"playlists": playlists})
}
