package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Joelrtharakan/boredom-breaker/backend/internal/analysis/emotion"
	chatHandler "github.com/Joelrtharakan/boredom-breaker/backend/internal/handler/chat"
	gamesHandler "github.com/Joelrtharakan/boredom-breaker/backend/internal/handler/games"
	journalHandler "github.com/Joelrtharakan/boredom-breaker/backend/internal/handler/journal"
	lockboxHandler "github.com/Joelrtharakan/boredom-breaker/backend/internal/handler/lockbox"
	moodHandler "github.com/Joelrtharakan/boredom-breaker/backend/internal/handler/mood"
	musicHandler "github.com/Joelrtharakan/boredom-breaker/backend/internal/handler/music"
	suggestHandler "github.com/Joelrtharakan/boredom-breaker/backend/internal/handler/suggest"
	middlewarePkg "github.com/Joelrtharakan/boredom-breaker/backend/internal/middleware"
	"github.com/Joelrtharakan/boredom-breaker/backend/internal/service/agent"
	chatService "github.com/Joelrtharakan/boredom-breaker/backend/internal/service/chat"
	musicService "github.com/Joelrtharakan/boredom-breaker/backend/internal/service/music"
	"github.com/Joelrtharakan/boredom-breaker/backend/internal/storage"
	"github.com/Joelrtharakan/boredom-breaker/backend/pkg/utils"
)

// Services bundles everything the HTTP layer needs.
type Services struct {
	Classifier *emotion.Classifier
	Router     *agent.Router
	MicroTask  *agent.MicroTaskAgent
	Surprise   *agent.SurpriseAgent
	Chat       *chatService.Service
	Music      *musicService.Service
	Store      *storage.Store
}

// NewRouter wires HTTP routes to core services.
func NewRouter(svcs Services) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Welcome to Boredom Breaker API"})
	})

	r.Route("/api", func(api chi.Router) {
		moodHandler.New(svcs.Classifier, svcs.Store).RegisterRoutes(api)
		suggestHandler.New(svcs.Classifier, svcs.Router, svcs.MicroTask, svcs.Surprise).RegisterRoutes(api)
		journalHandler.New(svcs.Store).RegisterRoutes(api)
		lockboxHandler.New(svcs.Store).RegisterRoutes(api)
		gamesHandler.New(svcs.Store).RegisterRoutes(api)
		musicHandler.New(svcs.Music).RegisterRoutes(api)

		chatHandler.New(svcs.Chat).RegisterRoutes(api)
		chatHandler.NewWebSocketHandler(svcs.Chat).RegisterRoutes(api)
	})

	return r
}
