package agent

import (
	"context"
	"log"

	"github.com/Joelrtharakan/boredom-breaker/backend/internal/model/mood"
	"github.com/Joelrtharakan/boredom-breaker/backend/internal/model/plan"
)

// Router dispatches a mood signal to exactly one agent. Every branch except
// neutral resolves to the planner; the surprise agent is reserved for the
// "nothing wrong, spark something" case.
type Router struct {
	planner  *Planner
	surprise *SurpriseAgent
}

// NewRouter wires the dispatch table.
func NewRouter(planner *Planner, surprise *SurpriseAgent) *Router {
	return &Router{planner: planner, surprise: surprise}
}

// Route returns a plan for the signal. Any panic during dispatch is caught
// and replaced with a neutral planner run, so callers always get a plan.
func (r *Router) Route(ctx context.Context, signal mood.Signal, userID int64) (out plan.Plan) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[router] recovered, using neutral plan: %v", rec)
			out = r.planner.GeneratePlan(ctx, string(mood.Neutral), 0.5, userID)
		}
	}()

	items := r.dispatch(ctx, signal, userID)
	if len(items) == 0 {
		return r.planner.GeneratePlan(ctx, string(signal.Mood), 0.5, userID)
	}
	return items
}

func (r *Router) dispatch(ctx context.Context, signal mood.Signal, userID int64) plan.Plan {
	moodName := string(signal.Mood)
	if moodName == "" {
		moodName = string(mood.Neutral)
	}

	log.Printf("[router] mood=%s emotion=%s intensity=%.2f", signal.Mood, signal.Emotion, signal.Intensity)

	switch signal.Emotion {
	case mood.EmotionSadness, mood.EmotionAnger, mood.EmotionFear, mood.EmotionExhaustion,
		"stressed", "anxious", "sad":
		// Heavy emotions need structured help.
		return r.planner.GeneratePlan(ctx, moodName, signal.Intensity, userID)
	case mood.EmotionBoredom:
		return r.planner.GeneratePlan(ctx, moodName, signal.Intensity, userID)
	case mood.EmotionNeutral:
		surprise := r.surprise.Generate()
		return plan.Plan{{
			Type:        plan.StepSurprise,
			Description: surprise.Surprise,
			TimeMinutes: 1,
		}}
	default:
		return r.planner.GeneratePlan(ctx, moodName, signal.Intensity, userID)
	}
}
