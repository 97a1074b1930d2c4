package agent_test

import (
	"context"
	"testing"

	"github.com/Joelrtharakan/boredom-breaker/backend/internal/model/mood"
	"github.com/Joelrtharakan/boredom-breaker/backend/internal/model/plan"
	"github.com/Joelrtharakan/boredom-breaker/backend/internal/service/agent"
)

func newOfflineRouter() *agent.Router {
	// A non-JSON model response forces the fixed fallback plan, which keeps
	// routing assertions independent of model output.
	planner := agent.NewPlanner(&fakeLLM{response: "offline"}, fakeRetriever{}, nil, nil)
	surprise := agent.NewSurpriseAgent(agent.NewMicroTaskAgent(nil), nil)
	return agent.NewRouter(planner, surprise)
}

func TestRouteNeutralReturnsSingleSurpriseStep(t *testing.T) {
	router := newOfflineRouter()

	steps := router.Route(context.Background(), mood.Signal{
		Mood:    mood.Neutral,
		Emotion: mood.EmotionNeutral,
	}, 1)

	if len(steps) != 1 {
		t.Fatalf("steps: got %d want 1: %+v", len(steps), steps)
	}
	if steps[0].Type != plan.StepSurprise {
		t.Fatalf("step type: got %s want %s", steps[0].Type, plan.StepSurprise)
	}
	if steps[0].Description == "" {
		t.Fatal("surprise step has no content")
	}
	if steps[0].TimeMinutes != 1 {
		t.Fatalf("surprise time: got %d want 1", steps[0].TimeMinutes)
	}
}

func TestRouteHeavyEmotionsGoToPlanner(t *testing.T) {
	router := newOfflineRouter()

	for _, emotionName := range []mood.Emotion{
		mood.EmotionSadness, mood.EmotionAnger, mood.EmotionFear, mood.EmotionExhaustion,
	} {
		steps := router.Route(context.Background(), mood.Signal{
			Mood:      mood.Sad,
			Emotion:   emotionName,
			Intensity: 0.9,
		}, 1)

		if len(steps) < 3 {
			t.Fatalf("%s: planner plans have at least 3 steps, got %d", emotionName, len(steps))
		}
	}
}

func TestRouteBoredomGoesToPlanner(t *testing.T) {
	router := newOfflineRouter()

	steps := router.Route(context.Background(), mood.Signal{
		Mood:      mood.LowEnergy,
		Emotion:   mood.EmotionBoredom,
		Intensity: 0.85,
	}, 1)

	// low_energy plans pick up a game step on top of the base three.
	if len(steps) != 4 {
		t.Fatalf("steps: got %d want 4: %+v", len(steps), steps)
	}
	if steps[3].Type != plan.StepGame {
		t.Fatalf("low_energy plans should close with a game step: %+v", steps[3])
	}
}

func TestRouteUnknownEmotionDefaultsToPlanner(t *testing.T) {
	router := newOfflineRouter()

	steps := router.Route(context.Background(), mood.Signal{
		Mood:      mood.Happy,
		Emotion:   mood.Emotion("confused"),
		Intensity: 0.6,
	}, 1)

	if len(steps) != 3 {
		t.Fatalf("steps: got %d want 3: %+v", len(steps), steps)
	}
}
