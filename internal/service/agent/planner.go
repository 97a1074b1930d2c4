package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"

	musicmodel "github.com/Joelrtharakan/boredom-breaker/backend/internal/model/music"
	"github.com/Joelrtharakan/boredom-breaker/backend/internal/model/plan"
	"github.com/Joelrtharakan/boredom-breaker/backend/internal/service/retrieval"
)

// LLMClient generates a completion for a system/user prompt pair. The
// implementation degrades internally; the planner only ever sees a string.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) string
}

// Retriever serves ranked corpus hits for a free-text mood query.
type Retriever interface {
	Query(ctx context.Context, collection, queryText string, n int) []retrieval.Hit
}

// MusicCatalog supplies one playlist recommendation per mood.
type MusicCatalog interface {
	PlaylistForMood(ctx context.Context, mood string) (musicmodel.Playlist, bool)
}

// Moods whose plans must close with music rather than a bare affirmation.
var needsGrounding = map[string]bool{
	"sad": true, "anxious": true, "stressed": true, "depressed": true,
}

// Moods that benefit from a focus-reset game step.
var gameMoods = map[string]bool{
	"bored": true, "boredom": true, "stressed": true, "anxious": true,
	"low_energy": true, "neutral": true, "sad": true, "sadness": true,
}

var gameNames = []string{
	"Reaction Time", "Aim Trainer", "Number Guess",
	"Chimp Test", "Memory Flip", "Visual Memory",
}

const plannerSystemPrompt = `You are an expert Planner Agent. Your goal is to create a personalized, actionable 3-step improvement plan to improve the user's mood.

Rules:
1. You MUST return a JSON ARRAY of objects.
2. Each object must have: "type", "description", "time_minutes".
3. Valid types: "breathing", "micro_task", "activity", "music", "affirmation".
4. The plan MUST include exactly 3 items:
   - Item 1: A small Micro-task or Breathing exercise (1-2 mins)
   - Item 2: A main Activity (5-10 mins)
   - Item 3: An Affirmation or Music track
5. Use the provided Context if relevant, but adapt it to be engaging.`

const plannerGroundingRule = `
6. This user's mood needs grounding: item 3 MUST have "type": "music".`

// Planner composes retrieval hits and a model call into a bounded plan.
// GeneratePlan never fails: every failure path lands on the fixed fallback
// plan, and post-processing (game step, music enrichment) runs regardless.
type Planner struct {
	llm     LLMClient
	store   Retriever
	catalog MusicCatalog
	rng     *lockedRand
}

// NewPlanner wires the agent; catalog may be nil, rng may be nil.
func NewPlanner(llm LLMClient, store Retriever, catalog MusicCatalog, rng *rand.Rand) *Planner {
	return &Planner{
		llm:     llm,
		store:   store,
		catalog: catalog,
		rng:     newLockedRand(rng),
	}
}

// GeneratePlan builds a 3-step plan for the mood, plus an optional game step
// and in-place music enrichment.
func (p *Planner) GeneratePlan(ctx context.Context, moodName string, intensity float64, userID int64) (out plan.Plan) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[planner] recovered: %v", r)
			out = p.finishPlan(ctx, p.fallbackPlan(moodName), moodName)
		}
	}()

	steps, err := p.modelPlan(ctx, moodName, intensity)
	if err != nil {
		log.Printf("[planner] falling back for mood %q: %v", moodName, err)
		steps = p.fallbackPlan(moodName)
	}
	return p.finishPlan(ctx, steps, moodName)
}

func (p *Planner) modelPlan(ctx context.Context, moodName string, intensity float64) (plan.Plan, error) {
	activities := p.store.Query(ctx, retrieval.CollActivities, moodName, 3)
	microTasks := p.store.Query(ctx, retrieval.CollMicroTasks, moodName, 3)

	contextStr := fmt.Sprintf("Suggested Activities: %s\nSuggested Micro-tasks: %s",
		formatHits(activities), formatHits(microTasks))

	systemPrompt := plannerSystemPrompt
	if needsGrounding[moodName] {
		systemPrompt += plannerGroundingRule
	}

	userPrompt := fmt.Sprintf(`User Mood: %s (Intensity: %.2f)
Context from Database:
%s

Generate the 3-step JSON plan now.`, moodName, intensity, contextStr)

	response := p.llm.Generate(ctx, systemPrompt, userPrompt)
	return parsePlanJSON(response)
}

// parsePlanJSON strips an optional fenced code block, unwraps a {"plan": ...}
// envelope, and strictly decodes into the plan schema. Model output is never
// trusted to match the target type without validation.
func parsePlanJSON(raw string) (plan.Plan, error) {
	payload := []byte(stripCodeFence(raw))

	var wrapper struct {
		Plan json.RawMessage `json:"plan"`
	}
	if err := json.Unmarshal(payload, &wrapper); err == nil && wrapper.Plan != nil {
		payload = wrapper.Plan
	}

	var steps plan.Plan
	if err := json.Unmarshal(payload, &steps); err != nil {
		return nil, fmt.Errorf("model output is not a plan array: %w", err)
	}
	if len(steps) == 0 {
		return nil, errors.New("model returned an empty plan")
	}
	for i, step := range steps {
		if !step.Type.Valid() {
			return nil, fmt.Errorf("step %d has unknown type %q", i, step.Type)
		}
		if strings.TrimSpace(step.Description) == "" {
			return nil, fmt.Errorf("step %d has an empty description", i)
		}
		if step.TimeMinutes < 0 {
			return nil, fmt.Errorf("step %d has negative time_minutes", i)
		}
	}
	return steps, nil
}

func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)

	fence := "```json"
	idx := strings.Index(trimmed, fence)
	if idx == -1 {
		fence = "```"
		idx = strings.Index(trimmed, fence)
	}
	if idx == -1 {
		return trimmed
	}

	rest := trimmed[idx+len(fence):]
	if end := strings.Index(rest, "```"); end != -1 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

// fallbackPlan is the fixed plan substituted when the model path fails. The
// third step follows the same grounding rule as the prompt.
func (p *Planner) fallbackPlan(moodName string) plan.Plan {
	steps := plan.Plan{
		{Type: plan.StepBreathing, Description: "Take 5 deep breaths.", TimeMinutes: 1},
		{Type: plan.StepMicroTask, Description: "Look away from the screen for 20 seconds.", TimeMinutes: 1},
	}
	if needsGrounding[moodName] {
		steps = append(steps, plan.Step{
			Type:        plan.StepMusic,
			Description: "Put on a calming playlist and let one song play through.",
			TimeMinutes: 5,
		})
	} else {
		steps = append(steps, plan.Step{
			Type:        plan.StepAffirmation,
			Description: "You are doing your best.",
			TimeMinutes: 0,
		})
	}
	return steps
}

// finishPlan appends the game step and enriches music steps. Runs on both
// model-built and fallback plans.
func (p *Planner) finishPlan(ctx context.Context, steps plan.Plan, moodName string) plan.Plan {
	if gameMoods[moodName] {
		game := gameNames[p.rng.Intn(len(gameNames))]
		steps = append(steps, plan.Step{
			Type:        plan.StepGame,
			Description: fmt.Sprintf("Play %s to reset your focus.", game),
			TimeMinutes: 5,
		})
	}

	if p.catalog == nil {
		return steps
	}
	for i := range steps {
		if steps[i].Type != plan.StepMusic {
			continue
		}
		playlist, ok := p.catalog.PlaylistForMood(ctx, moodName)
		if !ok {
			continue
		}
		if steps[i].Metadata == nil {
			steps[i].Metadata = make(map[string]string)
		}
		steps[i].Metadata["spotify_uri"] = playlist.URI
		steps[i].Metadata["playlist_name"] = playlist.Name
		if playlist.Image != "" {
			steps[i].Metadata["playlist_image"] = playlist.Image
		}
		steps[i].Description += " (Try: " + playlist.Name + ")"
	}
	return steps
}

func formatHits(hits []retrieval.Hit) string {
	if len(hits) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(hits))
	for _, hit := range hits {
		if hit.Type != "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", hit.Description, hit.Type))
		} else {
			parts = append(parts, hit.Description)
		}
	}
	return strings.Join(parts, "; ")
}
