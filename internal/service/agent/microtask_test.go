package agent_test

import (
	"math/rand"
	"testing"

	"github.com/Joelrtharakan/boredom-breaker/backend/internal/service/agent"
)

func TestMicroTaskStressedMoodsGetMindfulness(t *testing.T) {
	a := agent.NewMicroTaskAgent(rand.New(rand.NewSource(1)))

	for _, moodName := range []string{"stressed", "anxious"} {
		got := a.Generate(moodName)
		if got.Category != "mindfulness" {
			t.Fatalf("%s: category got %q want mindfulness", moodName, got.Category)
		}
		if got.TargetMood != moodName {
			t.Fatalf("target mood: got %q want %q", got.TargetMood, moodName)
		}
		if got.MicroTask == "" {
			t.Fatal("empty micro task")
		}
	}
}

func TestMicroTaskBoredMoodsGetActiveCategories(t *testing.T) {
	a := agent.NewMicroTaskAgent(rand.New(rand.NewSource(7)))

	active := map[string]bool{"physical": true, "creativity": true, "humor": true}
	for i := 0; i < 50; i++ {
		got := a.Generate("bored")
		if !active[got.Category] {
			t.Fatalf("bored draw %d landed outside active categories: %q", i, got.Category)
		}
	}
}

func TestMicroTaskUnknownMoodUsesAnyCategory(t *testing.T) {
	a := agent.NewMicroTaskAgent(rand.New(rand.NewSource(42)))

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		got := a.Generate("neutral")
		seen[got.Category] = true
	}

	// With 200 seeded draws every category should show up.
	for _, category := range []string{"mindfulness", "creativity", "physical", "riddle", "observation", "humor"} {
		if !seen[category] {
			t.Fatalf("category %q never drawn", category)
		}
	}
}

func TestSurpriseCoversAllTypes(t *testing.T) {
	a := agent.NewSurpriseAgent(agent.NewMicroTaskAgent(rand.New(rand.NewSource(3))), rand.New(rand.NewSource(3)))

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		got := a.Generate()
		if got.Surprise == "" {
			t.Fatalf("draw %d returned empty content for type %q", i, got.Type)
		}
		seen[got.Type] = true
	}

	for _, kind := range []string{"fact", "joke", "motivational", "micro_task", "challenge"} {
		if !seen[kind] {
			t.Fatalf("type %q never drawn", kind)
		}
	}
}
