package agent

import "math/rand"

// MicroTaskResult is the micro-task agent's response shape.
type MicroTaskResult struct {
	MicroTask  string `json:"micro_task"`
	Category   string `json:"category"`
	TargetMood string `json:"target_mood"`
}

// Category order is fixed so seeded randomness stays reproducible.
var microTaskCategories = []string{
	"mindfulness", "creativity", "physical", "riddle", "observation", "humor",
}

var microTasks = map[string][]string{
	"mindfulness": {
		"Take 3 deep breaths and notice the temperature of the air.",
		"Stare at your hands for 30 seconds and notice every detail.",
		"Listen for the farthest sound you can hear right now.",
	},
	"creativity": {
		"Find an object near you and think of 3 unconventional uses for it.",
		"Doodle a shape and turn it into a monster.",
		"Write a sentence where every word starts with 'S'.",
	},
	"physical": {
		"Stand up and stretch to the ceiling for 10 seconds.",
		"Do 10 rapid jumping jacks.",
		"Rotate your wrists and ankles 5 times each way.",
	},
	"riddle": {
		"What has keys but can't open locks? (A piano)",
		"I speak without a mouth and hear without ears. What am I? (An echo)",
	},
	"observation": {
		"Find 3 blue objects in your room.",
		"Count how many circles you can see from where you are sitting.",
	},
	"humor": {
		"Make a funny face in the mirror (or phone camera).",
		"Laugh out loud for 5 seconds even if it's fake.",
	},
}

// MicroTaskAgent picks a quick task from a fixed category table. Pure local
// lookup plus uniform selection; it cannot fail.
type MicroTaskAgent struct {
	rng *lockedRand
}

// NewMicroTaskAgent builds the agent; rng may be nil for a time-seeded source.
func NewMicroTaskAgent(rng *rand.Rand) *MicroTaskAgent {
	return &MicroTaskAgent{rng: newLockedRand(rng)}
}

// Generate selects a task pool by mood and a task uniformly within it.
func (a *MicroTaskAgent) Generate(mood string) MicroTaskResult {
	var category string
	switch mood {
	case "stressed", "anxious":
		category = "mindfulness"
	case "bored", "low_energy":
		active := []string{"physical", "creativity", "humor"}
		category = active[a.rng.Intn(len(active))]
	default:
		category = microTaskCategories[a.rng.Intn(len(microTaskCategories))]
	}

	pool := microTasks[category]
	return MicroTaskResult{
		MicroTask:  pool[a.rng.Intn(len(pool))],
		Category:   category,
		TargetMood: mood,
	}
}
