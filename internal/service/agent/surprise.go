package agent

import "math/rand"

// SurpriseResult is the surprise agent's response shape.
type SurpriseResult struct {
	Surprise string `json:"surprise"`
	Type     string `json:"type"`
}

var surpriseTypes = []string{"fact", "joke", "motivational", "micro_task", "challenge"}

var surpriseFacts = []string{
	"Honey never spoils. You can eat 3000 year old honey.",
	"Octopuses have three hearts.",
	"Bananas are curved because they grow towards the sun.",
}

var surpriseJokes = []string{
	"Why don't scientists trust atoms? Because they make up everything!",
	"I'm on a seafood diet. I see food and I eat it.",
	"Parallel lines have so much in common. It's a shame they'll never meet.",
}

var surpriseMotivational = []string{
	"The best time to plant a tree was 20 years ago. The second best time is now.",
	"You are stronger than you think.",
	"Every moment is a fresh beginning.",
}

const surpriseChallenge = "Do 10 pushups right now!"

// SurpriseAgent serves the "nothing wrong, spark something" case with a
// uniform pick over five content types. It cannot fail.
type SurpriseAgent struct {
	rng   *lockedRand
	micro *MicroTaskAgent
}

// NewSurpriseAgent builds the agent; micro handles the micro_task type.
func NewSurpriseAgent(micro *MicroTaskAgent, rng *rand.Rand) *SurpriseAgent {
	return &SurpriseAgent{rng: newLockedRand(rng), micro: micro}
}

// Generate draws one surprise.
func (a *SurpriseAgent) Generate() SurpriseResult {
	kind := surpriseTypes[a.rng.Intn(len(surpriseTypes))]

	var content string
	switch kind {
	case "fact":
		content = surpriseFacts[a.rng.Intn(len(surpriseFacts))]
	case "joke":
		content = surpriseJokes[a.rng.Intn(len(surpriseJokes))]
	case "motivational":
		content = surpriseMotivational[a.rng.Intn(len(surpriseMotivational))]
	case "micro_task":
		content = a.micro.Generate("neutral").MicroTask
	default:
		content = surpriseChallenge
	}

	return SurpriseResult{Surprise: content, Type: kind}
}
