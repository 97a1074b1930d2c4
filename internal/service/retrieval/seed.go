package retrieval

import (
	"context"
	"log"
)

type seedDoc struct {
	text string
	mood string
	kind string
}

var seedActivities = []seedDoc{
	{text: "Quick desk stretches", mood: "low_energy", kind: "activity"},
	{text: "2-minute breathing reset", mood: "stressed", kind: "breathing"},
	{text: "Listen to a short upbeat track", mood: "sad", kind: "music"},
	{text: "Drink a glass of water", mood: "neutral", kind: "activity"},
	{text: "Do 10 jumping jacks", mood: "boredom", kind: "activity"},
	{text: "Write down 3 things you are grateful for", mood: "sad", kind: "journal"},
	{text: "Visualize your happy place for 60 seconds", mood: "anxious", kind: "breathing"},
}

var seedMicroTasks = []seedDoc{
	{text: "Find something blue near you.", mood: "boredom"},
	{text: "Name 5 countries starting with A.", mood: "boredom"},
	{text: "Close your eyes and count to 10.", mood: "stressed"},
	{text: "Stretch your fingers.", mood: "low_energy"},
	{text: "Look out the window and spot a bird.", mood: "boredom"},
}

// Seed loads the fixed corpora. Called once at startup; the store is
// read-only at request time.
func (s *Store) Seed(ctx context.Context) {
	log.Printf("[retrieval] seeding corpora")

	for _, doc := range seedActivities {
		s.Add(ctx, CollActivities, doc.text, map[string]string{
			"mood": doc.mood,
			"type": doc.kind,
		})
	}
	for _, doc := range seedMicroTasks {
		s.Add(ctx, CollMicroTasks, doc.text, map[string]string{
			"mood": doc.mood,
		})
	}

	log.Printf("[retrieval] seeded %d activities, %d micro tasks", len(seedActivities), len(seedMicroTasks))
}
