package emotion

import (
	"context"
	"strings"
)

// lexiconBuckets maps classifier labels to hand-curated vocabulary. Matching
// is case-insensitive substring containment, same as the override lists.
var lexiconBuckets = map[string][]string{
	"joy": {
		"happy", "good", "great", "love", "fun", "best", "amazing", "lovely",
		"excited", "lol", "lmao", "funny", "nice", "cool", "wonderful",
		"glad", "enjoy", "yay", "awesome",
	},
	"sadness": {
		"sad", "unhappy", "cry", "crying", "depressed", "miserable", "lonely",
		"heartbroken", "upset", "hurt", "down bad", "feeling low", "gloomy",
	},
	"anger": {
		"angry", "mad", "furious", "rage", "pissed", "irritated", "hate",
		"fuming", "livid",
	},
	"fear": {
		"afraid", "scared", "worried", "nervous", "anxious", "panic",
		"terrified", "uneasy", "dread",
	},
	"optimism": {
		"hope", "hoping", "hopeful", "optimistic", "looking forward",
		"things will get", "improve",
	},
}

// LexiconLabeler scores text against fixed keyword buckets. It is the default
// base model when no hosted classifier credential is configured, so the
// pipeline stays usable fully offline.
type LexiconLabeler struct{}

// Scores counts bucket hits and converts them to a confidence in [0, 1).
func (LexiconLabeler) Scores(_ context.Context, text string) ([]LabelScore, error) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return []LabelScore{{Label: "neutral", Score: 0}}, nil
	}

	var scores []LabelScore
	for label, words := range lexiconBuckets {
		hits := 0
		for _, word := range words {
			if strings.Contains(normalized, word) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		score := 0.45 + 0.20*float64(hits)
		if score > 0.97 {
			score = 0.97
		}
		scores = append(scores, LabelScore{Label: label, Score: score})
	}

	if len(scores) == 0 {
		return []LabelScore{{Label: "neutral", Score: 0}}, nil
	}
	return scores, nil
}
