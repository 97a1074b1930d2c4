package emotion

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/Joelrtharakan/boredom-breaker/backend/internal/config"
	"github.com/Joelrtharakan/boredom-breaker/backend/internal/model/mood"
)

// Override phrase lists, evaluated in precedence order. These are literal
// substrings; slang like "no cap" and "cooked" is part of the contract, so do
// not tokenize or stem.
var (
	distressSignals = []string{
		"done with life", "done with everything", "done with this life",
		"can't take it", "cant take it", "can't take this", "cant take this",
		"give up", "suicid", "end it all", "ending it all",
		"want to die", "kill myself", "end my life",
	}
	boredomSignals     = []string{"bored", "nothing to do", "dull", "mid", "meh"}
	exhaustionSignals  = []string{"tired", "exhausted", "drained", "cooked", "social battery"}
	anxietySignals     = []string{"anxious", "worried", "nervous", "stress", "spiraling"}
	frustrationSignals = []string{"frustrat", "annoy", "hate", "crash out"}
	hopeSignals        = []string{"hope", "hoping", "no cap", "clutch"}

	// negativeContextWords catch sarcasm: the base model reads "great, it
	// crashed again" as joy, these flip it to anger.
	negativeContextWords = []string{
		"crashed", "crash", "broken", "broke", "failed", "failure",
		"not working", "doesn't work", "doesnt work", "error", "bug",
		"stuck", "annoying", "ugh", "worst", "sick of", "fed up",
	}

	// positiveWords relax the anti-bias threshold for joy/optimism labels.
	positiveWords = []string{
		"happy", "good", "great", "love", "fun", "best", "amazing", "lovely",
		"win", "winner", "excited", "lol", "lmao", "funny", "nice", "cool",
		"wonderful", "perfect", "better", "hope", "optimist", "glad", "enjoy",
	}
)

// Classifier maps free text to a mood signal. It never fails: model errors
// and degenerate input collapse to a neutral low-confidence signal.
type Classifier struct {
	cfg     config.ClassifierConfig
	labeler Labeler
	once    sync.Once
}

// New builds a classifier whose base model is chosen lazily on first use:
// the HuggingFace API when a key is configured, the local lexicon otherwise.
func New(cfg config.ClassifierConfig) *Classifier {
	return &Classifier{cfg: cfg}
}

// NewWithLabeler builds a classifier around an explicit base model.
func NewWithLabeler(cfg config.ClassifierConfig, labeler Labeler) *Classifier {
	return &Classifier{cfg: cfg, labeler: labeler}
}

func (c *Classifier) loadLabeler() {
	c.once.Do(func() {
		if c.labeler != nil {
			return
		}
		if c.cfg.HFAPIKey != "" {
			log.Printf("[emotion] using hosted classifier %s", c.cfg.HFModel)
			c.labeler = NewHFLabeler(c.cfg.HFAPIKey, c.cfg.HFModel)
			return
		}
		log.Printf("[emotion] no HF_API_KEY, using lexicon classifier")
		c.labeler = LexiconLabeler{}
	})
}

// Analyze runs the full cascade: garbage guard, base classification, sarcasm
// override, confidence thresholding, label-to-mood mapping, then the keyword
// override pass. Precedence order matters and is part of the contract.
func (c *Classifier) Analyze(ctx context.Context, text string) mood.Signal {
	signal := mood.Signal{SourceText: text}

	// Unspaced token streams ("asdfghjkl") are noise, not emotion.
	if len(text) > 8 && !strings.Contains(text, " ") {
		signal.Mood = mood.LowEnergy
		signal.Emotion = mood.EmotionNeutral
		signal.Intensity = 0.0
		return signal
	}

	c.loadLabeler()

	label, score := c.topLabel(ctx, text)
	lower := strings.ToLower(text)

	// Sarcasm: a positive label over failure/breakage language is anger.
	// Checked before thresholding on purpose.
	if isPositiveLabel(label) && containsAny(lower, negativeContextWords) {
		signal.Mood = mood.Stressed
		signal.Emotion = mood.EmotionAnger
		signal.Intensity = 0.9
		return signal
	}

	threshold := c.cfg.BaseThreshold
	if len(text) < c.cfg.ShortTextLimit {
		// Single emotionally-loaded words should not dominate short inputs.
		threshold = c.cfg.ShortTextThreshold
	}
	if isPositiveLabel(label) {
		// The base model over-predicts positive labels on neutral text.
		if containsAny(lower, positiveWords) {
			threshold = c.cfg.JoyRelaxedThreshold
		} else {
			threshold = c.cfg.JoyThreshold
		}
	}

	emotionLabel := mood.Emotion(label)
	if score < threshold {
		signal.Mood = mood.LowEnergy
		signal.Emotion = mood.EmotionNeutral
	} else {
		signal.Mood = mapLabelToMood(emotionLabel)
		signal.Emotion = emotionLabel
	}
	signal.Intensity = score

	c.applyKeywordOverrides(lower, &signal)

	if signal.Intensity < 0 {
		signal.Intensity = 0
	}
	if signal.Intensity > 1 {
		signal.Intensity = 1
	}
	return signal
}

func (c *Classifier) topLabel(ctx context.Context, text string) (string, float64) {
	scores, err := c.labeler.Scores(ctx, text)
	if err != nil || len(scores) == 0 {
		if err != nil {
			log.Printf("[emotion] base classifier failed, treating as neutral: %v", err)
		}
		return string(mood.EmotionNeutral), 0.0
	}

	top := scores[0]
	for _, s := range scores[1:] {
		if s.Score > top.Score {
			top = s
		}
	}
	return top.Label, top.Score
}

// applyKeywordOverrides is the final pass; it can override everything the
// model said. First match wins, distress has highest precedence.
func (c *Classifier) applyKeywordOverrides(lower string, signal *mood.Signal) {
	switch {
	case containsAny(lower, distressSignals):
		signal.Emotion = mood.EmotionSadness
		signal.Mood = mood.Sad
		signal.Intensity = 0.99
	case containsAny(lower, boredomSignals):
		signal.Emotion = mood.EmotionBoredom
		signal.Mood = mood.LowEnergy
		signal.Intensity = floorIntensity(signal.Intensity, 0.85)
	case containsAny(lower, exhaustionSignals):
		signal.Emotion = mood.EmotionExhaustion
		signal.Mood = mood.LowEnergy
		signal.Intensity = floorIntensity(signal.Intensity, 0.9)
	case containsAny(lower, anxietySignals):
		signal.Emotion = mood.EmotionFear
		signal.Mood = mood.Anxious
	case containsAny(lower, frustrationSignals):
		signal.Emotion = mood.EmotionAnger
		signal.Mood = mood.Stressed
		signal.Intensity = floorIntensity(signal.Intensity, 0.85)
	case containsAny(lower, hopeSignals):
		signal.Emotion = mood.EmotionOptimism
		signal.Mood = mood.Happy
		signal.Intensity = floorIntensity(signal.Intensity, 0.85)
	}
}

func mapLabelToMood(label mood.Emotion) mood.Mood {
	switch label {
	case mood.EmotionJoy, mood.EmotionOptimism:
		return mood.Happy
	case mood.EmotionAnger:
		return mood.Stressed
	case mood.EmotionSadness:
		return mood.Sad
	case mood.EmotionFear:
		return mood.Anxious
	default:
		return mood.Neutral
	}
}

func isPositiveLabel(label string) bool {
	return label == string(mood.EmotionJoy) || label == string(mood.EmotionOptimism)
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

func floorIntensity(current, floor float64) float64 {
	if current > floor {
		return current
	}
	return floor
}
