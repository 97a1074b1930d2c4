package mood

// Mood is the coarse-grained category used for content selection.
type Mood string

const (
	Happy     Mood = "happy"
	Sad       Mood = "sad"
	Stressed  Mood = "stressed"
	Anxious   Mood = "anxious"
	LowEnergy Mood = "low_energy"
	Neutral   Mood = "neutral"
)

// Emotion is the finer-grained classifier label.
type Emotion string

const (
	EmotionJoy        Emotion = "joy"
	EmotionOptimism   Emotion = "optimism"
	EmotionAnger      Emotion = "anger"
	EmotionSadness    Emotion = "sadness"
	EmotionFear       Emotion = "fear"
	EmotionBoredom    Emotion = "boredom"
	EmotionExhaustion Emotion = "exhaustion"
	EmotionNeutral    Emotion = "neutral"
)

// Signal is the classifier's verdict for one piece of user text.
// It is request-scoped and never persisted by the pipeline itself.
type Signal struct {
	Mood       Mood    `json:"mood"`
	Emotion    Emotion `json:"emotion"`
	Intensity  float64 `json:"intensity"`
	SourceText string  `json:"-"`
}
