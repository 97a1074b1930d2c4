package emotion

import "context"

// LabelScore is one label/confidence pair from the base classifier.
type LabelScore struct {
	Label string
	Score float64
}

// Labeler is the pluggable multi-label emotion model. Implementations return
// scores for arbitrary text; the override cascade in Classifier compensates
// for their biases.
type Labeler interface {
	Scores(ctx context.Context, text string) ([]LabelScore, error)
}
