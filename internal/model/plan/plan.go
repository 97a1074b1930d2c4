package plan

// StepType enumerates the allowed plan step types. The set is part of the
// JSON contract with the frontend and with the language model.
type StepType string

const (
	StepBreathing   StepType = "breathing"
	StepMicroTask   StepType = "micro_task"
	StepActivity    StepType = "activity"
	StepMusic       StepType = "music"
	StepAffirmation StepType = "affirmation"
	StepGame        StepType = "game"
	StepSurprise    StepType = "surprise"
)

var validStepTypes = map[StepType]bool{
	StepBreathing:   true,
	StepMicroTask:   true,
	StepActivity:    true,
	StepMusic:       true,
	StepAffirmation: true,
	StepGame:        true,
	StepSurprise:    true,
}

// Valid reports whether t belongs to the fixed step-type vocabulary.
func (t StepType) Valid() bool {
	return validStepTypes[t]
}

// Step is a single suggested action presented to the user.
type Step struct {
	Type        StepType          `json:"type"`
	Description string            `json:"description"`
	TimeMinutes int               `json:"time_minutes"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Plan is an ordered sequence of steps; order is meaningful and preserved
// through the HTTP response.
type Plan []Step
