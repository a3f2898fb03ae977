// Package interview implements the audio-only mock interview: question
// generation from lesson content, the fallback question bank, the active
// session state, and transcript export.
package interview

import "fmt"

// Question is one generated interview question with its model answer.
type Question struct {
	Question     string `json:"question"`
	SampleAnswer string `json:"sampleAnswer"`
	TopicArea    string `json:"topicArea"`
	Difficulty   string `json:"difficulty"`
}

// Difficulty levels offered at setup.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// QuestionCounts are the selectable interview lengths.
var QuestionCounts = []int{3, 5, 7, 10}

// Options configures one interview generation.
type Options struct {
	// Topic is the fallback bank topic when no lesson content is
	// available. Defaults to "generative-ai".
	Topic string

	// Domain and Hobby come from the learner profile and steer the
	// analogies in sample answers.
	Domain string
	Hobby  string

	Difficulty   string
	NumQuestions int

	// CustomContext is free-form extra guidance from the user.
	CustomContext string
}

// Normalize fills unset fields with their defaults and bounds the
// question count to an offered length.
func (o *Options) Normalize() {
	if o.Topic == "" {
		o.Topic = "generative-ai"
	}
	if o.Difficulty == "" {
		o.Difficulty = DifficultyMedium
	}
	if o.NumQuestions <= 0 {
		o.NumQuestions = 5
	}
}

// Validate rejects options an interview cannot be built from.
func (o Options) Validate() error {
	switch o.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fmt.Errorf("unknown difficulty %q", o.Difficulty)
	}
	if o.NumQuestions <= 0 {
		return fmt.Errorf("question count must be positive, got %d", o.NumQuestions)
	}
	return nil
}
