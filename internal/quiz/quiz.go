// Package quiz models a module quiz and the state machine that walks a
// user through it one question at a time. The machine is independent of
// rendering so transitions can be tested without a terminal.
package quiz

// Question is a single multiple-choice question. CorrectAnswer indexes
// Options; option order is fixed and defines the A/B/C labelling.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// Quiz is an ordered list of questions.
type Quiz struct {
	ID         string     `json:"_id,omitempty"`
	CourseID   string     `json:"course_id,omitempty"`
	ModuleCode string     `json:"module_code,omitempty"`
	Difficulty string     `json:"difficulty,omitempty"`
	Questions  []Question `json:"questions"`
}

// Phase is the per-question state of the walkthrough.
type Phase int

const (
	// PhaseUnanswered is the initial state of each question: an answer
	// may be selected but has not been submitted.
	PhaseUnanswered Phase = iota
	// PhaseAnswered means the current question has been submitted and
	// its correctness is revealed.
	PhaseAnswered
	// PhaseCompleted means the last question has been advanced past.
	PhaseCompleted
)
