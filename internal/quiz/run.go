package quiz

import "math"

// NoSelection marks the absence of a selected answer.
const NoSelection = -1

// Run tracks one walkthrough of a quiz. Reopening the popup with a new
// quiz creates a fresh Run; Retake resets the same Run in place.
type Run struct {
	quiz     Quiz
	index    int
	phase    Phase
	selected int
	correct  bool
	score    int
	answers  []Answer
}

// Answer records the outcome of one submitted question.
type Answer struct {
	QuestionIndex  int
	SelectedAnswer int
	Correct        bool
}

// NewRun starts a walkthrough at question 0, unanswered, score 0.
func NewRun(q Quiz) *Run {
	return &Run{
		quiz:     q,
		selected: NoSelection,
	}
}

// Quiz returns the quiz being walked.
func (r *Run) Quiz() Quiz { return r.quiz }

// Phase returns the current phase.
func (r *Run) Phase() Phase { return r.phase }

// Index returns the current question index.
func (r *Run) Index() int { return r.index }

// Current returns the active question. Calling it after completion
// returns the last question.
func (r *Run) Current() Question {
	if len(r.quiz.Questions) == 0 {
		return Question{}
	}
	i := r.index
	if i >= len(r.quiz.Questions) {
		i = len(r.quiz.Questions) - 1
	}
	return r.quiz.Questions[i]
}

// Selected returns the currently selected option, or NoSelection.
func (r *Run) Selected() int { return r.selected }

// LastCorrect reports whether the most recent submission was correct.
func (r *Run) LastCorrect() bool { return r.correct }

// Score returns the number of correct submissions so far.
func (r *Run) Score() int { return r.score }

// Answers returns the submitted answers in question order.
func (r *Run) Answers() []Answer { return r.answers }

// Total returns the number of questions in the quiz.
func (r *Run) Total() int { return len(r.quiz.Questions) }

// LastQuestion reports whether the current question is the final one.
func (r *Run) LastQuestion() bool {
	return r.index == len(r.quiz.Questions)-1
}

// Select records a tentative answer. It is ignored unless the current
// question is unanswered or the index is out of range.
func (r *Run) Select(option int) {
	if r.phase != PhaseUnanswered {
		return
	}
	if option < 0 || option >= len(r.Current().Options) {
		return
	}
	r.selected = option
}

// Submit locks in the selected answer and reveals correctness. It is a
// no-op without a selection or outside the unanswered phase. The score
// increments exactly once per question, here.
func (r *Run) Submit() bool {
	if r.phase != PhaseUnanswered || r.selected == NoSelection {
		return false
	}
	r.correct = r.selected == r.Current().CorrectAnswer
	if r.correct {
		r.score++
	}
	r.answers = append(r.answers, Answer{
		QuestionIndex:  r.index,
		SelectedAnswer: r.selected,
		Correct:        r.correct,
	})
	r.phase = PhaseAnswered
	return true
}

// Next advances past an answered question: to the following question in
// the unanswered phase, or to completion after the last question.
func (r *Run) Next() {
	if r.phase != PhaseAnswered {
		return
	}
	if r.LastQuestion() {
		r.phase = PhaseCompleted
		return
	}
	r.index++
	r.selected = NoSelection
	r.correct = false
	r.phase = PhaseUnanswered
}

// Retake re-enters the initial state without discarding the quiz.
func (r *Run) Retake() {
	*r = *NewRun(r.quiz)
}

// Percentage returns the completion percentage, rounded to the nearest
// whole number.
func (r *Run) Percentage() int {
	if len(r.quiz.Questions) == 0 {
		return 0
	}
	return int(math.Round(float64(r.score) / float64(len(r.quiz.Questions)) * 100))
}
