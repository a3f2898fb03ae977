package interview

import (
	"fmt"
	"time"
)

// State is the lifecycle phase of an active interview session.
type State int

const (
	// StateActive means questions are being asked.
	StateActive State = iota
	// StateCompleted means every question has been answered.
	StateCompleted
)

// Session tracks one interview in progress: the current question, the
// answers typed so far, and the running clock.
type Session struct {
	questions []Question
	answers   []string
	index     int
	state     State
	startedAt time.Time
	now       func() time.Time
}

// NewSession starts an interview over the given questions. The clock
// starts immediately.
func NewSession(questions []Question) *Session {
	s := &Session{
		questions: questions,
		answers:   make([]string, len(questions)),
		now:       time.Now,
	}
	s.startedAt = s.now()
	return s
}

// Current returns the question being asked.
func (s *Session) Current() Question {
	return s.questions[s.index]
}

// Next records the answer for the current question and advances. On the
// last question the session completes instead.
func (s *Session) Next(userAnswer string) {
	if s.state == StateCompleted {
		return
	}
	s.answers[s.index] = userAnswer
	if s.index < len(s.questions)-1 {
		s.index++
	} else {
		s.state = StateCompleted
	}
}

func (s *Session) State() State       { return s.state }
func (s *Session) Index() int         { return s.index }
func (s *Session) Total() int         { return len(s.questions) }
func (s *Session) Questions() []Question { return s.questions }

// Answer returns the recorded answer for question i, or the empty
// string when none was given.
func (s *Session) Answer(i int) string {
	if i < 0 || i >= len(s.answers) {
		return ""
	}
	return s.answers[i]
}

// Elapsed is the time since the session started.
func (s *Session) Elapsed() time.Duration {
	return s.now().Sub(s.startedAt)
}

// ProgressPercent is the share of questions reached, counting the
// current one.
func (s *Session) ProgressPercent() int {
	if len(s.questions) == 0 {
		return 0
	}
	return (s.index + 1) * 100 / len(s.questions)
}

// NeedsExitConfirm reports whether quitting now would discard progress
// worth confirming. Leaving on the first question never prompts.
func (s *Session) NeedsExitConfirm() bool {
	return s.state == StateActive && s.index > 0
}

// FormatClock renders a duration as MM:SS for the interview timer.
func FormatClock(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
