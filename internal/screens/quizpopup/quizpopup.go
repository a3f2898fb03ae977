// Package quizpopup renders a module quiz as a modal walkthrough over
// the quiz state machine.
package quizpopup

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"lurnix/internal/quiz"
	"lurnix/internal/router"
	"lurnix/internal/screen"
	"lurnix/internal/ui/components"
	"lurnix/internal/ui/layout"
	"lurnix/internal/ui/theme"
)

// QuizScreen walks the user through one quiz.
type QuizScreen struct {
	run        *quiz.Run
	moduleName string
	cursor     int
	confirming bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New starts a fresh walkthrough. A new quiz always means a new Run;
// state never survives from a previous popup.
func New(q quiz.Quiz, moduleName string) *QuizScreen {
	return &QuizScreen{run: quiz.NewRun(q), moduleName: moduleName}
}

func (q *QuizScreen) Init() tea.Cmd { return nil }

func (q *QuizScreen) Title() string { return "Module Quiz" }

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	if q.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch q.run.Phase() {
	case quiz.PhaseCompleted:
		return []layout.KeyHint{
			{Key: "R", Description: "Retake"},
			{Key: "Enter/Esc", Description: "Close"},
		}
	case quiz.PhaseAnswered:
		label := "Next"
		if q.run.LastQuestion() {
			label = "Finish"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: label},
			{Key: "Esc", Description: "Close"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Close"},
		}
	}
}

// midQuiz reports whether closing now would lose recorded progress.
func (q *QuizScreen) midQuiz() bool {
	return len(q.run.Answers()) > 0 && q.run.Phase() != quiz.PhaseCompleted
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return q, nil
	}

	if q.confirming {
		switch key.String() {
		case "y", "Y", "enter":
			return q, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			q.confirming = false
		}
		return q, nil
	}

	switch key.String() {
	case "esc":
		if q.midQuiz() {
			q.confirming = true
			return q, nil
		}
		return q, func() tea.Msg { return router.PopScreenMsg{} }

	case "up", "k":
		q.moveCursor(-1)
	case "down", "j":
		q.moveCursor(1)

	case "enter":
		switch q.run.Phase() {
		case quiz.PhaseUnanswered:
			q.run.Select(q.cursor)
			q.run.Submit()
		case quiz.PhaseAnswered:
			q.run.Next()
			q.cursor = 0
		case quiz.PhaseCompleted:
			return q, func() tea.Msg { return router.PopScreenMsg{} }
		}

	case "r", "R":
		if q.run.Phase() == quiz.PhaseCompleted {
			q.run.Retake()
			q.cursor = 0
		}
	}
	return q, nil
}

func (q *QuizScreen) moveCursor(dir int) {
	if q.run.Phase() != quiz.PhaseUnanswered {
		return
	}
	n := len(q.run.Current().Options)
	if n == 0 {
		return
	}
	q.cursor = (q.cursor + dir + n) % n
}

func (q *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch {
	case q.confirming:
		body = q.viewConfirm()
	case q.run.Phase() == quiz.PhaseCompleted:
		body = q.viewScore(cw)
	default:
		body = q.viewQuestion(cw)
	}

	return components.ModalFrame(lipgloss.NewStyle().Width(cw).Render(body), width, height)
}

func (q *QuizScreen) viewConfirm() string {
	return theme.Title.Render("Leave the quiz?") + "\n\n" +
		theme.Body.Render("Your answers so far will be lost.") + "\n\n" +
		theme.Hint.Render("Y to leave, N to keep going")
}

func (q *QuizScreen) viewQuestion(cw int) string {
	if q.run.Total() == 0 {
		return theme.Title.Render(q.moduleName+" Quiz") + "\n\n" +
			theme.Body.Render("This quiz has no questions yet.") + "\n\n" +
			theme.Hint.Render("Esc to close")
	}

	var b strings.Builder

	b.WriteString(theme.Title.Render(q.moduleName + " Quiz"))
	b.WriteString("\n")
	percent := float64(q.run.Index()) / float64(q.run.Total())
	b.WriteString(components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", q.run.Index()+1, q.run.Total()),
		percent, false, cw).View())
	b.WriteString("\n\n")

	cur := q.run.Current()
	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(cur.Question))
	b.WriteString("\n\n")

	answered := q.run.Phase() == quiz.PhaseAnswered
	for i, opt := range cur.Options {
		label := fmt.Sprintf("%s. %s", string(rune('A'+i)), opt)
		switch {
		case answered && i == cur.CorrectAnswer:
			b.WriteString(theme.Correct.Render("✓ " + label))
		case answered && i == q.run.Selected() && !q.run.LastCorrect():
			b.WriteString(theme.Incorrect.Render("✗ " + label))
		case !answered && i == q.cursor:
			b.WriteString(theme.Selected.Render("▸ " + label))
		default:
			b.WriteString(theme.Unselected.Render("  " + label))
		}
		b.WriteString("\n")
	}

	if answered {
		b.WriteString("\n")
		if q.run.LastCorrect() {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Not quite."))
		}
	}

	return b.String()
}

func (q *QuizScreen) viewScore(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Quiz complete"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("You scored %d out of %d.", q.run.Score(), q.run.Total())))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", float64(q.run.Percentage())/100, true, cw).View())
	b.WriteString("\n\n")

	switch {
	case q.run.Percentage() == 100:
		b.WriteString(theme.Correct.Render("Perfect score. On to the next module."))
	case q.run.Percentage() >= 60:
		b.WriteString(theme.Body.Render("Good work. Review the misses and move on."))
	default:
		b.WriteString(theme.Body.Render("Worth another pass through this module."))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("R to retake, Enter to close"))
	return b.String()
}
