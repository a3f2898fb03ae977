// Package interview implements the audio-only mock interview flow:
// setup, question generation, the spoken question loop, and the review
// with transcript download.
package interview

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"lurnix/internal/interview"
	"lurnix/internal/profile"
	"lurnix/internal/router"
	"lurnix/internal/screen"
	"lurnix/internal/speech"
	"lurnix/internal/ui/components"
	"lurnix/internal/ui/layout"
)

type phase int

const (
	phaseSetup phase = iota
	phaseGenerating
	phaseActive
	phaseCompleted
)

// setup fields, cycled with tab.
const (
	fieldDifficulty = iota
	fieldQuestions
	fieldAudio
	numFields
)

var difficulties = []string{
	interview.DifficultyEasy,
	interview.DifficultyMedium,
	interview.DifficultyHard,
}

type generatedMsg struct {
	result interview.Result
	err    error
}

type tickMsg time.Time

type transcriptSavedMsg struct {
	path string
	err  error
}

// Deps are the collaborators the interview screen needs.
type Deps struct {
	Generator *interview.Generator
	Speech    speech.Synthesizer
	Profile   profile.Profile
	// ExportDir receives downloaded transcripts.
	ExportDir string
}

// InterviewScreen runs one mock interview end to end.
type InterviewScreen struct {
	deps    Deps
	topic   string
	title   string
	content string

	phase      phase
	field      int
	difficulty int
	countIdx   int
	audio      bool

	session *interview.Session
	opts    interview.Options
	notice  string
	errMsg  string

	answer components.TextInput

	confirmingExit bool
	reviewScroll   int
	savedPath      string
	saveErr        string
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)

// New creates the interview screen seeded with the lesson on display.
// content may be empty, in which case questions cover the topic broadly.
func New(deps Deps, topic, title, content string) *InterviewScreen {
	return &InterviewScreen{
		deps:       deps,
		topic:      topic,
		title:      title,
		content:    content,
		difficulty: 1, // medium
		countIdx:   1, // 5 questions
		audio:      deps.Speech.Available(),
		answer:     components.NewTextInput("Type your answer, or leave blank to skip", false, 500),
	}
}

func (i *InterviewScreen) Init() tea.Cmd { return nil }

func (i *InterviewScreen) Title() string { return "Mock Interview" }

func (i *InterviewScreen) KeyHints() []layout.KeyHint {
	if i.confirmingExit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End interview"},
			{Key: "N", Description: "Continue"},
		}
	}
	switch i.phase {
	case phaseSetup:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Field"},
			{Key: "←→", Description: "Change"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseActive:
		hints := []layout.KeyHint{
			{Key: "Enter", Description: "Submit answer"},
		}
		if i.audio {
			hints = append(hints,
				layout.KeyHint{Key: "Ctrl+R", Description: "Repeat"},
				layout.KeyHint{Key: "Ctrl+X", Description: "Mute"},
			)
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Exit"})
	case phaseCompleted:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Review"},
			{Key: "D", Description: "Download transcript"},
			{Key: "R", Description: "New interview"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
}

// start fires question generation with the chosen settings.
func (i *InterviewScreen) start() tea.Cmd {
	i.opts = interview.Options{
		Topic:        i.topic,
		Domain:       i.deps.Profile.Domain,
		Hobby:        i.deps.Profile.Hobbies,
		Difficulty:   difficulties[i.difficulty],
		NumQuestions: interview.QuestionCounts[i.countIdx],
	}
	i.phase = phaseGenerating
	i.errMsg = ""

	gen := i.deps.Generator
	opts := i.opts
	title := i.title
	content := i.content
	return func() tea.Msg {
		result, err := gen.Generate(context.Background(), opts, title, content)
		return generatedMsg{result: result, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// speakQuestion reads the current question aloud, cutting off whatever
// was still playing.
func (i *InterviewScreen) speakQuestion() {
	if !i.audio || i.session == nil {
		return
	}
	i.deps.Speech.Speak(i.session.Current().Question, speech.VoiceInterviewer)
}

func (i *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		if i.phase != phaseGenerating {
			return i, nil
		}
		if msg.err != nil {
			i.phase = phaseSetup
			i.errMsg = msg.err.Error()
			return i, nil
		}
		i.notice = msg.result.Notice
		i.session = interview.NewSession(msg.result.Questions)
		i.phase = phaseActive
		i.answer.Model.SetValue("")
		i.speakQuestion()
		return i, tick()

	case tickMsg:
		if i.phase != phaseActive {
			return i, nil
		}
		return i, tick()

	case transcriptSavedMsg:
		if msg.err != nil {
			i.saveErr = msg.err.Error()
		} else {
			i.savedPath = msg.path
			i.saveErr = ""
		}
		return i, nil

	case tea.KeyMsg:
		return i.handleKey(msg)
	}
	return i, nil
}

func (i *InterviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if i.confirmingExit {
		switch msg.String() {
		case "y", "Y", "enter":
			i.deps.Speech.Stop()
			return i, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			i.confirmingExit = false
		}
		return i, nil
	}

	switch i.phase {
	case phaseSetup:
		return i.handleSetupKey(msg)
	case phaseActive:
		return i.handleActiveKey(msg)
	case phaseCompleted:
		return i.handleCompletedKey(msg)
	}

	// Generating: only escape works, and it just walks away.
	if msg.String() == "esc" {
		return i, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return i, nil
}

func (i *InterviewScreen) handleSetupKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return i, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab", "down", "j":
		i.field = (i.field + 1) % numFields
	case "shift+tab", "up", "k":
		i.field = (i.field + numFields - 1) % numFields
	case "left", "h":
		i.cycleField(-1)
	case "right", "l", " ":
		i.cycleField(1)
	case "enter":
		return i, i.start()
	}
	return i, nil
}

func (i *InterviewScreen) cycleField(dir int) {
	switch i.field {
	case fieldDifficulty:
		n := len(difficulties)
		i.difficulty = (i.difficulty + dir + n) % n
	case fieldQuestions:
		n := len(interview.QuestionCounts)
		i.countIdx = (i.countIdx + dir + n) % n
	case fieldAudio:
		if i.deps.Speech.Available() {
			i.audio = !i.audio
		}
	}
}

func (i *InterviewScreen) handleActiveKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if i.session.NeedsExitConfirm() {
			i.confirmingExit = true
			return i, nil
		}
		i.deps.Speech.Stop()
		return i, func() tea.Msg { return router.PopScreenMsg{} }

	case "ctrl+r":
		// Repeating is idempotent: the same text restarts from the top.
		i.speakQuestion()
		return i, nil

	case "ctrl+x":
		i.deps.Speech.Stop()
		return i, nil

	case "enter":
		i.deps.Speech.Stop()
		i.session.Next(i.answer.Value())
		i.answer.Model.SetValue("")
		if i.session.State() == interview.StateCompleted {
			i.phase = phaseCompleted
			return i, nil
		}
		i.speakQuestion()
		return i, nil
	}

	var cmd tea.Cmd
	i.answer, cmd = i.answer.Update(msg)
	return i, cmd
}

func (i *InterviewScreen) handleCompletedKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return i, func() tea.Msg { return router.PopScreenMsg{} }

	case "up", "k":
		if i.reviewScroll > 0 {
			i.reviewScroll--
		}
	case "down", "j":
		i.reviewScroll++

	case "d", "D":
		transcript := interview.BuildTranscript(i.opts, i.session)
		dir := i.deps.ExportDir
		return i, func() tea.Msg {
			path, err := transcript.Export(dir)
			return transcriptSavedMsg{path: path, err: err}
		}

	case "r", "R":
		i.phase = phaseSetup
		i.session = nil
		i.notice = ""
		i.savedPath = ""
		i.saveErr = ""
		i.reviewScroll = 0
	}
	return i, nil
}
