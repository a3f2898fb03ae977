// Package app wires the screens together and runs the Bubble Tea
// program. It owns the start-screen guard and the session adapter the
// screens share.
package app

import (
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"lurnix/internal/api"
	"lurnix/internal/config"
	"lurnix/internal/interview"
	"lurnix/internal/router"
	"lurnix/internal/screen"
	"lurnix/internal/session"
	"lurnix/internal/speech"
	"lurnix/internal/ui/layout"
)

// Options carries everything the app needs, built in cmd.
type Options struct {
	Config    config.Config
	Log       *zap.Logger
	Client    *api.Client
	Session   session.Store
	Generator *interview.Generator
	Speech    speech.Synthesizer
	// ExportDir receives interview transcripts.
	ExportDir string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts    Options
	session *sessionAdapter
	router  *router.Router
	width   int
	height  int
}

// newAppModel builds the model and picks the start screen from the
// stored session.
func newAppModel(opts Options) AppModel {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Speech == nil {
		opts.Speech = speech.Noop{}
	}

	m := AppModel{
		opts:    opts,
		session: &sessionAdapter{store: opts.Session, log: opts.Log},
	}

	p, err := m.session.load()
	if err != nil && !errors.Is(err, session.ErrNoProfile) {
		opts.Log.Warn("stored session unusable, starting at sign-in", zap.Error(err))
	}

	var start screen.Screen
	switch RouteFor(p, err) {
	case RouteHome:
		start = m.newHome(*p)
	case RouteProfileForm:
		start = m.newProfileForm(*p)
	default:
		start = m.newLogin()
	}

	m.router = router.New(start)
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Escape is screen business: popups confirm before closing.
		if msg.String() == "ctrl+c" {
			m.opts.Speech.Stop()
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	userName, userDomain := m.session.current()
	header := layout.RenderHeader(title, userName, userDomain, m.width)

	var hints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		hints = provider.KeyHints()
	} else {
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(hints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
