// Package login implements the email sign-in screen. An email known to
// the backend loads its saved preferences; an unknown one starts the
// preference setup flow.
package login

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"lurnix/internal/api"
	"lurnix/internal/profile"
	"lurnix/internal/router"
	"lurnix/internal/screen"
	"lurnix/internal/ui/components"
	"lurnix/internal/ui/layout"
	"lurnix/internal/ui/theme"
)

// Deps are the collaborators the login screen needs.
type Deps struct {
	Client  *api.Client
	Session SessionStore
	// OnKnownUser builds the screen shown after a returning user signs
	// in. OnNewUser builds the preference setup screen.
	OnKnownUser func(p profile.Profile) screen.Screen
	OnNewUser   func(p profile.Profile) screen.Screen
}

// SessionStore is the slice of the session layer login needs.
type SessionStore interface {
	Save(p profile.Profile) error
}

type lookupResultMsg struct {
	profile profile.Profile
	isNew   bool
	err     error
}

// LoginScreen collects an email and resolves it against the backend.
type LoginScreen struct {
	deps   Deps
	input  components.TextInput
	busy   bool
	errMsg string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates the login screen.
func New(deps Deps) *LoginScreen {
	return &LoginScreen{
		deps:  deps,
		input: components.NewTextInput("you@example.com", false, 64),
	}
}

func (l *LoginScreen) Init() tea.Cmd {
	return l.input.Init()
}

func (l *LoginScreen) Title() string { return "Sign In" }

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lookupResultMsg:
		return l.handleLookup(msg)

	case tea.KeyMsg:
		if l.busy {
			return l, nil
		}
		if msg.String() == "enter" {
			return l.submit()
		}
	}

	if l.busy {
		return l, nil
	}
	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

func (l *LoginScreen) submit() (screen.Screen, tea.Cmd) {
	email := strings.TrimSpace(strings.ToLower(l.input.Value()))
	if !validEmail(email) {
		l.errMsg = "Please enter a valid email address."
		return l, nil
	}

	l.errMsg = ""
	l.busy = true
	client := l.deps.Client
	return l, func() tea.Msg {
		p, err := client.GetUserByEmail(context.Background(), email)
		if err != nil {
			if api.IsNotFound(err, email) {
				return lookupResultMsg{profile: profile.Profile{Email: email}, isNew: true}
			}
			return lookupResultMsg{err: err}
		}
		return lookupResultMsg{profile: *p}
	}
}

func (l *LoginScreen) handleLookup(msg lookupResultMsg) (screen.Screen, tea.Cmd) {
	l.busy = false
	if msg.err != nil {
		l.errMsg = "Sign in failed: " + msg.err.Error()
		return l, nil
	}

	// Persist the profile first so a restart resumes from the same
	// point in the flow.
	if err := l.deps.Session.Save(msg.profile); err != nil {
		l.errMsg = "Could not save session: " + err.Error()
		return l, nil
	}

	var next screen.Screen
	if msg.isNew {
		next = l.deps.OnNewUser(msg.profile)
	} else {
		next = l.deps.OnKnownUser(msg.profile)
	}
	// Replace rather than push: backing out of home must not land on a
	// stale sign-in form.
	return l, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func validEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 {
		return false
	}
	rest := s[at+1:]
	dot := strings.LastIndex(rest, ".")
	return dot > 0 && dot < len(rest)-1 && !strings.Contains(rest, "@")
}

func (l *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Welcome to Lurnix")

	sub := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Sign in with your email to continue")

	prompt := "Email: " + l.input.View()
	if l.busy {
		prompt = lipgloss.NewStyle().Foreground(theme.TextDim).Render("Looking up your account...")
	}

	body := title + "\n\n" + sub + "\n\n" + prompt
	if l.errMsg != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(l.errMsg)
	}

	card := components.Card(body, cw)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}
