// Package profileform implements the preference setup screen, used
// both for first-time profile creation and for editing a saved profile.
package profileform

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

// Mode selects between creating a profile and updating one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

// Choice lists offered for the selector fields. IDs travel to the
// backend; labels are what the user sees.
var (
	domainChoices = []choice{
		{"engineering-student", "Engineering Student"},
		{"medical-student", "Medical Student"},
		{"business-student", "Business Student"},
		{"teacher-trainer", "Teacher / Trainer"},
		{"working-professional", "Working Professional"},
	}
	hobbyChoices = []choice{
		{"cricket", "Cricket"},
		{"movies", "Movies"},
		{"gaming", "Gaming"},
		{"music", "Music"},
		{"cooking", "Cooking"},
	}
	styleChoices = []choice{
		{"storytelling", "Storytelling"},
		{"visual_cue", "Visual cues"},
		{"summary", "Summaries"},
	}
)

type choice struct {
	id    string
	label string
}

// field indexes within the form.
const (
	fieldName = iota
	fieldDomain
	fieldHobby
	fieldStyle
	fieldCount
)

type saveResultMsg struct {
	saved profile.Profile
	err   error
}

// Deps are the collaborators the form needs.
type Deps struct {
	Client  *api.Client
	Session SessionStore
	// OnSaved builds the screen shown after a successful save.
	OnSaved func(p profile.Profile) screen.Screen
}

// SessionStore is the slice of the session layer the form needs.
type SessionStore interface {
	Save(p profile.Profile) error
}

// FormScreen is the preference create/update form.
type FormScreen struct {
	deps    Deps
	mode    Mode
	base    profile.Profile
	name    components.TextInput
	domain  int
	hobby   int
	style   int
	cursor  int
	busy    bool
	errMsg  string
	missing []string
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)

// New creates the form pre-filled from p. In ModeCreate p usually
// carries only an email; in ModeUpdate it is the full saved profile.
func New(deps Deps, mode Mode, p profile.Profile) *FormScreen {
	name := components.NewTextInput("e.g., Ada Lovelace", false, 48)
	name.Model.SetValue(p.Name)

	return &FormScreen{
		deps:   deps,
		mode:   mode,
		base:   p,
		name:   name,
		domain: choiceIndex(domainChoices, p.Domain),
		hobby:  choiceIndex(hobbyChoices, p.Hobbies),
		style:  choiceIndex(styleChoices, p.LearningStyle),
	}
}

func choiceIndex(choices []choice, id string) int {
	for i, c := range choices {
		if c.id == id {
			return i
		}
	}
	return 0
}

func (f *FormScreen) Init() tea.Cmd {
	return f.name.Init()
}

func (f *FormScreen) Title() string {
	if f.mode == ModeUpdate {
		return "Update Preferences"
	}
	return "Create Your Learning Profile"
}

func (f *FormScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Field"},
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Save"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (f *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case saveResultMsg:
		return f.handleSaved(msg)

	case tea.KeyMsg:
		if f.busy {
			return f, nil
		}
		switch msg.String() {
		case "tab", "down":
			f.cursor = (f.cursor + 1) % fieldCount
			return f, nil
		case "shift+tab", "up":
			f.cursor = (f.cursor + fieldCount - 1) % fieldCount
			return f, nil
		case "left":
			f.cycle(-1)
			return f, nil
		case "right":
			f.cycle(1)
			return f, nil
		case "enter":
			return f.submit()
		}
	}

	if f.busy || f.cursor != fieldName {
		return f, nil
	}
	var cmd tea.Cmd
	f.name, cmd = f.name.Update(msg)
	return f, cmd
}

func (f *FormScreen) cycle(dir int) {
	step := func(i, n int) int { return (i + dir + n) % n }
	switch f.cursor {
	case fieldDomain:
		f.domain = step(f.domain, len(domainChoices))
	case fieldHobby:
		f.hobby = step(f.hobby, len(hobbyChoices))
	case fieldStyle:
		f.style = step(f.style, len(styleChoices))
	}
}

// collect assembles the profile from the form fields.
func (f *FormScreen) collect() profile.Profile {
	p := f.base
	p.Name = strings.TrimSpace(f.name.Value())
	p.Domain = domainChoices[f.domain].id
	p.Hobbies = hobbyChoices[f.hobby].id
	p.LearningStyle = styleChoices[f.style].id
	return p
}

func (f *FormScreen) submit() (screen.Screen, tea.Cmd) {
	p := f.collect()
	if missing := p.MissingFields(); len(missing) > 0 {
		f.missing = missing
		f.errMsg = "Please fill out all fields to personalize your content."
		return f, nil
	}

	f.missing = nil
	f.errMsg = ""
	f.busy = true

	client := f.deps.Client
	mode := f.mode
	return f, func() tea.Msg {
		ctx := context.Background()
		var saved *profile.Profile
		var err error
		if mode == ModeUpdate && p.ID != "" {
			saved, err = client.UpdateUserPreferences(ctx, p.ID, p)
		} else {
			saved, err = client.SaveUserPreferences(ctx, p)
		}
		if err != nil {
			return saveResultMsg{err: err}
		}
		return saveResultMsg{saved: *saved}
	}
}

func (f *FormScreen) handleSaved(msg saveResultMsg) (screen.Screen, tea.Cmd) {
	f.busy = false
	if msg.err != nil {
		f.errMsg = "Could not save preferences: " + msg.err.Error()
		return f, nil
	}

	if err := f.deps.Session.Save(msg.saved); err != nil {
		f.errMsg = "Could not save session: " + err.Error()
		return f, nil
	}

	next := f.deps.OnSaved(msg.saved)
	return f, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (f *FormScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder

	sub := "Tell us a bit about yourself to get personalized content."
	if f.mode == ModeUpdate {
		sub = "Adjust your preferences; new content adapts right away."
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(sub))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Email: " + f.base.Email))
	b.WriteString("\n\n")

	b.WriteString(f.renderField(fieldName, "Full Name", f.name.View(), f.missingHas("name")))
	b.WriteString(f.renderField(fieldDomain, "Primary Domain", f.renderChoice(domainChoices, f.domain, fieldDomain), f.missingHas("domain")))
	b.WriteString(f.renderField(fieldHobby, "Interests / Hobby", f.renderChoice(hobbyChoices, f.hobby, fieldHobby), f.missingHas("hobbies")))
	b.WriteString(f.renderField(fieldStyle, "Learning Style", f.renderChoice(styleChoices, f.style, fieldStyle), f.missingHas("learning style")))

	if f.busy {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render("Saving your profile..."))
	}
	if f.errMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(f.errMsg))
	}

	card := components.Card(b.String(), cw)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}

func (f *FormScreen) missingHas(name string) bool {
	for _, m := range f.missing {
		if m == name {
			return true
		}
	}
	return false
}

func (f *FormScreen) renderField(idx int, label, value string, missing bool) string {
	marker := "  "
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if idx == f.cursor {
		marker = "▸ "
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	line := marker + labelStyle.Render(label) + "\n    " + value
	if missing {
		line += lipgloss.NewStyle().Foreground(theme.Error).Render("  (required)")
	}
	return line + "\n\n"
}

func (f *FormScreen) renderChoice(choices []choice, selected, fieldIdx int) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		if i == selected {
			style := lipgloss.NewStyle().Foreground(theme.Text)
			if fieldIdx == f.cursor {
				style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
			}
			parts[i] = style.Render("[" + c.label + "]")
		} else {
			parts[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render(c.label)
		}
	}
	return strings.Join(parts, "  ")
}
